// Package palette provides the embedded wall colour palette and utilities for loading it.
package palette

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
