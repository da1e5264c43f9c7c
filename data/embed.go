// Package data provides the embedded default map.
package data

import _ "embed"

//go:embed map.txt
var defaultMap string

// DefaultMap returns the text of the built-in map. The default start position 4.5,5.5
// lies in an open tile.
func DefaultMap() string {
	return defaultMap
}
