package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/raycaster/internal/rgb"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to an rgb.Color.
func ParseHexColor(hex string) (rgb.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return rgb.Black, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return rgb.Black, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return rgb.Color{R: r, G: g, B: b}, nil
}
