package palette

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samdwyer/raycaster/internal/rgb"
)

// WallDef defines a wall glyph loaded from JSON.
type WallDef struct {
	Glyph string `json:"glyph"` // Single map character (e.g., "R")
	Name  string `json:"name"`  // Display name (e.g., "Red")
	Color string `json:"color"` // Hex color code (e.g., "#B40000")
}

// GlyphRune returns the first character of the glyph, or '?' when the glyph is empty
// or not valid UTF-8.
func (w *WallDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(w.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// File represents the structure of palette.json.
type File struct {
	Walls    []WallDef `json:"walls"`
	Fallback string    `json:"fallback"`
	Ceiling  string    `json:"ceiling"`
	Floor    string    `json:"floor"`
}

// Palette maps map glyphs to wall colours and holds the scene background colours.
type Palette struct {
	walls    map[rune]rgb.Color
	glyphs   []rune
	fallback rgb.Color
	ceiling  rgb.Color
	floor    rgb.Color
}

// New builds a palette from a decoded palette file.
func New(file File) (*Palette, error) {
	if len(file.Walls) == 0 {
		return nil, errors.New("palette defines no walls")
	}

	p := &Palette{walls: make(map[rune]rgb.Color, len(file.Walls))}
	for i := range file.Walls {
		def := &file.Walls[i]
		color, err := ParseHexColor(def.Color)
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", def.Glyph, err)
		}
		glyph := def.GlyphRune()
		if glyph == ' ' {
			return nil, fmt.Errorf("wall %q: space is reserved for empty tiles", def.Name)
		}
		if _, ok := p.walls[glyph]; !ok {
			p.glyphs = append(p.glyphs, glyph)
		}
		p.walls[glyph] = color
	}

	var err error
	if p.fallback, err = ParseHexColor(file.Fallback); err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	if p.ceiling, err = ParseHexColor(file.Ceiling); err != nil {
		return nil, fmt.Errorf("ceiling: %w", err)
	}
	if p.floor, err = ParseHexColor(file.Floor); err != nil {
		return nil, fmt.Errorf("floor: %w", err)
	}
	return p, nil
}

// Default loads the palette from the embedded palette.json file.
func Default() (*Palette, error) {
	file, err := Load[File]("palette.json")
	if err != nil {
		return nil, err
	}
	return New(file)
}

// MustDefault loads the embedded palette, panicking on error.
func MustDefault() *Palette {
	p, err := Default()
	if err != nil {
		panic(err)
	}
	return p
}

// Wall returns the colour for a wall glyph and whether the glyph is known.
func (p *Palette) Wall(glyph rune) (rgb.Color, bool) {
	color, ok := p.walls[glyph]
	return color, ok
}

// Fallback returns the colour used for unrecognised wall characters.
func (p *Palette) Fallback() rgb.Color {
	return p.fallback
}

// Glyphs returns the known wall glyphs in definition order.
func (p *Palette) Glyphs() []rune {
	return p.glyphs
}

// Ceiling returns the solid ceiling colour.
func (p *Palette) Ceiling() rgb.Color {
	return p.ceiling
}

// Floor returns the base floor colour before the horizon gradient is applied.
func (p *Palette) Floor() rgb.Color {
	return p.floor
}
