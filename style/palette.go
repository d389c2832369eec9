// SPDX-License-Identifier: MIT

package style

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Palette cycles through a list of colours.
type Palette struct {
	colors []color.Color
	idx    int
}

// NewPalette returns a palette over colors; an empty list yields black.
func NewPalette(colors ...color.Color) *Palette {
	if len(colors) == 0 {
		colors = []color.Color{color.Black}
	}

	return &Palette{colors: append([]color.Color(nil), colors...)}
}

// Len returns the number of colours.
func (p *Palette) Len() int { return len(p.colors) }

// At returns colour i, wrapping around.
func (p *Palette) At(i int) color.Color {
	n := len(p.colors)
	return p.colors[((i%n)+n)%n]
}

// Next returns the current colour and advances, wrapping around.
func (p *Palette) Next() color.Color {
	c := p.colors[p.idx]
	p.idx = (p.idx + 1) % len(p.colors)

	return c
}

// Reset restarts the cycle at the first colour.
func (p *Palette) Reset() { p.idx = 0 }

var palettes = map[string][]string{
	"tango": {
		"#204a87", "#f57900", "#4e9a06", "#a40000", "#75507b", "#2e3436",
		"#729fcf", "#ce5c00", "#8ae234", "#ef2929", "#ad7fa8", "#babdb6",
	},
}

// PaletteNames lists the named palettes, sorted.
func PaletteNames() []string {
	out := make([]string, 0, len(palettes))
	for n := range palettes {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// NamedPalette returns a fresh palette by name.
func NamedPalette(name string) (*Palette, error) {
	hexes, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown color palette %q: %w", name, ErrStyle)
	}
	colors := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := parseColorString(h)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}

	return NewPalette(colors...), nil
}

// paletteFromValue interprets a line:color value: "palette:<name>", a list
// of colours, or a single colour.
func paletteFromValue(v any) (*Palette, error) {
	if s, ok := v.(string); ok {
		if name, found := strings.CutPrefix(s, "palette:"); found {
			return NamedPalette(name)
		}
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		return NewPalette(c), nil
	}
	if c, ok := v.(color.Color); ok {
		return NewPalette(c), nil
	}
	list, ok := toList(v)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("line colour %v: %w", v, ErrStyle)
	}
	colors := make([]color.Color, len(list))
	for i, x := range list {
		c, err := ParseColor(x)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}

	return NewPalette(colors...), nil
}
