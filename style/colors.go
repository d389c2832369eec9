// SPDX-License-Identifier: MIT

package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// baseColors are the single-letter colour names.
var baseColors = map[string]color.RGBA{
	"b": {0, 0, 255, 255},
	"g": {0, 128, 0, 255},
	"r": {255, 0, 0, 255},
	"c": {0, 191, 191, 255},
	"m": {191, 0, 191, 255},
	"y": {191, 191, 0, 255},
	"k": {0, 0, 0, 255},
	"w": {255, 255, 255, 255},
}

// ParseColor accepts
//   - "#rrggbb" and "#rrggbbaa",
//   - CSS colour names and the single-letter base colours,
//   - "none" (transparent),
//   - RGB or RGBA lists of fractions in [0, 1],
//   - a [colour, alpha] pair, the alpha overriding the colour's own,
//   - any color.Color.
func ParseColor(v any) (color.Color, error) {
	switch c := v.(type) {
	case color.Color:
		return c, nil
	case string:
		return parseColorString(c)
	}
	list, ok := toList(v)
	if !ok {
		return nil, fmt.Errorf("colour %v: %w", v, ErrStyle)
	}
	if len(list) == 2 {
		base, err := ParseColor(list[0])
		if err != nil {
			return nil, err
		}
		a, ok := toFloat(list[1])
		if !ok {
			return nil, fmt.Errorf("colour alpha %v: %w", list[1], ErrStyle)
		}
		return WithAlpha(base, a), nil
	}
	if len(list) != 3 && len(list) != 4 {
		return nil, fmt.Errorf("colour %v: want 3 or 4 components: %w", v, ErrStyle)
	}
	comp := [4]float64{0, 0, 0, 1}
	for i, x := range list {
		f, ok := toFloat(x)
		if !ok || f < 0 || f > 1 {
			return nil, fmt.Errorf("colour component %v: %w", x, ErrStyle)
		}
		comp[i] = f
	}

	return color.NRGBA{
		R: uint8(comp[0]*255 + 0.5),
		G: uint8(comp[1]*255 + 0.5),
		B: uint8(comp[2]*255 + 0.5),
		A: uint8(comp[3]*255 + 0.5),
	}, nil
}

func parseColorString(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return nil, fmt.Errorf("colour %q: %w", s, ErrStyle)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("colour %q: %w", s, ErrStyle)
		}
		if len(hex) == 6 {
			n = n<<8 | 0xff
		}
		return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
	}
	low := strings.ToLower(s)
	if low == "none" {
		return color.Transparent, nil
	}
	if c, ok := baseColors[low]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[low]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unknown colour %q: %w", s, ErrStyle)
}

// WithAlpha returns c with its opacity replaced by a (clamped to [0, 1]).
func WithAlpha(c color.Color, a float64) color.Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(a*255 + 0.5)

	return n
}
