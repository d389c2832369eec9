// SPDX-License-Identifier: MIT

package plots

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/katalvlaran/lisa/style"
)

// DefaultColorMap is used by mesh plots unless another map is asked for.
const DefaultColorMap = "PuBu"

// colorMaps maps the names accepted by the ColorMap option to constructors.
// Matplotlib names are mapped to the closest gonum map.
var colorMaps = map[string]func() (palette.ColorMap, error){
	"PuBu":      puBu,
	"inferno":   func() (palette.ColorMap, error) { return moreland.BlackBody(), nil },
	"blackbody": func() (palette.ColorMap, error) { return moreland.ExtendedBlackBody(), nil },
	"RdBu_r":    func() (palette.ColorMap, error) { return moreland.SmoothBlueRed(), nil },
	"RdBu":      func() (palette.ColorMap, error) { return reversed{moreland.SmoothBlueRed()}, nil },
	"kindlmann": func() (palette.ColorMap, error) { return moreland.Kindlmann(), nil },
	"PuOr":      func() (palette.ColorMap, error) { return moreland.SmoothPurpleOrange(), nil },
}

// puBu is a light-to-dark purple-blue luminance map.
func puBu() (palette.ColorMap, error) {
	var controls []color.Color
	for _, h := range []string{"#023858", "#0570b0", "#74a9cf", "#d0d1e6", "#fff7fb"} {
		c, err := style.ParseColor(h)
		if err != nil {
			return nil, err
		}
		controls = append(controls, c)
	}
	cm, err := moreland.NewLuminance(controls)
	if err != nil {
		return nil, err
	}

	return reversed{cm}, nil
}

// ColorMapNames lists the accepted colour map names, sorted.
func ColorMapNames() []string {
	out := make([]string, 0, len(colorMaps))
	for n := range colorMaps {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// ColorMap returns a fresh instance of the named map spanning [0, 1].
func ColorMap(name string) (palette.ColorMap, error) {
	mk, ok := colorMaps[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrColorMap)
	}
	cm, err := mk()
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	cm.SetMax(1)
	cm.SetMin(0)

	return cm, nil
}

// colorAt returns the colour at fraction frac of cm's range.
func colorAt(cm palette.ColorMap, frac float64) color.Color {
	lo, hi := cm.Min(), cm.Max()
	c, err := cm.At(clamp(lo+frac*(hi-lo), lo, hi))
	if err != nil {
		return color.Black
	}

	return c
}

// sample returns n colours evenly spaced over cm's range.
func sample(cm palette.ColorMap, n int) palette.Palette {
	out := make(colors, n)
	for i := range out {
		out[i] = colorAt(cm, float64(i)/float64(max(n-1, 1)))
	}

	return out
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// reversed runs a colour map from its maximum to its minimum.
type reversed struct {
	palette.ColorMap
}

func (r reversed) At(v float64) (color.Color, error) {
	lo, hi := r.Min(), r.Max()
	if v < lo || v > hi {
		return r.ColorMap.At(v)
	}

	return r.ColorMap.At(clamp(hi-(v-lo), lo, hi))
}

func (r reversed) Palette(n int) palette.Palette { return sample(r, n) }

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
