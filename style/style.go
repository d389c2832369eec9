// SPDX-License-Identifier: MIT

package style

import (
	"fmt"
	"image/color"
	"maps"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style is a validated set of style keys. The zero value is not usable; use
// New or Named.
type Style struct {
	values  map[string]any
	palette *Palette
}

// New validates values and returns a style holding them.
func New(values map[string]any) (*Style, error) {
	s := &Style{values: make(map[string]any)}
	if err := s.Update(values); err != nil {
		return nil, err
	}

	return s, nil
}

// Named returns a style initialised from a registered style.
func Named(name string) (*Style, error) {
	values, err := lookupNamed(name)
	if err != nil {
		return nil, err
	}

	return New(values)
}

// canonical maps "sel::attr" to "sel:attr" and aliases to their target.
func canonical(k key) string {
	if k.explicit {
		return k.sel + ":" + k.subs[0] + ":" + k.attr
	}

	return k.sel + ":" + k.attr
}

// Update merges values into the style. Nothing changes when any key or value
// is invalid.
func (s *Style) Update(values map[string]any) error {
	parsed := make(map[string]any, len(values))
	for k, v := range values {
		if err := validate(k, v); err != nil {
			return err
		}
		pk, _ := splitKey(k)
		parsed[canonical(pk)] = v
	}
	maps.Copy(s.values, parsed)

	return s.refreshPalette()
}

// UpdateNamed merges a registered style into s.
func (s *Style) UpdateNamed(name string) error {
	values, err := lookupNamed(name)
	if err != nil {
		return err
	}

	return s.Update(values)
}

// Set validates and stores one key.
func (s *Style) Set(k string, v any) error {
	return s.Update(map[string]any{k: v})
}

// Get returns the value stored for k.
func (s *Style) Get(k string) (any, bool) {
	pk, err := splitKey(k)
	if err != nil {
		return nil, false
	}
	v, ok := s.values[canonical(pk)]

	return v, ok
}

// Keys returns the stored keys in canonical form, sorted.
func (s *Style) Keys() []string {
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Clone returns an independent copy.
func (s *Style) Clone() *Style {
	c := &Style{values: maps.Clone(s.values)}
	_ = c.refreshPalette()

	return c
}

func (s *Style) refreshPalette() error {
	v, ok := s.values["line:color"]
	if !ok {
		s.palette = nil
		return nil
	}
	p, err := paletteFromValue(v)
	if err != nil {
		return err
	}
	s.palette = p

	return nil
}

// lookup resolves an attribute for one sub selector: the explicit
// "sel:sub:attr" wins over "sel:attr".
func (s *Style) lookup(sel, sub, attr string) (any, bool) {
	if sub != "" {
		if v, ok := s.values[sel+":"+sub+":"+attr]; ok {
			return v, true
		}
	}
	v, ok := s.values[sel+":"+attr]

	return v, ok
}

func (s *Style) color(sel, sub, attr string) (color.Color, bool) {
	v, ok := s.lookup(sel, sub, attr)
	if !ok {
		return nil, false
	}
	c, err := ParseColor(v)

	return c, err == nil
}

func (s *Style) float(sel, sub, attr string) (float64, bool) {
	v, ok := s.lookup(sel, sub, attr)
	if !ok {
		return 0, false
	}

	return toFloat(v)
}

func (s *Style) applyText(ts *text.Style, sel, sub string) {
	if c, ok := s.color(sel, sub, "color"); ok {
		ts.Color = c
	}
	if v, ok := s.lookup(sel, sub, "fontsize"); ok {
		if size, err := parseFontSize(v); err == nil {
			ts.Font.Size = size
		}
	}
	if v, ok := s.lookup(sel, sub, "fontfamily"); ok {
		if variant, err := parseFontFamily(v); err == nil {
			ts.Font.Variant = variant
		}
	}
}

// Apply styles the background, axes, labels and legend of p and, when the
// grid is drawn below the data, adds the grid. Call it before adding series.
func (s *Style) Apply(p *plot.Plot) {
	if s.palette != nil {
		s.palette.Reset()
	}
	if c, ok := s.color("face", "", "color"); ok {
		p.BackgroundColor = c
	}
	axes := []struct {
		sub  string
		axis *plot.Axis
	}{{"x", &p.X}, {"y", &p.Y}}
	for _, ax := range axes {
		s.applyText(&ax.axis.Label.TextStyle, "label", ax.sub)
		s.applyText(&ax.axis.Tick.Label, "ticklabels", ax.sub)
		if c, ok := s.color("ticks", ax.sub, "color"); ok {
			ax.axis.Tick.LineStyle.Color = c
		}
		if s.tickDirection(ax.sub) == "in" {
			ax.axis.Tick.Length = 0
		}
	}
	if c, ok := s.color("spine", "bottom", "color"); ok {
		p.X.LineStyle.Color = c
	}
	if c, ok := s.color("spine", "left", "color"); ok {
		p.Y.LineStyle.Color = c
	}
	s.applyText(&p.Legend.TextStyle, "legend", "")

	if g, ok := s.Grid(); ok && s.GridBelow() {
		p.Add(g)
	}
}

// Overlay adds what is drawn above the series: the grid when it is not
// below the data, inward ticks, and the top and right spines.
func (s *Style) Overlay(p *plot.Plot) {
	if g, ok := s.Grid(); ok && !s.GridBelow() {
		p.Add(g)
	}
	f := &frame{}
	if c, ok := s.color("spine", "top", "color"); ok {
		f.top = c
	}
	if c, ok := s.color("spine", "right", "color"); ok {
		f.right = c
	}
	for _, sub := range []string{"x", "y"} {
		if dir := s.tickDirection(sub); dir == "in" || dir == "inout" {
			sty := p.X.Tick.LineStyle
			if sub == "y" {
				sty = p.Y.Tick.LineStyle
			}
			f.inward = append(f.inward, inwardTicks{axis: sub, style: sty})
		}
	}
	if f.top != nil || f.right != nil || len(f.inward) > 0 {
		p.Add(f)
	}
}

func (s *Style) tickDirection(sub string) string {
	v, ok := s.lookup("ticks", sub, "direction")
	if !ok {
		return "out"
	}
	d, _ := v.(string)

	return strings.ToLower(d)
}

// GridBelow reports whether the grid is drawn under the data (the default).
func (s *Style) GridBelow() bool {
	for _, sub := range []string{"x", "y"} {
		if v, ok := s.lookup("ticks", sub, "below"); ok {
			if b, ok := toBool(v); ok && !b {
				return false
			}
		}
	}

	return true
}

// Grid returns the configured grid. ok is false when no grid is drawn:
// grid:visible is false, no grid key is set, or the line style is "none".
func (s *Style) Grid() (*plotter.Grid, bool) {
	visible := false
	for k := range s.values {
		if strings.HasPrefix(k, "grid:") {
			visible = true
			break
		}
	}
	if v, ok := s.values["grid:visible"]; ok {
		visible, _ = toBool(v)
	}
	if !visible {
		return nil, false
	}

	g := plotter.NewGrid()
	sty := g.Vertical
	if c, ok := s.color("grid", "", "color"); ok {
		sty.Color = c
	}
	if a, ok := s.float("grid", "", "alpha"); ok {
		sty.Color = WithAlpha(sty.Color, a)
	}
	if w, ok := s.float("grid", "", "linewidth"); ok {
		sty.Width = vg.Points(w)
	}
	if v, ok := s.values["grid:linestyle"]; ok {
		d, err := parseDashSpec(v)
		if err == nil && d.none {
			return nil, false
		}
		sty.Dashes, sty.DashOffs = d.scaled(sty.Width)
	}
	if v, ok := s.values["grid:dashes"]; ok {
		if pattern, ok := toFloats(v); ok {
			sty.Dashes = make([]vg.Length, len(pattern))
			for i, x := range pattern {
				sty.Dashes[i] = vg.Points(x)
			}
		}
	}
	g.Vertical, g.Horizontal = sty, sty

	return g, true
}

// FigureSize returns figure:size in plot units. ok is false when unset.
func (s *Style) FigureSize() (w, h vg.Length, ok bool) {
	v, found := s.values["figure:size"]
	if !found {
		return 0, 0, false
	}
	wh, _ := toFloats(v)

	return vg.Length(wh[0]) * vg.Inch, vg.Length(wh[1]) * vg.Inch, true
}

// Series is the drawing style of one line series.
type Series struct {
	Line      draw.LineStyle
	ShowLine  bool
	Glyph     draw.GlyphStyle
	ShowGlyph bool
}

// LineStyle returns the style of series i: its colour comes from the line
// palette (or the default colour cycle), width and dashes from line:width
// and line:style, and markers from the marker selector.
func (s *Style) LineStyle(i int) Series {
	out := Series{Line: plotter.DefaultLineStyle, ShowLine: true}
	out.Line.Color = plotutil.Color(i)
	if s.palette != nil {
		out.Line.Color = s.palette.At(i)
	}
	if w, ok := s.float("line", "", "width"); ok {
		out.Line.Width = vg.Points(w)
	}
	if v, ok := s.values["line:style"]; ok {
		if d, err := parseDashSpec(v); err == nil {
			out.ShowLine = !d.none
			out.Line.Dashes, out.Line.DashOffs = d.scaled(out.Line.Width)
		}
	}

	if v, ok := s.values["marker:type"]; ok {
		if m, err := parseMarker(v); err == nil && m.shape != nil {
			out.ShowGlyph = true
			out.Glyph = draw.GlyphStyle{Color: out.Line.Color, Radius: m.radius, Shape: m.shape}
		}
	}
	if size, ok := s.float("marker", "", "size"); ok {
		out.Glyph.Radius = vg.Points(size / 2)
	}
	if c, ok := s.color("marker", "", "edgecolor"); ok {
		out.Glyph.Color = c
	}
	if c, ok := s.color("marker", "", "facecolor"); ok {
		out.Glyph.Color = c
	}

	return out
}

// frame draws the top and right spines and inward tick marks on the data
// area.
type frame struct {
	top, right color.Color
	inward     []inwardTicks
}

type inwardTicks struct {
	axis  string
	style draw.LineStyle
}

const inwardTickLength = vg.Length(5)

func (f *frame) Plot(c draw.Canvas, p *plot.Plot) {
	sty := p.X.LineStyle
	if f.top != nil {
		sty.Color = f.top
		c.StrokeLine2(sty, c.Min.X, c.Max.Y, c.Max.X, c.Max.Y)
	}
	if f.right != nil {
		sty.Color = f.right
		c.StrokeLine2(sty, c.Max.X, c.Min.Y, c.Max.X, c.Max.Y)
	}
	trX, trY := p.Transforms(&c)
	for _, in := range f.inward {
		if in.axis == "x" {
			for _, t := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
				l := inwardTickLength
				if t.IsMinor() {
					l /= 2
				}
				x := trX(t.Value)
				c.StrokeLine2(in.style, x, c.Min.Y, x, c.Min.Y+l)
			}
			continue
		}
		for _, t := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
			l := inwardTickLength
			if t.IsMinor() {
				l /= 2
			}
			y := trY(t.Value)
			c.StrokeLine2(in.style, c.Min.X, y, c.Min.X+l, y)
		}
	}
}

// marker is a parsed marker:type.
type marker struct {
	shape  draw.GlyphDrawer
	radius vg.Length
}

func parseMarker(v any) (marker, error) {
	s, ok := v.(string)
	if !ok {
		return marker{}, fmt.Errorf("marker type %v: %w", v, ErrStyle)
	}
	switch strings.TrimSpace(s) {
	case "", "none", "None":
		return marker{}, nil
	case ".":
		return marker{shape: draw.CircleGlyph{}, radius: 1.5}, nil
	case ",":
		return marker{shape: draw.BoxGlyph{}, radius: 0.5}, nil
	case "o":
		return marker{shape: draw.CircleGlyph{}, radius: 3}, nil
	case "s":
		return marker{shape: draw.BoxGlyph{}, radius: 3}, nil
	case "^":
		return marker{shape: draw.PyramidGlyph{}, radius: 3}, nil
	case "+":
		return marker{shape: draw.PlusGlyph{}, radius: 3}, nil
	case "x":
		return marker{shape: draw.CrossGlyph{}, radius: 3}, nil
	}

	return marker{}, fmt.Errorf("marker type %q: %w", s, ErrStyle)
}

// Named font sizes relative to the 10pt base size.
var fontScale = map[string]float64{
	"xx-small": 0.579, "x-small": 0.694, "small": 0.833, "medium": 1,
	"large": 1.2, "x-large": 1.44, "xx-large": 1.728,
}

func parseFontSize(v any) (vg.Length, error) {
	if f, ok := toFloat(v); ok && f > 0 {
		return vg.Points(f), nil
	}
	if s, ok := v.(string); ok {
		if f, ok := fontScale[strings.ToLower(s)]; ok {
			return vg.Points(10 * f), nil
		}
	}

	return 0, fmt.Errorf("font size %v: %w", v, ErrStyle)
}

func parseFontFamily(v any) (font.Variant, error) {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serif":
		return "Serif", nil
	case "sans", "sans-serif":
		return "Sans", nil
	case "mono", "monospace":
		return "Mono", nil
	}

	return "", fmt.Errorf("font family %v: %w", v, ErrStyle)
}

// validate checks a key and the kind of its value.
func validate(k string, v any) error {
	pk, err := splitKey(k)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%s: nil value: %w", k, ErrStyle)
	}
	bad := func() error { return fmt.Errorf("%s: invalid value %v: %w", k, v, ErrStyle) }

	switch pk.sel + ":" + pk.attr {
	case "line:color":
		_, err = paletteFromValue(v)
	case "line:style", "grid:linestyle":
		_, err = parseDashSpec(v)
	case "marker:type":
		_, err = parseMarker(v)
	case "figure:size":
		wh, ok := toFloats(v)
		if !ok || len(wh) != 2 || wh[0] <= 0 || wh[1] <= 0 {
			err = bad()
		}
	case "grid:dashes":
		pattern, ok := toFloats(v)
		if !ok || len(pattern)%2 != 0 {
			err = bad()
		}
	case "grid:visible", "ticks:below":
		if _, ok := toBool(v); !ok {
			err = bad()
		}
	case "ticks:direction":
		s, _ := v.(string)
		switch strings.ToLower(s) {
		case "in", "out", "inout":
		default:
			err = bad()
		}
	case "grid:alpha":
		if a, ok := toFloat(v); !ok || a < 0 || a > 1 {
			err = bad()
		}
	case "grid:linewidth", "line:width", "marker:size":
		if f, ok := toFloat(v); !ok || f < 0 {
			err = bad()
		}
	default:
		switch pk.attr {
		case "fontsize":
			_, err = parseFontSize(v)
		case "fontfamily":
			_, err = parseFontFamily(v)
		default: // colours
			_, err = ParseColor(v)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", k, err)
	}

	return nil
}
