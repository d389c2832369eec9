// SPDX-License-Identifier: MIT

package plots

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/katalvlaran/lisa/matrix"
	"github.com/katalvlaran/lisa/style"
)

const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
	DefaultDPI    = 100
)

// Limits is an explicit axis or colour range. The zero value means automatic.
type Limits struct {
	Min, Max float64
	Set      bool
}

// Lim returns the range [lo, hi].
func Lim(lo, hi float64) Limits { return Limits{Min: lo, Max: hi, Set: true} }

// Line is one series. A zero Alpha draws opaque; a nil Color takes the next
// colour of the style's line palette.
type Line struct {
	X, Y  []float64
	Label string
	Alpha float64
	Color color.Color
	Width vg.Length
}

// Mesh is a heat map of Z over cell centres X and Y; Z has len(Y) rows and
// len(X) columns.
type Mesh struct {
	X, Y     []float64
	Z        *matrix.Dense
	ColorMap string
	CLim     Limits
	Log      bool
	BadToMin bool
	Label    string
}

// Text is placed at a fraction of the panel's data area.
type Text struct {
	X, Y float64
	Text string
}

// Panel is one set of axes of a figure.
type Panel struct {
	Row, Col       int
	Title          string
	XLabel, YLabel string
	XLog, YLog     bool
	XLim, YLim     Limits
	Legend         bool
	Lines          []Line
	Mesh           *Mesh
	Texts          []Text
}

// AddLine appends a series and turns the legend on when it is labelled.
func (p *Panel) AddLine(l Line) {
	p.Lines = append(p.Lines, l)
	if l.Label != "" {
		p.Legend = true
	}
}

// Figure is a grid of panels.
type Figure struct {
	// Width and Height override the style's figure size when set.
	Width, Height vg.Length
	DPI           int
	Style         *style.Style

	rows, cols   int
	heightRatios []float64
	widthRatios  []float64
	panels       []*Panel
	plots        int
}

// NewFigure returns a figure with a single panel slot.
func NewFigure() *Figure {
	f, _ := NewGridFigure(1, 1, nil, nil)
	return f
}

// NewGridFigure returns a rows x cols figure. Nil ratios give equal rows or
// columns.
func NewGridFigure(rows, cols int, heightRatios, widthRatios []float64) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("NewGridFigure(%d, %d): %w", rows, cols, ErrPanel)
	}
	hr, err := ratios(heightRatios, rows)
	if err != nil {
		return nil, err
	}
	wr, err := ratios(widthRatios, cols)
	if err != nil {
		return nil, err
	}

	return &Figure{rows: rows, cols: cols, heightRatios: hr, widthRatios: wr}, nil
}

func ratios(r []float64, n int) ([]float64, error) {
	if r == nil {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}
	if len(r) != n {
		return nil, fmt.Errorf("%d ratios for %d cells: %w", len(r), n, ErrShape)
	}
	for _, v := range r {
		if !(v > 0) {
			return nil, fmt.Errorf("ratio %v: %w", v, ErrShape)
		}
	}

	return append([]float64(nil), r...), nil
}

// Grid returns the number of rows and columns.
func (f *Figure) Grid() (rows, cols int) { return f.rows, f.cols }

// Panel returns the panel at (row, col), creating it on first use.
func (f *Figure) Panel(row, col int) (*Panel, error) {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return nil, fmt.Errorf("Panel(%d, %d) in %dx%d: %w", row, col, f.rows, f.cols, ErrPanel)
	}
	for _, p := range f.panels {
		if p.Row == row && p.Col == col {
			return p, nil
		}
	}
	p := &Panel{Row: row, Col: col}
	f.panels = append(f.panels, p)

	return p, nil
}

// Main returns the top left panel.
func (f *Figure) Main() *Panel {
	p, _ := f.Panel(0, 0)
	return p
}

// Panels returns the panels in creation order.
func (f *Figure) Panels() []*Panel { return append([]*Panel(nil), f.panels...) }

// NumPlots counts the plot calls that drew on this figure.
func (f *Figure) NumPlots() int { return f.plots }

// SetSize fixes the figure size.
func (f *Figure) SetSize(w, h vg.Length) { f.Width, f.Height = w, h }

// Size returns the size the figure renders at.
func (f *Figure) Size() (w, h vg.Length) {
	if f.Width > 0 && f.Height > 0 {
		return f.Width, f.Height
	}
	if f.Style != nil {
		if w, h, ok := f.Style.FigureSize(); ok {
			return w, h
		}
	}

	return DefaultWidth, DefaultHeight
}

func (f *Figure) dpi() int {
	if f.DPI > 0 {
		return f.DPI
	}
	return DefaultDPI
}

func (f *Figure) style() *style.Style {
	if f.Style != nil {
		return f.Style
	}
	st, _ := style.New(nil)

	return st
}

// Draw draws every panel on c.
func (f *Figure) Draw(c draw.Canvas) error {
	st := f.style()
	c.SetColor(color.White)
	c.Fill(c.Rectangle.Path())

	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	colX := edges(f.widthRatios, w)
	rowY := edges(f.heightRatios, h)
	for _, p := range f.panels {
		cell := vg.Rectangle{
			Min: vg.Point{X: c.Min.X + colX[p.Col], Y: c.Max.Y - rowY[p.Row+1]},
			Max: vg.Point{X: c.Min.X + colX[p.Col+1], Y: c.Max.Y - rowY[p.Row]},
		}
		main, bar, err := p.build(st)
		if err != nil {
			return fmt.Errorf("panel (%d, %d): %w", p.Row, p.Col, err)
		}
		if bar != nil {
			cw := min((cell.Max.X-cell.Min.X)*0.2, 1.2*vg.Inch)
			barCell := cell
			barCell.Min.X = cell.Max.X - cw
			cell.Max.X = barCell.Min.X
			bar.Draw(draw.Canvas{Canvas: c.Canvas, Rectangle: barCell})
		}
		main.Draw(draw.Canvas{Canvas: c.Canvas, Rectangle: cell})
	}

	return nil
}

// edges returns the cumulative offsets of cells sized by ratio within total.
func edges(ratio []float64, total vg.Length) []vg.Length {
	var sum float64
	for _, r := range ratio {
		sum += r
	}
	out := make([]vg.Length, len(ratio)+1)
	for i, r := range ratio {
		out[i+1] = out[i] + total*vg.Length(r/sum)
	}

	return out
}

// Render draws the figure into an image at the figure's DPI.
func (f *Figure) Render() (image.Image, error) {
	w, h := f.Size()
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(f.dpi()))
	if err := f.Draw(draw.New(c)); err != nil {
		return nil, err
	}

	return c.Image(), nil
}

func (f *Figure) canvas(format string) (vg.CanvasWriterTo, error) {
	w, h := f.Size()
	img := func() *vgimg.Canvas { return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(f.dpi())) }
	switch strings.ToLower(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: img()}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: img()}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: img()}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	case "eps":
		return vgeps.New(w, h), nil
	}

	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// Encode writes the figure to w in the given format (png, jpg, tiff, svg,
// pdf, eps).
func (f *Figure) Encode(w io.Writer, format string) error {
	c, err := f.canvas(format)
	if err != nil {
		return err
	}
	if err := f.Draw(draw.New(c)); err != nil {
		return err
	}
	_, err = c.WriteTo(w)

	return err
}

// Save writes the figure to path; the extension selects the format.
func (f *Figure) Save(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if _, err := f.canvas(format); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Encode(out, format); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// build turns the panel into a gonum plot and, for meshes, a colour bar plot.
func (p *Panel) build(st *style.Style) (*plot.Plot, *plot.Plot, error) {
	pl := plot.New()
	st.Apply(pl)
	pl.Title.Text = p.Title
	pl.X.Label.Text, pl.Y.Label.Text = p.XLabel, p.YLabel

	var bar *plot.Plot
	if p.Mesh != nil {
		hm, cb, err := p.Mesh.plotters()
		if err != nil {
			return nil, nil, err
		}
		pl.Add(hm)
		bar = plot.New()
		st.Apply(bar)
		bar.Add(cb)
		bar.HideX()
		bar.Y.Label.Text = p.Mesh.Label
		if p.Mesh.Log {
			bar.Y.Label.Text += " (log10)"
		}
	}

	cycle := 0
	for _, l := range p.Lines {
		xys, err := p.points(l)
		if err != nil {
			return nil, nil, err
		}
		if len(xys) == 0 {
			continue
		}
		ser := st.LineStyle(cycle)
		if l.Color == nil {
			cycle++
		} else {
			ser.Line.Color, ser.Glyph.Color = l.Color, l.Color
		}
		if l.Width > 0 {
			ser.Line.Width = l.Width
		}
		if l.Alpha > 0 && l.Alpha < 1 {
			ser.Line.Color = style.WithAlpha(ser.Line.Color, l.Alpha)
			ser.Glyph.Color = style.WithAlpha(ser.Glyph.Color, l.Alpha)
		}
		var thumbs []plot.Thumbnailer
		if ser.ShowLine {
			ln, err := plotter.NewLine(xys)
			if err != nil {
				return nil, nil, err
			}
			ln.LineStyle = ser.Line
			pl.Add(ln)
			thumbs = append(thumbs, ln)
		}
		if ser.ShowGlyph {
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, nil, err
			}
			sc.GlyphStyle = ser.Glyph
			pl.Add(sc)
			thumbs = append(thumbs, sc)
		}
		if p.Legend && l.Label != "" {
			pl.Legend.Add(l.Label, thumbs...)
		}
	}
	for _, t := range p.Texts {
		pl.Add(textAt{Text: t, style: pl.X.Tick.Label})
	}
	st.Overlay(pl)

	if p.XLim.Set {
		pl.X.Min, pl.X.Max = p.XLim.Min, p.XLim.Max
	}
	if p.YLim.Set {
		pl.Y.Min, pl.Y.Max = p.YLim.Min, p.YLim.Max
	}
	if p.XLog && positiveRange(pl.X.Min, pl.X.Max) {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{}
	}
	if p.YLog && positiveRange(pl.Y.Min, pl.Y.Max) {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{}
	}

	return pl, bar, nil
}

// points pairs X and Y, dropping non-finite values and values a log axis
// cannot show.
func (p *Panel) points(l Line) (plotter.XYs, error) {
	if len(l.X) != len(l.Y) {
		return nil, fmt.Errorf("line %q: %d x and %d y values: %w", l.Label, len(l.X), len(l.Y), ErrShape)
	}
	out := make(plotter.XYs, 0, len(l.X))
	for i, x := range l.X {
		y := l.Y[i]
		if !finite(x) || !finite(y) || (p.XLog && x <= 0) || (p.YLog && y <= 0) {
			continue
		}
		out = append(out, plotter.XY{X: x, Y: y})
	}

	return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positiveRange(lo, hi float64) bool {
	return finite(lo) && finite(hi) && lo > 0 && hi >= lo
}

// textAt draws a Text relative to the data area.
type textAt struct {
	Text
	style text.Style
}

func (t textAt) Plot(c draw.Canvas, _ *plot.Plot) {
	pt := vg.Point{
		X: c.Min.X + vg.Length(t.X)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(t.Y)*(c.Max.Y-c.Min.Y),
	}
	sty := t.style
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop
	c.FillText(sty, pt, t.Text.Text)
}

// meshGrid adapts a Mesh to plotter.GridXYZ.
type meshGrid struct {
	x, y []float64
	z    []float64
}

func (g meshGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g meshGrid) Z(c, r int) float64 { return g.z[r*len(g.x)+c] }
func (g meshGrid) X(c int) float64    { return g.x[c] }
func (g meshGrid) Y(r int) float64    { return g.y[r] }

// plotters returns the heat map and its colour bar.
func (m *Mesh) plotters() (*plotter.HeatMap, *plotter.ColorBar, error) {
	if m.Z == nil || m.Z.Rows() != len(m.Y) || m.Z.Cols() != len(m.X) || len(m.X) == 0 || len(m.Y) == 0 {
		return nil, nil, fmt.Errorf("mesh %q: %w", m.Label, ErrShape)
	}
	name := m.ColorMap
	if name == "" {
		name = DefaultColorMap
	}
	cm, err := ColorMap(name)
	if err != nil {
		return nil, nil, err
	}

	z := m.Z.Values()
	if m.Log {
		for i, v := range z {
			if v > 0 {
				z[i] = math.Log10(v)
			} else {
				z[i] = math.NaN()
			}
		}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range z {
		if finite(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if m.CLim.Set {
		cl, ch := m.CLim.Min, m.CLim.Max
		if m.Log {
			cl, ch = math.Log10(cl), math.Log10(ch)
		}
		if finite(cl) {
			lo = cl
		}
		if finite(ch) {
			hi = ch
		}
	}
	if !finite(lo) || !finite(hi) {
		lo, hi = 0, 1
	}
	if hi <= lo {
		hi = lo + 1
	}

	pal := sample(cm, 255)
	hm := plotter.NewHeatMap(meshGrid{x: m.X, y: m.Y, z: z}, pal)
	hm.Min, hm.Max = lo, hi
	cs := pal.Colors()
	hm.Underflow, hm.Overflow = cs[0], cs[len(cs)-1]
	if m.BadToMin {
		hm.NaN = cs[0]
	}
	cm.SetMax(hi)
	cm.SetMin(lo)

	return hm, &plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: 255}, nil
}
