// SPDX-License-Identifier: MIT

package animation

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/katalvlaran/lisa/style"
)

// DataOption configures DataFrames.
type DataOption func(*dataOptions)

type dataOptions struct {
	clear          bool
	width, height  vg.Length
	style          *style.Style
	xlabel, ylabel string
}

// ClearBetween draws only the current frame's line, with limits fitted to
// that frame. Without it lines accumulate under limits fitted to all data.
func ClearBetween(clear bool) DataOption {
	return func(o *dataOptions) { o.clear = clear }
}

// WithSize sets the frame size.
func WithSize(w, h vg.Length) DataOption {
	return func(o *dataOptions) { o.width, o.height = w, h }
}

// WithStyle styles every frame.
func WithStyle(s *style.Style) DataOption {
	return func(o *dataOptions) { o.style = s }
}

// WithLabels sets the axis labels.
func WithLabels(x, y string) DataOption {
	return func(o *dataOptions) { o.xlabel, o.ylabel = x, y }
}

// DataFrames returns a FrameFunc plotting ys[i] over xs[i]. xs holds either a
// single shared x axis or one per frame.
//
// Errors:
//   - ErrNoFrames when ys is empty.
//   - ErrShape for an xs count other than 1 or len(ys), or an x/y length
//     mismatch.
func DataFrames(xs, ys [][]float64, opts ...DataOption) (FrameFunc, error) {
	o := dataOptions{clear: true, width: 6.4 * vg.Inch, height: 4.8 * vg.Inch}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if len(ys) == 0 {
		return nil, ErrNoFrames
	}
	if len(xs) != 1 && len(xs) != len(ys) {
		return nil, fmt.Errorf("DataFrames: %d x axes for %d frames: %w", len(xs), len(ys), ErrShape)
	}
	xAt := func(i int) []float64 {
		if len(xs) == 1 {
			return xs[0]
		}
		return xs[i]
	}
	for i, y := range ys {
		if len(xAt(i)) != len(y) || len(y) == 0 {
			return nil, fmt.Errorf("DataFrames: frame %d has %d x and %d y values: %w", i, len(xAt(i)), len(y), ErrShape)
		}
	}
	var gx, gy [2]float64
	if !o.clear {
		gx = [2]float64{floats.Min(xAt(0)), floats.Max(xAt(0))}
		gy = [2]float64{floats.Min(ys[0]), floats.Max(ys[0])}
		for i := range ys {
			gx = [2]float64{min(gx[0], floats.Min(xAt(i))), max(gx[1], floats.Max(xAt(i)))}
			gy = [2]float64{min(gy[0], floats.Min(ys[i])), max(gy[1], floats.Max(ys[i]))}
		}
	}

	return func(i, dpi int) (image.Image, error) {
		if i < 0 || i >= len(ys) {
			return nil, fmt.Errorf("DataFrames: frame %d of %d: %w", i, len(ys), ErrNoFrames)
		}
		p := plot.New()
		st := o.style
		if st == nil {
			st, _ = style.New(nil)
		}
		st.Apply(p)
		p.X.Label.Text, p.Y.Label.Text = o.xlabel, o.ylabel
		first := 0
		if o.clear {
			first = i
		}
		for k := first; k <= i; k++ {
			xys := make(plotter.XYs, len(ys[k]))
			for j := range xys {
				xys[j].X, xys[j].Y = xAt(k)[j], ys[k][j]
			}
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("DataFrames: frame %d: %w", k, err)
			}
			l.LineStyle = st.LineStyle(k).Line
			p.Add(l)
		}
		st.Overlay(p)
		lx, ly := gx, gy
		if o.clear {
			lx = [2]float64{floats.Min(xAt(i)), floats.Max(xAt(i))}
			ly = [2]float64{floats.Min(ys[i]), floats.Max(ys[i])}
		}
		p.X.Min, p.X.Max = widen(lx)
		p.Y.Min, p.Y.Max = widen(ly)

		c := vgimg.NewWith(vgimg.UseWH(o.width, o.height), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))

		return c.Image(), nil
	}, nil
}

// widen keeps a degenerate range drawable.
func widen(r [2]float64) (lo, hi float64) {
	if r[1] > r[0] {
		return r[0], r[1]
	}

	return r[0] - 0.5, r[1] + 0.5
}
