// SPDX-License-Identifier: MIT

package plots

import (
	"fmt"
	"image"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lisa/animation"
	"github.com/katalvlaran/lisa/data"
	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/matrix"
	"github.com/katalvlaran/lisa/style"
)

// lineKind describes a time series plot.
type lineKind struct {
	yunit, ylabel string
}

var lineKinds = map[inovesa.Group]lineKind{
	inovesa.EnergySpread:    {"ev", "Energy Spread"},
	inovesa.BunchLength:     {"m", "Bunch Length"},
	inovesa.CSRIntensity:    {"w", "CSR Intensity"},
	inovesa.BunchPosition:   {"m", "Bunch Position"},
	inovesa.BunchPopulation: {"c", "Bunch Population"},
}

// meshKind describes a quantity plotted over time and one more axis.
type meshKind struct {
	axis          inovesa.Axis
	xunit, xlabel string
	zunit, zlabel string
}

var meshKinds = map[inovesa.Group]meshKind{
	inovesa.BunchProfile:  {inovesa.Space, "s", "Position", "c/s", "Ch. Dens."},
	inovesa.WakePotential: {inovesa.Space, "s", "x", "volt", "Wake Potential"},
	inovesa.CSRSpectrum:   {inovesa.Frequency, "hz", "Frequency", "wphz", "Power"},
	inovesa.EnergyProfile: {inovesa.Energy, "ev", "Energy Deviation", "cpnes", "Population"},
}

// PossiblePlots lists the kinds Plot accepts.
func PossiblePlots() []inovesa.Group {
	return []inovesa.Group{
		inovesa.EnergySpread, inovesa.BunchLength, inovesa.CSRIntensity,
		inovesa.BunchPosition, inovesa.BunchPopulation, inovesa.BunchProfile,
		inovesa.WakePotential, inovesa.CSRSpectrum, inovesa.EnergyProfile,
		inovesa.Impedance,
	}
}

// SimplePlotter draws the quantities of one file.
type SimplePlotter struct {
	d         *data.Data
	current   float64
	connector string
	style     *style.Style
	log       logging.Logger
}

// NewSimplePlotter wraps an open file. A missing bunch current is logged and
// reported as NaN by Current.
func NewSimplePlotter(f *file.File, opts ...Option) *SimplePlotter {
	o := gatherOptions(f.Logger(), opts...)
	d := data.New(f, data.WithLogger(o.log))
	cur, err := d.Parameter(inovesa.ParamBunchCurrent)
	if err != nil {
		o.log.Warn("bunch current not available", "file", f.Name(), "err", err)
		cur = math.NaN()
	}

	return &SimplePlotter{d: d, current: cur, connector: o.connector, style: o.style, log: o.log}
}

// OpenSimplePlotter opens path and wraps it.
func OpenSimplePlotter(path string, opts ...Option) (*SimplePlotter, error) {
	o := gatherOptions(nil, opts...)
	f, err := file.Open(path, file.WithLogger(o.log))
	if err != nil {
		return nil, err
	}

	return NewSimplePlotter(f, opts...), nil
}

func (sp *SimplePlotter) Data() *data.Data { return sp.d }
func (sp *SimplePlotter) File() *file.File { return sp.d.File() }
func (sp *SimplePlotter) Current() float64 { return sp.current }
func (sp *SimplePlotter) Close() error     { return sp.d.Close() }

func (sp *SimplePlotter) EnergySpread(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.EnergySpread, opts...)
}

func (sp *SimplePlotter) BunchLength(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.BunchLength, opts...)
}

func (sp *SimplePlotter) CSRIntensity(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.CSRIntensity, opts...)
}

func (sp *SimplePlotter) BunchPosition(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.BunchPosition, opts...)
}

func (sp *SimplePlotter) BunchPopulation(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.BunchPopulation, opts...)
}

func (sp *SimplePlotter) BunchProfile(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.BunchProfile, opts...)
}

func (sp *SimplePlotter) WakePotential(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.WakePotential, opts...)
}

func (sp *SimplePlotter) CSRSpectrum(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.CSRSpectrum, opts...)
}

func (sp *SimplePlotter) EnergyProfile(opts ...PlotOption) (*Figure, error) {
	return sp.Plot(inovesa.EnergyProfile, opts...)
}

// Plot draws kind, one of PossiblePlots.
//
// Errors:
//   - ErrKind for any other group.
//   - ErrIndexRange for an IndexRange without exactly two values.
//   - inovesa.ErrDataNotInFile, inovesa.ErrUnit from reading the data.
func (sp *SimplePlotter) Plot(kind inovesa.Group, opts ...PlotOption) (*Figure, error) {
	o := gatherPlotOptions(opts...)
	if _, ok := lineKinds[kind]; ok {
		return sp.linePlot(kind, o)
	}
	if _, ok := meshKinds[kind]; ok {
		return sp.meshPlot(kind, o)
	}
	if kind == inovesa.Impedance {
		return sp.impedance(o)
	}

	return nil, fmt.Errorf("%q: %w", kind, ErrKind)
}

// Label formats an axis label: "<label> <connector> <prefix><unit>".
func (sp *SimplePlotter) Label(label string, p Prefix, unit string) string {
	return label + " " + sp.connector + " " + p.Symbol + inovesa.UnitLabel(unit)
}

// axis reads g/a in unit and returns it scaled by its metric prefix.
func (sp *SimplePlotter) axis(g inovesa.Group, a inovesa.Axis, unit, label string) ([]float64, string, Prefix, error) {
	arr, err := sp.d.Get(g, a, unit)
	if err != nil {
		return nil, "", Prefix{}, err
	}
	vals := arr.Values()
	p := MetricPrefix(vals...)

	return p.Scale(vals), sp.Label(label, p, unit), p, nil
}

func (sp *SimplePlotter) zunit(kind inovesa.Group, o plotOptions) string {
	if o.zunit != "" {
		return o.zunit
	}
	if kind == inovesa.EnergyProfile && sp.d.Version().Less(inovesa.V15_1) {
		return "c"
	}

	return meshKinds[kind].zunit
}

func (sp *SimplePlotter) newFigure(o plotOptions) *Figure {
	fig := o.fig
	if fig == nil {
		fig = NewFigure()
	}
	if fig.Style == nil {
		fig.Style = sp.style
	}

	return fig
}

func (sp *SimplePlotter) linePlot(kind inovesa.Group, o plotOptions) (*Figure, error) {
	k := lineKinds[kind]
	x, xlabel, _, err := sp.axis(kind, inovesa.Time, or(o.xunit, "ts"), "T")
	if err != nil {
		return nil, err
	}
	y, ylabel, _, err := sp.axis(kind, inovesa.Data, or(o.yunit, k.yunit), k.ylabel)
	if err != nil {
		return nil, err
	}

	return sp.draw(x, y, xlabel, ylabel, o)
}

// draw adds one series to the options' figure, applying the FFT, abs,
// index range and scale options.
func (sp *SimplePlotter) draw(x, y []float64, xlabel, ylabel string, o plotOptions) (*Figure, error) {
	if o.hasRange && len(o.idxRange) != 2 {
		return nil, fmt.Errorf("IndexRange(%v): %w", o.idxRange, ErrIndexRange)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d x and %d y values: %w", len(x), len(y), ErrShape)
	}
	y = append([]float64(nil), y...)
	if o.fft != FFTNone {
		xlabel = "Frequency like (1/(" + xlabel + "))"
		ylabel = "FFT(" + ylabel + ")"
		freq, coeff, err := spectrum(x, y, o.fft, o.fftPad)
		if err != nil {
			return nil, err
		}
		x, y = freq, make([]float64, len(coeff))
		for i, c := range coeff {
			if o.abs {
				y[i] = cmplx.Abs(c)
			} else {
				y[i] = real(c)
			}
		}
	} else if o.abs {
		for i, v := range y {
			y[i] = math.Abs(v)
		}
	}

	fig := sp.newFigure(o)
	alpha := 1.0
	if fig.plots > 0 {
		alpha = 0.8
	}
	if o.hasAlpha {
		alpha = o.alpha
	}
	fig.plots++

	if o.hasRange {
		v := matrix.NewVector(y).Slice(o.idxRange[0], o.idxRange[1])
		u := matrix.NewVector(x).Slice(o.idxRange[0], o.idxRange[1])
		x, y = u.Values(), v.Values()
	}
	if o.scale != 1 {
		floats.Scale(o.scale, y)
	}

	p := fig.Main()
	p.XLog = p.XLog || o.xlog
	p.YLog = p.YLog || o.ylog
	p.AddLine(Line{X: x, Y: y, Label: o.label, Alpha: alpha})
	p.XLabel = stackLabel(p.XLabel, xlabel)
	p.YLabel = stackLabel(p.YLabel, ylabel)

	return fig, nil
}

// stackLabel adds next below cur when the two differ.
func stackLabel(cur, next string) string {
	if cur == "" || cur == next || next == "" {
		return or(next, cur)
	}
	for _, l := range strings.Split(cur, "\n") {
		if l == next {
			return cur
		}
	}

	return cur + "\n" + next
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// periodIndex resolves the Period option against the scaled time axis y.
// Periods are in the axis unit; a negative one counts back from the last
// time, so -p selects max(y)*yp.Factor - p.
func (sp *SimplePlotter) periodIndex(y []float64, yp Prefix, o plotOptions) (int, error) {
	if o.useIndex {
		i := int(o.period)
		if i < 0 {
			i += len(y)
		}
		if i < 0 || i >= len(y) {
			return 0, fmt.Errorf("period index %d of %d: %w", int(o.period), len(y), matrix.ErrOutOfRange)
		}
		return i, nil
	}
	if len(y) == 0 {
		return 0, fmt.Errorf("empty time axis: %w", inovesa.ErrDataNotInFile)
	}
	period := o.period
	if period < 0 {
		period = floats.Max(y)*yp.Factor + period
	}
	target := period / yp.Factor
	idx := 0
	for i, v := range y {
		if math.Abs(v-target) < math.Abs(y[idx]-target) {
			idx = i
		}
	}
	if y[idx] != target {
		sp.log.Info("interpolating for usable period (using nearest)", "requested", target, "used", y[idx])
	}

	return idx, nil
}

func (sp *SimplePlotter) meshPlot(kind inovesa.Group, o plotOptions) (*Figure, error) {
	k := meshKinds[kind]
	zunit := sp.zunit(kind, o)
	_ = sp.d.File().Preload(kind)

	x, xlabel, _, err := sp.axis(kind, k.axis, or(o.xunit, k.xunit), k.xlabel)
	if err != nil {
		return nil, err
	}
	y, ylabel, yp, err := sp.axis(kind, inovesa.Time, or(o.yunit, "ts"), "T")
	if err != nil {
		return nil, err
	}

	if o.hasPeriod {
		idx, err := sp.periodIndex(y, yp, o)
		if err != nil {
			return nil, err
		}
		z0, err := sp.d.Get(kind, inovesa.Data, zunit, data.WithIndex(0))
		if err != nil {
			return nil, err
		}
		zp := MetricPrefix(z0.Values()...)
		zi, err := sp.d.Get(kind, inovesa.Data, zunit, data.WithIndex(idx))
		if err != nil {
			return nil, err
		}
		return sp.draw(x, zp.Scale(zi.Values()), xlabel, sp.Label(k.zlabel, zp, zunit), o)
	}

	z, err := sp.d.Get(kind, inovesa.Data, zunit)
	if err != nil {
		return nil, err
	}
	if o.padZero {
		z = z.ReplaceBelow(0, 1e-100)
	}
	zp := MetricPrefix(z.Values()...)
	z = z.Scale(1 / zp.Factor)
	zlabel := sp.Label(k.zlabel, zp, zunit)

	if o.hasMean {
		m, err := z.MeanAxis0(o.meanRange[0], o.meanRange[1])
		if err != nil {
			return nil, err
		}
		zlabel += fmt.Sprintf(" (mean over range (%d, %d))", o.meanRange[0], o.meanRange[1])
		return sp.draw(x, m.Values(), xlabel, zlabel, o)
	}

	zd, err := z.Dense()
	if err != nil {
		return nil, err
	}
	mx, my := x, y
	if o.transpose {
		if zd, err = matrix.Transpose(zd); err != nil {
			return nil, err
		}
		mx, my = y, x
		xlabel, ylabel = ylabel, xlabel
	}
	norm := o.norm
	if norm != NormLinear && norm != NormLog {
		sp.log.Info("unknown norm, using linear", "norm", norm)
		norm = NormLinear
	}

	fig := sp.newFigure(o)
	fig.plots++
	p := fig.Main()
	p.Mesh = &Mesh{
		X:        mx,
		Y:        my,
		Z:        zd,
		ColorMap: or(o.colormap, DefaultColorMap),
		CLim:     o.clim,
		Log:      norm == NormLog,
		BadToMin: o.badToMin,
		Label:    zlabel,
	}
	p.XLabel, p.YLabel = xlabel, ylabel

	return fig, nil
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Impedance plots the real and imaginary impedance over frequency.
func (sp *SimplePlotter) Impedance(opts ...PlotOption) (*Figure, error) {
	return sp.impedance(gatherPlotOptions(opts...))
}

func (sp *SimplePlotter) impedance(o plotOptions) (*Figure, error) {
	f4h, _, err := sp.d.UnitFactor(inovesa.Impedance, inovesa.Frequency, "hz")
	if err != nil {
		return nil, err
	}
	if f4h == 0 {
		sp.log.Warn("frequency conversion factor is 0, the x axis unit may not be correct")
		f4h = 1
	}
	f4o, _, err := sp.d.UnitFactor(inovesa.Impedance, inovesa.Real, "ohm")
	if err != nil {
		return nil, err
	}
	raw := func(a inovesa.Axis, f float64) ([]float64, error) {
		arr, err := sp.d.Get(inovesa.Impedance, a, "raw")
		if err != nil {
			return nil, err
		}
		return arr.Scale(f).Values(), nil
	}
	freq, err := raw(inovesa.Frequency, f4h)
	if err != nil {
		return nil, err
	}
	re, err := raw(inovesa.Real, f4o)
	if err != nil {
		return nil, err
	}
	im, err := raw(inovesa.Imag, f4o)
	if err != nil {
		return nil, err
	}

	xp := MetricPrefix(freq...)
	var yp Prefix
	switch {
	case allZero(re):
		yp = MetricPrefix(im...)
	case allZero(im):
		yp = MetricPrefix(re...)
	default:
		yp = MetricPrefix(math.Min(floats.Min(re), floats.Min(im)), math.Max(floats.Max(re), floats.Max(im)))
	}
	xlabel := "Frequency " + sp.connector + " " + xp.Symbol + "Hz"
	ylabel := "Impedance " + sp.connector + " " + yp.Symbol + "Ω"
	prefix := ""
	if o.hasLabel && o.label != "" {
		prefix = o.label + " "
	}

	ro := o
	ro.label, ro.hasLabel = prefix+"Real", true
	fig, err := sp.draw(xp.Scale(freq), yp.Scale(re), xlabel, ylabel, ro)
	if err != nil {
		return nil, err
	}
	imo := o
	imo.fig = fig
	imo.label, imo.hasLabel = prefix+"Imag", true

	return sp.draw(xp.Scale(freq), yp.Scale(im), xlabel, ylabel, imo)
}

// VideoOptions configure Video.
type VideoOptions struct {
	// HowMuch keeps only the last HowMuch frames; 0 keeps all.
	HowMuch int

	// Nice uses the inverse_ggplot-dotted style.
	Nice          bool
	FPS           float64
	DPI           int
	Width, Height vg.Length
}

// DefaultVideoOptions returns 20 fps, 200 dpi and a 6.5 x 6.5 inch frame.
func DefaultVideoOptions() VideoOptions {
	return VideoOptions{FPS: 20, DPI: 200, Width: 6.5 * vg.Inch, Height: 6.5 * vg.Inch}
}

// Video animates a mesh kind as one line plot per time step. The y range is
// fixed over all frames only when ZUnit is given.
func (sp *SimplePlotter) Video(kind inovesa.Group, vo VideoOptions, opts ...PlotOption) (*animation.Animation, error) {
	if _, ok := meshKinds[kind]; !ok {
		return nil, fmt.Errorf("video of %q: %w", kind, ErrKind)
	}
	o := gatherPlotOptions(opts...)
	_ = sp.d.File().Preload(kind)
	t, err := sp.d.Get(kind, inovesa.Time, "raw")
	if err != nil {
		return nil, err
	}
	times := t.Values()

	var ylim Limits
	if o.zunit != "" {
		z, err := sp.d.Get(kind, inovesa.Data, o.zunit)
		if err != nil {
			return nil, err
		}
		lo, hi, err := z.MinMax()
		if err != nil {
			return nil, err
		}
		p := MetricPrefix(lo, hi)
		lo, hi = lo/p.Factor, hi/p.Factor
		ylim = Lim(lo-hi*0.01, hi*1.05)
	} else {
		sp.log.Info("cannot fix the y range without an explicit z unit")
	}
	st := sp.style
	if vo.Nice {
		if st, err = style.Named("inverse_ggplot-dotted"); err != nil {
			return nil, err
		}
	}

	draw := func(i, dpi int) (image.Image, error) {
		fig := NewFigure()
		fig.Style = st
		fig.DPI = dpi
		if vo.Width > 0 && vo.Height > 0 {
			fig.SetSize(vo.Width, vo.Height)
		}
		fo := o
		fo.fig = fig
		fo.period, fo.hasPeriod, fo.useIndex = float64(i), true, true
		fo.label, fo.hasLabel = "SyncPeriod: "+padRight(pyFloat(times[i]), 4, '0'), true
		if _, err := sp.meshPlot(kind, fo); err != nil {
			return nil, err
		}
		fig.Main().YLim = ylim
		return fig.Render()
	}

	return &animation.Animation{
		Frames:      animation.Last(len(times), vo.HowMuch),
		Draw:        draw,
		FPS:         vo.FPS,
		DPI:         vo.DPI,
		Description: string(kind),
		Log:         sp.log,
	}, nil
}

// pyFloat formats v the way python's str does for floats.
func pyFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func padRight(s string, width int, c byte) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(string(c), width-len(s))
}
