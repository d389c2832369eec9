// SPDX-License-Identifier: MIT

package plots

import (
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/style"
)

// Option configures a plotter.
type Option func(*options)

type options struct {
	log       logging.Logger
	connector string
	style     *style.Style
}

// WithLogger routes warnings and debug output to l.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithUnitConnector sets the word between quantity and unit in axis labels
// ("Bunch Length in ps"). Default "in".
func WithUnitConnector(s string) Option {
	return func(o *options) { o.connector = s }
}

// WithStyle applies s to every figure the plotter creates.
func WithStyle(s *style.Style) Option {
	return func(o *options) { o.style = s }
}

func gatherOptions(fallback logging.Logger, opts ...Option) options {
	o := options{connector: "in", log: fallback}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.log = logging.OrNoOp(o.log)

	return o
}

// FFTMode selects the transform applied by the FFT option.
type FFTMode int

const (
	FFTNone FFTMode = iota
	// FFTComplex is the full transform; frequencies run from -1/(2dx) up.
	FFTComplex
	// FFTReal keeps the non-negative frequencies of a real transform.
	FFTReal
)

// Norm values accepted by the Norm option.
const (
	NormLinear = "linear"
	NormLog    = "log"
)

// PlotOption configures one plot call.
type PlotOption func(*plotOptions)

type plotOptions struct {
	fig      *Figure
	label    string
	hasLabel bool
	scale    float64
	fft      FFTMode
	fftPad   int
	abs      bool
	xlog     bool
	ylog     bool
	idxRange []int
	hasRange bool
	alpha    float64
	hasAlpha bool

	xunit, yunit, zunit string

	period    float64
	hasPeriod bool
	useIndex  bool
	meanRange [2]int
	hasMean   bool
	transpose bool
	norm      string
	colormap  string
	clim      Limits
	badToMin  bool
	padZero   bool
}

func gatherPlotOptions(opts ...PlotOption) plotOptions {
	o := plotOptions{scale: 1, norm: NormLinear}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// OnFigure draws into fig instead of a new figure.
func OnFigure(fig *Figure) PlotOption {
	return func(o *plotOptions) { o.fig = fig }
}

// WithLabel labels the series in the legend.
func WithLabel(label string) PlotOption {
	return func(o *plotOptions) { o.label, o.hasLabel = label, true }
}

// ScaleFactor multiplies the plotted y values.
func ScaleFactor(f float64) PlotOption {
	return func(o *plotOptions) { o.scale = f }
}

// FFT plots the spectrum of the data instead of the data.
func FFT(mode FFTMode) PlotOption {
	return func(o *plotOptions) { o.fft = mode }
}

// FFTPadding adds n zeros on both ends before transforming.
func FFTPadding(n int) PlotOption {
	return func(o *plotOptions) { o.fftPad = max(n, 0) }
}

// Abs plots absolute values (magnitudes for FFTs).
func Abs() PlotOption {
	return func(o *plotOptions) { o.abs = true }
}

func XLog() PlotOption { return func(o *plotOptions) { o.xlog = true } }
func YLog() PlotOption { return func(o *plotOptions) { o.ylog = true } }

// IndexRange restricts a line plot to points [lo, hi). Exactly two values
// are required; negative values count from the end.
func IndexRange(bounds ...int) PlotOption {
	return func(o *plotOptions) {
		o.idxRange, o.hasRange = append([]int(nil), bounds...), true
	}
}

// Alpha overrides the opacity of the series.
func Alpha(a float64) PlotOption {
	return func(o *plotOptions) { o.alpha, o.hasAlpha = a, true }
}

func XUnit(u string) PlotOption { return func(o *plotOptions) { o.xunit = u } }
func YUnit(u string) PlotOption { return func(o *plotOptions) { o.yunit = u } }
func ZUnit(u string) PlotOption { return func(o *plotOptions) { o.zunit = u } }

// Period turns a mesh plot into a line plot of one synchrotron period: the
// time nearest to p, counted back from the last time when negative.
func Period(p float64) PlotOption {
	return func(o *plotOptions) { o.period, o.hasPeriod = p, true }
}

// UseIndex makes Period a raw time index.
func UseIndex() PlotOption {
	return func(o *plotOptions) { o.useIndex = true }
}

// MeanRange turns a mesh plot into a line plot of the mean over time
// indices [lo, hi).
func MeanRange(lo, hi int) PlotOption {
	return func(o *plotOptions) { o.meanRange, o.hasMean = [2]int{lo, hi}, true }
}

// Transpose swaps the axes of a mesh plot.
func Transpose() PlotOption {
	return func(o *plotOptions) { o.transpose = true }
}

// Norm sets the colour normalisation of a mesh plot: NormLinear or NormLog.
func Norm(n string) PlotOption {
	return func(o *plotOptions) { o.norm = n }
}

// WithColorMap sets the colour map of a mesh plot.
func WithColorMap(name string) PlotOption {
	return func(o *plotOptions) { o.colormap = name }
}

// ColorLimits fixes the colour range of a mesh plot.
func ColorLimits(lo, hi float64) PlotOption {
	return func(o *plotOptions) { o.clim = Lim(lo, hi) }
}

// ForceBadToMin paints values the norm cannot map (non-positive values under
// NormLog) in the lowest colour instead of leaving them blank.
func ForceBadToMin() PlotOption {
	return func(o *plotOptions) { o.badToMin = true }
}

// PadZero replaces negative mesh values by 1e-100.
func PadZero() PlotOption {
	return func(o *plotOptions) { o.padZero = true }
}
