// SPDX-License-Identifier: MIT

package plots

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lisa/animation"
	"github.com/katalvlaran/lisa/data"
	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/matrix"
	"github.com/katalvlaran/lisa/style"
)

const (
	psUnit           = "cpnblpnes"
	picosecond       = 1e-12
	megaElectronVolt = 1e6
)

// PhaseSpace renders the phase space of one file.
type PhaseSpace struct {
	d     *data.Data
	log   logging.Logger
	style *style.Style

	mu    sync.Mutex
	cache map[int]*matrix.Dense
}

// NewPhaseSpace wraps an open file.
func NewPhaseSpace(f *file.File, opts ...Option) *PhaseSpace {
	o := gatherOptions(f.Logger(), opts...)
	return &PhaseSpace{
		d:     data.New(f, data.WithLogger(o.log)),
		log:   o.log,
		style: o.style,
		cache: make(map[int]*matrix.Dense),
	}
}

// OpenPhaseSpace opens path and wraps it.
func OpenPhaseSpace(path string, opts ...Option) (*PhaseSpace, error) {
	o := gatherOptions(nil, opts...)
	f, err := file.Open(path, file.WithLogger(o.log))
	if err != nil {
		return nil, err
	}

	return NewPhaseSpace(f, opts...), nil
}

func (ps *PhaseSpace) File() *file.File { return ps.d.File() }
func (ps *PhaseSpace) Close() error     { return ps.d.Close() }

// Clone returns a PhaseSpace on the same file with its own slice cache.
func (ps *PhaseSpace) Clone() *PhaseSpace {
	return &PhaseSpace{d: ps.d, log: ps.log, style: ps.style, cache: make(map[int]*matrix.Dense)}
}

// EAxis returns the energy axis in eV.
func (ps *PhaseSpace) EAxis() ([]float64, error) {
	a, err := ps.d.Get(inovesa.PhaseSpace, inovesa.Energy, "ev")
	if err != nil {
		return nil, err
	}
	return a.Values(), nil
}

// XAxis returns the space axis in seconds.
func (ps *PhaseSpace) XAxis() ([]float64, error) {
	a, err := ps.d.Get(inovesa.PhaseSpace, inovesa.Space, "s")
	if err != nil {
		return nil, err
	}
	return a.Values(), nil
}

// Len returns the number of stored phase space snapshots.
func (ps *PhaseSpace) Len() (int, error) {
	a, err := ps.d.File().Array(inovesa.PhaseSpace, inovesa.Data)
	if err != nil {
		return 0, err
	}
	return a.Len(), nil
}

// Slice returns snapshot i in C/nBL/nES with energy along the rows and
// space along the columns.
func (ps *PhaseSpace) Slice(i int) (*matrix.Dense, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if m, ok := ps.cache[i]; ok {
		return m, nil
	}
	a, err := ps.d.Get(inovesa.PhaseSpace, inovesa.Data, psUnit, data.WithIndex(i))
	if err != nil {
		return nil, err
	}
	m, err := a.Dense()
	if err != nil {
		return nil, err
	}
	if m, err = matrix.Transpose(m); err != nil {
		return nil, err
	}
	ps.cache[i] = m

	return m, nil
}

// PlotSlice draws snapshot i over position and energy. OnFigure,
// WithColorMap and ColorLimits apply.
func (ps *PhaseSpace) PlotSlice(i int, opts ...PlotOption) (*Figure, error) {
	o := gatherPlotOptions(opts...)
	z, err := ps.Slice(i)
	if err != nil {
		return nil, err
	}
	x, err := ps.XAxis()
	if err != nil {
		return nil, err
	}
	e, err := ps.EAxis()
	if err != nil {
		return nil, err
	}
	fig := o.fig
	if fig == nil {
		fig = NewFigure()
	}
	if fig.Style == nil {
		fig.Style = ps.style
	}
	fig.plots++
	p := fig.Main()
	p.Mesh = &Mesh{X: x, Y: e, Z: z, ColorMap: or(o.colormap, "inferno"), CLim: o.clim, Label: "Charge density in C/nBL/nES"}
	p.XLabel, p.YLabel = "Position in s", "Energy Deviation in eV"

	return fig, nil
}

// CenterOfMass returns the weighted mean of axis.
func CenterOfMass(axis, weights []float64) (float64, error) {
	if len(axis) == 0 || len(axis) != len(weights) {
		return 0, fmt.Errorf("CenterOfMass: %d positions, %d weights: %w", len(axis), len(weights), ErrShape)
	}

	return stat.Mean(axis, weights), nil
}

// MovieOptions configure the phase space movies.
type MovieOptions struct {
	// From and To select snapshots [From, To); To == 0 means the last one.
	// Negative values count from the end.
	From, To int

	// MeanRange selects the snapshots averaged for the window centre and the
	// microstructure reference: exactly two values. Nil uses [From, To), or
	// every snapshot but the last for microstructure movies.
	MeanRange []int

	// PlotAreaWidth crops the space axis to this many bins around the centre
	// of charge; 0 keeps the full axis.
	PlotAreaWidth int

	// CLim scales the colour limits; 0 keeps them.
	CLim float64

	// CSRIntensity and BunchProfile add side panels.
	CSRIntensity bool
	BunchProfile bool

	FPS           float64
	DPI           int
	Width, Height vg.Length
}

// Bounds are the index windows a movie draws.
type Bounds struct {
	Lower, Upper         int
	MeanLower, MeanUpper int
	MinSpace, MaxSpace   int
	MinEnergy, MaxEnergy int
}

// Bounds resolves the snapshot, mean and plot area windows of o.
func (ps *PhaseSpace) Bounds(o MovieOptions, micro bool) (Bounds, error) {
	var b Bounds
	n, err := ps.Len()
	if err != nil {
		return b, err
	}
	to := o.To
	if to == 0 {
		to = n
	}
	b.Lower, b.Upper = matrix.ClampRange(o.From, to, n)
	switch {
	case o.MeanRange != nil:
		if len(o.MeanRange) != 2 {
			return b, fmt.Errorf("mean range %v: %w", o.MeanRange, ErrIndexRange)
		}
		b.MeanLower, b.MeanUpper = matrix.ClampRange(o.MeanRange[0], o.MeanRange[1], n)
	case micro:
		b.MeanLower, b.MeanUpper = matrix.ClampRange(0, -1, n)
	default:
		b.MeanLower, b.MeanUpper = b.Lower, b.Upper
	}

	x, err := ps.XAxis()
	if err != nil {
		return b, err
	}
	e, err := ps.EAxis()
	if err != nil {
		return b, err
	}
	b.MaxSpace, b.MaxEnergy = len(x), len(e)
	if o.PlotAreaWidth <= 0 {
		return b, nil
	}

	half := float64(o.PlotAreaWidth) / 2
	centre := func(g inovesa.Group) (float64, int, error) {
		a, err := ps.d.File().Array(g, inovesa.Data)
		if err != nil {
			return 0, 0, err
		}
		m, err := a.MeanAxis0(b.MeanLower, b.MeanUpper)
		if err != nil {
			return 0, 0, err
		}
		w := m.Values()
		idx := make([]float64, len(w))
		for i := range idx {
			idx[i] = float64(i)
		}
		c, err := CenterOfMass(idx, w)
		return c, len(w), err
	}
	cs, ns, err := centre(inovesa.BunchProfile)
	if err != nil {
		return b, err
	}
	ce, ne, err := centre(inovesa.EnergyProfile)
	if err != nil {
		return b, err
	}
	b.MinSpace, b.MaxSpace = max(int(cs-half), 0), min(int(cs+half), ns)
	b.MinEnergy, b.MaxEnergy = max(int(ce-half), 0), min(int(ce+half), ne)

	return b, nil
}

// PhaseSpaceMovie renders the charge density of every selected snapshot.
func (ps *PhaseSpace) PhaseSpaceMovie(o MovieOptions) (*Movie, error) {
	b, err := ps.Bounds(o, false)
	if err != nil {
		return nil, err
	}
	raw, err := ps.d.Get(inovesa.PhaseSpace, inovesa.Data, psUnit)
	if err != nil {
		return nil, err
	}
	frames, err := raw.Crop(
		matrix.Range{Lo: b.Lower, Hi: b.Upper},
		matrix.Range{Lo: b.MinSpace, Hi: b.MaxSpace},
		matrix.Range{Lo: b.MinEnergy, Hi: b.MaxEnergy},
	)
	if err != nil {
		return nil, err
	}

	return ps.movie(frames, b, o, "inferno", false, "Charge density in C/nBL/nES")
}

// MicrostructureMovie renders the difference of every selected snapshot to
// the mean over the mean range, with symmetric colour limits.
func (ps *PhaseSpace) MicrostructureMovie(o MovieOptions) (*Movie, error) {
	b, err := ps.Bounds(o, true)
	if err != nil {
		return nil, err
	}
	raw, err := ps.d.Get(inovesa.PhaseSpace, inovesa.Data, psUnit)
	if err != nil {
		return nil, err
	}
	full, err := raw.Crop(
		matrix.Range{Lo: 0, Hi: raw.Len()},
		matrix.Range{Lo: b.MinSpace, Hi: b.MaxSpace},
		matrix.Range{Lo: b.MinEnergy, Hi: b.MaxEnergy},
	)
	if err != nil {
		return nil, err
	}
	mean, err := full.MeanAxis0(b.MeanLower, b.MeanUpper)
	if err != nil {
		return nil, err
	}
	diff, err := full.Slice(b.Lower, b.Upper).SubFrames(mean)
	if err != nil {
		return nil, err
	}

	return ps.movie(diff, b, o, "RdBu_r", true, "Difference of charge density to mean phase space in C/nBL/nES")
}

// sidePanel is a time series drawn next to the phase space.
type sidePanel struct {
	t, v   []float64
	lo, hi float64
}

func (ps *PhaseSpace) side(g inovesa.Group, unit string, t0, t1 float64) (*sidePanel, error) {
	t, err := ps.d.Get(g, inovesa.Time, "ts")
	if err != nil {
		return nil, err
	}
	v, err := ps.d.Get(g, inovesa.Data, unit)
	if err != nil {
		return nil, err
	}
	sp := &sidePanel{}
	tv, vv := t.Values(), v.Values()
	for i, ti := range tv {
		if ti >= t0 && ti <= t1 && i < len(vv) {
			sp.t, sp.v = append(sp.t, ti), append(sp.v, vv[i])
		}
	}
	if len(sp.v) == 0 {
		return nil, fmt.Errorf("%s between %v and %v Ts: %w", g, t0, t1, inovesa.ErrDataNotInFile)
	}
	sp.lo, sp.hi = margin(floats.Min(sp.v), floats.Max(sp.v))

	return sp, nil
}

// margin widens [lo, hi] by 5% on both sides.
func margin(lo, hi float64) (float64, float64) {
	d := hi - lo
	return lo - 0.05*d, hi + 0.05*d
}

// nearest returns the index of the value in v closest to x.
func nearest(v []float64, x float64) int {
	idx := 0
	for i, y := range v {
		if math.Abs(y-x) < math.Abs(v[idx]-x) {
			idx = i
		}
	}
	return idx
}

func (ps *PhaseSpace) movie(frames *matrix.Array, b Bounds, o MovieOptions, cmap string, symmetric bool, zlabel string) (*Movie, error) {
	if frames.Len() == 0 {
		return nil, fmt.Errorf("phase space movie: %w", animation.ErrNoFrames)
	}
	ma, err := frames.AbsMax()
	if err != nil {
		return nil, err
	}
	if o.CLim > 0 {
		ma *= o.CLim
	}
	mi := 0.0
	if symmetric {
		mi = -ma
	}

	xax, err := ps.XAxis()
	if err != nil {
		return nil, err
	}
	eax, err := ps.EAxis()
	if err != nil {
		return nil, err
	}
	x := (Prefix{Factor: picosecond}).Scale(xax[b.MinSpace:b.MaxSpace])
	e := (Prefix{Factor: megaElectronVolt}).Scale(eax[b.MinEnergy:b.MaxEnergy])
	ta, err := ps.d.Get(inovesa.PhaseSpace, inovesa.Time, "ts")
	if err != nil {
		return nil, err
	}
	times := ta.Slice(b.Lower, b.Upper).Values()
	t0, t1 := times[0], times[len(times)-1]

	var csr *sidePanel
	if o.CSRIntensity {
		if csr, err = ps.side(inovesa.CSRIntensity, "w", t0, t1); err != nil {
			return nil, err
		}
	}
	var (
		bpx, bpTimes []float64
		bpRows       *matrix.Array
		bpLo, bpHi   float64
	)
	if o.BunchProfile {
		ax, err := ps.d.Get(inovesa.BunchProfile, inovesa.Space, "s")
		if err != nil {
			return nil, err
		}
		bpx = (Prefix{Factor: picosecond}).Scale(ax.Values())
		bt, err := ps.d.Get(inovesa.BunchProfile, inovesa.Time, "ts")
		if err != nil {
			return nil, err
		}
		bpTimes = bt.Values()
		if bpRows, err = ps.d.Get(inovesa.BunchProfile, inovesa.Data, "c/s"); err != nil {
			return nil, err
		}
		lo, hi, err := bpRows.MinMax()
		if err != nil {
			return nil, err
		}
		bpLo, bpHi = margin(lo, hi)
	}

	st, err := style.Named("inverse_ggplot")
	if err != nil {
		return nil, err
	}
	if err := st.Update(map[string]any{"marker:size": 2, "line:width": 1}); err != nil {
		return nil, err
	}
	cm, err := ColorMap(cmap)
	if err != nil {
		return nil, err
	}
	lineColor := colorAt(cm, 35.0/255)

	draw := func(i int) (*Figure, error) {
		fig, main, csrPanel, bpPanel, err := movieLayout(o)
		if err != nil {
			return nil, err
		}
		fig.Style = st
		fr, err := frames.Index(i)
		if err != nil {
			return nil, err
		}
		zd, err := fr.Dense()
		if err != nil {
			return nil, err
		}
		if zd, err = matrix.Transpose(zd); err != nil {
			return nil, err
		}
		main.Mesh = &Mesh{X: x, Y: e, Z: zd, ColorMap: cmap, CLim: Lim(mi, ma), Label: zlabel}
		main.XLabel, main.YLabel = "Position in ps", "Energy Deviation in MeV"
		main.Texts = append(main.Texts, Text{X: 0.5, Y: 0.95, Text: fmt.Sprintf("Synchrotron Period: %.3f Ts", times[i])})

		if csrPanel != nil {
			now := times[i]
			vertical := bpPanel != nil
			if vertical {
				csrPanel.AddLine(Line{X: csr.v, Y: csr.t, Color: lineColor})
				csrPanel.AddLine(Line{X: []float64{csr.lo, csr.hi}, Y: []float64{now, now}, Color: color.Black})
				csrPanel.XLim, csrPanel.YLim = Lim(csr.lo, csr.hi), Lim(t0, t1)
				csrPanel.XLabel, csrPanel.YLabel = "CSR Int. in W", "Time in Ts"
			} else {
				csrPanel.AddLine(Line{X: csr.t, Y: csr.v, Color: lineColor})
				csrPanel.AddLine(Line{X: []float64{now, now}, Y: []float64{csr.lo, csr.hi}, Color: color.Black})
				csrPanel.XLim, csrPanel.YLim = Lim(t0, t1), Lim(csr.lo, csr.hi)
				csrPanel.XLabel, csrPanel.YLabel = "Time in Ts", "CSR Int. in W"
			}
		}
		if bpPanel != nil {
			row, err := bpRows.Index(nearest(bpTimes, times[i]))
			if err != nil {
				return nil, err
			}
			bpPanel.AddLine(Line{X: bpx, Y: row.Values(), Color: lineColor})
			bpPanel.XLim, bpPanel.YLim = Lim(x[0], x[len(x)-1]), Lim(bpLo, bpHi)
			bpPanel.XLabel, bpPanel.YLabel = "Position in ps", "Ch. Dens. in c/s"
		}
		return fig, nil
	}

	return &Movie{times: times, draw: draw, opts: o, log: ps.log}, nil
}

// movieLayout builds the grid for the side panels asked for.
func movieLayout(o MovieOptions) (fig *Figure, main, csr, bp *Panel, err error) {
	w, h := 7*vg.Inch, 7*vg.Inch
	switch {
	case o.CSRIntensity && o.BunchProfile:
		fig, err = NewGridFigure(2, 2, []float64{5, 1}, []float64{5, 1})
		w = w * 6 / 5
	case o.CSRIntensity || o.BunchProfile:
		fig, err = NewGridFigure(2, 1, []float64{5, 1}, nil)
	default:
		fig = NewFigure()
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if o.Width > 0 && o.Height > 0 {
		w, h = o.Width, o.Height
	}
	fig.SetSize(w, h)
	main = fig.Main()
	switch {
	case o.CSRIntensity && o.BunchProfile:
		csr, _ = fig.Panel(0, 1)
		bp, _ = fig.Panel(1, 0)
	case o.CSRIntensity:
		csr, _ = fig.Panel(1, 0)
	case o.BunchProfile:
		bp, _ = fig.Panel(1, 0)
	}

	return fig, main, csr, bp, nil
}

// Movie is a rendered-on-demand sequence of phase space figures.
type Movie struct {
	times []float64
	draw  func(i int) (*Figure, error)
	opts  MovieOptions
	log   logging.Logger
}

// Len returns the number of frames.
func (m *Movie) Len() int { return len(m.times) }

// Times returns the synchrotron period of every frame.
func (m *Movie) Times() []float64 { return append([]float64(nil), m.times...) }

// Figure returns frame i.
func (m *Movie) Figure(i int) (*Figure, error) {
	if i < 0 || i >= len(m.times) {
		return nil, fmt.Errorf("frame %d of %d: %w", i, len(m.times), matrix.ErrOutOfRange)
	}
	return m.draw(i)
}

// Extract returns the single frame selected by spec (see SliceIndex).
func (m *Movie) Extract(spec string) (*Figure, error) {
	i, err := SliceIndex(spec, m.times)
	if err != nil {
		return nil, err
	}
	m.log.Debug("extracting frame", "spec", spec, "index", i)

	return m.Figure(i)
}

// Animation returns the movie as an animation at the options' rate and
// resolution.
func (m *Movie) Animation() *animation.Animation {
	return &animation.Animation{
		Frames: animation.Range(len(m.times)),
		Draw: func(i, dpi int) (image.Image, error) {
			fig, err := m.Figure(i)
			if err != nil {
				return nil, err
			}
			fig.DPI = dpi
			return fig.Render()
		},
		FPS:         m.opts.FPS,
		DPI:         m.opts.DPI,
		Description: "phase space",
		Log:         m.log,
	}
}

// SliceIndex selects one frame:
//
//	idx:N  frame N, negative counts from the end
//	ts:F   the frame nearest to synchrotron period F
//	N      same as idx:N
func SliceIndex(spec string, times []float64) (int, error) {
	n := len(times)
	index := func(s string) (int, error) {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%q: %w", spec, ErrSlice)
		}
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("%q of %d frames: %w", spec, n, matrix.ErrOutOfRange)
		}
		return i, nil
	}
	switch {
	case strings.HasPrefix(spec, "idx:"):
		return index(strings.TrimPrefix(spec, "idx:"))
	case strings.HasPrefix(spec, "ts:"):
		t, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(spec, "ts:")), 64)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("%q: %w", spec, ErrSlice)
		}
		return nearest(times, t), nil
	}

	return index(spec)
}
