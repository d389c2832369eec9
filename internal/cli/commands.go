// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lisa/data"
	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/plots"
	"github.com/katalvlaran/lisa/style"
)

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s takes %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("%s takes at least %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// parseKind accepts the names listed by PossiblePlots.
func parseKind(s string) (inovesa.Group, error) {
	kinds := plots.PossiblePlots()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		if string(k) == s {
			return k, nil
		}
		names[i] = string(k)
	}

	return "", usagef("unknown plot kind %q (one of %s)", s, strings.Join(names, ", "))
}

func infoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show version, groups and parameters of a result file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := data.Open(args[0], data.WithLogger(e.log))
			if err != nil {
				return err
			}
			defer d.Close()

			return writeInfo(cmd.OutOrStdout(), d)
		},
	}
}

func writeInfo(out io.Writer, d *data.Data) error {
	f := d.File()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", f.Name())
	fmt.Fprintf(w, "version\t%s\n", d.Version())

	var groups []string
	for _, g := range f.Groups() {
		if g == inovesa.Parameters {
			continue
		}
		if _, err := f.Get(g); err == nil {
			groups = append(groups, string(g))
		}
	}
	fmt.Fprintf(w, "groups\t%s\n", strings.Join(groups, ", "))

	params := d.Parameters()
	names := make([]string, 0, len(params))
	for n := range params {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%g\n", n, params[n])
	}

	return w.Flush()
}

func filesCmd(e *env) *cobra.Command {
	var (
		pattern  string
		unsorted bool
	)
	cmd := &cobra.Command{
		Use:   "files <dir>",
		Short: "List result files, highest bunch current first",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := file.NewMultiFile(args[0], pattern, file.WithLogger(e.log))
			if err != nil {
				return err
			}
			defer mf.Close()
			paths, err := mf.Paths(!unsorted)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "*.h5", "glob matched inside dir")
	cmd.Flags().BoolVar(&unsorted, "unsorted", false, "keep glob order instead of sorting by bunch current")

	return cmd
}

// plotFlags are the flags shared by plot and video.
type plotFlags struct {
	fft       string
	fftPad    int
	abs       bool
	xlog      bool
	ylog      bool
	scale     float64
	period    float64
	useIndex  bool
	mean      []int
	idxRange  []int
	transpose bool
	norm      string
	cmap      string
	clim      []float64
	zunit     string
	badToMin  bool
	padZero   bool
}

func (pf *plotFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pf.fft, "fft", "", "plot the spectrum: real or complex")
	f.IntVar(&pf.fftPad, "fft-padding", 0, "zeros added on both ends before the fft")
	f.BoolVar(&pf.abs, "abs", false, "plot absolute values")
	f.BoolVar(&pf.xlog, "xlog", false, "logarithmic x axis")
	f.BoolVar(&pf.ylog, "ylog", false, "logarithmic y axis")
	f.Float64Var(&pf.scale, "scale", 1, "multiply y values")
	f.Float64Var(&pf.period, "period", 0, "plot one synchrotron period of a mesh kind")
	f.BoolVar(&pf.useIndex, "index", false, "treat --period as a time index")
	f.IntSliceVar(&pf.mean, "mean", nil, "plot the mean over time indices lo,hi")
	f.IntSliceVar(&pf.idxRange, "range", nil, "restrict a line plot to indices lo,hi")
	f.BoolVar(&pf.transpose, "transpose", false, "swap mesh axes")
	f.StringVar(&pf.norm, "norm", plots.NormLinear, "mesh colour norm: linear or log")
	f.StringVar(&pf.cmap, "cmap", "", "mesh colour map")
	f.Float64SliceVar(&pf.clim, "clim", nil, "mesh colour limits lo,hi")
	f.StringVar(&pf.zunit, "zunit", "", "unit of mesh values")
	f.BoolVar(&pf.badToMin, "bad-to-min", false, "paint unmappable mesh values in the lowest colour")
	f.BoolVar(&pf.padZero, "pad-zero", false, "replace negative mesh values before a log norm")
}

func (pf *plotFlags) options(cmd *cobra.Command) ([]plots.PlotOption, error) {
	var out []plots.PlotOption
	switch pf.fft {
	case "":
	case "real":
		out = append(out, plots.FFT(plots.FFTReal))
	case "complex":
		out = append(out, plots.FFT(plots.FFTComplex))
	default:
		return nil, usagef("--fft must be real or complex, got %q", pf.fft)
	}
	if pf.fftPad > 0 {
		out = append(out, plots.FFTPadding(pf.fftPad))
	}
	if pf.abs {
		out = append(out, plots.Abs())
	}
	if pf.xlog {
		out = append(out, plots.XLog())
	}
	if pf.ylog {
		out = append(out, plots.YLog())
	}
	if pf.scale != 1 {
		out = append(out, plots.ScaleFactor(pf.scale))
	}
	if cmd.Flags().Changed("period") {
		out = append(out, plots.Period(pf.period))
	}
	if pf.useIndex {
		out = append(out, plots.UseIndex())
	}
	if cmd.Flags().Changed("mean") {
		if len(pf.mean) != 2 {
			return nil, usagef("--mean needs lo,hi")
		}
		out = append(out, plots.MeanRange(pf.mean[0], pf.mean[1]))
	}
	if cmd.Flags().Changed("range") {
		out = append(out, plots.IndexRange(pf.idxRange...))
	}
	if pf.transpose {
		out = append(out, plots.Transpose())
	}
	out = append(out, plots.Norm(pf.norm))
	if pf.cmap != "" {
		out = append(out, plots.WithColorMap(pf.cmap))
	}
	if cmd.Flags().Changed("clim") {
		if len(pf.clim) != 2 {
			return nil, usagef("--clim needs lo,hi")
		}
		out = append(out, plots.ColorLimits(pf.clim[0], pf.clim[1]))
	}
	if pf.zunit != "" {
		out = append(out, plots.ZUnit(pf.zunit))
	}
	if pf.badToMin {
		out = append(out, plots.ForceBadToMin())
	}
	if pf.padZero {
		out = append(out, plots.PadZero())
	}

	return out, nil
}

func plotCmd(e *env) *cobra.Command {
	var (
		pf        plotFlags
		labels    []string
		out       string
		connector string
	)
	cmd := &cobra.Command{
		Use:   "plot <kind> <file>...",
		Short: "Plot one quantity of one or more files into a single figure",
		Long: "Plot one quantity of one or more files into a single figure.\n\nKinds: " +
			strings.Join(kindNames(), ", "),
		Args: minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			paths := args[1:]
			if len(labels) > 0 && len(labels) != len(paths) {
				return usagef("%d labels for %d files", len(labels), len(paths))
			}
			popts, err := pf.options(cmd)
			if err != nil {
				return err
			}
			opts, err := e.plotOptions()
			if err != nil {
				return err
			}
			opts = append(opts, plots.WithUnitConnector(connector))

			mp := plots.NewMultiPlot(opts...)
			defer mp.Close()
			for i, p := range paths {
				label := ""
				if len(labels) > 0 {
					label = labels[i]
				}
				if err := mp.AddFile(p, label); err != nil {
					return err
				}
			}
			fig, err := mp.Plot(kind, popts...)
			if err != nil {
				return err
			}
			fig.DPI = e.opts.DPI()
			if out == "" {
				out = string(kind) + ".png"
			}
			path := e.output(out)
			if err := fig.Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringArrayVarP(&labels, "label", "l", nil, "legend label, once per file")
	cmd.Flags().StringVar(&out, "out", "", "output image (default <kind>.png)")
	cmd.Flags().StringVar(&connector, "unit-connector", "in", "word between quantity and unit in axis labels")

	return cmd
}

func kindNames() []string {
	kinds := plots.PossiblePlots()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}

	return out
}

// movieFlags are the flags shared by phasespace and movie.
type movieFlags struct {
	from, to int
	mean     []int
	width    int
	clim     float64
	csr      bool
	profile  bool
}

func (mf *movieFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&mf.from, "from", 0, "first snapshot")
	f.IntVar(&mf.to, "to", 0, "end snapshot, exclusive; 0 means all")
	f.IntSliceVar(&mf.mean, "mean", nil, "snapshots lo,hi averaged for centring and as microstructure reference")
	f.IntVar(&mf.width, "width", 0, "crop the plot area to this many bins around the centre of charge")
	f.Float64Var(&mf.clim, "clim", 0, "scale the colour limits")
	f.BoolVar(&mf.csr, "csr", false, "add the CSR intensity panel")
	f.BoolVar(&mf.profile, "profile", false, "add the bunch profile panel")
}

func (mf *movieFlags) options(e *env) (plots.MovieOptions, error) {
	if mf.mean != nil && len(mf.mean) != 2 {
		return plots.MovieOptions{}, usagef("--mean needs lo,hi")
	}

	return plots.MovieOptions{
		From:          mf.from,
		To:            mf.to,
		MeanRange:     mf.mean,
		PlotAreaWidth: mf.width,
		CLim:          mf.clim,
		CSRIntensity:  mf.csr,
		BunchProfile:  mf.profile,
		FPS:           float64(e.opts.FPS()),
		DPI:           e.opts.DPI(),
	}, nil
}

func phaseSpaceCmd(e *env) *cobra.Command {
	var (
		mf    movieFlags
		slice string
		micro bool
		out   string
	)
	cmd := &cobra.Command{
		Use:   "phasespace <file>",
		Short: "Render one phase space snapshot",
		Long: "Render one phase space snapshot. --slice takes idx:N, ts:T " +
			"(nearest synchrotron period) or a plain index.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mv, ps, err := buildMovie(e, args[0], &mf, micro)
			if err != nil {
				return err
			}
			defer ps.Close()
			fig, err := mv.Extract(slice)
			if err != nil {
				return err
			}
			fig.DPI = e.opts.DPI()
			path := e.output(out)
			if err := fig.Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVar(&slice, "slice", "0", "snapshot selector")
	cmd.Flags().BoolVar(&micro, "micro", false, "show the difference to the mean phase space")
	cmd.Flags().StringVar(&out, "out", "phasespace.png", "output image")

	return cmd
}

// buildMovie opens path and builds its movie; the caller closes ps.
func buildMovie(e *env, path string, mf *movieFlags, micro bool) (mv *plots.Movie, ps *plots.PhaseSpace, err error) {
	o, err := mf.options(e)
	if err != nil {
		return nil, nil, err
	}
	ps, err = plots.OpenPhaseSpace(path, plots.WithLogger(e.log))
	if err != nil {
		return nil, nil, err
	}
	if micro {
		mv, err = ps.MicrostructureMovie(o)
	} else {
		mv, err = ps.PhaseSpaceMovie(o)
	}
	if err != nil {
		ps.Close()
		return nil, nil, err
	}

	return mv, ps, nil
}

func movieCmd(e *env) *cobra.Command {
	var (
		mf    movieFlags
		micro bool
	)
	cmd := &cobra.Command{
		Use:   "movie <file> <out>",
		Short: "Render the phase space movie of a result file",
		Long: "Render the phase space movie of a result file. The extension of out " +
			"selects the encoder: .gif, .png (numbered frames) or anything ffmpeg writes.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mv, ps, err := buildMovie(e, args[0], &mf, micro)
			if err != nil {
				return err
			}
			defer ps.Close()
			a := mv.Animation()
			a.Quiet = e.quiet
			a.Progress = cmd.ErrOrStderr()
			path := e.output(args[1])
			if err := a.Save(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().BoolVar(&micro, "micro", false, "render the microstructure movie")

	return cmd
}

func multiMovieCmd(e *env) *cobra.Command {
	var autorescale bool
	cmd := &cobra.Command{
		Use:   "multimovie <dir> <out>",
		Short: "Chain the phase spaces of every result file in dir, highest current first",
		Long: "Chain the phase spaces of every *.h5 file in dir, ordered by the BunchCurrent " +
			"of their .cfg side files. out must end in .gif or .mp4.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := plots.NewMultiPhaseSpaceMovie(args[0], plots.WithLogger(e.log))
			if err != nil {
				return err
			}
			defer m.Close()

			o := plots.DefaultMultiMovieOptions()
			o.Autorescale, o.Quiet = autorescale, e.quiet
			if cmd.Flags().Changed("dpi") {
				o.DPI = e.opts.DPI()
			}
			if cmd.Flags().Changed("fps") {
				o.FPS = float64(e.opts.FPS())
			}
			path := e.output(args[1])
			if err := m.CreateMovie(cmd.Context(), path, o); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&autorescale, "autorescale", false, "use the colour range of the first file for all files")

	return cmd
}

func videoCmd(e *env) *cobra.Command {
	var (
		pf   plotFlags
		last int
		nice bool
	)
	cmd := &cobra.Command{
		Use:   "video <kind> <file> <out>",
		Short: "Animate a mesh kind as one line plot per time step",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			popts, err := pf.options(cmd)
			if err != nil {
				return err
			}
			opts, err := e.plotOptions()
			if err != nil {
				return err
			}
			sp, err := plots.OpenSimplePlotter(args[1], opts...)
			if err != nil {
				return err
			}
			defer sp.Close()

			vo := plots.DefaultVideoOptions()
			vo.HowMuch, vo.Nice = last, nice
			if cmd.Flags().Changed("dpi") {
				vo.DPI = e.opts.DPI()
			}
			if cmd.Flags().Changed("fps") {
				vo.FPS = float64(e.opts.FPS())
			}
			a, err := sp.Video(kind, vo, popts...)
			if err != nil {
				return err
			}
			a.Quiet = e.quiet
			a.Progress = cmd.ErrOrStderr()
			path := e.output(args[2])
			if err := a.Save(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().IntVar(&last, "last", 0, "only the last n time steps")
	cmd.Flags().BoolVar(&nice, "nice", false, "use the inverse_ggplot-dotted style")

	return cmd
}

func stylesCmd(e *env) *cobra.Command {
	var (
		load      string
		colormaps bool
	)
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the named plot styles",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if colormaps {
				for _, n := range plots.ColorMapNames() {
					fmt.Fprintln(out, n)
				}
				return nil
			}
			if load != "" {
				names, err := style.LoadFile(load)
				if err != nil {
					return err
				}
				e.log.Debug("loaded style sheet", "file", load, "styles", len(names))
			}
			for _, n := range style.Names() {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&load, "load", "", "register the styles of a YAML style sheet first")
	cmd.Flags().BoolVar(&colormaps, "colormaps", false, "list colour maps instead")

	return cmd
}
