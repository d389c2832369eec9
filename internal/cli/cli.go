// SPDX-License-Identifier: MIT

// Package cli implements the lisa command line.
//
// Commands:
//   - lisa info <file>
//   - lisa files <dir> [--pattern] [--unsorted]
//   - lisa plot <kind> <file>... [--label] [--out] [plot flags]
//   - lisa phasespace <file> [--slice] [--micro] [--out] [movie flags]
//   - lisa movie <file> <out> [--micro] [movie flags]
//   - lisa multimovie <dir> <out> [--autorescale]
//   - lisa video <kind> <file> <out> [--last] [--nice]
//   - lisa styles [--load sheet.yaml] [--colormaps]
//
// Global flags override lisa.yaml, which overrides the environment.
// --log-level and --log-format pick the stderr logger; every record carries
// the command name.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lisa/config"
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/plots"
	"github.com/katalvlaran/lisa/style"
)

// Exit codes returned by Run.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "lisa.yaml"

// errUsage marks argument errors.
var errUsage = errors.New("usage")

// env carries the state shared by all commands after flag parsing.
type env struct {
	opts *config.Options
	log  logging.Logger

	configFile string
	styleName  string
	dpi        int
	fps        int
	outputDir  string
	logLevel   string
	logFormat  string
	debug      bool
	quiet      bool
}

// Run executes args (without the program name) and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand(config.New())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		if errors.Is(err, errUsage) {
			return ExitUsage
		}
		return ExitError
	}

	return ExitSuccess
}

// NewCommand returns the lisa command tree over opts.
func NewCommand(opts *config.Options) *cobra.Command {
	e := &env{opts: opts, log: logging.NoOp{}}

	cmd := &cobra.Command{
		Use:   "lisa",
		Short: "Plot and animate Inovesa result files",
		Long:  "Read Inovesa HDF5 result files and render line plots, meshes, phase spaces and movies.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usagef("%v", err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&e.configFile, "config", "", "config file (default ./"+DefaultConfigFile+" when present)")
	pf.StringVar(&e.styleName, "style", "", "named plot style")
	pf.IntVar(&e.dpi, "dpi", 0, "output resolution")
	pf.IntVar(&e.fps, "fps", 0, "movie frame rate")
	pf.StringVarP(&e.outputDir, "output-dir", "o", "", "directory for relative output paths")
	pf.BoolVar(&e.debug, "debug", false, "print debug output")
	pf.StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn or error (default warn)")
	pf.StringVar(&e.logFormat, "log-format", "", "log format: text or json (default text)")
	pf.BoolVarP(&e.quiet, "quiet", "q", false, "hide progress bars")

	cmd.AddCommand(infoCmd(e))
	cmd.AddCommand(filesCmd(e))
	cmd.AddCommand(plotCmd(e))
	cmd.AddCommand(phaseSpaceCmd(e))
	cmd.AddCommand(movieCmd(e))
	cmd.AddCommand(multiMovieCmd(e))
	cmd.AddCommand(videoCmd(e))
	cmd.AddCommand(stylesCmd(e))

	return cmd
}

// setup merges the config file and flag overrides and builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	path := e.configFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := e.opts.ReadFile(path); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	overrides := []struct {
		flag, name string
		value      any
	}{
		{"style", config.Style, e.styleName},
		{"dpi", config.DPI, e.dpi},
		{"fps", config.FPS, e.fps},
		{"output-dir", config.OutputDir, e.outputDir},
		{"debug", config.PrintDebug, e.debug},
		{"log-level", config.LogLevel, e.logLevel},
		{"log-format", config.LogFormat, e.logFormat},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		if err := e.opts.Set(o.name, o.value); err != nil {
			return err
		}
	}
	if _, err := e.opts.Level(); err != nil {
		return usagef("%v", err)
	}
	e.log = logging.With(e.opts.Logger(cmd.ErrOrStderr()), "command", cmd.Name())
	e.log.Debug("configuration", "style", e.opts.Style(), "dpi", e.opts.DPI(), "fps", e.opts.FPS(), "output_dir", e.opts.OutputDir())

	return nil
}

// plotOptions returns the plotter options for the configured style.
func (e *env) plotOptions() ([]plots.Option, error) {
	popts := []plots.Option{plots.WithLogger(e.log)}
	if name := e.opts.Style(); name != "" {
		st, err := style.Named(name)
		if err != nil {
			return nil, err
		}
		popts = append(popts, plots.WithStyle(st))
	}

	return popts, nil
}

// output resolves a relative path against the output directory.
func (e *env) output(path string) string {
	dir := e.opts.OutputDir()
	if filepath.IsAbs(path) || dir == "" || dir == "." {
		return path
	}

	return filepath.Join(dir, path)
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errUsage)
}
