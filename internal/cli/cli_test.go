package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lisa/config"
	"github.com/katalvlaran/lisa/internal/cli"
	"github.com/katalvlaran/lisa/plots"
	"github.com/katalvlaran/lisa/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = cli.Run(context.Background(), args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestSubcommands(t *testing.T) {
	cmd := cli.NewCommand(config.New())
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"info", "files", "plot", "phasespace", "movie", "multimovie", "video", "styles"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "style", "dpi", "fps", "output-dir", "debug", "quiet"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestStyles(t *testing.T) {
	code, out, _ := run(t, "styles")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, style.Names(), strings.Fields(out))

	code, out, _ = run(t, "styles", "--colormaps")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, strings.Fields(out), plots.DefaultColorMap)
}

func TestStylesLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cli-test-style:\n  line:width: 2\n"), 0o644))

	code, out, errOut := run(t, "styles", "--load", path)
	require.Equal(t, cli.ExitSuccess, code, errOut)
	assert.Contains(t, strings.Fields(out), "cli-test-style")

	code, _, errOut = run(t, "styles", "--load", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, cli.ExitError, code)
	assert.Contains(t, errOut, "Error:")
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		args []string
	}{
		{"unknown kind", []string{"plot", "bogus", "a.h5"}},
		{"phase space is not a plot kind", []string{"plot", "phase_space", "a.h5"}},
		{"missing files", []string{"plot", "bunch_length"}},
		{"label count", []string{"plot", "bunch_length", "a.h5", "-l", "x", "-l", "y"}},
		{"bad fft", []string{"plot", "bunch_length", "a.h5", "--fft", "half"}},
		{"unknown flag", []string{"styles", "--nope"}},
		{"movie args", []string{"movie", "a.h5"}},
		{"movie mean", []string{"movie", "a.h5", "out.gif", "--mean", "1"}},
		{"info args", []string{"info"}},
		{"files args", []string{"files", dir, dir}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := run(t, tc.args...)
			assert.Equal(t, cli.ExitUsage, code, errOut)
		})
	}
}

func TestFilesEmptyDir(t *testing.T) {
	code, out, errOut := run(t, "files", t.TempDir())
	assert.Equal(t, cli.ExitSuccess, code, errOut)
	assert.Empty(t, out)
}

func TestFilesUnsorted(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.h5", "a.h5", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	code, out, errOut := run(t, "files", dir, "--unsorted")
	require.Equal(t, cli.ExitSuccess, code, errOut)
	assert.Equal(t, []string{filepath.Join(dir, "a.h5"), filepath.Join(dir, "b.h5")}, strings.Fields(out))

	// sorting needs the .cfg side files
	code, _, errOut = run(t, "files", dir)
	assert.Equal(t, cli.ExitError, code)
	assert.Contains(t, errOut, "ByBunchCurrent")
}

func TestMultiMovieErrors(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := run(t, "multimovie", dir, filepath.Join(dir, "out.avi"))
	assert.Equal(t, cli.ExitError, code)
	assert.Contains(t, errOut, plots.ErrUnsupportedFormat.Error())

	code, _, errOut = run(t, "multimovie", dir, filepath.Join(dir, "out.gif"))
	assert.Equal(t, cli.ExitError, code)
	assert.Contains(t, errOut, plots.ErrNoFiles.Error())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lisa.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("style: no-such-style\n"), 0o644))

	// the style is only resolved by commands that plot
	code, _, errOut := run(t, "--config", cfg, "styles")
	assert.Equal(t, cli.ExitSuccess, code, errOut)

	code, _, errOut = run(t, "--config", cfg, "plot", "bunch_length", filepath.Join(dir, "a.h5"))
	assert.Equal(t, cli.ExitError, code)
	assert.Contains(t, errOut, "no-such-style")

	code, _, _ = run(t, "--config", filepath.Join(dir, "missing.yaml"), "styles")
	assert.Equal(t, cli.ExitError, code)
}

func TestDebugLogging(t *testing.T) {
	code, _, errOut := run(t, "--debug", "styles")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, errOut, "configuration")
}

func TestLogFlags(t *testing.T) {
	code, _, errOut := run(t, "--log-level", "loud", "styles")
	assert.Equal(t, cli.ExitUsage, code)
	assert.Contains(t, errOut, "loud")

	code, _, errOut = run(t, "--log-level", "debug", "styles")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, errOut, "command=styles")

	code, _, errOut = run(t, "--log-format", "json", "--debug", "styles")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, errOut, `"msg":"configuration"`)
	assert.Contains(t, errOut, `"command":"styles"`)
}
