package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lisa/config"
	"github.com/katalvlaran/lisa/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := config.New()
	assert.False(t, o.PrintDebug())
	assert.False(t, o.UseLatex())
	assert.Equal(t, 100, o.DPI())
	assert.Equal(t, 20, o.FPS())
	assert.Equal(t, ".", o.OutputDir())
	assert.Equal(t, "text", o.LogFormat())
	assert.Equal(t, []string{"dpi", "fps", "log_format", "log_level", "output_dir", "print_debug", "style", "use_latex"}, o.Names())
}

func TestEnvironmentBooleans(t *testing.T) {
	tests := []struct {
		name, key, value string
		want             bool
	}{
		{"prefixed true", "LISA_PRINT_DEBUG", "1", true},
		{"prefixed zero", "LISA_PRINT_DEBUG", "0", false},
		{"legacy False", "print_debug", "False", false},
		{"legacy anything", "print_debug", "yes please", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			assert.Equal(t, tc.want, config.New().PrintDebug())
		})
	}
}

func TestSetRejectsUnknown(t *testing.T) {
	o := config.New()
	require.NoError(t, o.Set(config.UseLatex, true))
	assert.True(t, o.UseLatex())

	assert.ErrorIs(t, o.Set("use_cython", true), config.ErrInvalidOption)
	_, err := o.Get("nope")
	assert.ErrorIs(t, err, config.ErrInvalidOption)
	assert.False(t, o.Bool("nope"))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lisa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dpi: 150\nstyle: vega_lite\nprint_debug: true\n"), 0o644))

	o := config.New()
	require.NoError(t, o.ReadFile(path))
	assert.Equal(t, 150, o.DPI())
	assert.Equal(t, "vega_lite", o.Style())
	assert.True(t, o.PrintDebug())

	assert.Error(t, o.ReadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoggerFollowsPrintDebug(t *testing.T) {
	o := config.New()
	var buf bytes.Buffer
	o.Logger(&buf).Debug("quiet")
	assert.Empty(t, buf.String())

	require.NoError(t, o.Set(config.PrintDebug, true))
	o.Logger(&buf).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		printDebug bool
		want       logging.Level
	}{
		{"default", "", false, logging.LevelWarn},
		{"named", "info", false, logging.LevelInfo},
		{"warning alias", "Warning", false, logging.LevelWarn},
		{"print_debug wins", "error", true, logging.LevelDebug},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := config.New()
			require.NoError(t, o.Set(config.LogLevel, tc.level))
			require.NoError(t, o.Set(config.PrintDebug, tc.printDebug))
			lvl, err := o.Level()
			require.NoError(t, err)
			assert.Equal(t, tc.want, lvl)
		})
	}

	o := config.New()
	require.NoError(t, o.Set(config.LogLevel, "loud"))
	_, err := o.Level()
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestLoggerLevelAndFormat(t *testing.T) {
	o := config.New()
	require.NoError(t, o.Set(config.LogLevel, "info"))
	require.NoError(t, o.Set(config.LogFormat, "json"))

	var buf bytes.Buffer
	log := o.Logger(&buf)
	log.Debug("hidden")
	log.Info("shown", "file", "run.h5")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"file":"run.h5"`)
}
