// SPDX-License-Identifier: MIT

// Package config holds Lisa's runtime options.
//
// Options are backed by viper. The boolean switches print_debug and use_latex
// are read from the environment as LISA_<NAME> or, for compatibility with
// older setups, the bare option name; the values "0" and "False" mean false and
// anything else means true. The CLI adds rendering settings that may also come
// from a lisa.yaml file.
package config

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/lisa/logging"
)

var (
	// ErrInvalidOption is returned for names outside the known option set.
	ErrInvalidOption = errors.New("config: not a valid option")

	// ErrInvalidValue is returned for an option value that cannot be used.
	ErrInvalidValue = errors.New("config: invalid option value")
)

// Option names.
const (
	PrintDebug = "print_debug"
	UseLatex   = "use_latex"
	Style      = "style"
	DPI        = "dpi"
	FPS        = "fps"
	OutputDir  = "output_dir"
	LogLevel   = "log_level"
	LogFormat  = "log_format"
)

const envPrefix = "LISA"

var defaults = map[string]any{
	PrintDebug: false,
	UseLatex:   false,
	Style:      "",
	DPI:        100,
	FPS:        20,
	OutputDir:  ".",
	LogLevel:   "",
	LogFormat:  "text",
}

// legacyEnv lists options that are also bound to their bare name.
var legacyEnv = []string{PrintDebug, UseLatex}

// Options is a set of validated settings. The zero value is not usable; call New.
type Options struct {
	v *viper.Viper
}

// New returns options with defaults and environment bindings in place.
func New() *Options {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		_ = v.BindEnv(k, envPrefix+"_"+strings.ToUpper(k))
	}
	for _, k := range legacyEnv {
		_ = v.BindEnv(k, envPrefix+"_"+strings.ToUpper(k), k)
	}

	return &Options{v: v}
}

// ReadFile merges a YAML (or any viper-supported) config file.
func (o *Options) ReadFile(path string) error {
	o.v.SetConfigFile(path)
	if err := o.v.MergeInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// Names returns the valid option names, sorted.
func (o *Options) Names() []string {
	out := make([]string, 0, len(defaults))
	for k := range defaults {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Set overrides an option.
func (o *Options) Set(name string, value any) error {
	if _, ok := defaults[name]; !ok {
		return fmt.Errorf("Set(%q): %w", name, ErrInvalidOption)
	}
	o.v.Set(name, value)

	return nil
}

// Get returns the raw value of an option.
func (o *Options) Get(name string) (any, error) {
	if _, ok := defaults[name]; !ok {
		return nil, fmt.Errorf("Get(%q): %w", name, ErrInvalidOption)
	}

	return o.v.Get(name), nil
}

// Bool reads a boolean option with the environment convention described in
// the package doc. Unknown names are false.
func (o *Options) Bool(name string) bool {
	raw, err := o.Get(name)
	if err != nil {
		return false
	}
	switch t := raw.(type) {
	case bool:
		return t
	case string:
		return t != "0" && t != "False"
	case int:
		return t != 0
	}

	return o.v.GetBool(name)
}

func (o *Options) PrintDebug() bool  { return o.Bool(PrintDebug) }
func (o *Options) UseLatex() bool    { return o.Bool(UseLatex) }
func (o *Options) Style() string     { return o.v.GetString(Style) }
func (o *Options) DPI() int          { return o.v.GetInt(DPI) }
func (o *Options) FPS() int          { return o.v.GetInt(FPS) }
func (o *Options) OutputDir() string { return o.v.GetString(OutputDir) }
func (o *Options) LogFormat() string { return o.v.GetString(LogFormat) }

// Level resolves the log level: debug when print_debug is on, else log_level,
// else warn.
//
// Errors:
//   - ErrInvalidValue for a log_level logging.ParseLevel does not know.
func (o *Options) Level() (logging.Level, error) {
	if o.PrintDebug() {
		return logging.LevelDebug, nil
	}
	name := o.v.GetString(LogLevel)
	if name == "" {
		return logging.LevelWarn, nil
	}
	lvl, ok := logging.ParseLevel(name)
	if !ok {
		return lvl, fmt.Errorf("Level(%q): %w", name, ErrInvalidValue)
	}

	return lvl, nil
}

// Logger returns a logger on out at Level, in the log_format ("text" or
// "json"). An invalid log_level logs at warn.
func (o *Options) Logger(out io.Writer) logging.Logger {
	lvl, err := o.Level()
	if err != nil {
		lvl = logging.LevelWarn
	}

	return logging.New(lvl, o.LogFormat(), out)
}
