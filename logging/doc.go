// SPDX-License-Identifier: MIT

// Package logging is the small logging surface Lisa's packages depend on.
//
// Library code accepts a Logger through its options and defaults to NoOp, so
// nothing is printed unless the caller asks for it. The CLI builds an
// slog-backed logger whose level follows the print_debug option:
//
//	log := logging.New(logging.LevelWarn, "text", os.Stderr)
//	p, _ := plots.NewSimplePlotter(f, plots.WithLogger(log))
package logging
