// SPDX-License-Identifier: MIT

// Command lisa plots and animates Inovesa result files.
//
// Settings come from flags, then ./lisa.yaml (or --config), then the
// environment (LISA_PRINT_DEBUG, LISA_USE_LATEX, LISA_DPI, ...).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/lisa/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
