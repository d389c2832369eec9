// SPDX-License-Identifier: MIT

package animation

import "errors"

var (
	// ErrNoFrames is returned when there is nothing to render.
	ErrNoFrames = errors.New("animation: no frames")

	// ErrNoDraw is returned when an Animation has no FrameFunc.
	ErrNoDraw = errors.New("animation: no frame function")

	// ErrFormat is returned for an output path without a usable extension.
	ErrFormat = errors.New("animation: unsupported output format")

	// ErrEncoder wraps failures of the external encoder.
	ErrEncoder = errors.New("animation: encoder failed")

	// ErrShape is returned by DataFrames for mismatched x and y data.
	ErrShape = errors.New("animation: shape mismatch")
)
