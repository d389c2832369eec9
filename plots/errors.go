// SPDX-License-Identifier: MIT

package plots

import "errors"

var (
	// ErrNoFiles is returned by MultiPlot when no file was added.
	ErrNoFiles = errors.New("plots: no files to plot")

	// ErrUnsupportedFormat is returned for output files of unknown type.
	ErrUnsupportedFormat = errors.New("plots: unsupported format")

	// ErrIndexRange is returned when an index range is not exactly two values.
	ErrIndexRange = errors.New("plots: index range needs exactly two values")

	// ErrSlice is returned for a malformed slice selector.
	ErrSlice = errors.New("plots: invalid slice selector")

	// ErrColorMap is returned for an unknown colour map name.
	ErrColorMap = errors.New("plots: unknown colormap")

	// ErrPanel is returned for a panel outside the figure grid.
	ErrPanel = errors.New("plots: panel outside grid")

	// ErrKind is returned for a plot kind the plotter cannot draw.
	ErrKind = errors.New("plots: not a plottable kind")

	// ErrShape is returned for series or meshes with inconsistent lengths.
	ErrShape = errors.New("plots: shape mismatch")
)
