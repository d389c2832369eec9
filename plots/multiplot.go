// SPDX-License-Identifier: MIT

package plots

import (
	"fmt"

	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/logging"
)

type entry struct {
	sp    *SimplePlotter
	label string
}

// MultiPlot draws the same plot for several files on one figure.
type MultiPlot struct {
	opts    []Option
	log     logging.Logger
	entries []entry
}

// NewMultiPlot returns an empty MultiPlot; opts apply to every file added.
func NewMultiPlot(opts ...Option) *MultiPlot {
	o := gatherOptions(nil, opts...)
	return &MultiPlot{opts: opts, log: o.log}
}

// AddFile opens path and adds it. A non-empty label replaces the label of
// every series drawn for this file.
func (m *MultiPlot) AddFile(path, label string) error {
	sp, err := OpenSimplePlotter(path, m.opts...)
	if err != nil {
		return err
	}
	m.Add(sp, label)

	return nil
}

// AddOpenFile adds an already opened file.
func (m *MultiPlot) AddOpenFile(f *file.File, label string) {
	m.Add(NewSimplePlotter(f, m.opts...), label)
}

// Add adds a plotter.
func (m *MultiPlot) Add(sp *SimplePlotter, label string) {
	m.entries = append(m.entries, entry{sp: sp, label: label})
}

// Len returns the number of files.
func (m *MultiPlot) Len() int { return len(m.entries) }

// Clone returns a MultiPlot sharing the open files.
func (m *MultiPlot) Clone() *MultiPlot {
	return &MultiPlot{
		opts:    append([]Option(nil), m.opts...),
		log:     m.log,
		entries: append([]entry(nil), m.entries...),
	}
}

// Reset forgets every file without closing it.
func (m *MultiPlot) Reset() { m.entries = nil }

// PossiblePlots lists the kinds Plot accepts.
func (m *MultiPlot) PossiblePlots() []inovesa.Group { return PossiblePlots() }

// Plot draws kind for every file on one figure, in the order added.
//
// Errors:
//   - ErrNoFiles when no file was added.
//   - any error of SimplePlotter.Plot, prefixed with the file name.
func (m *MultiPlot) Plot(kind inovesa.Group, opts ...PlotOption) (*Figure, error) {
	if len(m.entries) == 0 {
		m.log.Warn("plot called without files to plot", "kind", string(kind))
		return nil, fmt.Errorf("%s: %w", kind, ErrNoFiles)
	}
	fig := gatherPlotOptions(opts...).fig
	if fig == nil {
		fig = NewFigure()
	}
	for _, e := range m.entries {
		fopts := append(append([]PlotOption(nil), opts...), OnFigure(fig))
		if e.label != "" {
			fopts = append(fopts, WithLabel(e.label))
		}
		if _, err := e.sp.Plot(kind, fopts...); err != nil {
			return nil, fmt.Errorf("%s: %w", e.sp.File().Name(), err)
		}
	}

	return fig, nil
}

// Close closes every file and resets the MultiPlot.
func (m *MultiPlot) Close() error {
	var firstErr error
	for _, e := range m.entries {
		if err := e.sp.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.Reset()

	return firstErr
}
