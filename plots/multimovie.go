// SPDX-License-Identifier: MIT

package plots

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lisa/animation"
	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/matrix"
)

// MultiMovieOptions configures MultiPhaseSpaceMovie.CreateMovie.
type MultiMovieOptions struct {
	// Autorescale fixes the colour range of every clip to the range of the
	// first snapshot of the first file.
	Autorescale bool

	DPI           int
	Width, Height vg.Length
	FPS           float64
	Quiet         bool
}

// DefaultMultiMovieOptions returns 200 dpi, 5.5x5.5 inches at 30 fps.
func DefaultMultiMovieOptions() MultiMovieOptions {
	return MultiMovieOptions{
		DPI:    200,
		Width:  5.5 * vg.Inch,
		Height: 5.5 * vg.Inch,
		FPS:    30,
	}
}

// MultiPhaseSpaceMovie chains the phase space of every result file in a
// directory into one movie, highest bunch current first.
type MultiPhaseSpaceMovie struct {
	mf   *file.MultiFile
	log  logging.Logger
	opts []Option
}

// NewMultiPhaseSpaceMovie collects dir/*.h5. Every file needs a .cfg side
// file carrying its BunchCurrent.
func NewMultiPhaseSpaceMovie(dir string, opts ...Option) (*MultiPhaseSpaceMovie, error) {
	o := gatherOptions(nil, opts...)
	mf, err := file.NewMultiFile(dir, "*.h5", file.WithLogger(o.log))
	if err != nil {
		return nil, err
	}

	return &MultiPhaseSpaceMovie{mf: mf, log: o.log, opts: opts}, nil
}

// Files returns the file paths in movie order.
func (m *MultiPhaseSpaceMovie) Files() ([]string, error) { return m.mf.Paths(true) }

type clip struct {
	ps *PhaseSpace
	n  int
}

// Animation returns one clip per file, concatenated.
func (m *MultiPhaseSpaceMovie) Animation(o MultiMovieOptions) (*animation.Animation, error) {
	files, err := m.mf.Files(true)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("MultiPhaseSpaceMovie: %w", ErrNoFiles)
	}
	clips := make([]clip, 0, len(files))
	total := 0
	for _, f := range files {
		ps := NewPhaseSpace(f, m.opts...)
		n, err := ps.Len()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		clips = append(clips, clip{ps: ps, n: n})
		total += n
	}

	var popts []PlotOption
	if o.Autorescale {
		first, err := clips[0].ps.Slice(0)
		if err != nil {
			return nil, err
		}
		lo, hi, err := matrix.MinMax(first)
		if err != nil {
			return nil, err
		}
		popts = append(popts, ColorLimits(lo, hi))
	}
	m.log.Debug("multi phase space movie", "files", len(clips), "frames", total)

	locate := func(frame int) (*PhaseSpace, int, error) {
		i := frame
		for _, c := range clips {
			if i < c.n {
				return c.ps, i, nil
			}
			i -= c.n
		}
		return nil, 0, fmt.Errorf("frame %d of %d: %w", frame, total, matrix.ErrOutOfRange)
	}

	return &animation.Animation{
		Frames: animation.Range(total),
		Draw: func(i, dpi int) (image.Image, error) {
			ps, k, err := locate(i)
			if err != nil {
				return nil, err
			}
			fig, err := ps.PlotSlice(k, popts...)
			if err != nil {
				return nil, err
			}
			if o.Width > 0 && o.Height > 0 {
				fig.SetSize(o.Width, o.Height)
			}
			fig.DPI = dpi
			return fig.Render()
		},
		FPS:         o.FPS,
		DPI:         o.DPI,
		Description: "phase spaces",
		Quiet:       o.Quiet,
		Log:         m.log,
	}, nil
}

// CreateMovie renders the movie to path, which must end in .gif or .mp4.
func (m *MultiPhaseSpaceMovie) CreateMovie(ctx context.Context, path string, o MultiMovieOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif", ".mp4":
	default:
		return fmt.Errorf("CreateMovie(%s): %w", path, ErrUnsupportedFormat)
	}
	a, err := m.Animation(o)
	if err != nil {
		return err
	}

	return a.Save(ctx, path)
}

// Close closes every opened file.
func (m *MultiPhaseSpaceMovie) Close() error { return m.mf.Close() }
