// SPDX-License-Identifier: MIT

package animation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	stdpalette "image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/katalvlaran/lisa/logging"
)

const (
	DefaultFPS     = 20
	DefaultBitrate = 18000 // kbit/s
	DefaultDPI     = 100
)

// FrameFunc renders frame i at the given resolution.
type FrameFunc func(i, dpi int) (image.Image, error)

// Animation renders Frames through Draw and encodes the result.
type Animation struct {
	Frames  []int
	Draw    FrameFunc
	FPS     float64
	Bitrate int
	DPI     int

	// Description prefixes the progress bar.
	Description string

	// Quiet disables the progress bar.
	Quiet bool

	// Progress receives the progress bar; stderr when nil.
	Progress io.Writer

	// FFmpeg is the encoder binary for non-gif movies; "ffmpeg" when empty.
	FFmpeg string
	Log    logging.Logger
}

// Range returns the frame numbers 0..n-1.
func Range(n int) []int {
	out := make([]int, max(n, 0))
	for i := range out {
		out[i] = i
	}

	return out
}

// Last returns the last k of n frame numbers, or all of them when k is not
// positive or exceeds n.
func Last(n, k int) []int {
	all := Range(n)
	if k <= 0 || k >= n {
		return all
	}

	return all[n-k:]
}

func (a *Animation) fps() float64 {
	if a.FPS <= 0 {
		return DefaultFPS
	}
	return a.FPS
}

func (a *Animation) bitrate() int {
	if a.Bitrate <= 0 {
		return DefaultBitrate
	}
	return a.Bitrate
}

func (a *Animation) dpi() int {
	if a.DPI <= 0 {
		return DefaultDPI
	}
	return a.DPI
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.Frames) }

// Render draws a single frame.
func (a *Animation) Render(frame int) (image.Image, error) {
	if a.Draw == nil {
		return nil, ErrNoDraw
	}
	img, err := a.Draw(frame, a.dpi())
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", frame, err)
	}

	return img, nil
}

// Save renders every frame and writes the movie to path.
//
// Errors:
//   - ErrNoFrames, ErrNoDraw for an empty animation.
//   - ErrFormat when path has no extension.
//   - ErrEncoder when ffmpeg is missing or fails.
//   - ctx.Err() when ctx is cancelled between frames.
func (a *Animation) Save(ctx context.Context, path string) error {
	if len(a.Frames) == 0 {
		return ErrNoFrames
	}
	if a.Draw == nil {
		return ErrNoDraw
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return fmt.Errorf("%q: %w", path, ErrFormat)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	log := logging.OrNoOp(a.Log)
	defer logging.StartTimer(log, "animation.Save")()
	log.Debug("saving animation", "path", path, "frames", len(a.Frames), "fps", a.fps())

	switch ext {
	case ".gif":
		return a.saveGIF(ctx, path)
	case ".png":
		return a.savePNGs(ctx, path)
	default:
		return a.saveFFmpeg(ctx, path)
	}
}

func (a *Animation) progress() *progressbar.ProgressBar {
	w := a.Progress
	if w == nil {
		w = os.Stderr
	}
	if a.Quiet {
		w = io.Discard
	}
	desc := a.Description
	if desc == "" {
		desc = "rendering"
	}

	return progressbar.NewOptions(len(a.Frames),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// each renders the frames in order and hands them to fn.
func (a *Animation) each(ctx context.Context, fn func(k int, img image.Image) error) error {
	bar := a.progress()
	for k, frame := range a.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := a.Render(frame)
		if err != nil {
			return err
		}
		if err := fn(k, img); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	return bar.Finish()
}

func (a *Animation) saveGIF(ctx context.Context, path string) error {
	delay := max(int(math.Round(100/a.fps())), 1)
	out := &gif.GIF{}
	err := a.each(ctx, func(_ int, img image.Image) error {
		b := img.Bounds()
		pm := image.NewPaletted(b, stdpalette.Plan9)
		draw.FloydSteinberg.Draw(pm, b, img, b.Min)
		out.Image = append(out.Image, pm)
		out.Delay = append(out.Delay, delay)
		return nil
	})
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// FramePath returns the file written for frame k when saving to a .png path.
func FramePath(path string, k int) string {
	return fmt.Sprintf("%s_%05d.png", strings.TrimSuffix(path, filepath.Ext(path)), k)
}

func (a *Animation) savePNGs(ctx context.Context, path string) error {
	return a.each(ctx, func(k int, img image.Image) error {
		f, err := os.Create(FramePath(path, k))
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
}

// FFmpegArgs returns the encoder arguments used for path. Frames arrive as
// PNG images on stdin; odd frame sizes are padded for yuv420p.
func (a *Animation) FFmpegArgs(path string) []string {
	return []string{
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-framerate", strconv.FormatFloat(a.fps(), 'f', -1, 64),
		"-i", "-",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-b:v", strconv.Itoa(a.bitrate()) + "k",
		"-pix_fmt", "yuv420p",
		path,
	}
}

func (a *Animation) saveFFmpeg(ctx context.Context, path string) error {
	bin := a.FFmpeg
	if bin == "" {
		bin = "ffmpeg"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("%s: %v: %w", bin, err, ErrEncoder)
	}
	cmd := exec.CommandContext(ctx, bin, a.FFmpegArgs(path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %v: %w", bin, err, ErrEncoder)
	}
	renderErr := a.each(ctx, func(_ int, img image.Image) error {
		return png.Encode(stdin, img)
	})
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if renderErr != nil {
		return renderErr
	}
	if waitErr != nil {
		return fmt.Errorf("%s: %v: %s: %w", bin, waitErr, strings.TrimSpace(stderr.String()), ErrEncoder)
	}

	return nil
}
