// SPDX-License-Identifier: MIT

// Package animation turns a sequence of rendered frames into a movie.
//
// An Animation holds the frame numbers to render and a FrameFunc that draws
// one of them. Save picks the encoder from the file extension:
//
//	.gif          encoded in process
//	.png          one file per frame: out.png -> out_00000.png, out_00001.png, ...
//	anything else piped to ffmpeg as PNG frames
//
// A progress bar is written to stderr while frames render unless Quiet is set.
// DataFrames builds a FrameFunc for plain line data.
package animation
