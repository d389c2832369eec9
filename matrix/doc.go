// SPDX-License-Identifier: MIT

// Package matrix holds the numeric storage used across Lisa.
//
// Inovesa writes its results as HDF5 datasets of up to three dimensions
// (time × space × energy for phase spaces). This package provides:
//
//   - Dense: a row-major 2D matrix with bounds-checked accessors, used for
//     single snapshots (one bunch profile per row, one phase-space slice).
//   - Array: an N-dimensional row-major buffer with the HDF5 shape attached,
//     supporting axis-0 indexing, slicing and means, cropping and scaling.
//   - Statistics helpers (MinMax, Mean, MeanAxis0) that the plotting layer
//     uses to pick metric prefixes and colour limits.
//
// Determinism:
//   - Every loop walks the flat buffer in row-major order; no map iteration.
//   - Public accessors return sentinel errors instead of panicking.
//
// See example_test.go for usage.
package matrix
