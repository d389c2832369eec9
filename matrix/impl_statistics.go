// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Reductions used by the plotting layer: global MinMax (colour limits,
//     metric prefixes) and python-like range clamping for turn windows.
//
// Behavior highlights:
//   - NaN cells are skipped by MinMax so a single bad value does not poison
//     the colour scale; an all-NaN input reports ErrEmpty.
//   - Zero-size inputs report ErrEmpty rather than returning ±Inf sentinels.

package matrix

import "math"

const opMinMax = "MinMax"

// MinMax returns the smallest and largest non-NaN value of m.
//
// Errors:
//   - ErrNilMatrix, ErrEmpty.
//
// Complexity: O(rc).
func MinMax(m *Dense) (lo, hi float64, err error) {
	if m == nil {
		return 0, 0, matrixErrorf(opMinMax, ErrNilMatrix)
	}

	return minMax(m.data, opMinMax)
}

func minMax(values []float64, tag string) (lo, hi float64, err error) {
	lo, hi = math.Inf(1), math.Inf(-1)
	seen := false
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		seen = true
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if !seen {
		return 0, 0, matrixErrorf(tag, ErrEmpty)
	}

	return lo, hi, nil
}

// ClampRange resolves python-like [lo, hi) bounds against length n:
// negative values count from the end and results are clamped to [0, n].
func ClampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}
	if hi < 0 {
		hi = 0
	}

	return lo, hi
}
