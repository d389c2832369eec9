// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small deterministic fixtures shaped like Inovesa datasets.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lisa/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense builds an r×c Dense from row-major values or fails the test.
func mustDense(t *testing.T, r, c int, values ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, values)
	require.NoError(t, err)

	return m
}

// mustArray builds an Array or fails the test.
func mustArray(t *testing.T, shape []int, values ...float64) *matrix.Array {
	t.Helper()
	a, err := matrix.NewArray(shape, values)
	require.NoError(t, err)

	return a
}

// ramp returns 0, 1, ..., n-1.
func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

// phaseSpaceCube returns a 3×2×4 array (turns × space × energy) where each
// element encodes its index as 100*t + 10*x + e.
func phaseSpaceCube(t *testing.T) *matrix.Array {
	t.Helper()
	vals := make([]float64, 0, 24)
	for ti := 0; ti < 3; ti++ {
		for xi := 0; xi < 2; xi++ {
			for ei := 0; ei < 4; ei++ {
				vals = append(vals, float64(100*ti+10*xi+ei))
			}
		}
	}

	return mustArray(t, []int{3, 2, 4}, vals...)
}
