// Package matrix_test contains unit tests for the Dense storage.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lisa/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseFromErrors rejects non-positive shapes and buffers of the wrong length.
func TestNewDenseFromErrors(t *testing.T) {
	_, err := matrix.NewDenseFrom(0, 5, nil)             // zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDenseFrom(5, 0, nil)              // zero columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestRowsCols verifies the dimension accessors.
func TestRowsCols(t *testing.T) {
	m := mustDense(t, 3, 4, ramp(12)...)

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	v, err := m.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 9.0, v)
}

// TestAtOutOfRange ensures At() reports ErrOutOfRange.
func TestAtOutOfRange(t *testing.T) {
	m := mustDense(t, 2, 2, 1, 2, 3, 4)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestCopies ensures neither construction nor Values shares storage.
func TestCopies(t *testing.T) {
	src := []float64{1, 0, 0, 2}
	m := mustDense(t, 2, 2, src...)
	src[0] = 5

	orig, _ := m.At(0, 0)
	require.Equal(t, 1.0, orig) // source buffer was copied

	vals := m.Values()
	vals[0] = 99
	orig, _ = m.At(0, 0)
	require.Equal(t, 1.0, orig) // Values is a copy too
}

// TestString renders rows on separate lines.
func TestString(t *testing.T) {
	m := mustDense(t, 2, 2, 1, 2.5, -3, 4)
	require.Equal(t, "[1, 2.5]\n[-3, 4]\n", m.String())
}
