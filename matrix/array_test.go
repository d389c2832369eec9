package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lisa/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArrayValidation(t *testing.T) {
	_, err := matrix.NewArray([]int{2, 3}, ramp(5))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewArray([]int{-1}, nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	scalar, err := matrix.NewArray(nil, []float64{4.2})
	require.NoError(t, err)
	assert.Equal(t, 0, scalar.Dims())
	assert.Equal(t, 0, scalar.Len())
	v, err := scalar.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 4.2, v)
}

func TestArrayIndex(t *testing.T) {
	cube := phaseSpaceCube(t)
	assert.Equal(t, []int{3, 2, 4}, cube.Shape())
	assert.Equal(t, 3, cube.Len())
	assert.Equal(t, 24, cube.Size())

	last, err := cube.Index(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, last.Shape())
	v, err := last.At(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 213.0, v)

	_, err = cube.Index(3)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = cube.Index(-4)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = cube.At(0, 0)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = cube.At(0, 2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestArraySlice(t *testing.T) {
	v := matrix.NewVector(ramp(6))

	tests := []struct {
		name   string
		lo, hi int
		want   []float64
	}{
		{"drop first", 1, 6, []float64{1, 2, 3, 4, 5}},
		{"negative", -2, 6, []float64{4, 5}},
		{"clamped", 4, 100, []float64{4, 5}},
		{"inverted", 4, 2, []float64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := v.Slice(tc.lo, tc.hi)
			assert.Equal(t, tc.want, got.Values())
			assert.Equal(t, len(tc.want), got.Len())
		})
	}

	cube := phaseSpaceCube(t)
	tail := cube.Slice(1, 3)
	assert.Equal(t, []int{2, 2, 4}, tail.Shape())
	first, err := tail.At(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, first)
}

func TestArrayCrop(t *testing.T) {
	cube := phaseSpaceCube(t)
	c, err := cube.Crop(matrix.Range{Lo: 2, Hi: 3}, matrix.Range{Lo: 1, Hi: 2}, matrix.Range{Lo: 1, Hi: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2}, c.Shape())
	assert.Equal(t, []float64{211, 212}, c.Values())

	partial, err := cube.Crop(matrix.Range{Lo: 0, Hi: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, partial.Shape())

	_, err = matrix.NewVector(ramp(3)).Crop(matrix.Range{}, matrix.Range{})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestArrayReductions(t *testing.T) {
	a := mustArray(t, []int{2, 2}, -3, 1, 2, 4)

	lo, err := a.Min()
	require.NoError(t, err)
	hi, err := a.Max()
	require.NoError(t, err)
	mean, err := a.Mean()
	require.NoError(t, err)
	absMax, err := a.AbsMax()
	require.NoError(t, err)

	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, 1.0, mean)
	assert.Equal(t, 4.0, absMax)

	_, err = matrix.NewVector(nil).Mean()
	assert.ErrorIs(t, err, matrix.ErrEmpty)
}

func TestArrayMeanAxis0AndSubFrames(t *testing.T) {
	cube := phaseSpaceCube(t)
	mean, err := cube.MeanAxis0(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, mean.Shape())
	assert.Equal(t, []float64{50, 51, 52, 53, 60, 61, 62, 63}, mean.Values())

	diff, err := cube.SubFrames(mean)
	require.NoError(t, err)
	v, err := diff.At(2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 150.0, v)

	_, err = cube.MeanAxis0(2, 2)
	assert.ErrorIs(t, err, matrix.ErrEmpty)
	_, err = cube.SubFrames(matrix.NewVector(ramp(3)))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = cube.SubFrames(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestArrayCopyOnWrite(t *testing.T) {
	src := []float64{1, 2, 3}
	a := matrix.NewVector(src)
	src[0] = 100

	scaled := a.Scale(2)
	replaced := a.ReplaceBelow(2, 0)
	mapped := a.Map(func(x float64) float64 { return -x })

	assert.Equal(t, []float64{1, 2, 3}, a.Values())
	assert.Equal(t, []float64{2, 4, 6}, scaled.Values())
	assert.Equal(t, []float64{0, 2, 3}, replaced.Values())
	assert.Equal(t, []float64{-1, -2, -3}, mapped.Values())
}

func TestArrayDenseRoundTrip(t *testing.T) {
	a := mustArray(t, []int{2, 3}, ramp(6)...)
	d, err := a.Dense()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Rows())
	assert.Equal(t, a.Values(), d.Values())

	_, err = phaseSpaceCube(t).Dense()
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
