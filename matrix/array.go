// SPDX-License-Identifier: MIT

// Package matrix - N-dimensional row-major arrays.
//
// Purpose:
//   - Carry HDF5 datasets of any rank with their shape (time axis first).
//   - Offer the axis-0 operations the analysis layer needs: Index (one
//     turn), Slice (a range of turns), MeanAxis0 (mean profile), SubFrames
//     (difference of each turn to a reference frame).
//   - Keep every operation copy-on-write: results never alias the receiver.
//
// Indexing follows python-like conventions for axis 0: negative indices count
// from the end, Slice bounds are clamped.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	opNewArray  = "NewArray"
	opArrayAt   = "Array.At"
	opIndex     = "Array.Index"
	opCrop      = "Array.Crop"
	opMeanAxis0 = "Array.MeanAxis0"
	opSubFrames = "Array.SubFrames"
	opToDense   = "Array.Dense"
	opReduce    = "Array.Reduce"
)

// Range is a half-open [Lo, Hi) interval along one axis.
type Range struct {
	Lo, Hi int
}

// Array is a row-major N-dimensional float64 buffer.
// A rank-0 array (empty shape) holds exactly one value.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// NewArray copies values into an array of the given shape.
//
// Errors:
//   - ErrInvalidDimensions for negative extents.
//   - ErrDimensionMismatch when len(values) differs from the shape's product.
func NewArray(shape []int, values []float64) (*Array, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, matrixErrorf(opNewArray, ErrInvalidDimensions)
		}
		size *= d
	}
	if len(values) != size {
		return nil, fmt.Errorf("%s: shape %v wants %d values, got %d: %w",
			opNewArray, shape, size, len(values), ErrDimensionMismatch)
	}
	buf := make([]float64, size)
	copy(buf, values)

	return newArrayOwned(append([]int(nil), shape...), buf), nil
}

// NewVector is shorthand for a rank-1 array.
func NewVector(values []float64) *Array {
	buf := make([]float64, len(values))
	copy(buf, values)

	return newArrayOwned([]int{len(values)}, buf)
}

// newArrayOwned adopts shape and data without copying.
func newArrayOwned(shape []int, data []float64) *Array {
	strides := make([]int, len(shape))
	acc := 1
	for k := len(shape) - 1; k >= 0; k-- {
		strides[k] = acc
		acc *= shape[k]
	}

	return &Array{shape: shape, strides: strides, data: data}
}

// Shape returns a copy of the extents.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Dims returns the rank.
func (a *Array) Dims() int { return len(a.shape) }

// Len returns the extent of axis 0 (0 for rank-0 arrays).
func (a *Array) Len() int {
	if len(a.shape) == 0 {
		return 0
	}

	return a.shape[0]
}

// Size returns the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// Values returns a copy of the row-major buffer.
func (a *Array) Values() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)

	return out
}

// Scalar returns the single value of a rank-0 or one-element array.
func (a *Array) Scalar() (float64, error) {
	if len(a.data) != 1 {
		return 0, fmt.Errorf("Array.Scalar: %d elements: %w", len(a.data), ErrDimensionMismatch)
	}

	return a.data[0], nil
}

// At returns the element at the full index tuple.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, matrixErrorf(opArrayAt, ErrDimensionMismatch)
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return 0, fmt.Errorf("%s%v: %w", opArrayAt, idx, ErrOutOfRange)
		}
		off += i * a.strides[k]
	}

	return a.data[off], nil
}

// Index returns the sub-array at position i of axis 0 (a copy).
// Negative i counts from the end.
func (a *Array) Index(i int) (*Array, error) {
	if len(a.shape) == 0 {
		return nil, matrixErrorf(opIndex, ErrInvalidDimensions)
	}
	n := a.shape[0]
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%s(%d): %w", opIndex, i, ErrOutOfRange)
	}
	step := a.strides[0]
	buf := make([]float64, step)
	copy(buf, a.data[i*step:(i+1)*step])

	return newArrayOwned(append([]int(nil), a.shape[1:]...), buf), nil
}

// Slice returns rows [lo, hi) of axis 0 with python-like clamping.
// An inverted or empty range yields a zero-length array.
func (a *Array) Slice(lo, hi int) *Array {
	if len(a.shape) == 0 {
		return a.Clone()
	}
	lo, hi = ClampRange(lo, hi, a.shape[0])
	if hi < lo {
		hi = lo
	}
	step := a.strides[0]
	buf := make([]float64, (hi-lo)*step)
	copy(buf, a.data[lo*step:hi*step])
	shape := append([]int(nil), a.shape...)
	shape[0] = hi - lo

	return newArrayOwned(shape, buf)
}

// Crop keeps [Lo, Hi) along each axis given; missing trailing ranges keep the
// full axis. Bounds are clamped like Slice.
func (a *Array) Crop(ranges ...Range) (*Array, error) {
	if len(ranges) > len(a.shape) {
		return nil, matrixErrorf(opCrop, ErrDimensionMismatch)
	}
	lo := make([]int, len(a.shape))
	ext := make([]int, len(a.shape))
	for k, d := range a.shape {
		l, h := 0, d
		if k < len(ranges) {
			l, h = ClampRange(ranges[k].Lo, ranges[k].Hi, d)
			if h < l {
				h = l
			}
		}
		lo[k], ext[k] = l, h-l
	}
	out := newArrayOwned(ext, nil)
	size := 1
	for _, e := range ext {
		size *= e
	}
	out.data = make([]float64, size)
	if size == 0 {
		return out, nil
	}
	idx := make([]int, len(ext))
	for flat := 0; flat < size; flat++ {
		src := 0
		for k := range idx {
			src += (lo[k] + idx[k]) * a.strides[k]
		}
		out.data[flat] = a.data[src]
		for k := len(idx) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < ext[k] {
				break
			}
			idx[k] = 0
		}
	}

	return out, nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	buf := make([]float64, len(a.data))
	copy(buf, a.data)

	return newArrayOwned(append([]int(nil), a.shape...), buf)
}

// Scale returns f*a.
func (a *Array) Scale(f float64) *Array {
	out := a.Clone()
	floats.Scale(f, out.data)

	return out
}

// Map returns a copy with f applied to every element.
func (a *Array) Map(f func(float64) float64) *Array {
	out := a.Clone()
	for k, v := range out.data {
		out.data[k] = f(v)
	}

	return out
}

// ReplaceBelow returns a copy where every element < threshold becomes v.
func (a *Array) ReplaceBelow(threshold, v float64) *Array {
	return a.Map(func(x float64) float64 {
		if x < threshold {
			return v
		}
		return x
	})
}

// MinMax returns the smallest and largest non-NaN element.
func (a *Array) MinMax() (lo, hi float64, err error) {
	return minMax(a.data, opReduce)
}

// Min returns the smallest non-NaN element.
func (a *Array) Min() (float64, error) {
	lo, _, err := a.MinMax()
	return lo, err
}

// Max returns the largest non-NaN element.
func (a *Array) Max() (float64, error) {
	_, hi, err := a.MinMax()
	return hi, err
}

// Mean returns the arithmetic mean of all elements.
func (a *Array) Mean() (float64, error) {
	if len(a.data) == 0 {
		return 0, matrixErrorf(opReduce, ErrEmpty)
	}

	return stat.Mean(a.data, nil), nil
}

// MeanAxis0 averages the axis-0 frames in [lo, hi) and returns an array of
// shape Shape()[1:].
func (a *Array) MeanAxis0(lo, hi int) (*Array, error) {
	if len(a.shape) == 0 {
		return nil, matrixErrorf(opMeanAxis0, ErrInvalidDimensions)
	}
	lo, hi = ClampRange(lo, hi, a.shape[0])
	if hi <= lo {
		return nil, matrixErrorf(opMeanAxis0, ErrEmpty)
	}
	step := a.strides[0]
	buf := make([]float64, step)
	for i := lo; i < hi; i++ {
		floats.Add(buf, a.data[i*step:(i+1)*step])
	}
	floats.Scale(1/float64(hi-lo), buf)

	return newArrayOwned(append([]int(nil), a.shape[1:]...), buf), nil
}

// SubFrames subtracts ref (shape Shape()[1:]) from every axis-0 frame.
func (a *Array) SubFrames(ref *Array) (*Array, error) {
	if ref == nil {
		return nil, matrixErrorf(opSubFrames, ErrNilMatrix)
	}
	if len(a.shape) == 0 || len(ref.data) != a.strides[0] {
		return nil, matrixErrorf(opSubFrames, ErrDimensionMismatch)
	}
	out := a.Clone()
	step := a.strides[0]
	for i := 0; i < a.shape[0]; i++ {
		floats.Sub(out.data[i*step:(i+1)*step], ref.data)
	}

	return out, nil
}

// AbsMax returns max(|min|, |max|), the symmetric colour limit of a frame set.
func (a *Array) AbsMax() (float64, error) {
	lo, hi, err := a.MinMax()
	if err != nil {
		return 0, err
	}

	return math.Max(math.Abs(lo), math.Abs(hi)), nil
}

// Dense converts a rank-2 array to a Dense matrix (copy).
func (a *Array) Dense() (*Dense, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("%s: rank %d: %w", opToDense, len(a.shape), ErrInvalidDimensions)
	}

	return NewDenseFrom(a.shape[0], a.shape[1], a.data)
}
