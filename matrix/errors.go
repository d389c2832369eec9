// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Algorithms return these sentinels, wrapped with a call-site tag where the
// context helps; tests match them with errors.Is. Nothing here panics on user
// input.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a non-positive or inconsistent shape.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	// Public indexers (At/Set/Index) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands,
	// e.g. a value buffer whose length does not match the declared shape.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil receiver or argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrEmpty is returned by reductions (Min, Max, Mean) over zero elements.
	ErrEmpty = errors.New("matrix: empty input")
)

// matrixErrorf prefixes err with an operation tag, preserving the sentinel.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
