// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Structural transforms over Dense. Transpose turns space-major Inovesa
//     slices into energy rows for rendering.
//   - Every transform allocates a fresh result; operands are never mutated.
//
// Determinism:
//   - Fixed i→j traversal over the row-major buffer.

package matrix

const opTranspose = "Transpose"

// Transpose returns mᵀ.
// Phase-space slices are stored space-major; the renderer wants energy rows,
// so this is the hot path of PhaseSpace.Slice.
//
// Complexity: O(rc).
func Transpose(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opTranspose, ErrNilMatrix)
	}
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}
