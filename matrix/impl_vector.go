// SPDX-License-Identifier: MIT

// Package matrix - vector products on Dense. A vector is any matrix with a
// single row or a single column; row and column vectors are interchangeable.

package matrix

import "fmt"

// Dot returns the inner product of two vectors of equal length.
// Orientation is ignored: a 1×n row and an n×1 column dot together.
//
// Errors:
//   - ErrNilMatrix; ErrInvalidValue when either operand is not a vector;
//     ErrDimensionMismatch when lengths differ.
//
// Complexity:
//   - Time O(nnz(m) · log nnz(b)).
func (m *Dense) Dot(b *Dense) (float64, error) {
	if err := ValidateNotNil(b); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	if !isVector(m) || !isVector(b) {
		return 0, matrixErrorf(opDot, fmt.Errorf("%dx%d · %dx%d: %w", m.r, m.c, b.r, b.c, ErrInvalidValue))
	}
	if m.Size() != b.Size() {
		return 0, matrixErrorf(opDot, fmt.Errorf("length %d vs %d: %w", m.Size(), b.Size(), ErrDimensionMismatch))
	}

	// For vectors the store offset is the element position in either orientation.
	sum := ZeroSum
	m.store.ascend(func(off int, v float64) bool {
		sum += v * b.store.get(off)
		return true
	})

	return sum, nil
}

// Cross returns the 3-vector cross product m × b as a 3×1 column.
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch unless both operands are 3-vectors.
func (m *Dense) Cross(b *Dense) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opCross, err)
	}
	if !isVector(m) || !isVector(b) || m.Size() != 3 || b.Size() != 3 {
		return nil, matrixErrorf(opCross, fmt.Errorf("%dx%d × %dx%d: %w", m.r, m.c, b.r, b.c, ErrDimensionMismatch))
	}

	a1, a2, a3 := m.store.get(0), m.store.get(1), m.store.get(2)
	b1, b2, b3 := b.store.get(0), b.store.get(1), b.store.get(2)
	res := newDenseWithOptions(3, 1, m.opts)
	for i, v := range [3]float64{
		a2*b3 - a3*b2,
		a3*b1 - a1*b3,
		a1*b2 - a2*b1,
	} {
		if err := res.put(i, 0, v); err != nil {
			return nil, matrixErrorf(opCross, err)
		}
	}

	return res, nil
}
