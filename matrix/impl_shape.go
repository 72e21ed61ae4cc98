// SPDX-License-Identifier: MIT

// Package matrix - shape-changing operations on Dense (Submatrix, Augment).
// Both return fresh matrices; the receiver is never mutated.

package matrix

import "fmt"

// Submatrix copies the inclusive block rows r0..r1 × cols c0..c1 (1-based).
// Implementation:
//   - Stage 1: require r0 ≤ r1, c0 ≤ c1 and both corners inside m.
//   - Stage 2: for each source row, walk its nonzeros in [c0, c1] and copy them.
//
// Errors:
//   - ErrOutOfBounds for inverted or out-of-range corners.
//
// Complexity:
//   - Time O((r1-r0+1) · log nnz + k log k) where k is the copied nonzero count.
func (m *Dense) Submatrix(r0, r1, c0, c1 int) (*Dense, error) {
	if r0 > r1 || c0 > c1 {
		return nil, matrixErrorf(opSubmatrix, fmt.Errorf("rows %d..%d, cols %d..%d: %w", r0, r1, c0, c1, ErrOutOfBounds))
	}
	if err := validateIndex(m.r, m.c, r0, c0); err != nil {
		return nil, matrixErrorf(opSubmatrix, fmt.Errorf("top-left (%d,%d): %w", r0, c0, err))
	}
	if err := validateIndex(m.r, m.c, r1, c1); err != nil {
		return nil, matrixErrorf(opSubmatrix, fmt.Errorf("bottom-right (%d,%d): %w", r1, c1, err))
	}

	rows, cols := r1-r0+1, c1-c0+1
	res := newDenseWithOptions(rows, cols, m.opts)
	var i, base int
	for i = 0; i < rows; i++ {
		base = (r0-1+i)*m.c + (c0 - 1)
		dst := i * cols
		m.store.ascendRange(base, base+cols, func(off int, v float64) bool {
			_ = res.store.set(dst+off-base, v)
			return true
		})
	}

	return res, nil
}

// Augment returns the horizontal concatenation [m | b].
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when row counts differ.
//
// Complexity:
//   - Time O((nnz(m) + nnz(b)) · log nnz).
func (m *Dense) Augment(b *Dense) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAugment, err)
	}
	if m.r != b.r {
		return nil, matrixErrorf(opAugment, fmt.Errorf("rows %d vs %d: %w", m.r, b.r, ErrDimensionMismatch))
	}

	cols := m.c + b.c
	res := newDenseWithOptions(m.r, cols, m.opts)
	mc, bc := m.c, b.c
	m.store.ascend(func(off int, v float64) bool {
		_ = res.store.set((off/mc)*cols+off%mc, v)
		return true
	})
	b.store.ascend(func(off int, v float64) bool {
		_ = res.store.set((off/bc)*cols+mc+off%bc, v)
		return true
	})

	return res, nil
}
