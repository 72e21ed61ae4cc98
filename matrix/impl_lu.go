// SPDX-License-Identifier: MIT

// Package matrix - LU engine with partial pivoting, and the determinant,
// inverse and linear-solve routines built on it.
//
// Purpose:
//   - Eliminate column by column on a private copy (the caller's matrix is never
//     touched), choosing the largest-magnitude pivot among the remaining rows.
//   - Report the number of row swaps as an explicit second return value.
//
// Determinism:
//   - Pivot ties go to the smallest row index (candidates are scanned in
//     increasing row order and only a strictly larger magnitude replaces the
//     current choice).
//   - An exactly-zero pivot stops the engine with ErrSingular; there is no
//     epsilon threshold.
//
// Complexity quicksheet:
//   - LU: O(min(r,c) · r · c · log nnz) worst case, far less on sparse input.
//   - Det/Inverse/Solve: one LU plus O(n² · c) back substitution.

package matrix

import (
	"fmt"
	"math"
)

// rowEntry is a snapshot of one nonzero in a row (0-based column).
type rowEntry struct {
	col int
	v   float64
}

// rowEntries snapshots the nonzeros of 0-based row i with column ≥ from.
// A snapshot is required before mutating the store: the B-tree must not be
// written while it is being iterated.
func (m *Dense) rowEntries(i, from int) []rowEntry {
	var out []rowEntry
	base := i * m.c
	m.store.ascendRange(base+from, base+m.c, func(off int, v float64) bool {
		out = append(out, rowEntry{col: off - base, v: v})
		return true
	})

	return out
}

// swapRows exchanges 0-based rows a and b in place.
func (m *Dense) swapRows(a, b int) {
	ra, rb := m.rowEntries(a, 0), m.rowEntries(b, 0)
	for _, e := range ra {
		_ = m.store.set(a*m.c+e.col, 0)
	}
	for _, e := range rb {
		_ = m.store.set(b*m.c+e.col, 0)
	}
	for _, e := range ra {
		_ = m.store.set(b*m.c+e.col, e.v)
	}
	for _, e := range rb {
		_ = m.store.set(a*m.c+e.col, e.v)
	}
}

// luInPlace runs forward elimination with partial pivoting on m itself.
// Implementation, for k = 0..min(r,c)-1:
//   - Stage 1 (pivot): p = argmax_{i≥k} |m(i,k)|, first row wins ties;
//     |m(p,k)| == 0 ⇒ ErrSingular.
//   - Stage 2 (swap): if p != k exchange rows p and k and count the swap.
//   - Stage 3 (eliminate): for i > k, j > k:
//     m(i,j) -= m(k,j) * (m(i,k)/m(k,k)); then m(i,k) = 0.
//
// Behavior highlights:
//   - Only nonzeros of the pivot row are visited in Stage 3; a zero m(k,j)
//     leaves m(i,j) unchanged, so skipping it is exact.
//
// Returns:
//   - swaps: number of row exchanges performed.
//
// Errors:
//   - ErrSingular (zero pivot), ErrInvalidValue (overflow under the finite policy).
func (m *Dense) luInPlace() (int, error) {
	steps := min(m.r, m.c)
	swaps := 0
	var (
		i, k, p       int
		best, cand    float64
		pivot, aik, f float64
		pivotRow      []rowEntry
		err           error
	)
	for k = 0; k < steps; k++ {
		// Stage 1: pivot selection.
		p, best = k, math.Abs(m.get(k, k))
		for i = k + 1; i < m.r; i++ {
			if cand = math.Abs(m.get(i, k)); cand > best {
				p, best = i, cand
			}
		}
		if best == ZeroPivot {
			return swaps, fmt.Errorf("pivot in column %d: %w", k+1, ErrSingular)
		}

		// Stage 2: swap.
		if p != k {
			m.swapRows(k, p)
			swaps++
		}

		// Stage 3: eliminate below the pivot.
		pivot = m.get(k, k)
		pivotRow = m.rowEntries(k, k+1)
		for i = k + 1; i < m.r; i++ {
			aik = m.get(i, k)
			if aik == 0 {
				continue
			}
			f = aik / pivot
			for _, e := range pivotRow {
				if err = m.put(i, e.col, m.get(i, e.col)-e.v*f); err != nil {
					return swaps, err
				}
			}
			_ = m.store.set(i*m.c+k, 0)
		}
	}

	return swaps, nil
}

// LU factorizes a copy of m with partial pivoting.
// Implementation:
//   - Stage 1: clone m (the receiver is never mutated).
//   - Stage 2: run forward elimination over k = 1..min(Rows, Cols).
//
// Returns:
//   - *Dense: the eliminated matrix (upper-triangular factor on and above the
//     diagonal; entries below the diagonal are zero), same shape as m.
//   - int   : number of row swaps performed during pivoting.
//
// Errors:
//   - ErrSingular when a pivot column has no nonzero candidate.
func (m *Dense) LU() (*Dense, int, error) {
	w := m.Clone()
	swaps, err := w.luInPlace()
	if err != nil {
		return nil, 0, matrixErrorf(opLU, err)
	}

	return w, swaps, nil
}

// Det returns the determinant (-1)^swaps · Π diag(U) of a square matrix.
//
// Behavior highlights:
//   - A singular input is reported as ErrSingular rather than returning 0:
//     the zero pivot stops the LU engine before a product is formed.
//
// Errors:
//   - ErrDimensionMismatch (not square), ErrSingular.
func (m *Dense) Det() (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	u, swaps, err := m.LU()
	if err != nil {
		return 0, matrixErrorf(opDet, err)
	}

	det := 1.0
	for i := 0; i < u.r; i++ {
		det *= u.get(i, i)
	}
	if swaps%2 == 1 {
		det = -det
	}

	return det, nil
}

// backSubstitute clears the entries above the diagonal of the left n×n block
// of an eliminated augmented matrix, bottom row upward, then divides every row
// by its diagonal entry.
func (m *Dense) backSubstitute(n int) error {
	var (
		i, r         int
		below, above float64
		f            float64
		row          []rowEntry
		err          error
	)
	for i = n - 1; i > 0; i-- {
		below = m.get(i, i)
		row = m.rowEntries(i, i+1)
		for r = i - 1; r >= 0; r-- {
			above = m.get(r, i)
			if above == 0 {
				continue
			}
			f = above / below
			for _, e := range row {
				if err = m.put(r, e.col, m.get(r, e.col)-e.v*f); err != nil {
					return err
				}
			}
			_ = m.store.set(r*m.c+i, 0)
		}
	}

	// Normalise each row by its own diagonal entry.
	var d float64
	for i = 0; i < n; i++ {
		d = m.get(i, i)
		for _, e := range m.rowEntries(i, i) {
			if err = m.put(i, e.col, e.v/d); err != nil {
				return err
			}
		}
	}

	return nil
}

// Inverse returns m⁻¹ computed by Gauss–Jordan elimination on [m | I].
// Implementation:
//   - Stage 1: validate square; augment with the identity of the same order.
//   - Stage 2: forward elimination with partial pivoting (LU engine).
//   - Stage 3: back substitution bottom-up, then per-row normalisation.
//   - Stage 4: return the right half.
//
// Errors:
//   - ErrDimensionMismatch (not square).
//   - ErrSingular for ANY failure of the LU stage; its detail is discarded.
func (m *Dense) Inverse() (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.r

	aug, err := m.Augment(identityWithOptions(n, m.opts))
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if _, err = aug.luInPlace(); err != nil {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}
	if err = aug.backSubstitute(n); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return aug.Submatrix(1, n, n+1, 2*n)
}

// Solve returns X with m·X = b for square, non-singular m.
// b may carry several right-hand sides (one per column).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (m not square or b.Rows != m.Rows),
//     ErrSingular.
func (m *Dense) Solve(b *Dense) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if b.r != m.r {
		return nil, matrixErrorf(opSolve, fmt.Errorf("rhs rows %d vs %d: %w", b.r, m.r, ErrDimensionMismatch))
	}
	n := m.r

	aug, err := m.Augment(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if _, err = aug.luInPlace(); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err = aug.backSubstitute(n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return aug.Submatrix(1, n, n+1, n+b.c)
}
