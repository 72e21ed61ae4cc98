// SPDX-License-Identifier: MIT
// Package matrix provides the arithmetic kernels on Dense: element-wise
// addition and subtraction (left folds over any number of operands), scalar
// scaling, matrix multiplication, transpose, trace and equality. All kernels
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - Keep every kernel sparse-aware: loops visit stored nonzeros through the
//     ordered element store instead of scanning rows*cols positions.
//   - Define operation tags and shared constants for error reporting.
//
// Notes:
//   - Results are always fresh matrices carrying the receiver's numeric policy;
//     operands are never mutated.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSubtract  = "Subtract"
	opScale     = "Scale"
	opMultiply  = "Multiply"
	opTranspose = "Transpose"
	opTrace     = "Trace"
	opSubmatrix = "Submatrix"
	opAugment   = "Augment"
	opDot       = "Dot"
	opCross     = "Cross"
	opApply     = "Apply"
	opLU        = "LU"
	opDet       = "Det"
	opInverse   = "Inverse"
	opSolve     = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
// Complexity: O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// foldAddSub computes m + sign*o_1 + sign*o_2 + ... left to right.
// Implementation:
//   - Stage 1: require ≥1 operand; validate every operand shape up front so a
//     failure never leaves partial work behind.
//   - Stage 2: clone m, then for each operand walk its nonzeros in order and
//     accumulate into the clone.
//
// Behavior highlights:
//   - Full entrywise semantics: a position that is nonzero in only one operand
//     contributes its value to the result.
//   - Cost is O(nnz(m) + Σ nnz(o_k) · log nnz) rather than O(k·r·c).
//
// Errors:
//   - ErrInvalidParameters (no operand), ErrNilMatrix, ErrDimensionMismatch,
//     ErrInvalidValue (e.g. +Inf + -Inf under a relaxed policy yields NaN).
func (m *Dense) foldAddSub(tag string, sign float64, others []*Dense) (*Dense, error) {
	if len(others) == 0 {
		return nil, matrixErrorf(tag, fmt.Errorf("no operands: %w", ErrInvalidParameters))
	}
	for idx, o := range others {
		if err := ValidateBinarySameShape(m, o); err != nil {
			return nil, matrixErrorf(tag, fmt.Errorf("operand %d: %w", idx+1, err))
		}
	}

	acc := m.Clone()
	var err error
	for _, o := range others {
		// o may be m itself; acc is a copy-on-write clone, so reading o while writing acc is safe.
		o.store.ascend(func(off int, v float64) bool {
			err = acc.putOffset(off, acc.store.get(off)+sign*v)
			return err == nil
		})
		if err != nil {
			return nil, matrixErrorf(tag, err)
		}
	}

	return acc, nil
}

// putOffset writes a raw store offset under the numeric policy.
func (m *Dense) putOffset(off int, v float64) error {
	if err := m.opts.checkValue(v); err != nil {
		return denseErrorf(ctxSet, off/m.c+1, off%m.c+1, err)
	}

	return m.store.set(off, v)
}

// Add returns the entrywise sum m + others[0] + others[1] + ... (left fold).
// At least one operand is required; all operands must share m's shape.
// Complexity: O((nnz(m) + Σ nnz) · log nnz).
func (m *Dense) Add(others ...*Dense) (*Dense, error) {
	return m.foldAddSub(opAdd, +1, others)
}

// Subtract returns the entrywise difference m - others[0] - others[1] - ... (left fold).
// At least one operand is required; all operands must share m's shape.
func (m *Dense) Subtract(others ...*Dense) (*Dense, error) {
	return m.foldAddSub(opSubtract, -1, others)
}

// Scale returns k*m.
// Behavior highlights:
//   - k == 0 yields an empty store (all-zero matrix) without visiting entries.
//
// Errors:
//   - ErrInvalidValue when a product overflows to ±Inf under the finite policy,
//     or k is NaN.
func (m *Dense) Scale(k float64) (*Dense, error) {
	res := newDenseWithOptions(m.r, m.c, m.opts)
	if err := m.opts.checkValue(k); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if k == 0 {
		return res, nil
	}
	var err error
	m.store.ascend(func(off int, v float64) bool {
		err = res.putOffset(off, v*k)
		return err == nil
	})
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	return res, nil
}

// Multiply performs standard matrix multiplication C = m × b.
// Implementation:
//   - Stage 1: validate inner dimensions (m.Cols == b.Rows).
//   - Stage 2: for each row i, walk the nonzeros a(i,k) in column order and,
//     for each, the nonzeros b(k,j) of row k; accumulate into a row buffer.
//   - Stage 3: flush nonzero accumulators into C.
//
// Behavior highlights:
//   - For every (i,j) contributions are summed in increasing k, exactly as the
//     textbook Σ_k a(i,k)·b(k,j); zero terms are skipped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrInvalidValue (overflow under policy).
//
// Complexity:
//   - Time O(Σ_i Σ_{k∈row i} nnz(b row k) · log nnz + r·c), Space O(c) scratch.
func (m *Dense) Multiply(b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(m, b); err != nil {
		return nil, matrixErrorf(opMultiply, err)
	}

	res := newDenseWithOptions(m.r, b.c, m.opts)
	acc := make([]float64, b.c) // one output row
	var (
		i, j, base int
		err        error
	)
	for i = 0; i < m.r; i++ {
		clear(acc)
		base = i * m.c
		m.store.ascendRange(base, base+m.c, func(off int, av float64) bool {
			k := off - base
			b.store.ascendRange(k*b.c, (k+1)*b.c, func(boff int, bv float64) bool {
				acc[boff-k*b.c] += av * bv
				return true
			})
			return true
		})
		for j = 0; j < b.c; j++ {
			if acc[j] == 0 {
				continue
			}
			if err = res.put(i, j, acc[j]); err != nil {
				return nil, matrixErrorf(opMultiply, err)
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(nnz · log nnz).
func (m *Dense) Transpose() *Dense {
	res := newDenseWithOptions(m.c, m.r, m.opts)
	c, r := m.c, m.r
	m.store.ascend(func(off int, v float64) bool {
		i, j := off/c, off%c
		_ = res.store.set(j*r+i, v) // value already stored in m
		return true
	})

	return res
}

// Trace returns Σ m(i,i). Requires a square matrix.
// Errors: ErrDimensionMismatch when m is not square.
func (m *Dense) Trace() (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	sum := ZeroSum
	for i := 0; i < m.r; i++ {
		sum += m.get(i, i)
	}

	return sum, nil
}

// Equals reports whether b has m's shape and every entry is exactly equal.
// A nil b is never equal.
// Complexity: O(nnz · log nnz).
func (m *Dense) Equals(b *Dense) bool {
	if b == nil || m.r != b.r || m.c != b.c || m.store.len() != b.store.len() {
		return false
	}
	eq := true
	m.store.ascend(func(off int, v float64) bool {
		eq = b.store.get(off) == v
		return eq
	})

	return eq
}

// EqualApprox reports whether b has m's shape and every pair of entries is
// within m's epsilon (absolute or relative, see WithEpsilon).
// Implementation:
//   - Stage 1: compare m's nonzeros against b.
//   - Stage 2: compare b's nonzeros at positions where m is zero.
func (m *Dense) EqualApprox(b *Dense) bool {
	if b == nil || m.r != b.r || m.c != b.c {
		return false
	}
	tol := m.opts.eps
	eq := true
	m.store.ascend(func(off int, v float64) bool {
		eq = scalar.EqualWithinAbsOrRel(v, b.store.get(off), tol, tol)
		return eq
	})
	if !eq {
		return false
	}
	b.store.ascend(func(off int, v float64) bool {
		eq = scalar.EqualWithinAbsOrRel(m.store.get(off), v, tol, tol)
		return eq
	})

	return eq
}
