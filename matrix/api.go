// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin entry points for common tasks across the package.
//   - Each facade delegates to the canonical method; no logic is duplicated.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of the kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "fmt"

// ---------- Constructors & Utilities ----------

// NewZeros returns a new all-zero *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
// Complexity: O(1); zeros are not stored.
func NewZeros(rows, cols int, opts ...Option) (*Dense, error) {
	return NewDense(rows, cols, opts...)
}

// NewIdentity returns I_n (ones on the diagonal, zeros elsewhere).
// Errors: ErrInvalidDimensions when n < 1.
// Complexity: O(n log n).
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	if err := ValidateDims(n, n); err != nil {
		return nil, err
	}

	return identityWithOptions(n, gatherOptions(opts...)), nil
}

// identityWithOptions builds I_n under an already-resolved policy. n ≥ 1.
func identityWithOptions(n int, o Options) *Dense {
	id := newDenseWithOptions(n, n, o)
	for i := 0; i < n; i++ {
		_ = id.store.set(i*n+i, 1)
	}

	return id
}

// ZerosLike returns a new zero matrix with m's shape and numeric policy.
func ZerosLike(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return newDenseWithOptions(m.r, m.c, m.opts), nil
}

// IdentityLike returns I with dimension Rows(m); requires square shape.
func IdentityLike(m *Dense) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, err
	}

	return identityWithOptions(m.r, m.opts), nil
}

// ToDense materializes any Matrix as a *Dense. A *Dense is cloned; other
// implementations are copied through DoNonZero.
// Errors: ErrNilMatrix.
func ToDense(m Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d.Clone(), nil
	}

	res := newDenseWithOptions(m.Rows(), m.Cols(), gatherOptions(opts...))
	var err error
	m.DoNonZero(func(row, col int, v float64) bool {
		err = res.Set(row, col, v)
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("ToDense: %w", err)
	}

	return res, nil
}

// ---------- Linear Algebra (facades map 1:1 to methods) ----------

// Sum is an alias for a.Add(b).
func Sum(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	return a.Add(b)
}

// Diff is an alias for a.Subtract(b).
func Diff(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSubtract, err)
	}

	return a.Subtract(b)
}

// Product is an alias for a.Multiply(b).
func Product(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMultiply, err)
	}

	return a.Multiply(b)
}

// T is an alias for m.Transpose().
func T(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	return m.Transpose(), nil
}

// Determinant is an alias for m.Det().
func Determinant(m *Dense) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}

	return m.Det()
}

// InverseOf is an alias for m.Inverse().
func InverseOf(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return m.Inverse()
}

// LUDecompose is an alias for m.LU(): the eliminated matrix and swap count.
func LUDecompose(m *Dense) (*Dense, int, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, 0, matrixErrorf(opLU, err)
	}

	return m.LU()
}
