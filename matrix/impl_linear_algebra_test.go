// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Dense arithmetic kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/stretchr/testify/require"
)

// TestAdd_FullEntrywise ensures positions nonzero in only one operand are kept.
func TestAdd_FullEntrywise(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 0}, {0, 4}})
	b := mustRows(t, [][]float64{{0, 2}, {3, -4}})

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 0}, sum.Data())
	require.Equal(t, 3, sum.NNZ()) // the cancelled (2,2) slot is not stored

	// operands untouched
	require.Equal(t, []float64{1, 0, 0, 4}, a.Data())
}

// TestAdd_Variadic folds left over several operands, including the receiver itself.
func TestAdd_Variadic(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	sum, err := a.Add(a, a)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 6, 9, 12}, sum.Data())

	diff, err := a.Subtract(a, a)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -2, -3, -4}, diff.Data())
}

// TestAddSubtract_Errors covers missing, nil and mis-shaped operands.
func TestAddSubtract_Errors(t *testing.T) {
	a := mustDense(t, 2, 2)

	_, err := a.Add()
	require.ErrorIs(t, err, matrix.ErrInvalidParameters)

	_, err = a.Add(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = a.Subtract(mustDense(t, 2, 2), mustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestAdd_OverflowRejected ensures a sum overflowing to +Inf fails under the finite policy.
func TestAdd_OverflowRejected(t *testing.T) {
	a := mustRows(t, [][]float64{{math.MaxFloat64}})
	_, err := a.Add(a)
	require.ErrorIs(t, err, matrix.ErrInvalidValue)
}

// TestScale covers the generic path and the k == 0 shortcut.
func TestScale(t *testing.T) {
	a := mustRows(t, [][]float64{{1, -2}, {0, 4}})

	s, err := a.Scale(-0.5)
	require.NoError(t, err)
	require.Equal(t, []float64{-0.5, 1, 0, -2}, s.Data())

	z, err := a.Scale(0)
	require.NoError(t, err)
	require.Equal(t, 0, z.NNZ())

	_, err = a.Scale(math.NaN())
	require.ErrorIs(t, err, matrix.ErrInvalidValue)
}

// TestMultiply checks a hand-computed product and the shape rule.
func TestMultiply(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := a.Multiply(b)
	require.NoError(t, err)
	require.Equal(t, 2, c.Rows())
	require.Equal(t, 2, c.Cols())
	require.Equal(t, []float64{58, 64, 139, 154}, c.Data())

	_, err = a.Multiply(a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Multiply(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMultiply_IdentityNeutral verifies M·I = I·M = M for random squares.
func TestMultiply_IdentityNeutral(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		m := mustDense(t, n, n)
		fillDenseRand(t, m, int64(n))
		id := mustIdentity(t, n)

		left, err := m.Multiply(id)
		require.NoError(t, err)
		require.True(t, left.Equals(m))

		right, err := id.Multiply(m)
		require.NoError(t, err)
		require.True(t, right.Equals(m))
	}
}

// TestMultiply_SparseMatchesGonum compares against gonum on sparse input.
func TestMultiply_SparseMatchesGonum(t *testing.T) {
	a := sparseRand(t, 12, 9, 0.2, 1)
	b := sparseRand(t, 9, 15, 0.2, 2)

	got, err := a.Multiply(b)
	require.NoError(t, err)

	want := gonumProduct(a, b)
	require.True(t, got.EqualApprox(want), "sparse product differs from gonum")
}

// TestTranspose_Involution verifies (Mᵀ)ᵀ = M and the shape swap.
func TestTranspose_Involution(t *testing.T) {
	m := sparseRand(t, 4, 6, 0.5, 3)
	tr := m.Transpose()
	require.Equal(t, 6, tr.Rows())
	require.Equal(t, 4, tr.Cols())
	require.Equal(t, mustAt(t, m, 2, 5), mustAt(t, tr, 5, 2))
	require.True(t, tr.Transpose().Equals(m))
}

// TestTrace covers the square requirement.
func TestTrace(t *testing.T) {
	tr, err := mustRows(t, [][]float64{{1, 2}, {3, 4}}).Trace()
	require.NoError(t, err)
	require.Equal(t, 5.0, tr)

	_, err = mustDense(t, 2, 3).Trace()
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestEquals_And_EqualApprox distinguishes exact and tolerant comparison.
func TestEquals_And_EqualApprox(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 0}, {0, 1}})
	b := mustRows(t, [][]float64{{1 + 1e-12, 0}, {0, 1}})
	c := mustRows(t, [][]float64{{1, 1e-12}, {0, 1}})

	require.False(t, a.Equals(b))
	require.True(t, a.EqualApprox(b))
	require.True(t, a.EqualApprox(c)) // nonzero only in the second operand
	require.False(t, a.Equals(nil))
	require.False(t, a.EqualApprox(mustDense(t, 2, 3)))

	strict := mustRows(t, [][]float64{{1, 0}, {0, 1}}, matrix.WithEpsilon(0))
	require.False(t, strict.EqualApprox(b))
}
