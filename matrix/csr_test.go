// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the CSR matrix.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/stretchr/testify/require"
)

// sampleCSR is
//
//	[1 0 2]
//	[0 0 0]
//	[0 3 0]
func sampleCSR(t *testing.T) *matrix.CSR {
	t.Helper()
	s, err := matrix.NewCSRFromArrays(3, 3, []float64{1, 2, 3}, []int{1, 3, 2}, []int{0, 2, 2, 3})
	require.NoError(t, err)

	return s
}

// TestCSR_FromArrays_Access covers At, Row, Column and NNZ.
func TestCSR_FromArrays_Access(t *testing.T) {
	s := sampleCSR(t)
	require.Equal(t, 3, s.NNZ())
	require.True(t, s.IsSquare())
	require.Equal(t, 2.0, mustAt(t, s, 1, 3))
	require.Equal(t, 0.0, mustAt(t, s, 2, 2))

	row, err := s.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 2}, row)

	col, err := s.Column(2)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 3}, col)

	_, err = s.At(4, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
	_, err = s.Row(0)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
	_, err = s.Column(4)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
}

// TestCSR_FromArrays_Invalid rejects every broken layout invariant.
func TestCSR_FromArrays_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		vals    []float64
		cols    []int
		ptrs    []int
		wantErr error
	}{
		{"length mismatch", []float64{1}, []int{1, 2}, []int{0, 1, 1}, matrix.ErrInvalidParameters},
		{"pointer count", []float64{1}, []int{1}, []int{0, 1}, matrix.ErrInvalidParameters},
		{"first pointer", []float64{1}, []int{1}, []int{1, 1, 1}, matrix.ErrInvalidParameters},
		{"last pointer", []float64{1}, []int{1}, []int{0, 0, 0}, matrix.ErrInvalidParameters},
		{"decreasing", []float64{1, 2}, []int{1, 2}, []int{0, 3, 2}, matrix.ErrInvalidParameters},
		{"column range", []float64{1}, []int{3}, []int{0, 1, 1}, matrix.ErrOutOfBounds},
		{"column order", []float64{1, 2}, []int{2, 1}, []int{0, 2, 2}, matrix.ErrInvalidParameters},
		{"explicit zero", []float64{0}, []int{1}, []int{0, 1, 1}, matrix.ErrInvalidParameters},
		{"nan", []float64{math.NaN()}, []int{1}, []int{0, 1, 1}, matrix.ErrInvalidValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.NewCSRFromArrays(2, 2, tc.vals, tc.cols, tc.ptrs)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	_, err := matrix.NewCSR(0, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestCSR_FromArrays_Copies ensures caller slices are not aliased.
func TestCSR_FromArrays_Copies(t *testing.T) {
	vals := []float64{5}
	s, err := matrix.NewCSRFromArrays(1, 1, vals, []int{1}, []int{0, 1})
	require.NoError(t, err)
	vals[0] = 9
	require.Equal(t, 5.0, mustAt(t, s, 1, 1))

	out := s.Values()
	out[0] = 7
	require.Equal(t, 5.0, mustAt(t, s, 1, 1))
}

// TestCSR_Set_Splicing covers overwrite, insert, delete and the no-op write.
func TestCSR_Set_Splicing(t *testing.T) {
	s := sampleCSR(t)

	require.NoError(t, s.Set(1, 3, 20)) // overwrite
	require.Equal(t, []float64{1, 20, 3}, s.Values())

	require.NoError(t, s.Set(2, 2, 4)) // insert into an empty row
	require.Equal(t, []float64{1, 20, 4, 3}, s.Values())
	require.Equal(t, []int{1, 3, 2, 2}, s.ColumnIndices())
	require.Equal(t, []int{0, 2, 3, 4}, s.RowPointers())

	require.NoError(t, s.Set(1, 2, 9)) // insert between existing columns
	require.Equal(t, []int{1, 2, 3, 2, 2}, s.ColumnIndices())
	require.Equal(t, []int{0, 3, 4, 5}, s.RowPointers())

	require.NoError(t, s.Set(1, 1, 0)) // delete
	require.Equal(t, []float64{9, 20, 4, 3}, s.Values())
	require.Equal(t, []int{0, 2, 3, 4}, s.RowPointers())

	require.NoError(t, s.Set(3, 3, 0)) // absent zero is a no-op
	require.Equal(t, 4, s.NNZ())

	require.ErrorIs(t, s.Set(3, 4, 1), matrix.ErrOutOfBounds)
	require.ErrorIs(t, s.Set(1, 1, math.Inf(1)), matrix.ErrInvalidValue)
	require.Equal(t, 4, s.NNZ())
}

// TestCSR_DenseRoundTrip compresses and expands random sparse matrices.
func TestCSR_DenseRoundTrip(t *testing.T) {
	d := sparseRand(t, 9, 7, 0.3, 5)
	s, err := matrix.CSRFromDense(d)
	require.NoError(t, err)
	require.Equal(t, d.NNZ(), s.NNZ())
	require.True(t, s.ToDense().Equals(d))

	for i := 1; i <= 9; i++ {
		for j := 1; j <= 7; j++ {
			require.Equal(t, mustAt(t, d, i, j), mustAt(t, s, i, j))
		}
	}

	_, err = matrix.CSRFromDense(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestCSR_IsSymmetric compares each nonzero with its mirror.
func TestCSR_IsSymmetric(t *testing.T) {
	sym, err := matrix.CSRFromDense(mustRows(t, [][]float64{{1, 2}, {2, 0}}))
	require.NoError(t, err)
	require.True(t, sym.IsSymmetric())

	require.False(t, sampleCSR(t).IsSymmetric())

	rect, err := matrix.NewCSR(2, 3)
	require.NoError(t, err)
	require.False(t, rect.IsSymmetric())
}

// TestCSR_Equals is logical: column order inside a row does not matter.
func TestCSR_Equals(t *testing.T) {
	b := matrix.NewBuilder()
	require.NoError(t, b.Size(3, 3))
	require.NoError(t, b.Set(1, 3, 2)) // supplied out of column order
	require.NoError(t, b.Set(1, 1, 1))
	require.NoError(t, b.Set(3, 2, 3))
	built, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, []int{3, 1, 2}, built.ColumnIndices())
	require.True(t, built.Equals(sampleCSR(t)))
	require.True(t, sampleCSR(t).Equals(built))
	require.False(t, built.Equals(nil))

	other := sampleCSR(t)
	require.NoError(t, other.Set(2, 1, 1))
	require.False(t, built.Equals(other))
}

// TestCSR_MulVec matches the Dense product.
func TestCSR_MulVec(t *testing.T) {
	d := sparseRand(t, 6, 4, 0.5, 9)
	s, err := matrix.CSRFromDense(d)
	require.NoError(t, err)

	x := []float64{1, -2, 0.5, 3}
	y, err := s.MulVec(x)
	require.NoError(t, err)

	xm, err := matrix.NewFromSlice(x, 4, 1)
	require.NoError(t, err)
	want, err := d.Multiply(xm)
	require.NoError(t, err)
	require.InDeltaSlice(t, want.Data(), y, 1e-12)

	_, err = s.MulVec([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestCSR_Transpose matches the Dense transpose and sorts columns.
func TestCSR_Transpose(t *testing.T) {
	d := sparseRand(t, 5, 8, 0.4, 12)
	s, err := matrix.CSRFromDense(d)
	require.NoError(t, err)

	tr := s.Transpose()
	require.Equal(t, 8, tr.Rows())
	require.Equal(t, 5, tr.Cols())
	require.True(t, tr.ToDense().Equals(d.Transpose()))
	require.True(t, tr.Transpose().Equals(s))
}

// TestCSR_CloneAndString covers the independent copy and the shared format.
func TestCSR_CloneAndString(t *testing.T) {
	s := sampleCSR(t)
	c := s.Clone()
	require.NoError(t, c.Set(2, 2, 5))
	require.Equal(t, 0.0, mustAt(t, s, 2, 2))

	require.Equal(t, "[1, 0, 2]\n[0, 0, 0]\n[0, 3, 0]\n", s.String())
	require.Equal(t, s.ToDense().String(), s.String())
}

// TestCSR_DoNonZero stops early and reports 1-based coordinates.
func TestCSR_DoNonZero(t *testing.T) {
	s := sampleCSR(t)
	var rows, cols []int
	s.DoNonZero(func(row, col int, _ float64) bool {
		rows = append(rows, row)
		cols = append(cols, col)
		return len(rows) < 2
	})
	require.Equal(t, []int{1, 1}, rows)
	require.Equal(t, []int{1, 3}, cols)
}
