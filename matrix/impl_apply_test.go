// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/stretchr/testify/require"
)

// TestApply_AllElements maps zeros too when no filter is given.
func TestApply_AllElements(t *testing.T) {
	m := mustRows(t, [][]float64{{0, 1}, {2, 0}})
	out, err := m.Apply(func(v float64, _, _ int) float64 { return v + 1 }, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 1}, out.Data())
	require.Equal(t, []float64{0, 1, 2, 0}, m.Data()) // receiver untouched
}

// TestApply_FilterAndCoordinates passes 1-based coordinates to both callbacks.
func TestApply_FilterAndCoordinates(t *testing.T) {
	m := mustDense(t, 2, 3)
	diag := func(_ float64, row, col int) bool { return row == col }
	out, err := m.Apply(func(_ float64, row, col int) float64 { return float64(10*row + col) }, diag)
	require.NoError(t, err)
	require.Equal(t, []float64{11, 0, 0, 0, 22, 0}, out.Data())
}

// TestApplyNonZero visits stored entries only.
func TestApplyNonZero(t *testing.T) {
	m := mustRows(t, [][]float64{{0, 2}, {3, 0}})
	calls := 0
	out, err := m.ApplyNonZero(func(v float64, _, _ int) float64 {
		calls++
		return v * v
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, []float64{0, 4, 9, 0}, out.Data())

	same, err := m.Apply(func(v float64, _, _ int) float64 { return v * v }, matrix.NonZero)
	require.NoError(t, err)
	require.True(t, same.Equals(out))
}

// TestApply_Errors rejects a nil function and policy-violating results.
func TestApply_Errors(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}})

	_, err := m.Apply(nil, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidParameters)
	_, err = m.ApplyNonZero(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidParameters)

	inf := func(float64, int, int) float64 { return math.Inf(1) }
	_, err = m.Apply(inf, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidValue)
	_, err = m.ApplyNonZero(inf)
	require.ErrorIs(t, err, matrix.ErrInvalidValue)
	require.Equal(t, []float64{1, 2}, m.Data())
}
