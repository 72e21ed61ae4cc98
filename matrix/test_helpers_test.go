// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense allocates an r×c zero matrix or fails the test.
func mustDense(tb testing.TB, r, c int, opts ...matrix.Option) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c, opts...)
	require.NoError(tb, err)

	return m
}

// mustRows builds a Dense from nested rows or fails the test.
func mustRows(tb testing.TB, rows [][]float64, opts ...matrix.Option) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows, opts...)
	require.NoError(tb, err)

	return m
}

// mustSlice builds a Dense from a flat slice with inferred shape or fails the test.
func mustSlice(tb testing.TB, data []float64, rows, cols int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromSlice(data, rows, cols)
	require.NoError(tb, err)

	return m
}

// mustAt reads a 1-based element or fails the test.
func mustAt(tb testing.TB, m matrix.Matrix, row, col int) float64 {
	tb.Helper()
	v, err := m.At(row, col)
	require.NoError(tb, err)

	return v
}

// mustIdentity returns I_n or fails the test.
func mustIdentity(tb testing.TB, n int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(tb, err)

	return m
}

// fillDenseRand writes deterministic values in [-1, 1) into every cell.
// A fixed seed keeps runs reproducible.
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, m.Size())
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	require.NoError(tb, m.SetData(data))
}

// diagonallyDominant returns a random n×n matrix whose diagonal dominates
// each row, so it is always non-singular.
func diagonallyDominant(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	m := mustDense(tb, n, n)
	fillDenseRand(tb, m, seed)
	for i := 1; i <= n; i++ {
		require.NoError(tb, m.Set(i, i, float64(n)+1))
	}

	return m
}

// sparseRand returns an r×c matrix with roughly density·r·c nonzeros.
func sparseRand(tb testing.TB, r, c int, density float64, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := mustDense(tb, r, c)
	for i := 1; i <= r; i++ {
		for j := 1; j <= c; j++ {
			if rng.Float64() < density {
				require.NoError(tb, m.Set(i, j, rng.Float64()*10-5))
			}
		}
	}

	return m
}
