// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/stretchr/testify/require"
)

// TestBuilder_TriplesToArrays pins the reference 10×3 compilation.
func TestBuilder_TriplesToArrays(t *testing.T) {
	b := matrix.NewBuilder()
	require.NoError(t, b.Size(10, 3))
	require.NoError(t, b.Set(2, 1, 1))
	require.NoError(t, b.Set(4, 2, 2))
	require.NoError(t, b.Set(10, 3, 3))

	s, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, s.Values())
	require.Equal(t, []int{1, 2, 3}, s.ColumnIndices())
	require.Equal(t, []int{0, 0, 1, 1, 2, 2, 2, 2, 2, 2, 3}, s.RowPointers())
	require.Equal(t, 2.0, mustAt(t, s, 4, 2))
}

// TestBuilder_OverwriteAndRemove ensures repeated positions overwrite and
// zero removes a recorded value.
func TestBuilder_OverwriteAndRemove(t *testing.T) {
	b := matrix.NewBuilder()
	require.NoError(t, b.Size(2, 2))
	require.NoError(t, b.Set(1, 1, 1))
	require.NoError(t, b.Set(1, 2, 5))
	require.NoError(t, b.Set(1, 1, 7)) // overwrite, not accumulate
	require.NoError(t, b.Set(1, 2, 0)) // remove
	require.NoError(t, b.Set(2, 2, 0)) // zero never recorded
	require.Equal(t, 1, b.Len())

	s, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []float64{7}, s.Values())
	require.Equal(t, []int{0, 1, 1}, s.RowPointers())
}

// TestBuilder_Errors covers every failure mode of the write-once contract.
func TestBuilder_Errors(t *testing.T) {
	t.Run("set before size", func(t *testing.T) {
		err := matrix.NewBuilder().Set(1, 1, 1)
		require.ErrorIs(t, err, matrix.ErrInvalidParameters)
	})
	t.Run("build before size", func(t *testing.T) {
		_, err := matrix.NewBuilder().Build()
		require.ErrorIs(t, err, matrix.ErrInvalidParameters)
	})
	t.Run("bad size", func(t *testing.T) {
		require.ErrorIs(t, matrix.NewBuilder().Size(0, 3), matrix.ErrInvalidDimensions)
	})
	t.Run("bounds and values", func(t *testing.T) {
		b := matrix.NewBuilder()
		require.NoError(t, b.Size(2, 2))
		require.ErrorIs(t, b.Set(3, 1, 1), matrix.ErrOutOfBounds)
		require.ErrorIs(t, b.Set(1, 1, math.NaN()), matrix.ErrInvalidValue)
		require.ErrorIs(t, b.Set(1, 1, math.Inf(1)), matrix.ErrInvalidValue)
	})
	t.Run("rows out of order", func(t *testing.T) {
		b := matrix.NewBuilder()
		require.NoError(t, b.Size(3, 3))
		require.NoError(t, b.Set(2, 1, 1))
		require.NoError(t, b.Set(1, 1, 1))
		_, err := b.Build()
		require.ErrorIs(t, err, matrix.ErrInvalidParameters)
		require.NotErrorIs(t, err, matrix.ErrBuilderConsumed)
	})
	t.Run("shape shrunk after set", func(t *testing.T) {
		b := matrix.NewBuilder()
		require.NoError(t, b.Size(3, 3))
		require.NoError(t, b.Set(3, 3, 1))
		require.NoError(t, b.Size(2, 2))
		_, err := b.Build()
		require.ErrorIs(t, err, matrix.ErrOutOfBounds)
	})
	t.Run("consumed", func(t *testing.T) {
		b := matrix.NewBuilder()
		require.NoError(t, b.Size(1, 1))
		_, err := b.Build()
		require.NoError(t, err)

		_, err = b.Build()
		require.ErrorIs(t, err, matrix.ErrBuilderConsumed)
		require.ErrorIs(t, err, matrix.ErrInvalidParameters)
		require.ErrorIs(t, b.Set(1, 1, 1), matrix.ErrBuilderConsumed)
		require.ErrorIs(t, b.Size(1, 1), matrix.ErrBuilderConsumed)
	})
}

// TestBuilder_RelaxedPolicy carries the options into the compiled matrix.
func TestBuilder_RelaxedPolicy(t *testing.T) {
	b := matrix.NewBuilder(matrix.WithNoValidateNaNInf())
	require.NoError(t, b.Size(1, 2))
	require.NoError(t, b.Set(1, 2, math.Inf(-1)))
	s, err := b.Build()
	require.NoError(t, err)
	require.False(t, s.Options().ValidatesNaNInf())
	require.True(t, math.IsInf(mustAt(t, s, 1, 2), -1))
}
