// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with %w)
// and tests MUST check them via errors.Is. No kernel panics on user input.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Refinements (ErrInvalidValue, ErrInvalidDimensions,
// ErrBuilderConsumed) wrap ErrInvalidParameters, so errors.Is matches both the
// precise sentinel and the broad category.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/parameters -> index -> value -> dimension mismatch -> singular.

var (
	// ErrInvalidParameters is returned for malformed constructor arguments,
	// non-numeric values and misuse of transient objects such as Builder.
	ErrInvalidParameters = errors.New("matrix: invalid parameters")

	// ErrOutOfBounds indicates that a row, column or linear index is outside
	// the valid 1-based range.
	ErrOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Add on
	// different shapes or Multiply where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingular is returned when LU elimination meets an exactly-zero pivot.
	ErrSingular = errors.New("matrix: matrix is singular")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

var (
	// ErrInvalidValue signals a value that cannot be stored: NaN always, and
	// ±Inf while the finite-only numeric policy is enabled.
	ErrInvalidValue = fmt.Errorf("%w: value is not a finite number", ErrInvalidParameters)

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive
	// or cannot be inferred from the supplied data.
	ErrInvalidDimensions = fmt.Errorf("%w: dimensions must be > 0", ErrInvalidParameters)

	// ErrBuilderConsumed is returned by a Builder that already produced its CSR.
	ErrBuilderConsumed = fmt.Errorf("%w: builder already consumed", ErrInvalidParameters)
)
