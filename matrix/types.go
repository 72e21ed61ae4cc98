// SPDX-License-Identifier: MIT

// Package matrix: shared contract implemented by Dense and CSR, plus the
// callback and constraint types used by constructors and Apply.
package matrix

import "golang.org/x/exp/constraints"

// Matrix is the get/set/row/column contract shared by Dense and CSR.
// All indices are 1-based.
//
// Complexity notes: Rows/Cols/Dims/IsSquare are O(1); At/Set depend on the
// storage (O(log nnz) for Dense, O(nnz in row) or O(nnz) for CSR).
type Matrix interface {
	// Rows returns the number of rows (≥ 1).
	Rows() int

	// Cols returns the number of columns (≥ 1).
	Cols() int

	// Dims packs Rows() and Cols().
	Dims() (rows, cols int)

	// At retrieves the element at (row, col).
	// Returns ErrOutOfBounds outside [1,Rows]×[1,Cols].
	At(row, col int) (float64, error)

	// Set assigns v at (row, col) in place.
	// Returns ErrOutOfBounds or ErrInvalidValue; the receiver is unchanged on error.
	Set(row, col int, v float64) error

	// Row returns a copy of row r as a dense slice of length Cols().
	Row(r int) ([]float64, error)

	// Column returns a copy of column c as a dense slice of length Rows().
	Column(c int) ([]float64, error)

	// IsSquare reports Rows() == Cols().
	IsSquare() bool

	// IsSymmetric reports a square matrix with At(i,j) == At(j,i) everywhere.
	IsSymmetric() bool

	// NNZ returns the number of stored nonzero entries.
	NNZ() int

	// DoNonZero visits nonzero entries in row-major order until f returns false.
	DoNonZero(f func(row, col int, v float64) bool)
}

// Compile-time assertions for interface conformance.
var (
	_ Matrix = (*Dense)(nil)
	_ Matrix = (*CSR)(nil)
)

// Number is any built-in integer or floating-point element type accepted by
// the generic constructors.
type Number interface {
	constraints.Integer | constraints.Float
}

// ElementFunc maps an element (value and 1-based coordinates) to a new value.
type ElementFunc func(v float64, row, col int) float64

// ElementFilter selects the elements an ElementFunc is applied to.
type ElementFilter func(v float64, row, col int) bool

// NonZero is the ElementFilter accepting only nonzero entries.
func NonZero(v float64, _, _ int) bool { return v != 0 }
