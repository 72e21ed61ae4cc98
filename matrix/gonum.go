// SPDX-License-Identifier: MIT

// Package matrix - interoperability with gonum.org/v1/gonum/mat.
//
// Views returned by Gonum are zero-based and read-only; they follow gonum's
// convention of panicking on an out-of-range index.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// gonumView adapts a 1-based Matrix to gonum's zero-based mat.Matrix.
type gonumView struct {
	m Matrix
}

var _ mat.Matrix = gonumView{}

func (v gonumView) Dims() (r, c int) { return v.m.Dims() }

func (v gonumView) At(i, j int) float64 {
	x, err := v.m.At(i+1, j+1)
	if err != nil {
		panic(mat.ErrIndexOutOfRange)
	}

	return x
}

func (v gonumView) T() mat.Matrix { return mat.Transpose{Matrix: v} }

// Gonum returns a zero-based read-only view of m usable with gonum/mat
// (e.g. mat.Det, mat.NewDense(...).Mul). The view reflects later writes to m.
func (m *Dense) Gonum() mat.Matrix { return gonumView{m: m} }

// Gonum returns a zero-based read-only view of m usable with gonum/mat.
func (m *CSR) Gonum() mat.Matrix { return gonumView{m: m} }

// FromGonum copies any gonum matrix into a new Dense under opts.
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrInvalidValue.
// Complexity: O(r*c) reads.
func FromGonum(a mat.Matrix, opts ...Option) (*Dense, error) {
	if a == nil {
		return nil, fmt.Errorf("FromGonum: %w", ErrNilMatrix)
	}
	r, c := a.Dims()
	if err := ValidateDims(r, c); err != nil {
		return nil, fmt.Errorf("FromGonum: %w", err)
	}

	res := newDenseWithOptions(r, c, gatherOptions(opts...))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err := res.put(i, j, a.At(i, j)); err != nil {
				return nil, fmt.Errorf("FromGonum: %w", err)
			}
		}
	}

	return res, nil
}
