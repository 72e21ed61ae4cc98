// SPDX-License-Identifier: MIT

// Package matrix - write-once Builder compiling (row, col, value) triples into CSR.
//
// Contract:
//   - Size must be called before Set and Build.
//   - Triples are supplied in non-decreasing row order; Build checks the order
//     and reports a violation instead of sorting.
//   - Within a row, columns keep the order in which they were first supplied.
//   - A repeated Set at the same position overwrites the recorded value; a
//     zero value removes it.
//   - A successful Build consumes the builder; any later call fails with
//     ErrBuilderConsumed.

package matrix

import "fmt"

const (
	ctxBuilderSize  = "Builder.Size"
	ctxBuilderSet   = "Builder.Set"
	ctxBuilderBuild = "Builder.Build"
)

// triple is one recorded (row, col, value); live is false once a zero
// value removed it.
type triple struct {
	row, col int
	v        float64
	live     bool
}

// Builder accumulates triples for a single CSR matrix.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	rows, cols int
	sized      bool
	consumed   bool
	triples    []triple
	index      map[[2]int]int // (row, col) -> position in triples
	opts       Options
}

// NewBuilder returns an empty builder. opts become the numeric policy of the
// compiled matrix and are applied to every Set.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		index: make(map[[2]int]int),
		opts:  gatherOptions(opts...),
	}
}

// Size sets the target shape. It may be called again before Build; recorded
// triples must still fit the new shape when Build runs.
// Errors: ErrInvalidDimensions, ErrBuilderConsumed.
func (b *Builder) Size(rows, cols int) error {
	if b.consumed {
		return fmt.Errorf("%s: %w", ctxBuilderSize, ErrBuilderConsumed)
	}
	if err := ValidateDims(rows, cols); err != nil {
		return fmt.Errorf("%s(%d,%d): %w", ctxBuilderSize, rows, cols, err)
	}
	b.rows, b.cols, b.sized = rows, cols, true

	return nil
}

// Set records m(row, col) = v (1-based).
// Errors:
//   - ErrBuilderConsumed; ErrInvalidParameters when Size was not called;
//     ErrOutOfBounds; ErrInvalidValue.
func (b *Builder) Set(row, col int, v float64) error {
	if b.consumed {
		return fmt.Errorf("%s: %w", ctxBuilderSet, ErrBuilderConsumed)
	}
	if !b.sized {
		return fmt.Errorf("%s: size not set: %w", ctxBuilderSet, ErrInvalidParameters)
	}
	if err := validateIndex(b.rows, b.cols, row, col); err != nil {
		return fmt.Errorf("%s(%d,%d): %w", ctxBuilderSet, row, col, err)
	}
	if err := b.opts.checkValue(v); err != nil {
		return fmt.Errorf("%s(%d,%d): %w", ctxBuilderSet, row, col, err)
	}

	key := [2]int{row, col}
	if p, ok := b.index[key]; ok {
		b.triples[p].v = v
		b.triples[p].live = v != 0
		return nil
	}
	if v == 0 {
		return nil
	}
	b.index[key] = len(b.triples)
	b.triples = append(b.triples, triple{row: row, col: col, v: v, live: true})

	return nil
}

// Len returns the number of recorded nonzero triples.
func (b *Builder) Len() int {
	n := 0
	for _, t := range b.triples {
		if t.live {
			n++
		}
	}

	return n
}

// Build compiles the recorded triples into a CSR matrix.
// Implementation:
//   - Stage 1: check the builder state and the non-decreasing row order.
//   - Stage 2: count entries per row into rowPointers[row] and prefix-sum.
//   - Stage 3: copy values and columns in the supplied order.
//
// Errors:
//   - ErrBuilderConsumed; ErrInvalidParameters (Size never called, or rows
//     out of order); ErrOutOfBounds (a triple outside a shape reset by Size).
//
// Complexity: O(len(triples) + rows).
func (b *Builder) Build() (*CSR, error) {
	if b.consumed {
		return nil, fmt.Errorf("%s: %w", ctxBuilderBuild, ErrBuilderConsumed)
	}
	if !b.sized {
		return nil, fmt.Errorf("%s: size not set: %w", ctxBuilderBuild, ErrInvalidParameters)
	}

	// Stage 1
	s := newCSRWithOptions(b.rows, b.cols, b.opts)
	prev, nnz := 1, 0
	for _, t := range b.triples {
		if !t.live {
			continue
		}
		if err := validateIndex(b.rows, b.cols, t.row, t.col); err != nil {
			return nil, fmt.Errorf("%s(%d,%d): %w", ctxBuilderBuild, t.row, t.col, err)
		}
		if t.row < prev {
			return nil, fmt.Errorf("%s: row %d supplied after row %d: %w",
				ctxBuilderBuild, t.row, prev, ErrInvalidParameters)
		}
		prev = t.row
		// Stage 2 (count)
		s.rowPointers[t.row]++
		nnz++
	}
	for r := 1; r <= s.rows; r++ {
		s.rowPointers[r] += s.rowPointers[r-1]
	}

	// Stage 3
	s.values = make([]float64, 0, nnz)
	s.colIndices = make([]int, 0, nnz)
	for _, t := range b.triples {
		if t.live {
			s.values = append(s.values, t.v)
			s.colIndices = append(s.colIndices, t.col)
		}
	}

	b.consumed = true
	b.triples, b.index = nil, nil

	return s, nil
}
