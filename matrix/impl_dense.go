// SPDX-License-Identifier: MIT

// Package matrix - Dense matrix over the sparse element store & safe accessors.
//
// Purpose:
//   - Provide a row/column-addressed matrix with dense semantics whose storage
//     holds only nonzero entries (see store.go).
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed row-major visiting order).
//   - Enforce a numeric policy (NaN always rejected, ±Inf optionally) from a
//     single source of truth (options.go).
//
// Indexing:
//   - Public coordinates are 1-based; the store offset is (row-1)*cols + (col-1).
//
// Complexity quicksheet:
//   - NewDense: O(1); At/Set: O(log nnz); Clone: O(1) + copy-on-write;
//     Row/Column: O(cols log nnz) / O(rows log nnz); Data: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"        // method tag used in error wrappers
	ctxSet       = "Set"       // method tag used in error wrappers
	ctxAtIndex   = "AtIndex"   // method tag used in error wrappers
	ctxSetIndex  = "SetIndex"  // method tag used in error wrappers
	ctxRow       = "Row"       // method tag used in error wrappers
	ctxColumn    = "Column"    // method tag used in error wrappers
	ctxSetRow    = "SetRow"    // method tag used in error wrappers
	ctxSetColumn = "SetColumn" // method tag used in error wrappers
	ctxSetData   = "SetData"   // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): <err>"; the sentinel stays reachable via %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix with sparse-backed storage.
//   - r,c hold dimensions (rows, cols), both ≥ 1 for the lifetime of the value.
//   - store holds nonzero entries keyed by row-major offset; absent reads as 0.
//   - opts is the numeric policy inherited by every derived matrix.
type Dense struct {
	r, c  int
	store *elementStore
	opts  Options
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate an empty element store and resolve options.
//
// Behavior highlights:
//   - No memory proportional to rows*cols is allocated until values are written.
//
// Errors:
//   - ErrInvalidDimensions (wraps ErrInvalidParameters).
//
// Complexity:
//   - Time O(1), Space O(1).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, err)
	}

	return newDenseWithOptions(rows, cols, gatherOptions(opts...)), nil
}

// newDenseWithOptions is the internal constructor used by kernels once the
// shape is known to be valid; it carries an already-resolved policy.
func newDenseWithOptions(rows, cols int, o Options) *Dense {
	return &Dense{
		r:     rows,
		c:     cols,
		store: newElementStore(rows * cols),
		opts:  o,
	}
}

// NewSquare creates an n×n zero matrix.
func NewSquare(n int, opts ...Option) (*Dense, error) {
	return NewDense(n, n, opts...)
}

// NewFromRows builds a Dense from a nested row-major slice.
// Implementation:
//   - Stage 1: validate non-empty and rectangular input.
//   - Stage 2: validate every value against the numeric policy.
//   - Stage 3: write nonzeros into a fresh store.
//
// Errors:
//   - ErrInvalidDimensions for empty input, ErrInvalidParameters for ragged rows,
//     ErrInvalidValue for NaN (or ±Inf under the finite policy).
func NewFromRows(data [][]float64, opts ...Option) (*Dense, error) {
	return NewFromRowsOf(data, opts...)
}

// NewFromRowsOf is the generic form of NewFromRows for any integer or float
// element type; values are converted to float64.
func NewFromRowsOf[T Number](data [][]T, opts ...Option) (*Dense, error) {
	rows := len(data)
	if rows == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("NewFromRows: %w", ErrInvalidDimensions)
	}
	cols := len(data[0])
	for i := 1; i < rows; i++ {
		if len(data[i]) != cols {
			return nil, fmt.Errorf("NewFromRows: row %d has %d columns, want %d: %w",
				i+1, len(data[i]), cols, ErrInvalidParameters)
		}
	}

	m := newDenseWithOptions(rows, cols, gatherOptions(opts...))
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v = float64(data[i][j])
			if err := m.opts.checkValue(v); err != nil {
				return nil, fmt.Errorf("NewFromRows: %w", denseErrorf(ctxSet, i+1, j+1, err))
			}
			_ = m.store.set(i*cols+j, v) // value already validated
		}
	}

	return m, nil
}

// NewFromSlice builds a Dense from a flat row-major slice.
// Dimensions are optional: pass rows or cols ≤ 0 to infer them.
//   - both omitted: the matrix is square, n = √len(data) (must be exact);
//   - one omitted : it is len(data) / given (must divide evenly);
//   - both given  : len(data) must equal rows*cols.
//
// Errors:
//   - ErrInvalidDimensions when the shape cannot be honoured,
//     ErrInvalidValue for values rejected by the numeric policy.
func NewFromSlice(data []float64, rows, cols int, opts ...Option) (*Dense, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("NewFromSlice: %w", ErrInvalidDimensions)
	}
	switch {
	case rows <= 0 && cols <= 0:
		side := int(math.Round(math.Sqrt(float64(n))))
		if side*side != n {
			return nil, fmt.Errorf("NewFromSlice: length %d is not a perfect square: %w", n, ErrInvalidDimensions)
		}
		rows, cols = side, side
	case cols <= 0:
		if n%rows != 0 {
			return nil, fmt.Errorf("NewFromSlice: length %d not divisible by %d rows: %w", n, rows, ErrInvalidDimensions)
		}
		cols = n / rows
	case rows <= 0:
		if n%cols != 0 {
			return nil, fmt.Errorf("NewFromSlice: length %d not divisible by %d columns: %w", n, cols, ErrInvalidDimensions)
		}
		rows = n / cols
	default:
		if rows*cols != n {
			return nil, fmt.Errorf("NewFromSlice: %dx%d needs %d values, got %d: %w", rows, cols, rows*cols, n, ErrInvalidDimensions)
		}
	}

	m := newDenseWithOptions(rows, cols, gatherOptions(opts...))
	if err := m.store.replaceAll(data, m.opts.checkValue); err != nil {
		return nil, fmt.Errorf("NewFromSlice: %w", err)
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Dims packs Rows() and Cols() into a single call.
func (m *Dense) Dims() (rows, cols int) { return m.r, m.c }

// Size returns rows*cols, the number of addressable positions.
func (m *Dense) Size() int { return m.r * m.c }

// NNZ returns the number of stored nonzero entries.
func (m *Dense) NNZ() int { return m.store.len() }

// IsSquare reports whether Rows() == Cols().
func (m *Dense) IsSquare() bool { return m.r == m.c }

// Options returns the numeric policy carried by m.
func (m *Dense) Options() Options { return m.opts }

// offsetOf computes the store offset for 1-based (row, col) or returns ErrOutOfBounds.
func (m *Dense) offsetOf(row, col int) (int, error) {
	if err := validateIndex(m.r, m.c, row, col); err != nil {
		return 0, err
	}

	return (row-1)*m.c + (col - 1), nil
}

// get reads 0-based (i, j) without bounds checks; kernels only.
func (m *Dense) get(i, j int) float64 { return m.store.get(i*m.c + j) }

// put writes 0-based (i, j) under the numeric policy; kernels only.
func (m *Dense) put(i, j int, v float64) error {
	if err := m.opts.checkValue(v); err != nil {
		return denseErrorf(ctxSet, i+1, j+1, err)
	}

	return m.store.set(i*m.c+j, v)
}

// At returns the value at 1-based (row, col) or ErrOutOfBounds.
// Complexity: O(log nnz).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.offsetOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.store.get(off), nil
}

// Set stores v at 1-based (row, col).
// Implementation:
//   - Stage 1: bounds check via offsetOf.
//   - Stage 2: enforce numeric policy (NaN always, ±Inf when enabled).
//   - Stage 3: write into the store (0 removes the slot).
//
// Errors:
//   - ErrOutOfBounds for bounds; ErrInvalidValue for rejected numbers.
//
// Complexity:
//   - Time O(log nnz), Space O(1) amortised.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.offsetOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if err = m.opts.checkValue(v); err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}

	return m.store.set(off, v)
}

// AtIndex returns the value at the 1-based row-major linear index k.
func (m *Dense) AtIndex(k int) (float64, error) {
	if k < 1 || k > m.r*m.c {
		return 0, fmt.Errorf("Dense.%s(%d): %w", ctxAtIndex, k, ErrOutOfBounds)
	}

	return m.store.get(k - 1), nil
}

// SetIndex stores v at the 1-based row-major linear index k.
func (m *Dense) SetIndex(k int, v float64) error {
	if k < 1 || k > m.r*m.c {
		return fmt.Errorf("Dense.%s(%d): %w", ctxSetIndex, k, ErrOutOfBounds)
	}
	if err := m.opts.checkValue(v); err != nil {
		return fmt.Errorf("Dense.%s(%d): %w", ctxSetIndex, k, err)
	}

	return m.store.set(k-1, v)
}

// Row returns a copy of row r (1-based) as a slice of length Cols().
// Complexity: O(log nnz + cols).
func (m *Dense) Row(r int) ([]float64, error) {
	if r < 1 || r > m.r {
		return nil, fmt.Errorf("Dense.%s(%d): %w", ctxRow, r, ErrOutOfBounds)
	}
	out := make([]float64, m.c)
	base := (r - 1) * m.c
	m.store.ascendRange(base, base+m.c, func(off int, v float64) bool {
		out[off-base] = v
		return true
	})

	return out, nil
}

// Column returns a copy of column c (1-based) as a slice of length Rows().
// Complexity: O(rows log nnz).
func (m *Dense) Column(c int) ([]float64, error) {
	if c < 1 || c > m.c {
		return nil, fmt.Errorf("Dense.%s(%d): %w", ctxColumn, c, ErrOutOfBounds)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.get(i, c-1)
	}

	return out, nil
}

// RowMatrix returns row r as a fresh 1×Cols() matrix.
func (m *Dense) RowMatrix(r int) (*Dense, error) {
	vals, err := m.Row(r)
	if err != nil {
		return nil, err
	}
	out := newDenseWithOptions(1, m.c, m.opts)
	_ = out.store.replaceAll(vals, nil) // values come from m and already satisfy its policy

	return out, nil
}

// ColumnMatrix returns column c as a fresh Rows()×1 matrix.
func (m *Dense) ColumnMatrix(c int) (*Dense, error) {
	vals, err := m.Column(c)
	if err != nil {
		return nil, err
	}
	out := newDenseWithOptions(m.r, 1, m.opts)
	_ = out.store.replaceAll(vals, nil)

	return out, nil
}

// SetRow overwrites row r with vals in place.
// Errors:
//   - ErrOutOfBounds (r), ErrDimensionMismatch (len(vals) != Cols()),
//     ErrInvalidValue; nothing is written on error.
func (m *Dense) SetRow(r int, vals []float64) error {
	if r < 1 || r > m.r {
		return fmt.Errorf("Dense.%s(%d): %w", ctxSetRow, r, ErrOutOfBounds)
	}
	if len(vals) != m.c {
		return fmt.Errorf("Dense.%s(%d): got %d values, want %d: %w", ctxSetRow, r, len(vals), m.c, ErrDimensionMismatch)
	}
	for j, v := range vals {
		if err := m.opts.checkValue(v); err != nil {
			return denseErrorf(ctxSetRow, r, j+1, err)
		}
	}
	base := (r - 1) * m.c
	for j, v := range vals {
		_ = m.store.set(base+j, v)
	}

	return nil
}

// SetColumn overwrites column c with vals in place.
// Errors mirror SetRow with len(vals) != Rows().
func (m *Dense) SetColumn(c int, vals []float64) error {
	if c < 1 || c > m.c {
		return fmt.Errorf("Dense.%s(%d): %w", ctxSetColumn, c, ErrOutOfBounds)
	}
	if len(vals) != m.r {
		return fmt.Errorf("Dense.%s(%d): got %d values, want %d: %w", ctxSetColumn, c, len(vals), m.r, ErrDimensionMismatch)
	}
	for i, v := range vals {
		if err := m.opts.checkValue(v); err != nil {
			return denseErrorf(ctxSetColumn, i+1, c, err)
		}
	}
	for i, v := range vals {
		_ = m.store.set(i*m.c+(c-1), v)
	}

	return nil
}

// Data returns a dense row-major snapshot of all Size() elements.
func (m *Dense) Data() []float64 { return m.store.elements() }

// SetData replaces every element from a row-major slice of length Size().
// Nothing is written on error.
func (m *Dense) SetData(vals []float64) error {
	if err := m.store.replaceAll(vals, m.opts.checkValue); err != nil {
		return fmt.Errorf("Dense.%s: %w", ctxSetData, err)
	}

	return nil
}

// Clone returns an independent copy (same shape, values and policy).
// Complexity: O(1); the store copies lazily on the first write to either side.
func (m *Dense) Clone() *Dense {
	return &Dense{r: m.r, c: m.c, store: m.store.clone(), opts: m.opts}
}

// DoNonZero visits nonzero elements in row-major order and calls f with
// 1-based coordinates; it stops early when f returns false.
// Complexity: O(nnz).
func (m *Dense) DoNonZero(f func(row, col int, v float64) bool) {
	c := m.c
	m.store.ascend(func(off int, v float64) bool {
		return f(off/c+1, off%c+1, v)
	})
}

// IsSymmetric reports whether m is square and m(i,j) == m(j,i) for every
// nonzero (i,j). Comparison is exact.
func (m *Dense) IsSymmetric() bool {
	if m.r != m.c {
		return false
	}
	sym := true
	m.DoNonZero(func(row, col int, v float64) bool {
		if row != col && m.get(col-1, row-1) != v {
			sym = false
		}
		return sym
	})

	return sym
}

// String renders rows as "[a, b, c]\n" lines for diagnostics.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	data := m.store.elements()
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
