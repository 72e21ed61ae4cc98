// SPDX-License-Identifier: MIT

// Package matrix - CSR (compressed sparse row) matrix.
//
// Purpose:
//   - Store only the nonzeros of a mostly-zero matrix in three parallel arrays:
//     values, 1-based column indices and per-row start offsets.
//   - Implement the same Matrix contract as Dense (1-based At/Set/Row/Column).
//
// Layout:
//   - Row r (1-based) occupies values[rowPointers[r-1] : rowPointers[r]].
//   - len(rowPointers) == rows+1, rowPointers[0] == 0,
//     rowPointers[rows] == len(values) == len(colIndices).
//   - values never holds a zero.
//
// Column order within a row:
//   - NewCSRFromArrays, CSRFromDense and Transpose produce strictly increasing
//     columns. The Builder keeps columns in the order they were supplied, so
//     lookups scan the row slice instead of binary searching it.
//
// Complexity quicksheet:
//   - At: O(nnz in row); Set: O(nnz) (array splicing); Row: O(cols + nnz in row);
//     Column: O(nnz); MulVec: O(nnz + rows).

package matrix

import (
	"fmt"
	"slices"
	"strings"
)

const (
	ctxCSRAt        = "At"
	ctxCSRSet       = "Set"
	ctxCSRRow       = "Row"
	ctxCSRColumn    = "Column"
	ctxCSRMulVec    = "MulVec"
	ctxCSRFromArray = "NewCSRFromArrays"
)

// csrErrorf wraps err with a CSR method tag and 1-based coordinates.
func csrErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CSR.%s(%d,%d): %w", method, row, col, err)
}

// CSR is a compressed sparse row matrix.
//   - rows, cols ≥ 1 for the lifetime of the value.
//   - colIndices are 1-based.
//   - opts is the numeric policy applied by Set and inherited by ToDense.
type CSR struct {
	rows, cols  int
	values      []float64
	colIndices  []int
	rowPointers []int
	opts        Options
}

var _ fmt.Stringer = (*CSR)(nil)

// NewCSR returns an empty rows×cols CSR matrix.
// Errors: ErrInvalidDimensions when rows < 1 or cols < 1.
func NewCSR(rows, cols int, opts ...Option) (*CSR, error) {
	if err := ValidateDims(rows, cols); err != nil {
		return nil, fmt.Errorf("NewCSR(%d,%d): %w", rows, cols, err)
	}

	return newCSRWithOptions(rows, cols, gatherOptions(opts...)), nil
}

func newCSRWithOptions(rows, cols int, o Options) *CSR {
	return &CSR{rows: rows, cols: cols, rowPointers: make([]int, rows+1), opts: o}
}

// NewCSRFromArrays builds a CSR matrix from its three arrays. Inputs are
// validated against every layout invariant and copied; the caller keeps
// ownership of its slices.
// Implementation:
//   - Stage 1: shape and array lengths.
//   - Stage 2: rowPointers start at 0, never decrease and end at len(values).
//   - Stage 3: per row, columns are in 1..cols and strictly increasing.
//   - Stage 4: values are nonzero and accepted by the numeric policy.
//
// Errors:
//   - ErrInvalidDimensions, ErrInvalidParameters (layout), ErrOutOfBounds
//     (column index), ErrInvalidValue (value).
func NewCSRFromArrays(rows, cols int, values []float64, colIndices, rowPointers []int, opts ...Option) (*CSR, error) {
	// Stage 1
	if err := ValidateDims(rows, cols); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCSRFromArray, err)
	}
	if len(colIndices) != len(values) {
		return nil, fmt.Errorf("%s: %d column indices for %d values: %w",
			ctxCSRFromArray, len(colIndices), len(values), ErrInvalidParameters)
	}
	if len(rowPointers) != rows+1 {
		return nil, fmt.Errorf("%s: %d row pointers for %d rows: %w",
			ctxCSRFromArray, len(rowPointers), rows, ErrInvalidParameters)
	}

	// Stage 2
	if rowPointers[0] != 0 || rowPointers[rows] != len(values) {
		return nil, fmt.Errorf("%s: row pointers must span [0, %d]: %w",
			ctxCSRFromArray, len(values), ErrInvalidParameters)
	}
	var r, p int
	for r = 0; r < rows; r++ {
		if rowPointers[r] > rowPointers[r+1] {
			return nil, fmt.Errorf("%s: row pointer %d decreases: %w", ctxCSRFromArray, r+1, ErrInvalidParameters)
		}
	}

	o := gatherOptions(opts...)
	for r = 0; r < rows; r++ {
		for p = rowPointers[r]; p < rowPointers[r+1]; p++ {
			// Stage 3
			if colIndices[p] < 1 || colIndices[p] > cols {
				return nil, fmt.Errorf("%s: %w", ctxCSRFromArray, csrErrorf(ctxCSRSet, r+1, colIndices[p], ErrOutOfBounds))
			}
			if p > rowPointers[r] && colIndices[p] <= colIndices[p-1] {
				return nil, fmt.Errorf("%s: row %d columns not strictly increasing: %w",
					ctxCSRFromArray, r+1, ErrInvalidParameters)
			}
			// Stage 4
			if values[p] == 0 {
				return nil, fmt.Errorf("%s: explicit zero at (%d,%d): %w",
					ctxCSRFromArray, r+1, colIndices[p], ErrInvalidParameters)
			}
			if err := o.checkValue(values[p]); err != nil {
				return nil, fmt.Errorf("%s: %w", ctxCSRFromArray, csrErrorf(ctxCSRSet, r+1, colIndices[p], err))
			}
		}
	}

	return &CSR{
		rows:        rows,
		cols:        cols,
		values:      slices.Clone(values),
		colIndices:  slices.Clone(colIndices),
		rowPointers: slices.Clone(rowPointers),
		opts:        o,
	}, nil
}

// CSRFromDense compresses d. The result inherits d's numeric policy.
// Errors: ErrNilMatrix.
// Complexity: O(nnz + rows).
func CSRFromDense(d *Dense) (*CSR, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, fmt.Errorf("CSRFromDense: %w", err)
	}

	s := newCSRWithOptions(d.r, d.c, d.opts)
	s.values = make([]float64, 0, d.NNZ())
	s.colIndices = make([]int, 0, d.NNZ())
	d.DoNonZero(func(row, col int, v float64) bool {
		s.values = append(s.values, v)
		s.colIndices = append(s.colIndices, col)
		s.rowPointers[row]++
		return true
	})
	for r := 1; r <= s.rows; r++ {
		s.rowPointers[r] += s.rowPointers[r-1]
	}

	return s, nil
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.cols }

// Dims returns (rows, cols).
func (m *CSR) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored nonzeros.
func (m *CSR) NNZ() int { return len(m.values) }

// IsSquare reports whether rows == cols.
func (m *CSR) IsSquare() bool { return m.rows == m.cols }

// Options returns the numeric policy of m.
func (m *CSR) Options() Options { return m.opts }

// find returns the position of (row, col) in values and whether it exists.
// When absent, pos is where the entry belongs: before the first column
// greater than col, or at the end of the row.
func (m *CSR) find(row, col int) (pos int, ok bool) {
	lo, hi := m.rowPointers[row-1], m.rowPointers[row]
	pos = hi
	for p := lo; p < hi; p++ {
		if m.colIndices[p] == col {
			return p, true
		}
		if pos == hi && m.colIndices[p] > col {
			pos = p
		}
	}

	return pos, false
}

// At returns m(row, col), 1-based.
// Errors: ErrOutOfBounds.
func (m *CSR) At(row, col int) (float64, error) {
	if err := validateIndex(m.rows, m.cols, row, col); err != nil {
		return 0, csrErrorf(ctxCSRAt, row, col, err)
	}
	if p, ok := m.find(row, col); ok {
		return m.values[p], nil
	}

	return 0, nil
}

// Set writes m(row, col) = v, 1-based.
// Implementation:
//   - existing entry, v != 0: overwrite in place.
//   - existing entry, v == 0: remove it and shift later row pointers down.
//   - absent entry,   v != 0: splice it in and shift later row pointers up.
//   - absent entry,   v == 0: no-op.
//
// Errors: ErrOutOfBounds, ErrInvalidValue. m is unchanged on error.
// Complexity: O(nnz + rows) when the sparsity pattern changes, else O(nnz in row).
func (m *CSR) Set(row, col int, v float64) error {
	if err := validateIndex(m.rows, m.cols, row, col); err != nil {
		return csrErrorf(ctxCSRSet, row, col, err)
	}
	if err := m.opts.checkValue(v); err != nil {
		return csrErrorf(ctxCSRSet, row, col, err)
	}

	p, ok := m.find(row, col)
	switch {
	case ok && v != 0:
		m.values[p] = v
	case ok:
		m.values = slices.Delete(m.values, p, p+1)
		m.colIndices = slices.Delete(m.colIndices, p, p+1)
		m.shiftRowPointers(row, -1)
	case v != 0:
		m.values = slices.Insert(m.values, p, v)
		m.colIndices = slices.Insert(m.colIndices, p, col)
		m.shiftRowPointers(row, +1)
	}

	return nil
}

// shiftRowPointers adds delta to the end pointer of 1-based row and every
// pointer after it.
func (m *CSR) shiftRowPointers(row, delta int) {
	for r := row; r <= m.rows; r++ {
		m.rowPointers[r] += delta
	}
}

// Row returns a dense copy of row r (1-based).
// Errors: ErrOutOfBounds.
func (m *CSR) Row(r int) ([]float64, error) {
	if r < 1 || r > m.rows {
		return nil, csrErrorf(ctxCSRRow, r, 1, ErrOutOfBounds)
	}
	out := make([]float64, m.cols)
	for p := m.rowPointers[r-1]; p < m.rowPointers[r]; p++ {
		out[m.colIndices[p]-1] = m.values[p]
	}

	return out, nil
}

// Column returns a dense copy of column c (1-based).
// Errors: ErrOutOfBounds.
func (m *CSR) Column(c int) ([]float64, error) {
	if c < 1 || c > m.cols {
		return nil, csrErrorf(ctxCSRColumn, 1, c, ErrOutOfBounds)
	}
	out := make([]float64, m.rows)
	m.DoNonZero(func(row, col int, v float64) bool {
		if col == c {
			out[row-1] = v
		}
		return true
	})

	return out, nil
}

// DoNonZero visits stored entries row by row (columns in stored order) and
// calls f with 1-based coordinates; it stops early when f returns false.
func (m *CSR) DoNonZero(f func(row, col int, v float64) bool) {
	for r := 0; r < m.rows; r++ {
		for p := m.rowPointers[r]; p < m.rowPointers[r+1]; p++ {
			if !f(r+1, m.colIndices[p], m.values[p]) {
				return
			}
		}
	}
}

// IsSymmetric reports whether m is square and At(j,i) == v for every
// nonzero (i,j,v). Comparison is exact.
func (m *CSR) IsSymmetric() bool {
	if m.rows != m.cols {
		return false
	}
	sym := true
	m.DoNonZero(func(row, col int, v float64) bool {
		if row != col {
			p, ok := m.find(col, row)
			sym = ok && m.values[p] == v
		}
		return sym
	})

	return sym
}

// Equals reports whether b has m's shape and the same logical entries.
// Column order inside rows does not matter.
func (m *CSR) Equals(b *CSR) bool {
	if b == nil || m.rows != b.rows || m.cols != b.cols || len(m.values) != len(b.values) {
		return false
	}
	eq := true
	m.DoNonZero(func(row, col int, v float64) bool {
		p, ok := b.find(row, col)
		eq = ok && b.values[p] == v
		return eq
	})

	return eq
}

// Values returns a copy of the nonzero values.
func (m *CSR) Values() []float64 { return slices.Clone(m.values) }

// ColumnIndices returns a copy of the 1-based column indices.
func (m *CSR) ColumnIndices() []int { return slices.Clone(m.colIndices) }

// RowPointers returns a copy of the row pointers (length rows+1).
func (m *CSR) RowPointers() []int { return slices.Clone(m.rowPointers) }

// Clone returns an independent copy of m.
func (m *CSR) Clone() *CSR {
	return &CSR{
		rows:        m.rows,
		cols:        m.cols,
		values:      slices.Clone(m.values),
		colIndices:  slices.Clone(m.colIndices),
		rowPointers: slices.Clone(m.rowPointers),
		opts:        m.opts,
	}
}

// ToDense expands m into a Dense with the same numeric policy.
// Complexity: O(nnz log nnz).
func (m *CSR) ToDense() *Dense {
	d := newDenseWithOptions(m.rows, m.cols, m.opts)
	m.DoNonZero(func(row, col int, v float64) bool {
		_ = d.store.set((row-1)*m.cols+(col-1), v) // values already passed the policy
		return true
	})

	return d
}

// MulVec returns y = m·x.
// Errors: ErrDimensionMismatch when len(x) != Cols.
// Complexity: O(nnz + rows).
func (m *CSR) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.cols {
		return nil, fmt.Errorf("CSR.%s: len(x)=%d, cols=%d: %w", ctxCSRMulVec, len(x), m.cols, ErrDimensionMismatch)
	}
	y := make([]float64, m.rows)
	var sum float64
	for r := 0; r < m.rows; r++ {
		sum = ZeroSum
		for p := m.rowPointers[r]; p < m.rowPointers[r+1]; p++ {
			sum += m.values[p] * x[m.colIndices[p]-1]
		}
		y[r] = sum
	}

	return y, nil
}

// Transpose returns mᵀ in CSR form with strictly increasing columns per row.
// Implementation:
//   - Stage 1: count entries per column of m (rows of the result).
//   - Stage 2: prefix-sum the counts into row pointers.
//   - Stage 3: scatter entries in row-major order of m, which leaves each
//     result row sorted by column.
//
// Complexity: O(nnz + rows + cols).
func (m *CSR) Transpose() *CSR {
	t := newCSRWithOptions(m.cols, m.rows, m.opts)
	t.values = make([]float64, len(m.values))
	t.colIndices = make([]int, len(m.colIndices))

	// Stage 1
	for _, c := range m.colIndices {
		t.rowPointers[c]++
	}
	// Stage 2
	for r := 1; r <= t.rows; r++ {
		t.rowPointers[r] += t.rowPointers[r-1]
	}
	// Stage 3
	next := slices.Clone(t.rowPointers[:t.rows])
	m.DoNonZero(func(row, col int, v float64) bool {
		p := next[col-1]
		t.values[p] = v
		t.colIndices[p] = row
		next[col-1]++
		return true
	})

	return t
}

// String renders rows as "[a, b, c]\n" lines, the same format as Dense.
func (m *CSR) String() string {
	var b strings.Builder
	for r := 1; r <= m.rows; r++ {
		row, _ := m.Row(r)
		b.WriteString(_fmtRowOpen)
		for j, v := range row {
			b.WriteString(fmt.Sprintf("%g", v))
			if j+1 < len(row) {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
