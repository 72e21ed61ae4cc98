// SPDX-License-Identifier: MIT

// Package matrix - element-wise mapping (Apply / ApplyNonZero).
//
// Determinism:
//   - Callbacks run in row-major order with 1-based coordinates.
//   - The result is built in a fresh matrix and returned only when every new
//     value passed the numeric policy, so a failure never exposes partial work.

package matrix

import "fmt"

// Apply returns a copy of m where every element (v, row, col) accepted by
// filter is replaced by fn(v, row, col); rejected elements are copied as is.
// A nil filter accepts every element, zeros included.
//
// Errors:
//   - ErrInvalidParameters (nil fn), ErrInvalidValue (fn produced a value the
//     numeric policy rejects).
//
// Complexity:
//   - Time O(r*c) callbacks, Space O(r*c) scratch.
func (m *Dense) Apply(fn ElementFunc, filter ElementFilter) (*Dense, error) {
	if fn == nil {
		return nil, matrixErrorf(opApply, fmt.Errorf("nil function: %w", ErrInvalidParameters))
	}

	data := m.store.elements()
	var i, j, off int
	var v float64
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			off = i*m.c + j
			v = data[off]
			if filter != nil && !filter(v, i+1, j+1) {
				continue
			}
			v = fn(v, i+1, j+1)
			if err := m.opts.checkValue(v); err != nil {
				return nil, matrixErrorf(opApply, denseErrorf(ctxSet, i+1, j+1, err))
			}
			data[off] = v
		}
	}

	res := newDenseWithOptions(m.r, m.c, m.opts)
	_ = res.store.replaceAll(data, nil) // every value validated above

	return res, nil
}

// ApplyNonZero is Apply restricted to nonzero elements (filter NonZero).
// It visits only stored entries, so it costs O(nnz · log nnz) instead of O(r*c).
func (m *Dense) ApplyNonZero(fn ElementFunc) (*Dense, error) {
	if fn == nil {
		return nil, matrixErrorf(opApply, fmt.Errorf("nil function: %w", ErrInvalidParameters))
	}

	res := m.Clone()
	var err error
	m.DoNonZero(func(row, col int, v float64) bool {
		nv := fn(v, row, col)
		if err = res.opts.checkValue(nv); err != nil {
			err = denseErrorf(ctxSet, row, col, err)
			return false
		}
		_ = res.store.set((row-1)*res.c+(col-1), nv)
		return true
	})
	if err != nil {
		return nil, matrixErrorf(opApply, err)
	}

	return res, nil
}
