// SPDX-License-Identifier: MIT

// Package matrix - element store (sparse-backed linear buffer).
//
// Purpose:
//   - Present a fixed-size linear buffer 0..size-1 whose absent slots read as 0.
//   - Keep memory proportional to the number of nonzero entries.
//   - Offer ordered iteration so row-major kernels visit nonzeros in order.
//
// Layout:
//   - A github.com/google/btree BTreeG of (offset, value) pairs ordered by offset.
//   - Invariant: no stored pair has value 0; writing 0 deletes the pair.
//
// Complexity quicksheet:
//   - get/set: O(log nnz); ascend: O(nnz); ascendRange: O(log nnz + k);
//     clone: O(1) (copy-on-write); elements: O(size).

package matrix

import (
	"math"

	"github.com/google/btree"
)

// storeDegree is the B-tree branching factor; 32 keeps nodes cache-sized.
const storeDegree = 32

// element is one stored nonzero: row-major offset and value.
type element struct {
	off int
	v   float64
}

// lessElement orders elements by offset.
func lessElement(a, b element) bool { return a.off < b.off }

// elementStore is the sparse-backed buffer owned by exactly one Dense.
type elementStore struct {
	size int                     // logical length (rows*cols)
	tree *btree.BTreeG[element] // nonzero entries only
}

// newElementStore allocates an empty store of logical length size.
func newElementStore(size int) *elementStore {
	return &elementStore{
		size: size,
		tree: btree.NewG[element](storeDegree, lessElement),
	}
}

// get returns the value at off, or 0 when the slot is absent.
// Callers guarantee 0 ≤ off < size.
func (s *elementStore) get(off int) float64 {
	if e, ok := s.tree.Get(element{off: off}); ok {
		return e.v
	}

	return 0
}

// set stores v at off. Zero removes the slot; NaN is rejected.
// Callers guarantee 0 ≤ off < size.
func (s *elementStore) set(off int, v float64) error {
	if math.IsNaN(v) {
		return ErrInvalidValue
	}
	if v == 0 {
		s.tree.Delete(element{off: off}) // no-op when absent
		return nil
	}
	s.tree.ReplaceOrInsert(element{off: off, v: v})

	return nil
}

// len reports the number of stored nonzeros.
func (s *elementStore) len() int { return s.tree.Len() }

// ascend visits nonzeros in increasing offset order until fn returns false.
func (s *elementStore) ascend(fn func(off int, v float64) bool) {
	s.tree.Ascend(func(e element) bool { return fn(e.off, e.v) })
}

// ascendRange visits nonzeros with lo ≤ off < hi in increasing order.
func (s *elementStore) ascendRange(lo, hi int, fn func(off int, v float64) bool) {
	s.tree.AscendRange(element{off: lo}, element{off: hi}, func(e element) bool {
		return fn(e.off, e.v)
	})
}

// elements returns a dense snapshot of the buffer (length size).
func (s *elementStore) elements() []float64 {
	out := make([]float64, s.size)
	s.tree.Ascend(func(e element) bool {
		out[e.off] = e.v
		return true
	})

	return out
}

// replaceAll overwrites the whole buffer with elems.
// Implementation:
//   - Stage 1: validate len(elems) == size and every entry with check.
//   - Stage 2: clear the tree and insert nonzeros in order.
//
// Errors:
//   - ErrDimensionMismatch on length, the error returned by check otherwise.
//     Nothing is mutated on error.
func (s *elementStore) replaceAll(elems []float64, check func(float64) error) error {
	if len(elems) != s.size {
		return ErrDimensionMismatch
	}
	for _, v := range elems {
		if math.IsNaN(v) {
			return ErrInvalidValue
		}
		if check != nil {
			if err := check(v); err != nil {
				return err
			}
		}
	}
	s.tree.Clear(false)
	for off, v := range elems {
		if v != 0 {
			s.tree.ReplaceOrInsert(element{off: off, v: v})
		}
	}

	return nil
}

// clone returns an independent store; the B-tree copies lazily on write.
func (s *elementStore) clone() *elementStore {
	return &elementStore{size: s.size, tree: s.tree.Clone()}
}
