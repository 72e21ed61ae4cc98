// Package matrix provides a small linear-algebra kernel over float64 values.
//
// The matrix package provides:
//
//   - Dense, a row/column-addressed matrix whose storage holds only the
//     nonzero entries (ordered B-tree keyed by row-major offset) while
//     behaving like an ordinary dense buffer.
//   - Arithmetic (Add, Subtract, Scale, Multiply), shape operations
//     (Transpose, Submatrix, Augment) and vector helpers (Dot, Cross).
//   - An LU engine with partial pivoting feeding Det, Inverse and Solve.
//   - CSR, a compressed sparse-row matrix, and Builder, which compiles
//     (row, col, value) triples into a CSR in one pass.
//   - Zero-based gonum views (mat.Matrix) for interop with gonum.org/v1/gonum.
//
// Indexing is 1-based throughout the public surface: (1,1) is the top-left
// element and the linear index k enumerates positions row-major, starting at 1.
// Positions that were never written read as exactly 0.
//
// Values are single-owner: arithmetic always returns a fresh matrix, while
// Set, SetIndex, SetRow, SetColumn and SetData mutate the receiver in place.
// Nothing in the package locks; use Clone to hand an independent snapshot to
// another owner.
//
// Errors are package sentinels (see errors.go) wrapped with operation context;
// match them with errors.Is.
package matrix
