// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/linalg/matrix"
)

// stdinPath selects standard input instead of a file.
const stdinPath = "-"

var errEmptyDocument = errors.New("document has neither data nor entries")

// matrixDocument is the on-disk form of a matrix. Exactly one of Data
// (nested rows) or Entries (1-based [row, col, value] triples, compiled in
// row order through the CSR builder) is set.
type matrixDocument struct {
	Data    [][]float64 `json:"data,omitempty"`
	Rows    int         `json:"rows,omitempty"`
	Cols    int         `json:"cols,omitempty"`
	Entries [][]float64 `json:"entries,omitempty"`
}

// csrDocument is the output form of a compressed matrix.
type csrDocument struct {
	Rows          int       `json:"rows"`
	Cols          int       `json:"cols"`
	Values        []float64 `json:"values"`
	ColumnIndices []int     `json:"columnIndices"`
	RowPointers   []int     `json:"rowPointers"`
}

// readDocument loads and strictly decodes a YAML or JSON document.
func readDocument(path string, in io.Reader) (*matrixDocument, error) {
	var (
		raw []byte
		err error
	)
	if path == stdinPath {
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := &matrixDocument{}
	if err = yaml.UnmarshalStrict(raw, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	klog.V(4).InfoS("Decoded matrix document", "path", path, "bytes", len(raw))

	return doc, nil
}

// toCSR compiles the document into CSR form.
func (d *matrixDocument) toCSR(opts ...matrix.Option) (*matrix.CSR, error) {
	switch {
	case len(d.Data) > 0 && len(d.Entries) > 0:
		return nil, errors.New("document sets both data and entries")
	case len(d.Data) > 0:
		dense, err := matrix.NewFromRows(d.Data, opts...)
		if err != nil {
			return nil, err
		}
		return matrix.CSRFromDense(dense)
	case len(d.Entries) > 0:
		return d.buildEntries(opts...)
	default:
		return nil, errEmptyDocument
	}
}

// toDense materializes the document as a Dense matrix.
func (d *matrixDocument) toDense(opts ...matrix.Option) (*matrix.Dense, error) {
	if len(d.Data) > 0 && len(d.Entries) == 0 {
		return matrix.NewFromRows(d.Data, opts...)
	}
	s, err := d.toCSR(opts...)
	if err != nil {
		return nil, err
	}

	return s.ToDense(), nil
}

// buildEntries feeds the triples to a Builder in document order.
func (d *matrixDocument) buildEntries(opts ...matrix.Option) (*matrix.CSR, error) {
	b := matrix.NewBuilder(opts...)
	if err := b.Size(d.Rows, d.Cols); err != nil {
		return nil, err
	}
	for i, e := range d.Entries {
		if len(e) != 3 {
			return nil, fmt.Errorf("entry %d: want [row, col, value], got %d numbers", i+1, len(e))
		}
		row, col, err := entryIndex(e[0], e[1])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if err = b.Set(row, col, e[2]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	return b.Build()
}

// entryIndex converts decoded JSON numbers to integer coordinates.
func entryIndex(r, c float64) (int, int, error) {
	if r != math.Trunc(r) || c != math.Trunc(c) {
		return 0, 0, fmt.Errorf("non-integer position (%v, %v)", r, c)
	}

	return int(r), int(c), nil
}

// denseDocument converts a matrix back to the nested-rows document form.
func denseDocument(m *matrix.Dense) *matrixDocument {
	doc := &matrixDocument{Data: make([][]float64, m.Rows())}
	for i := range doc.Data {
		doc.Data[i], _ = m.Row(i + 1)
	}

	return doc
}

// newCSRDocument captures the three CSR arrays.
func newCSRDocument(s *matrix.CSR) *csrDocument {
	return &csrDocument{
		Rows:          s.Rows(),
		Cols:          s.Cols(),
		Values:        s.Values(),
		ColumnIndices: s.ColumnIndices(),
		RowPointers:   s.RowPointers(),
	}
}
