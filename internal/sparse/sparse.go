/*
Package sparse implements a simple type for sparse integer matrices.
It backs the LL(1) parsing table, where most (non-terminal, lookahead)
cells are empty.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/
package sparse

import (
	"fmt"
)

// IntMatrix is a sparse matrix of int32 values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Cells may be overwritten; space for null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix creates a new matrix of size m x n. The 3rd argument is a
// null-value, indicating empty entries (use DefaultNullValue if you haven't
// any specific requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

func (t triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}

func (t triplet) storedLeftOf(i, j int) bool {
	return t.row < i || (t.row == i && t.col < j)
}

// Value returns the value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	for _, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) {
				return t.value
			}
			break
		}
	}
	return m.nullval
}

// Set stores a value in the matrix at position (i,j), overwriting any
// previous value.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if i < 0 || j < 0 || i >= m.rowcnt || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of bounds", i, j))
	}
	at := len(m.values)
	for inx, t := range m.values {
		if t.storedAt(i, j) {
			m.values[inx].value = value
			return m
		}
		if !t.storedLeftOf(i, j) {
			at = inx
			break
		}
	}
	m.values = append(m.values, triplet{})
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = triplet{row: i, col: j, value: value}
	return m
}
