package matrix

import (
	"github.com/dfelber/regression/pkg/errors"
)

// Transpose returns a new matrix with columns and rows swapped. The element
// at (col, row) of m is at (row, col) of the result. m is not modified.
func (m *Matrix) Transpose() *Matrix {
	t := zeros(m.rows, m.columns)
	for r := 0; r < m.rows; r++ {
		base := r * m.columns
		for c := 0; c < m.columns; c++ {
			t.values[c*m.rows+r] = m.values[base+c]
		}
	}
	return t
}

// Multiply returns the matrix product m·other. m.Columns() must equal
// other.Rows(); the result has other.Columns() columns and m.Rows() rows.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.columns != other.rows {
		return nil, errors.NewShapeError("Matrix.Multiply", [2]int{-1, m.columns}, [2]int{other.columns, other.rows},
			"right operand rows must equal left operand columns")
	}

	n, inner := other.columns, m.columns
	out := zeros(n, m.rows)
	for r := 0; r < m.rows; r++ {
		dst := out.values[r*n : (r+1)*n]
		for k := 0; k < inner; k++ {
			a := m.values[r*inner+k]
			src := other.values[k*n : (k+1)*n]
			for c, b := range src {
				dst[c] += a * b
			}
		}
	}
	return out, nil
}

// AppendHorizontal returns [m other]: m's columns followed by other's.
// Both matrices must have the same number of rows.
func (m *Matrix) AppendHorizontal(other *Matrix) (*Matrix, error) {
	if m.rows != other.rows {
		return nil, errors.NewShapeError("Matrix.AppendHorizontal", [2]int{-1, m.rows}, [2]int{other.columns, other.rows},
			"row counts must match")
	}

	cols := m.columns + other.columns
	out := zeros(cols, m.rows)
	for r := 0; r < m.rows; r++ {
		dst := out.values[r*cols : (r+1)*cols]
		copy(dst, m.values[r*m.columns:(r+1)*m.columns])
		copy(dst[m.columns:], other.values[r*other.columns:(r+1)*other.columns])
	}
	return out, nil
}
