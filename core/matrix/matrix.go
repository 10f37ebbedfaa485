// Package matrix provides a small dense, row-major matrix of float64 values
// together with the linear algebra needed for least-squares fitting:
// transpose, multiplication, horizontal concatenation, LU factorisation with
// partial pivoting, inversion and linear solves.
//
// Elements are addressed as (column, row). The value at (col, row) lives at
// index row*Columns()+col of the flat buffer. Every constructor copies the
// buffer it is given, so two *Matrix values never share storage.
//
// All failures are reported as errors from pkg/errors: *ShapeError for
// dimension mismatches, *IndexError for out-of-range access and
// *SingularMatrixError when a factorisation meets a (near) zero pivot.
package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/dfelber/regression/pkg/errors"
)

// Matrix is a dense matrix stored in row-major order.
// The zero value is a valid 0x0 matrix.
type Matrix struct {
	columns int
	rows    int
	values  []float64 // len(values) == columns*rows
}

// New creates a columns×rows matrix holding a copy of values.
// A nil values buffer is zero-filled; otherwise its length must be columns*rows.
func New(columns, rows int, values []float64) (*Matrix, error) {
	if err := checkDims("New", columns, rows); err != nil {
		return nil, err
	}
	if values == nil {
		return zeros(columns, rows), nil
	}
	if len(values) != columns*rows {
		return nil, errors.NewShapeError("New", [2]int{columns, rows}, [2]int{-1, -1},
			fmt.Sprintf("buffer holds %d values, need %d", len(values), columns*rows))
	}
	m := zeros(columns, rows)
	copy(m.values, values)
	return m, nil
}

// NewZeros creates a zero-filled columns×rows matrix.
func NewZeros(columns, rows int) (*Matrix, error) {
	if err := checkDims("NewZeros", columns, rows); err != nil {
		return nil, err
	}
	return zeros(columns, rows), nil
}

// NewFilled creates a columns×rows matrix with every element set to value.
func NewFilled(columns, rows int, value float64) (*Matrix, error) {
	if err := checkDims("NewFilled", columns, rows); err != nil {
		return nil, err
	}
	return filled(columns, rows, value), nil
}

// Identity creates the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	if err := checkDims("Identity", n, n); err != nil {
		return nil, err
	}
	return identity(n), nil
}

// Column creates a single-column matrix with one row per value.
func Column(values []float64) *Matrix {
	m := zeros(1, len(values))
	copy(m.values, values)
	return m
}

func checkDims(op string, columns, rows int) error {
	if columns < 0 || rows < 0 {
		return errors.NewShapeError(op, [2]int{-1, -1}, [2]int{columns, rows}, "dimensions must not be negative")
	}
	return nil
}

func zeros(columns, rows int) *Matrix {
	return &Matrix{columns: columns, rows: rows, values: make([]float64, columns*rows)}
}

func filled(columns, rows int, value float64) *Matrix {
	m := zeros(columns, rows)
	for i := range m.values {
		m.values[i] = value
	}
	return m
}

func identity(n int) *Matrix {
	m := zeros(n, n)
	for i := 0; i < n; i++ {
		m.values[i*n+i] = 1
	}
	return m
}

// Columns returns the number of columns.
func (m *Matrix) Columns() int { return m.columns }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Dims returns the number of columns and rows, in that order.
func (m *Matrix) Dims() (columns, rows int) { return m.columns, m.rows }

// Len returns the number of elements.
func (m *Matrix) Len() int { return len(m.values) }

// Values returns a copy of the row-major buffer.
func (m *Matrix) Values() []float64 {
	out := make([]float64, len(m.values))
	copy(out, m.values)
	return out
}

// At returns the element at (col, row).
func (m *Matrix) At(col, row int) (float64, error) {
	idx, err := m.index("Matrix.At", col, row)
	if err != nil {
		return math.NaN(), err
	}
	return m.values[idx], nil
}

// Set assigns v to the element at (col, row).
func (m *Matrix) Set(col, row int, v float64) error {
	idx, err := m.index("Matrix.Set", col, row)
	if err != nil {
		return err
	}
	m.values[idx] = v
	return nil
}

// index bounds-checks each coordinate separately so (columns, 0) cannot
// silently alias (0, 1).
func (m *Matrix) index(op string, col, row int) (int, error) {
	if col < 0 || col >= m.columns {
		return 0, errors.NewIndexError(op+" column", col, m.columns)
	}
	if row < 0 || row >= m.rows {
		return 0, errors.NewIndexError(op+" row", row, m.rows)
	}
	return row*m.columns + col, nil
}

// Range returns a copy of the flat values in [lo, hi).
func (m *Matrix) Range(lo, hi int) ([]float64, error) {
	if err := m.checkRange("Matrix.Range", lo, hi); err != nil {
		return nil, err
	}
	out := make([]float64, hi-lo)
	copy(out, m.values[lo:hi])
	return out, nil
}

// SetRange overwrites the flat values in [lo, hi) with values, which must
// hold exactly hi-lo elements.
func (m *Matrix) SetRange(lo, hi int, values []float64) error {
	if err := m.checkRange("Matrix.SetRange", lo, hi); err != nil {
		return err
	}
	if len(values) != hi-lo {
		return errors.NewShapeError("Matrix.SetRange", [2]int{1, hi - lo}, [2]int{1, len(values)},
			"replacement length must equal the range span")
	}
	copy(m.values[lo:hi], values)
	return nil
}

func (m *Matrix) checkRange(op string, lo, hi int) error {
	if lo < 0 || lo > len(m.values) {
		return errors.NewIndexError(op, lo, len(m.values)+1)
	}
	if hi < lo || hi > len(m.values) {
		return errors.NewIndexError(op, hi, len(m.values)+1)
	}
	return nil
}

// SetAll sets every element to value.
func (m *Matrix) SetAll(value float64) {
	for i := range m.values {
		m.values[i] = value
	}
}

// ReplaceValues replaces the whole buffer with a copy of values.
// The length must match Len(); a mismatch is an error and leaves m unchanged.
func (m *Matrix) ReplaceValues(values []float64) error {
	if len(values) != len(m.values) {
		return errors.NewShapeError("Matrix.ReplaceValues", [2]int{m.columns, m.rows}, [2]int{-1, -1},
			fmt.Sprintf("got %d values, need %d", len(values), len(m.values)))
	}
	copy(m.values, values)
	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	c := zeros(m.columns, m.rows)
	copy(c.values, m.values)
	return c
}

// Map returns a new matrix with fn applied to every element.
func (m *Matrix) Map(fn func(float64) float64) *Matrix {
	out := zeros(m.columns, m.rows)
	for i, v := range m.values {
		out.values[i] = fn(v)
	}
	return out
}

// Equal reports whether m and other have the same shape and identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	return m.EqualApprox(other, 0)
}

// EqualApprox reports whether m and other have the same shape and every pair
// of elements differs by at most tol.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if m.columns != other.columns || m.rows != other.rows {
		return false
	}
	for i, v := range m.values {
		if math.Abs(v-other.values[i]) > tol {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteByte('[')
		for c := 0; c < m.columns; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.values[r*m.columns+c])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
