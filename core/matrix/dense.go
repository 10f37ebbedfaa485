package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// Dense converts m to a gonum *mat.Dense. gonum indexes (row, col), so
// m.At(c, r) == d.At(r, c). An empty m yields an empty *mat.Dense.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.columns == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(m.rows, m.columns, m.Values())
}

// FromDense copies any gonum matrix into a new *Matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	m := zeros(c, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.values[i*c+j] = d.At(i, j)
		}
	}
	return m
}
