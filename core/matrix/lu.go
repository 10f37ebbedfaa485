package matrix

import (
	"math"

	"github.com/dfelber/regression/pkg/errors"
)

// DefaultTolerance is the relative pivot tolerance used by Invert and Solve.
// A pivot p is treated as zero when |p| <= DefaultTolerance * max|A|, where
// max|A| is the largest absolute element of the factorised matrix.
const DefaultTolerance = 1e-14

// LU is the factorisation P·A = L·U of a square matrix computed by Gaussian
// elimination with partial pivoting. L has a unit diagonal and is stored
// below the diagonal of lu; U is stored on and above it.
type LU struct {
	n     int
	lu    []float64
	pivot []int // row i of P·A is row pivot[i] of A
	sign  float64
}

// Factorize computes the LU factorisation of the square matrix a. tol is the
// relative pivot tolerance (see DefaultTolerance); 0 rejects only exact zero
// pivots. A pivot that is not finite is always rejected.
func Factorize(a *Matrix, tol float64) (*LU, error) {
	return factorize("Factorize", a, tol)
}

func factorize(op string, a *Matrix, tol float64) (*LU, error) {
	if a.columns != a.rows {
		return nil, errors.NewShapeError(op, [2]int{a.rows, a.rows}, [2]int{a.columns, a.rows}, "matrix must be square")
	}

	n := a.rows
	f := &LU{n: n, lu: a.Values(), pivot: make([]int, n), sign: 1}
	for i := range f.pivot {
		f.pivot[i] = i
	}

	var scale float64
	for _, v := range f.lu {
		scale = math.Max(scale, math.Abs(v))
	}
	threshold := tol * scale

	lu := f.lu
	for k := 0; k < n; k++ {
		p, best := k, math.Abs(lu[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(lu[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 || best <= threshold || !errors.IsFinite(best) {
			return nil, errors.NewSingularMatrixError(op, k, lu[p*n+k])
		}

		if p != k {
			rowK, rowP := lu[k*n:(k+1)*n], lu[p*n:(p+1)*n]
			for j := range rowK {
				rowK[j], rowP[j] = rowP[j], rowK[j]
			}
			f.pivot[k], f.pivot[p] = f.pivot[p], f.pivot[k]
			f.sign = -f.sign
		}

		pv := lu[k*n+k]
		for i := k + 1; i < n; i++ {
			factor := lu[i*n+k] / pv
			lu[i*n+k] = factor
			for j := k + 1; j < n; j++ {
				lu[i*n+j] -= factor * lu[k*n+j]
			}
		}
	}
	return f, nil
}

// Size returns the order n of the factorised n×n matrix.
func (f *LU) Size() int { return f.n }

// Det returns the determinant of the factorised matrix.
func (f *LU) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}
	return det
}

// PivotRatio returns min|uᵢᵢ| / max|uᵢᵢ|. Values far below 1 indicate an
// ill-conditioned system; 1 is returned for an empty factorisation.
func (f *LU) PivotRatio() float64 {
	if f.n == 0 {
		return 1
	}
	lo, hi := math.Inf(1), 0.0
	for i := 0; i < f.n; i++ {
		v := math.Abs(f.lu[i*f.n+i])
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo / hi
}

// SolveVec solves A·x = b for x. len(b) must equal Size().
func (f *LU) SolveVec(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, errors.NewShapeError("LU.SolveVec", [2]int{1, f.n}, [2]int{1, len(b)}, "right-hand side length must equal the system order")
	}
	x := make([]float64, f.n)
	f.solveInto(x, b)
	return x, nil
}

// solveInto writes the solution of A·x = b into x using forward substitution
// on L followed by back substitution on U.
func (f *LU) solveInto(x, b []float64) {
	n, lu := f.n, f.lu
	for i := 0; i < n; i++ {
		sum := b[f.pivot[i]]
		row := lu[i*n : i*n+i]
		for j, l := range row {
			sum -= l * x[j]
		}
		x[i] = sum
	}
	for i := n - 1; i >= 0; i-- {
		sum := x[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i*n+j] * x[j]
		}
		x[i] = sum / lu[i*n+i]
	}
}

// Inverse returns A⁻¹, solving for one column of the identity at a time.
func (f *LU) Inverse() *Matrix {
	n := f.n
	inv := zeros(n, n)
	e := make([]float64, n)
	x := make([]float64, n)
	for c := 0; c < n; c++ {
		for i := range e {
			e[i] = 0
		}
		e[c] = 1
		f.solveInto(x, e)
		for r := 0; r < n; r++ {
			inv.values[r*n+c] = x[r]
		}
	}
	return inv
}

// Invert returns the inverse of the square matrix m using DefaultTolerance.
// It fails with a *SingularMatrixError rather than returning m or a
// degenerate result.
func (m *Matrix) Invert() (*Matrix, error) {
	return m.InvertTol(DefaultTolerance)
}

// InvertTol is Invert with an explicit relative pivot tolerance.
func (m *Matrix) InvertTol(tol float64) (*Matrix, error) {
	f, err := factorize("Matrix.Invert", m, tol)
	if err != nil {
		return nil, err
	}
	return f.Inverse(), nil
}
