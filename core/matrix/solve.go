package matrix

import (
	"github.com/dfelber/regression/pkg/errors"
)

// Solve returns β such that a·β ≈ b, where a is n×n and b is a single column
// with n rows. It uses Gaussian elimination with partial pivoting and
// DefaultTolerance.
func Solve(a, b *Matrix) (*Matrix, error) {
	return SolveTol(a, b, DefaultTolerance)
}

// SolveTol is Solve with an explicit relative pivot tolerance.
func SolveTol(a, b *Matrix, tol float64) (*Matrix, error) {
	beta, _, err := solve("Solve", a, b, tol)
	if err != nil {
		return nil, err
	}
	return beta, nil
}

// SolveWithFactor is SolveTol that also returns the factorisation, so that
// callers can inspect PivotRatio or Det.
func SolveWithFactor(a, b *Matrix, tol float64) (*Matrix, *LU, error) {
	return solve("Solve", a, b, tol)
}

func solve(op string, a, b *Matrix, tol float64) (*Matrix, *LU, error) {
	if b.columns != 1 || b.rows != a.rows {
		return nil, nil, errors.NewShapeError(op, [2]int{1, a.rows}, [2]int{b.columns, b.rows},
			"right-hand side must be a single column with one row per equation")
	}
	f, err := factorize(op, a, tol)
	if err != nil {
		return nil, nil, err
	}
	x := make([]float64, f.n)
	f.solveInto(x, b.values)
	return &Matrix{columns: 1, rows: f.n, values: x}, f, nil
}
