// Package regression fits polynomial curves to 2-D sample points.
//
// The module is built around a small dense linear-algebra engine and a
// least-squares polynomial regression on top of it.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/dfelber/regression/core/matrix"
//	    "github.com/dfelber/regression/linear"
//	)
//
//	func main() {
//	    x := matrix.Column([]float64{0, 1, 2})
//	    y := matrix.Column([]float64{0, 1, 4})
//
//	    model, err := linear.NewPolynomialRegression(x, y, 2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, _ := model.Predict(matrix.Column([]float64{3}))
//	    fmt.Println(pred.Values()) // ≈ [9]
//	}
//
// # Packages
//
//   - core/matrix: row-major Matrix, transpose, multiply, horizontal append,
//     LU with partial pivoting, Invert and Solve, gonum interop
//   - linear: PolynomialRegression fitted through the normal equations
//   - curve: single-value prediction, degree clamping, curve tracing and a
//     Board that fans points out to several Panels
//   - metrics: MSE, RMSE, MAE, MAPE and R²
//   - dataset: CSV and .npy sample loading, .npy prediction output
//   - core/model: fitted state, model interfaces and JSON weight persistence
//   - core/parallel: range-chunked worker fan-out
//   - pkg/errors: typed errors (shape, index, singular matrix) and warnings
//   - pkg/log: slog-compatible logging with zerolog and slog backends
//
// The examples/polyfit command fits samples from a file and can render the
// curves to a PNG.
//
// # Errors
//
// Dimension mismatches fail with *errors.ShapeError, out-of-range access
// with *errors.IndexError and systems that cannot be solved with
// *errors.SingularMatrixError. Each also matches its sentinel:
//
//	if errors.Is(err, errors.ErrSingularMatrix) {
//	    // not enough distinct x values for this degree
//	}
package regression
