package linear

import (
	"github.com/dfelber/regression/pkg/log"
)

// Option is a function that configures PolynomialRegression
type Option func(*PolynomialRegression)

// WithTolerance sets the relative pivot tolerance passed to the solver.
// The default 0 rejects only exact zero or non-finite pivots; rank deficiency
// is caught before solving by counting distinct x values.
func WithTolerance(tol float64) Option {
	return func(pr *PolynomialRegression) {
		pr.tol = tol
	}
}

// WithLogger sets the logger used for debug records of fit and predict
func WithLogger(logger log.Logger) Option {
	return func(pr *PolynomialRegression) {
		pr.logger = logger
	}
}
