package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckNumericalStability checks if values contain NaN or Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64) error {
	for _, v := range values {
		if !IsFinite(v) {
			return NewNumericalInstabilityError(operation, values)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64) error {
	if !IsFinite(value) {
		return NewNumericalInstabilityError(operation, []float64{value})
	}
	return nil
}

// FiniteOrNaN returns v unchanged when it is finite and NaN otherwise.
// Presentation code uses NaN as the single "no value here" marker.
func FiniteOrNaN(v float64) float64 {
	if IsFinite(v) {
		return v
	}
	return math.NaN()
}
