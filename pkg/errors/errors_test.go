package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewShapeError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		want    [2]int
		got     [2]int
		reason  string
		wantMsg string
	}{
		{
			name:    "with reason",
			op:      "Matrix.Multiply",
			want:    [2]int{-1, 3},
			got:     [2]int{2, 4},
			reason:  "left columns must equal right rows",
			wantMsg: "regression: Matrix.Multiply: shape mismatch: want *x3, got 2x4 (left columns must equal right rows)",
		},
		{
			name:    "without reason",
			op:      "New",
			want:    [2]int{2, 2},
			got:     [2]int{1, 3},
			wantMsg: "regression: New: shape mismatch: want 2x2, got 1x3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewShapeError(tt.op, tt.want, tt.got, tt.reason)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var shapeErr *ShapeError
			if !As(err, &shapeErr) {
				t.Fatal("Error should be castable to *ShapeError")
			}
			if shapeErr.Op != tt.op {
				t.Errorf("Op = %q, want %q", shapeErr.Op, tt.op)
			}
			if !Is(err, ErrShape) {
				t.Error("Expected Is(err, ErrShape) to be true")
			}
			if Is(err, ErrIndex) || Is(err, ErrSingularMatrix) {
				t.Error("ShapeError must not match other sentinels")
			}
		})
	}
}

func TestNewIndexError(t *testing.T) {
	err := NewIndexError("Matrix.At", 7, 6)

	want := "regression: Matrix.At: index 7 out of range [0,6)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var idxErr *IndexError
	if !As(err, &idxErr) {
		t.Error("Error should be castable to *IndexError")
	}
	if !Is(err, ErrIndex) {
		t.Error("Expected Is(err, ErrIndex) to be true")
	}
}

func TestNewSingularMatrixError(t *testing.T) {
	t.Run("pivot step", func(t *testing.T) {
		err := NewSingularMatrixError("Matrix.Invert", 2, 0)
		want := "regression: Matrix.Invert: singular matrix: pivot 2 is 0"
		if err.Error() != want {
			t.Errorf("Error() = %v, want %v", err.Error(), want)
		}

		var singErr *SingularMatrixError
		if !As(err, &singErr) {
			t.Fatal("Error should be castable to *SingularMatrixError")
		}
		if singErr.Step != 2 {
			t.Errorf("Step = %d, want 2", singErr.Step)
		}
	})

	t.Run("rank deficient", func(t *testing.T) {
		err := NewRankDeficientError("PolynomialRegression.Fit", "2 distinct samples for 3 coefficients")
		want := "regression: PolynomialRegression.Fit: singular matrix: 2 distinct samples for 3 coefficients"
		if err.Error() != want {
			t.Errorf("Error() = %v, want %v", err.Error(), want)
		}
		if !Is(err, ErrSingularMatrix) {
			t.Error("Expected Is(err, ErrSingularMatrix) to be true")
		}
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := Wrap(NewSingularMatrixError("Solve", 0, 0), "fitting degree 2")
		if !Is(err, ErrSingularMatrix) {
			t.Error("Expected wrapped error to match ErrSingularMatrix")
		}
		if !strings.Contains(err.Error(), "fitting degree 2") {
			t.Error("Expected wrapped error to contain wrapping message")
		}
	})
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("PolynomialRegression", "Predict")

	want := "regression: PolynomialRegression: this model is not fitted yet. Fit it before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("degree", "must be at least 1", 0)

	want := "regression: validation failed for parameter 'degree': must be at least 1 (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNumericalInstabilityErrorMessage(t *testing.T) {
	values := []float64{1, math.NaN(), 3, 4, 5, 6, 7}
	err := NewNumericalInstabilityError("coefficients", values)

	msg := err.Error()
	if !strings.Contains(msg, "coefficients") || !strings.Contains(msg, "NaN") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.HasSuffix(msg, "...]") {
		t.Errorf("expected truncated value list, got %q", msg)
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var shapeErr *ShapeError
	if !As(NewShapeError("Matrix.AppendHorizontal", [2]int{-1, 3}, [2]int{1, 2}, ""), &shapeErr) {
		t.Fatal("expected *ShapeError")
	}
	logger.Error().EmbedObject(shapeErr).Msg("append failed")

	out := buf.String()
	for _, want := range []string{`"type":"ShapeError"`, `"operation":"Matrix.AppendHorizontal"`, `"want":"*x3"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %s missing %s", out, want)
		}
	}
}

func TestWarnRouting(t *testing.T) {
	var handled []error
	SetWarningHandler(func(w error) { handled = append(handled, w) })
	defer SetWarningHandler(func(w error) {})

	w := NewIllConditionedWarning("Solve", 1e-14)
	Warn(w)
	if len(handled) != 1 || handled[0] != w {
		t.Fatalf("handler got %v, want [%v]", handled, w)
	}

	// zerolog関数が設定されていれば優先される
	var viaZerolog []error
	SetZerologWarnFunc(func(w error) { viaZerolog = append(viaZerolog, w) })
	defer SetZerologWarnFunc(nil)

	Warn(w)
	if len(viaZerolog) != 1 {
		t.Errorf("expected zerolog warn func to receive the warning, got %d", len(viaZerolog))
	}
	if len(handled) != 1 {
		t.Errorf("fallback handler should not run when zerolog func is set")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Fit", 2, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 2, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}
