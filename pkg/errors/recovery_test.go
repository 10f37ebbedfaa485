package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	refit := func() (err error) {
		defer Recover(&err, "Panel.Refit")
		var coefficients []float64
		_ = coefficients[3]
		return nil
	}

	err := refit()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "Panel.Refit" {
		t.Errorf("Expected operation 'Panel.Refit', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if !strings.HasPrefix(panicErr.Error(), "panic in Panel.Refit: ") {
		t.Errorf("unexpected message %q", panicErr.Error())
	}
}

// TestRecover_WithoutPanic tests the Recover function when no panic occurs
func TestRecover_WithoutPanic(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "Board.Refit")
		return nil
	}

	if err := fn(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

// TestRecover_WithExistingError keeps the original error reachable
func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	fn := func() (err error) {
		defer Recover(&err, "Board.Refit")
		err = originalErr
		panic("panic after error")
	}

	err := fn()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "panic in Board.Refit") {
		t.Errorf("Error message should contain panic info: %s", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		if err := SafeExecute("op", func() error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("function error", func(t *testing.T) {
		want := NewIndexError("Matrix.At", 4, 4)
		if err := SafeExecute("op", func() error { return want }); err != want {
			t.Fatalf("Expected original error, got: %v", err)
		}
	})

	t.Run("panic", func(t *testing.T) {
		err := SafeExecute("op", func() error { panic("boom") })
		var panicErr *PanicError
		if !errors.As(err, &panicErr) {
			t.Fatalf("Expected PanicError, got %T", err)
		}
		if panicErr.PanicValue != "boom" {
			t.Errorf("PanicValue = %v", panicErr.PanicValue)
		}
	})

	t.Run("error panic unwraps", func(t *testing.T) {
		cause := NewSingularMatrixError("Solve", 1, 0)
		err := SafeExecute("op", func() error { panic(cause) })
		if !Is(err, ErrSingularMatrix) {
			t.Errorf("expected panic value error to be reachable, got %v", err)
		}
	})
}

func TestPanicError_String(t *testing.T) {
	panicErr := NewPanicError("TestOp", "test value")

	str := panicErr.String()
	if !strings.Contains(str, "Stack trace:") {
		t.Error("String() should include stack trace information")
	}
	if panicErr.Unwrap() != nil {
		t.Error("Unwrap() should be nil for non-error panic values")
	}
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("BenchmarkOp", func() error { return nil })
	}
}
