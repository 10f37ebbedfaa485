package matrix

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dfelber/regression/pkg/errors"
)

func TestFactorize(t *testing.T) {
	a := mustNew(t, 3, 3,
		2, 1, 1,
		3, 2, 1,
		2, 1, 3,
	)
	f, err := Factorize(a, DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Size())
	assert.Equal(t, []int{1, 0, 2}, f.pivot)
	assert.InDelta(t, 2.0, f.Det(), 1e-12)
	assert.Greater(t, f.PivotRatio(), 0.1)
}

func TestFactorizeNonSquare(t *testing.T) {
	_, err := Factorize(zeros(2, 3), DefaultTolerance)
	assert.True(t, errors.Is(err, errors.ErrShape))
}

func TestInvert(t *testing.T) {
	a := mustNew(t, 2, 2, 4, 7, 2, 6)
	inv, err := a.Invert()
	require.NoError(t, err)
	assert.True(t, inv.EqualApprox(mustNew(t, 2, 2, 0.6, -0.7, -0.2, 0.4), 1e-12), "got\n%v", inv)

	t.Run("identity is its own inverse", func(t *testing.T) {
		id := identity(4)
		inv, err := id.Invert()
		require.NoError(t, err)
		assert.True(t, inv.Equal(id))
	})

	t.Run("empty", func(t *testing.T) {
		inv, err := zeros(0, 0).Invert()
		require.NoError(t, err)
		assert.Equal(t, 0, inv.Len())
	})

	t.Run("non-square", func(t *testing.T) {
		_, err := zeros(3, 2).Invert()
		assert.True(t, errors.Is(err, errors.ErrShape))
	})
}

func TestInvertSingular(t *testing.T) {
	tests := []struct {
		name string
		m    *Matrix
	}{
		{"exactly dependent rows", mustNew(t, 2, 2, 1, 2, 2, 4)},
		// elimination leaves a pivot around 1e-16 rather than 0
		{"numerically dependent rows", mustNew(t, 3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9)},
		{"zero matrix", zeros(3, 3)},
		{"non-finite entry", mustNew(t, 2, 2, 1, math.Inf(1), 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.m.Values()
			inv, err := tt.m.Invert()
			require.Error(t, err)
			assert.Nil(t, inv, "a singular matrix must never be returned as its own inverse")
			assert.True(t, errors.Is(err, errors.ErrSingularMatrix), "err = %v", err)

			var singular *errors.SingularMatrixError
			require.True(t, errors.As(err, &singular))
			assert.Equal(t, "Matrix.Invert", singular.Op)
			assert.GreaterOrEqual(t, singular.Step, 0)
			assert.Equal(t, before, tt.m.Values())
		})
	}
}

func TestInvertTolZeroAcceptsTinyPivot(t *testing.T) {
	// With tolerance 0 only exact zero pivots are rejected.
	m := mustNew(t, 2, 2, 1, 0, 0, 1e-300)
	_, err := m.Invert()
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))

	inv, err := m.InvertTol(0)
	require.NoError(t, err)
	v, _ := inv.At(1, 1)
	assert.InEpsilon(t, 1e300, v, 1e-12)
}

func TestInverseRoundTrip(t *testing.T) {
	// M·M⁻¹ ≈ I for well-conditioned random matrices.
	rng := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 25; i++ {
		n := 1 + rng.IntN(6)
		m := randomMatrix(rng, n, n)
		// diagonal dominance keeps the condition number small
		for k := 0; k < n; k++ {
			m.values[k*n+k] += 50
		}

		inv, err := m.Invert()
		require.NoError(t, err)

		prod, err := m.Multiply(inv)
		require.NoError(t, err)
		assert.True(t, prod.EqualApprox(identity(n), 1e-9), "M·M⁻¹ =\n%v", prod)

		var want mat.Dense
		require.NoError(t, want.Inverse(m.Dense()))
		assert.True(t, mat.EqualApprox(inv.Dense(), &want, 1e-9))
	}
}

func TestLUSolveVec(t *testing.T) {
	a := mustNew(t, 3, 3,
		2, 1, 1,
		3, 2, 1,
		2, 1, 3,
	)
	f, err := Factorize(a, DefaultTolerance)
	require.NoError(t, err)

	x, err := f.SolveVec([]float64{4, 6, 6})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, x, 1e-12)

	_, err = f.SolveVec([]float64{1, 2})
	assert.True(t, errors.Is(err, errors.ErrShape))
}

func TestDetMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for i := 0; i < 10; i++ {
		n := 1 + rng.IntN(5)
		m := randomMatrix(rng, n, n)
		f, err := Factorize(m, 0)
		require.NoError(t, err)
		want := mat.Det(m.Dense())
		assert.InDelta(t, want, f.Det(), 1e-9*math.Max(1, math.Abs(want)))
	}
}
