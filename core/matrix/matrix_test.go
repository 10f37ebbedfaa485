package matrix

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfelber/regression/pkg/errors"
)

func mustNew(t testing.TB, columns, rows int, values ...float64) *Matrix {
	t.Helper()
	m, err := New(columns, rows, values)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	t.Run("copies buffer", func(t *testing.T) {
		buf := []float64{1, 2, 3, 4, 5, 6}
		m, err := New(3, 2, buf)
		require.NoError(t, err)
		buf[0] = 100

		v, err := m.At(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, v, "matrix must not alias the caller's buffer")
		assert.Equal(t, 3, m.Columns())
		assert.Equal(t, 2, m.Rows())
	})

	t.Run("nil buffer zero fills", func(t *testing.T) {
		m, err := New(2, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, make([]float64, 6), m.Values())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := New(2, 2, []float64{1, 2, 3})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrShape))

		var shapeErr *errors.ShapeError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, "New", shapeErr.Op)
	})

	t.Run("negative dimensions", func(t *testing.T) {
		_, err := NewZeros(-1, 2)
		assert.True(t, errors.Is(err, errors.ErrShape))
		_, err = NewFilled(1, -2, 3)
		assert.True(t, errors.Is(err, errors.ErrShape))
	})

	t.Run("empty", func(t *testing.T) {
		m, err := New(0, 0, []float64{})
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})
}

func TestNewFilledAndIdentity(t *testing.T) {
	ones, err := NewFilled(1, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, ones.Values())

	id, err := Identity(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, id.Values())

	col := Column([]float64{4, 5})
	assert.Equal(t, 1, col.Columns())
	assert.Equal(t, 2, col.Rows())
}

func TestAtSet(t *testing.T) {
	// 3 columns, 2 rows:
	// [1 2 3]
	// [4 5 6]
	m := mustNew(t, 3, 2, 1, 2, 3, 4, 5, 6)

	v, err := m.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	require.NoError(t, m.Set(0, 1, -4))
	assert.Equal(t, []float64{1, 2, 3, -4, 5, 6}, m.Values())

	tests := []struct {
		name     string
		col, row int
	}{
		{"column past end", 3, 0},
		{"row past end", 0, 2},
		{"negative column", -1, 0},
		{"negative row", 0, -1},
		// (3,0) would alias (0,1) in a flat-index check
		{"column wraps into next row", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.At(tt.col, tt.row)
			assert.True(t, errors.Is(err, errors.ErrIndex), "At(%d,%d) err = %v", tt.col, tt.row, err)
			assert.True(t, math.IsNaN(got))

			err = m.Set(tt.col, tt.row, 9)
			assert.True(t, errors.Is(err, errors.ErrIndex))
		})
	}
	assert.Equal(t, []float64{1, 2, 3, -4, 5, 6}, m.Values(), "failed Set must not mutate")
}

func TestRange(t *testing.T) {
	m := mustNew(t, 2, 2, 1, 2, 3, 4)

	got, err := m.Range(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, got)

	got, err = m.Range(4, 4)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, m.SetRange(2, 4, []float64{7, 8}))
	assert.Equal(t, []float64{1, 2, 7, 8}, m.Values())

	_, err = m.Range(3, 5)
	assert.True(t, errors.Is(err, errors.ErrIndex))
	_, err = m.Range(-1, 2)
	assert.True(t, errors.Is(err, errors.ErrIndex))
	_, err = m.Range(3, 2)
	assert.True(t, errors.Is(err, errors.ErrIndex))

	err = m.SetRange(0, 2, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrShape))
	err = m.SetRange(3, 5, []float64{1, 2})
	assert.True(t, errors.Is(err, errors.ErrIndex))
	assert.Equal(t, []float64{1, 2, 7, 8}, m.Values())
}

func TestSetAllAndReplaceValues(t *testing.T) {
	m := mustNew(t, 2, 2, 1, 2, 3, 4)

	m.SetAll(0.5)
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, m.Values())

	require.NoError(t, m.ReplaceValues([]float64{4, 3, 2, 1}))
	assert.Equal(t, []float64{4, 3, 2, 1}, m.Values())

	err := m.ReplaceValues([]float64{1, 2, 3})
	assert.True(t, errors.Is(err, errors.ErrShape))
	assert.Equal(t, []float64{4, 3, 2, 1}, m.Values(), "rejected replacement must leave values untouched")
}

func TestValuesReturnsCopy(t *testing.T) {
	m := mustNew(t, 1, 2, 1, 2)
	vals := m.Values()
	vals[0] = 42
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestCloneMapEqual(t *testing.T) {
	m := mustNew(t, 2, 1, 1, -2)
	c := m.Clone()
	assert.True(t, m.Equal(c))

	require.NoError(t, c.Set(0, 0, 5))
	assert.False(t, m.Equal(c))

	sq := m.Map(func(v float64) float64 { return v * v })
	assert.Equal(t, []float64{1, 4}, sq.Values())
	assert.Equal(t, []float64{1, -2}, m.Values())

	assert.True(t, m.EqualApprox(mustNew(t, 2, 1, 1+1e-12, -2), 1e-9))
	assert.False(t, m.EqualApprox(mustNew(t, 1, 2, 1, -2), 1e-9), "shape differs")
}

func TestString(t *testing.T) {
	m := mustNew(t, 2, 2, 1, 2.5, -3, 4)
	want := "[1, 2.5]\n[-3, 4]\n"
	if diff := cmp.Diff(want, m.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}
