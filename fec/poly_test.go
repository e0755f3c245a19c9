package fec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyDegree(t *testing.T) {
	f := GF4096()
	p := NewPoly(f)
	assert.Equal(t, 0, p.Degree())
	assert.True(t, p.IsZero())
	assert.Equal(t, 0, p.Lead())

	p = NewPoly(f, 5, 0, 7, 0, 0)
	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, 7, p.Lead())
	assert.False(t, p.IsZero())

	p.SetCoeff(10, 0)
	assert.Equal(t, 0, p.Coeff(10))
	p.SetCoeff(6, 3)
	assert.Equal(t, 6, p.Degree())
	assert.Equal(t, "3x^6 + 7x^2 + 5", p.String())
	assert.Equal(t, "0", NewPoly(f, 0).String())
}

func TestPolyArithmetic(t *testing.T) {
	f, err := NewModField(101)
	require.NoError(t, err)

	// (x + 1)(x - 1) = x^2 - 1
	a := NewPoly(f, 1, 1)
	_, err = a.Mul(NewPoly(f, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{100, 0, 1}, []int{a.Coeff(0), a.Coeff(1), a.Coeff(2)})

	b := a.Copy()
	_, err = b.Add(NewPoly(f, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Coeff(0))
	assert.Equal(t, 100, a.Coeff(0))

	_, err = b.Sub(NewPoly(f, 0, 0, 1))
	require.NoError(t, err)
	assert.True(t, b.IsZero())

	c := NewPoly(f, 2, 4).Scale(3)
	assert.Equal(t, 6, c.Coeff(0))
	assert.Equal(t, 12, c.Coeff(1))
	_, err = c.DivScalar(6)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Coeff(0))
	assert.Equal(t, 2, c.Coeff(1))
	_, err = c.DivScalar(0)
	assert.ErrorIs(t, err, ErrDivideByZero)

	assert.Equal(t, []int{1, 100}, a.Zeros())
}

func TestPolyDiv(t *testing.T) {
	f := GF4096()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		q := NewPoly(f)
		for j := rng.Intn(12); j >= 0; j-- {
			q.SetCoeff(j, rng.Intn(4096))
		}
		d := NewPoly(f)
		dd := rng.Intn(6)
		for j := 0; j < dd; j++ {
			d.SetCoeff(j, rng.Intn(4096))
		}
		d.SetCoeff(dd, 1+rng.Intn(4095))
		r := NewPoly(f)
		for j := 0; j < dd; j++ {
			r.SetCoeff(j, rng.Intn(4096))
		}

		// a = q*d + r
		a := q.Copy()
		_, err := a.Mul(d)
		require.NoError(t, err)
		_, err = a.Add(r)
		require.NoError(t, err)

		rem := NewPoly(f)
		got, err := a.Copy().Div(d, rem)
		require.NoError(t, err)
		for j := 0; j <= 12; j++ {
			require.Equal(t, q.Coeff(j), got.Coeff(j), "quotient coefficient %d", j)
		}
		for j := 0; j < 6; j++ {
			require.Equal(t, r.Coeff(j), rem.Coeff(j), "remainder coefficient %d", j)
		}
	}

	_, err := NewPoly(f, 1, 2).Div(NewPoly(f), nil)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestPolyFieldMismatch(t *testing.T) {
	m, err := NewModField(7)
	require.NoError(t, err)
	p := NewPoly(GF4096(), 1)
	_, err = p.Add(NewPoly(m, 1))
	assert.ErrorIs(t, err, ErrFieldMismatch)
	_, err = p.Mul(NewPoly(m, 1))
	assert.ErrorIs(t, err, ErrFieldMismatch)
	_, err = p.Div(NewPoly(m, 1), nil)
	assert.ErrorIs(t, err, ErrFieldMismatch)

	// A separately built copy of the same field is compatible.
	same, err := NewModField(7)
	require.NoError(t, err)
	sum, err := NewPoly(m, 3, 1).Add(NewPoly(same, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Coeff(0))
	assert.Equal(t, 1, sum.Coeff(1))
}

func TestPolyEval(t *testing.T) {
	f, err := NewModField(13)
	require.NoError(t, err)
	p := NewPoly(f, 3, 0, 2) // 2x^2 + 3
	assert.Equal(t, 3, p.Eval(0))
	assert.Equal(t, 5, p.Eval(1))
	assert.Equal(t, 11, p.Eval(2))
	assert.Equal(t, (2*100+3)%13, p.Eval(10))
}

func TestLagrangeInterpolate(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m, err := NewModField(257)
	require.NoError(t, err)
	for _, f := range []Field{GF4096(), m} {
		for _, n := range []int{1, 2, 5, 64} {
			values := make([]int, n)
			for i := range values {
				values[i] = rng.Intn(f.Size())
			}
			p, err := LagrangeInterpolate(f, values)
			require.NoError(t, err)
			assert.Less(t, p.Degree(), n)
			for i, v := range values {
				require.Equal(t, v, p.Eval(i), "n=%d point %d", n, i)
			}
		}
	}
}
