package fec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSymbols(rng *rand.Rand, n, size int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = rng.Intn(size)
	}
	return s
}

// corrupt replaces the symbols at count distinct positions with different values.
func corrupt(rng *rand.Rand, cw []int, count, size int) []int {
	out := append([]int(nil), cw...)
	for _, pos := range rng.Perm(len(cw))[:count] {
		out[pos] = (out[pos] + 1 + rng.Intn(size-1)) % size
	}
	return out
}

func TestReedSolomonParams(t *testing.T) {
	f := GF4096()
	_, err := NewReedSolomon(f, 10, 3)
	assert.ErrorIs(t, err, ErrBadCodeParams)
	_, err = NewReedSolomon(f, 0, 4)
	assert.ErrorIs(t, err, ErrBadCodeParams)
	_, err = NewReedSolomon(f, 4000, 100)
	assert.ErrorIs(t, err, ErrBadCodeParams)

	rs, err := NewReedSolomon(f, 192, 64)
	require.NoError(t, err)
	assert.Equal(t, 192, rs.MessageSize())
	assert.Equal(t, 64, rs.CheckSize())
	assert.Equal(t, 256, rs.CodewordSize())
	_, err = rs.Encode(make([]int, 10))
	assert.ErrorIs(t, err, ErrCodewordLength)
	_, err = rs.Decode(make([]int, 10))
	assert.ErrorIs(t, err, ErrCodewordLength)
}

func TestReedSolomonEncodeKnown(t *testing.T) {
	rs, err := NewReedSolomon(GF4096(), 8, 4)
	require.NoError(t, err)
	cw, err := rs.Encode([]int{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 3693, 46, 1158, 2673}, cw)
}

func TestReedSolomonSmallAllErrorCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	rs, err := NewReedSolomon(GF4096(), 24, 16)
	require.NoError(t, err)
	for errs := 0; errs <= 8; errs++ {
		for trial := 0; trial < 5; trial++ {
			msg := randomSymbols(rng, 24, 4096)
			cw, err := rs.Encode(msg)
			require.NoError(t, err)
			got, err := rs.Decode(corrupt(rng, cw, errs, 4096))
			require.NoError(t, err, "%d errors", errs)
			require.Equal(t, msg, got, "%d errors", errs)
		}
	}
}

func TestReedSolomonMedium(t *testing.T) {
	rng := rand.New(rand.NewSource(192))
	rs, err := NewReedSolomon(GF4096(), 192, 64)
	require.NoError(t, err)
	for _, errs := range []int{0, 1, 17, 32} {
		msg := randomSymbols(rng, 192, 4096)
		cw, err := rs.Encode(msg)
		require.NoError(t, err)
		assert.Equal(t, msg, cw[:192], "systematic prefix")
		got, err := rs.Decode(corrupt(rng, cw, errs, 4096))
		require.NoError(t, err, "%d errors", errs)
		require.Equal(t, msg, got, "%d errors", errs)
	}
}

func TestReedSolomonTooManyErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(33))
	rs, err := NewReedSolomon(GF4096(), 24, 16)
	require.NoError(t, err)
	for trial := 0; trial < 10; trial++ {
		msg := randomSymbols(rng, 24, 4096)
		cw, err := rs.Encode(msg)
		require.NoError(t, err)
		got, err := rs.Decode(corrupt(rng, cw, 9+rng.Intn(8), 4096))
		if err == nil {
			assert.NotEqual(t, msg, got)
		} else {
			assert.ErrorIs(t, err, ErrUncorrectable)
		}
	}
}

func TestReedSolomonMediumTooManyErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(3364))
	rs, err := NewReedSolomon(GF4096(), 192, 64)
	require.NoError(t, err)
	for _, errs := range []int{33, 40, 64} {
		msg := randomSymbols(rng, 192, 4096)
		cw, err := rs.Encode(msg)
		require.NoError(t, err)
		got, err := rs.Decode(corrupt(rng, cw, errs, 4096))
		if err == nil {
			assert.NotEqual(t, msg, got, "%d errors", errs)
		} else {
			assert.ErrorIs(t, err, ErrUncorrectable, "%d errors", errs)
		}
	}
}

func TestReedSolomonPrimeField(t *testing.T) {
	f, err := NewModField(257)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(257))
	rs, err := NewReedSolomon(f, 20, 10)
	require.NoError(t, err)
	msg := randomSymbols(rng, 20, 257)
	cw, err := rs.Encode(msg)
	require.NoError(t, err)
	got, err := rs.Decode(corrupt(rng, cw, 5, 257))
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}
