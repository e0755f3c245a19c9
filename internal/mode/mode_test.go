package mode

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeSequence(t *testing.T) {
	f := New[string]()
	_, ok := f.Mode()
	assert.False(t, ok)

	seq := []string{"a", "a", "b", "a", "b", "b", "b"}
	for _, s := range seq[:5] {
		f.Add(s)
	}
	m, ok := f.Mode()
	require.True(t, ok)
	assert.Equal(t, "a", m)

	for _, s := range seq[5:] {
		f.Add(s)
	}
	m, _ = f.Mode()
	assert.Equal(t, "b", m)
	assert.Equal(t, 4, f.Count("b"))
	assert.Equal(t, 3, f.Count("a"))
	assert.Equal(t, 2, f.Len())
}

func TestModeTieGoesToFirst(t *testing.T) {
	f := New[int]()
	for _, v := range []int{3, 1, 2, 2, 1} {
		f.Add(v)
	}
	m, _ := f.Mode()
	assert.Equal(t, 2, m)
}

func TestModeLongBlock(t *testing.T) {
	f := New[int]()
	for v := 0; v < 5; v++ {
		f.Add(v)
		f.Add(v)
	}
	f.Add(4)
	m, _ := f.Mode()
	assert.Equal(t, 4, m)
}

func TestModeMatchesCounting(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	f := New[int]()
	counts := map[int]int{}
	for i := 0; i < 5000; i++ {
		v := int(rng.ExpFloat64() * 4)
		f.Add(v)
		counts[v]++
		m, ok := f.Mode()
		require.True(t, ok)
		for k, c := range counts {
			require.LessOrEqual(t, c, counts[m], "step %d: %d has %d, mode %d has %d", i, k, c, m, counts[m])
		}
	}
	f.Reset()
	assert.Equal(t, 0, f.Len())
	_, ok := f.Mode()
	assert.False(t, ok)
}
