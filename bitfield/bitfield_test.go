package bitfield

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowBits(v uint32, n int) uint32 {
	if n >= 32 {
		return v
	}
	return v & (1<<uint(n) - 1)
}

func TestSetBitsGetBits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := New(100, 7)
	for i := 0; i < 5000; i++ {
		n := 1 + rng.Intn(32)
		x := rng.Intn(100 - n + 1)
		y := rng.Intn(7)
		v := rng.Uint32()
		b.SetBits(x, y, n, v)
		require.Equal(t, lowBits(v, n), b.Bits(x, y, n), "x=%d y=%d n=%d", x, y, n)
	}
}

func TestSetBitsLeavesNeighbours(t *testing.T) {
	b := New(96, 1)
	b.SetBits(0, 0, 32, 0xffffffff)
	b.SetBits(32, 0, 32, 0xffffffff)
	b.SetBits(28, 0, 8, 0)
	assert.Equal(t, uint32(0x0fffffff), b.Bits(0, 0, 32))
	assert.Equal(t, uint32(0xfffffff0), b.Bits(32, 0, 32))
	assert.False(t, b.Bit(30, 0))
	assert.True(t, b.Bit(27, 0))
	assert.True(t, b.Bit(36, 0))
}

func TestBitOrder(t *testing.T) {
	b := New(8, 1)
	b.SetBits(0, 0, 8, 0x05)
	assert.True(t, b.Bit(0, 0))
	assert.False(t, b.Bit(1, 0))
	assert.True(t, b.Bit(2, 0))
	b.SetBit(7, 0, true)
	assert.Equal(t, uint32(0x85), b.Bits(0, 0, 8))
	assert.Equal(t, "10100001\n", b.String())
}

func TestWrap(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := New(64, 64)
	for i := 0; i < 2000; i++ {
		wrap := 1 + rng.Intn(8)
		n := 1 + rng.Intn(32)
		rows := (n-1)/wrap + 1
		x := rng.Intn(64 - wrap + 1)
		y := rng.Intn(64 - rows + 1)
		v := rng.Uint32()
		b.SetBitsWrap(x, y, n, v, wrap)
		require.Equal(t, lowBits(v, n), b.BitsWrap(x, y, n, wrap), "x=%d y=%d n=%d wrap=%d", x, y, n, wrap)
	}
}

func TestWrapTileLayout(t *testing.T) {
	b := New(4, 4)
	b.SetBitsWrap(0, 0, 16, 0xf000, 4)
	for x := 0; x < 4; x++ {
		assert.False(t, b.Bit(x, 2))
		assert.True(t, b.Bit(x, 3))
	}
	assert.Equal(t, uint32(0xf), b.Bits(0, 3, 4))
}

func TestCopyBits(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := New(150, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 150; x++ {
			src.SetBit(x, y, rng.Intn(2) == 1)
		}
	}
	for _, tc := range []struct{ sx, sy, dx, dy, w, h int }{
		{0, 0, 0, 0, 150, 40},
		{3, 5, 0, 0, 100, 20},
		{0, 0, 7, 9, 64, 31},
		{33, 1, 61, 2, 65, 10},
	} {
		dst := New(180, 50)
		dst.CopyBits(src, tc.sx, tc.sy, tc.dx, tc.dy, tc.w, tc.h)
		for y := 0; y < tc.h; y++ {
			for x := 0; x < tc.w; x++ {
				require.Equal(t, src.Bit(tc.sx+x, tc.sy+y), dst.Bit(tc.dx+x, tc.dy+y), "%+v at (%d,%d)", tc, x, y)
			}
		}
	}
}

func TestCloneEqual(t *testing.T) {
	b := New(40, 3)
	b.SetBits(5, 1, 20, 0xabcde)
	c := b.Clone()
	assert.True(t, b.Equal(c))
	c.SetBit(39, 2, true)
	assert.False(t, b.Equal(c))
	assert.False(t, b.Equal(New(41, 3)))
}

func TestOutOfRangePanics(t *testing.T) {
	b := New(10, 10)
	assert.Panics(t, func() { b.Bit(10, 0) })
	assert.Panics(t, func() { b.SetBit(0, -1, true) })
	assert.Panics(t, func() { b.Bits(0, 0, 33) })
	assert.Panics(t, func() { b.Bits(3, 0, 8) })
	assert.Panics(t, func() { b.SetBitsWrap(8, 0, 16, 0xffff, 4) })

	// A run past the last column must not spill into the next row.
	w := New(32, 2)
	assert.Panics(t, func() { w.SetBits(31, 0, 2, 3) })
	assert.False(t, w.Bit(0, 1))
	assert.NotPanics(t, func() { w.SetBits(31, 0, 1, 1) })

	// Nor into the padding bits of a row narrower than a word.
	p := New(20, 1)
	assert.Panics(t, func() { p.SetBits(18, 0, 8, 0xff) })
	assert.Panics(t, func() { p.Bits(18, 0, 8) })
	assert.Equal(t, uint32(0), p.Bits(12, 0, 8))

	dst := New(16, 4)
	assert.Panics(t, func() { dst.CopyBits(New(32, 4), 0, 0, 0, 0, 20, 1) })
}
