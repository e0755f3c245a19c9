package stego

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allanzhao/rsteg/internal/damage"
)

func TestFindAlignmentEncoded(t *testing.T) {
	bf := encoded(t, 256, 256, []byte("align"), LevelMedium)
	a := FindAlignment(bf)
	assert.Equal(t, 0, a.OffsetX)
	assert.Equal(t, 0, a.OffsetY)
	assert.Equal(t, float32(1), a.TileConfidence)
	// Roughly half the tiles have an index bit flipped for parity.
	assert.Greater(t, a.PatchConfidence, float32(0.4))
}

func TestFindAlignmentShifted(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := encoded(t, 128, 128, []byte("shift"), LevelHigh)
	for _, off := range [][2]int{{1, 0}, {0, 7}, {5, 13}, {15, 15}, {21, 2}} {
		bf := damage.Pad(src, 128+off[0]+9, 128+off[1]+9, off[0], off[1], rng)
		a := FindAlignment(bf)
		assert.Equal(t, off[0]%16, a.OffsetX, "offset %v", off)
		assert.Equal(t, off[1]%16, a.OffsetY, "offset %v", off)
	}
}

func TestIndexOfMax(t *testing.T) {
	assert.Equal(t, 0, indexOfMax(nil))
	assert.Equal(t, 0, indexOfMax([]float32{0, 0, 0}))
	assert.Equal(t, 1, indexOfMax([]float32{0.1, 0.5, 0.5}))
	assert.Equal(t, 2, indexOfMax([]float32{0, 0, 1e-30}))
}
