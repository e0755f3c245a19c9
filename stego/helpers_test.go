package stego

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/allanzhao/rsteg/bitfield"
)

func randomBitfield(rng *rand.Rand, w, h int) *bitfield.Bitfield {
	bf := bitfield.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bf.SetBit(x, y, rng.Intn(2) == 1)
		}
	}
	return bf
}

func encoded(t *testing.T, w, h int, payload []byte, level Level) *bitfield.Bitfield {
	t.Helper()
	bf := bitfield.New(w, h)
	require.NoError(t, Encode(bf, payload, level))
	return bf
}
