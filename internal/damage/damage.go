// Package damage applies reproducible corruption to bitfields: random bit
// flips, overwritten rectangles and edge crops.
package damage

import (
	"math/rand"

	"github.com/allanzhao/rsteg/bitfield"
)

// Bernoulli implements a simple u<p hit decision.
type Bernoulli struct {
	p   float64
	rng *rand.Rand
}

func NewBernoulli(p float64, rng *rand.Rand) *Bernoulli { return &Bernoulli{p: p, rng: rng} }

func (b *Bernoulli) Hit() bool {
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return b.rng.Float64() < b.p
}

// FlipBits inverts each bit of bf with probability p and returns the number
// of bits flipped.
func FlipBits(bf *bitfield.Bitfield, p float64, rng *rand.Rand) int {
	b := NewBernoulli(p, rng)
	n := 0
	for y := 0; y < bf.Height(); y++ {
		for x := 0; x < bf.Width(); x++ {
			if b.Hit() {
				bf.SetBit(x, y, !bf.Bit(x, y))
				n++
			}
		}
	}
	return n
}

// Blocks fills count randomly placed size x size squares with random bits.
// Squares are clipped to bf.
func Blocks(bf *bitfield.Bitfield, count, size int, rng *rand.Rand) {
	if size <= 0 || bf.Width() == 0 || bf.Height() == 0 {
		return
	}
	for i := 0; i < count; i++ {
		x0, y0 := rng.Intn(bf.Width()), rng.Intn(bf.Height())
		for y := y0; y < min(y0+size, bf.Height()); y++ {
			for x := x0; x < min(x0+size, bf.Width()); x++ {
				bf.SetBit(x, y, rng.Intn(2) == 1)
			}
		}
	}
}

// Crop returns a copy of bf with the given number of bits removed from each
// edge. Crops that leave nothing return an empty bitfield.
func Crop(bf *bitfield.Bitfield, left, right, top, bottom int) *bitfield.Bitfield {
	w := max(bf.Width()-left-right, 0)
	h := max(bf.Height()-top-bottom, 0)
	out := bitfield.New(w, h)
	if w > 0 && h > 0 {
		out.CopyBits(bf, left, top, 0, 0, w, h)
	}
	return out
}

// Pad returns a w x h bitfield of random bits with bf copied in at (x, y).
func Pad(bf *bitfield.Bitfield, w, h, x, y int, rng *rand.Rand) *bitfield.Bitfield {
	out := bitfield.New(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			out.SetBit(i, j, rng.Intn(2) == 1)
		}
	}
	out.CopyBits(bf, 0, 0, x, y, bf.Width(), bf.Height())
	return out
}
