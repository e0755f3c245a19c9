// Package bitfield implements a dense two-dimensional bit grid with
// word-sized run access.
package bitfield

import (
	"fmt"
	"strings"
)

const (
	wordBits  = 32
	wordShift = 5
	indexMask = wordBits - 1
)

// Bitfield is a W x H grid of bits. Each row is padded to a whole number of
// 32-bit words; padding bits are never touched by in-bounds operations.
type Bitfield struct {
	width, height int
	stride        int // words per row
	words         []uint32
}

// New allocates a zeroed w x h bitfield.
func New(w, h int) *Bitfield {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("bitfield: negative size %dx%d", w, h))
	}
	stride := (w + indexMask) >> wordShift
	return &Bitfield{width: w, height: h, stride: stride, words: make([]uint32, stride*h)}
}

func (b *Bitfield) Width() int  { return b.width }
func (b *Bitfield) Height() int { return b.height }

func (b *Bitfield) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("bitfield: (%d,%d) outside %dx%d", x, y, b.width, b.height))
	}
	return y*b.stride + x>>wordShift
}

// runIndex is the word index of a run of n bits starting at (x, y). The run
// must end inside row y.
func (b *Bitfield) runIndex(x, y, n int) int {
	i := b.index(x, y)
	if x+n > b.width {
		panic(fmt.Sprintf("bitfield: run of %d at (%d,%d) crosses width %d", n, x, y, b.width))
	}
	return i
}

// Bit reports whether the bit at (x, y) is set.
func (b *Bitfield) Bit(x, y int) bool {
	return b.words[b.index(x, y)]&(1<<uint(x&indexMask)) != 0
}

// SetBit sets or clears the bit at (x, y).
func (b *Bitfield) SetBit(x, y int, v bool) {
	i := b.index(x, y)
	m := uint32(1) << uint(x&indexMask)
	if v {
		b.words[i] |= m
	} else {
		b.words[i] &^= m
	}
}

func runMasks(bit uint, n int) (mask, m0, m1 uint32) {
	if n < 1 || n > wordBits {
		panic(fmt.Sprintf("bitfield: run length %d out of range", n))
	}
	mask = ^uint32(0)
	if n < wordBits {
		mask = 1<<uint(n) - 1
	}
	m0 = mask << bit
	if bit != 0 {
		m1 = mask >> (wordBits - bit)
	}
	return
}

// Bits returns n (1..32) bits in increasing x starting at (x, y). The bit at
// (x, y) is the least significant bit of the result.
func (b *Bitfield) Bits(x, y, n int) uint32 {
	i := b.runIndex(x, y, n)
	bit := uint(x & indexMask)
	_, m0, m1 := runMasks(bit, n)
	v := (b.words[i] & m0) >> bit
	if m1 != 0 {
		v |= (b.words[i+1] & m1) << (wordBits - bit)
	}
	return v
}

// SetBits stores the low n bits of v in increasing x starting at (x, y).
func (b *Bitfield) SetBits(x, y, n int, v uint32) {
	i := b.runIndex(x, y, n)
	bit := uint(x & indexMask)
	_, m0, m1 := runMasks(bit, n)
	b.words[i] = b.words[i]&^m0 | (v<<bit)&m0
	if m1 != 0 {
		b.words[i+1] = b.words[i+1]&^m1 | (v>>(wordBits-bit))&m1
	}
}

// wrapRows returns the row count and the length of the final row when n bits
// are laid out in rows of wrap bits.
func wrapRows(n, wrap int) (rows, last int) {
	rows = (n-1)/wrap + 1
	last = n % wrap
	if last == 0 {
		last = wrap
	}
	return rows, last
}

// BitsWrap reads n bits as consecutive rows of wrap bits starting at (x, y).
// Row r supplies bits r*wrap and up of the result.
func (b *Bitfield) BitsWrap(x, y, n, wrap int) uint32 {
	rows, last := wrapRows(n, wrap)
	var v uint32
	for r := 0; r < rows; r++ {
		l := wrap
		if r == rows-1 {
			l = last
		}
		v |= b.Bits(x, y+r, l) << uint(r*wrap)
	}
	return v
}

// SetBitsWrap is the inverse of BitsWrap.
func (b *Bitfield) SetBitsWrap(x, y, n int, v uint32, wrap int) {
	rows, last := wrapRows(n, wrap)
	for r := 0; r < rows; r++ {
		l := wrap
		if r == rows-1 {
			l = last
		}
		b.SetBits(x, y+r, l, v>>uint(r*wrap))
	}
}

// CopyBits copies the w x h block at (srcX, srcY) in src to (dstX, dstY) in b.
func (b *Bitfield) CopyBits(src *Bitfield, srcX, srcY, dstX, dstY, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	chunks := (w + indexMask) >> wordShift
	for r := 0; r < h; r++ {
		for c := 0; c < chunks; c++ {
			l := wordBits
			if c == chunks-1 {
				if l = w & indexMask; l == 0 {
					l = wordBits
				}
			}
			off := c << wordShift
			b.SetBits(dstX+off, dstY+r, l, src.Bits(srcX+off, srcY+r, l))
		}
	}
}

// Clone returns a deep copy of b.
func (b *Bitfield) Clone() *Bitfield {
	c := *b
	c.words = append([]uint32(nil), b.words...)
	return &c
}

// Equal reports whether a and b have the same size and in-bounds bits.
func (b *Bitfield) Equal(o *Bitfield) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x += wordBits {
			n := wordBits
			if b.width-x < n {
				n = b.width - x
			}
			if b.Bits(x, y, n) != o.Bits(x, y, n) {
				return false
			}
		}
	}
	return true
}

// String renders the grid as rows of '0' and '1'.
func (b *Bitfield) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Bit(x, y) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
