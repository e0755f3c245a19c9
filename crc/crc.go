// Package crc computes bit-reflected cyclic redundancy checks of degree up
// to 32 with an initial value of zero and no final inversion.
//
// A CRC value is immutable and may be shared; the running accumulator lives
// in the caller (as a uint32 threaded through Update) or in a Digest.
package crc

import (
	"fmt"
	"math/bits"
)

// CRC is a reflected CRC definition.
type CRC struct {
	degree  int
	revPoly uint32
}

var (
	// CRC8 is x^8+x^2+x+1, used for patch metadata.
	CRC8 = New(0x07, 8)
	// CRC32 is the IEEE 802.3 polynomial, used for the payload envelope.
	CRC32 = New(0x04c11db7, 32)
)

// New returns the CRC generated by poly with the given degree. A degree of 0
// takes the position of the highest set bit of poly, so the leading term
// must then be included in poly.
func New(poly uint32, degree int) *CRC {
	if degree == 0 {
		degree = bits.Len32(poly) - 1
	}
	if degree < 1 || degree > 32 {
		panic(fmt.Sprintf("crc: degree %d out of range", degree))
	}
	return &CRC{degree: degree, revPoly: bits.Reverse32(poly) >> uint(32-degree)}
}

func (c *CRC) Degree() int { return c.degree }

// UpdateByte feeds one byte into the accumulator v.
func (c *CRC) UpdateByte(v uint32, b byte) uint32 {
	v ^= uint32(b)
	for j := 0; j < 8; j++ {
		if v&1 != 0 {
			v = v>>1 ^ c.revPoly
		} else {
			v >>= 1
		}
	}
	return v
}

// Update feeds p into the accumulator v.
func (c *CRC) Update(v uint32, p []byte) uint32 {
	for _, b := range p {
		v = c.UpdateByte(v, b)
	}
	return v
}

// UpdateUint32 feeds x as four bytes, least significant first.
func (c *CRC) UpdateUint32(v, x uint32) uint32 {
	for i := 0; i < 4; i++ {
		v = c.UpdateByte(v, byte(x>>(8*i)))
	}
	return v
}

// Checksum returns the CRC of p.
func (c *CRC) Checksum(p []byte) uint32 { return c.Update(0, p) }

// Digest is a running CRC computation. It implements hash.Hash32 and is not
// safe for concurrent use.
type Digest struct {
	c *CRC
	v uint32
}

// NewDigest starts a new computation at zero.
func (c *CRC) NewDigest() *Digest { return &Digest{c: c} }

func (d *Digest) Write(p []byte) (int, error) {
	d.v = d.c.Update(d.v, p)
	return len(p), nil
}

func (d *Digest) WriteByte(b byte) error {
	d.v = d.c.UpdateByte(d.v, b)
	return nil
}

// WriteUint32 feeds x least significant byte first.
func (d *Digest) WriteUint32(x uint32) { d.v = d.c.UpdateUint32(d.v, x) }

func (d *Digest) Sum32() uint32 { return d.v }
func (d *Digest) Reset() { d.v = 0 }
func (d *Digest) BlockSize() int { return 1 }

// Size is the checksum width in bytes.
func (d *Digest) Size() int { return (d.c.degree + 7) / 8 }

// Sum appends the checksum to b, big-endian, in Size bytes.
func (d *Digest) Sum(b []byte) []byte {
	for i := d.Size() - 1; i >= 0; i-- {
		b = append(b, byte(d.v>>(8*uint(i))))
	}
	return b
}
