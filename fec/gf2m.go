package fec

import (
	"fmt"
	"math/bits"
	"sync"
)

// GF2m is GF(2^m) arithmetic using log/antilog tables built from an
// irreducible polynomial and a generator element.
type GF2m struct {
	poly     int
	size     int
	degree   int
	logs     []int
	antilogs []int
}

// NewGF2m builds the field defined by the irreducible polynomial poly. The
// field size is the highest power of two in poly; gen must generate the
// multiplicative group.
func NewGF2m(poly, gen int) (*GF2m, error) {
	if poly < 4 {
		return nil, fmt.Errorf("fec: polynomial %#x too small", poly)
	}
	size := 1 << (bits.Len(uint(poly)) - 1)
	f := &GF2m{
		poly:     poly,
		size:     size,
		degree:   bits.TrailingZeros(uint(size)),
		logs:     make([]int, size),
		antilogs: make([]int, size),
	}
	x := 1
	for i := 1; i < size; i++ {
		x = f.SlowMul(x, gen)
		if x == 1 && i < size-1 {
			return nil, fmt.Errorf("fec: %#x does not generate GF(%d) mod %#x", gen, size, poly)
		}
		f.logs[x] = i
		f.antilogs[i] = x
	}
	// gen^(size-1) == 1 wrapped the table above.
	f.logs[1] = 0
	f.antilogs[0] = 1
	if x != 1 {
		return nil, fmt.Errorf("fec: %#x is not irreducible", poly)
	}
	return f, nil
}

var (
	gf4096     *GF2m
	gf4096Once sync.Once
)

// GF4096 returns the shared GF(2^12) instance: x^12+x^6+x^5+x^3+1 (0x1069)
// with generator 0xffb.
func GF4096() *GF2m {
	gf4096Once.Do(func() {
		f, err := NewGF2m(0x1069, 0xffb)
		if err != nil {
			panic(err)
		}
		gf4096 = f
	})
	return gf4096
}

func (f *GF2m) Size() int { return f.size }
func (f *GF2m) Poly() int { return f.poly }
func (f *GF2m) Add(x, y int) int { return x ^ y }
func (f *GF2m) Sub(x, y int) int { return x ^ y }
func (f *GF2m) Negate(x int) int { return x }

func (f *GF2m) Mul(x, y int) int {
	if x == 0 || y == 0 {
		return 0
	}
	return f.antilogs[(f.logs[x]+f.logs[y])%(f.size-1)]
}

func (f *GF2m) Div(x, y int) (int, error) {
	if y == 0 {
		return 0, ErrDivideByZero
	}
	if x == 0 {
		return 0, nil
	}
	return f.antilogs[(f.logs[x]-f.logs[y]+f.size-1)%(f.size-1)], nil
}

func (f *GF2m) Reciprocal(x int) (int, error) {
	if x == 0 {
		return 0, ErrDivideByZero
	}
	return f.antilogs[f.size-1-f.logs[x]], nil
}

// Pow returns x^p. Negative exponents are taken modulo the group order.
func (f *GF2m) Pow(x, p int) int {
	if p == 0 {
		return 1
	}
	if x == 0 {
		return 0
	}
	e := f.logs[x] * p % (f.size - 1)
	if e < 0 {
		e += f.size - 1
	}
	return f.antilogs[e]
}

// SlowMul multiplies bitwise with shift-and-reduce. It is the reference the
// tables are built from.
func (f *GF2m) SlowMul(a, b int) int {
	p := 0
	for i := 0; i < f.degree; i++ {
		if b&1 != 0 {
			p ^= a
		}
		a <<= 1
		if a&f.size != 0 { // carry out of the top bit
			a ^= f.poly
		}
		b >>= 1
	}
	return p
}
