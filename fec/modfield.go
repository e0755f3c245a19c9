package fec

import "fmt"

// ModField is arithmetic modulo a prime. It is a slow reference field for
// checking the generic algorithms against something other than GF(2^m).
type ModField struct {
	p int
}

// NewModField returns the field of integers modulo the prime p.
func NewModField(p int) (*ModField, error) {
	if p < 2 || p > 1<<15 {
		return nil, fmt.Errorf("fec: modulus %d out of range", p)
	}
	for d := 2; d*d <= p; d++ {
		if p%d == 0 {
			return nil, fmt.Errorf("fec: modulus %d is not prime", p)
		}
	}
	return &ModField{p: p}, nil
}

func (f *ModField) Size() int { return f.p }
func (f *ModField) Add(x, y int) int { return (x + y) % f.p }
func (f *ModField) Sub(x, y int) int { return ((x-y)%f.p + f.p) % f.p }
func (f *ModField) Mul(x, y int) int { return x * y % f.p }
func (f *ModField) Negate(x int) int { return (f.p - x) % f.p }

func (f *ModField) Div(x, y int) (int, error) {
	r, err := f.Reciprocal(y)
	if err != nil {
		return 0, err
	}
	return x * r % f.p, nil
}

// Reciprocal solves x*r = 1 (mod p) with the iterative extended Euclidean
// algorithm.
func (f *ModField) Reciprocal(x int) (int, error) {
	if x%f.p == 0 {
		return 0, ErrDivideByZero
	}
	r0, r1 := f.p, x%f.p
	t0, t1 := 0, 1
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, t0-q*t1
	}
	return (t0%f.p + f.p) % f.p, nil
}

// Pow uses square-and-multiply; negative exponents invert first.
func (f *ModField) Pow(x, p int) int {
	if p < 0 {
		r, err := f.Reciprocal(x)
		if err != nil {
			return 0
		}
		x, p = r, -p
	}
	result := 1
	x %= f.p
	for p > 0 {
		if p&1 != 0 {
			result = result * x % f.p
		}
		p >>= 1
		x = x * x % f.p
	}
	return result
}
