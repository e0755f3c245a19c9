// Package fec implements finite-field arithmetic, polynomials over a field and
// the Reed-Solomon code used by the steganographic codec.
package fec

import "errors"

var (
	ErrDivideByZero   = errors.New("fec: division by zero")
	ErrFieldMismatch  = errors.New("fec: operands belong to different fields")
	ErrMatrixShape    = errors.New("fec: matrix must be n x (n+1)")
	ErrBadCodeParams  = errors.New("fec: bad reed-solomon parameters")
	ErrUncorrectable  = errors.New("fec: too many symbol errors")
	ErrCodewordLength = errors.New("fec: wrong codeword length")
)

// Field is a finite field whose elements are the integers [0, Size()).
// Implementations are immutable and safe for concurrent use.
type Field interface {
	Size() int
	Add(x, y int) int
	Sub(x, y int) int
	Mul(x, y int) int
	Div(x, y int) (int, error)
	Negate(x int) int
	Reciprocal(x int) (int, error)
	Pow(x, p int) int
}


// Equal reports whether a and b do the same arithmetic: the same instance,
// two GF(2^m) fields built from one polynomial, or two prime fields with one
// modulus.
func Equal(a, b Field) bool {
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *GF2m:
		b, ok := b.(*GF2m)
		return ok && a.poly == b.poly
	case *ModField:
		b, ok := b.(*ModField)
		return ok && a.p == b.p
	}
	return false
}
