package fec

import (
	"strconv"
	"strings"
)

// Poly is a polynomial over a Field with coefficients indexed by power.
//
// Arithmetic methods modify the receiver and return it so that expressions
// can be chained; use Copy first when the original must survive.
type Poly struct {
	f      Field
	coeffs []int
}

// NewPoly returns the polynomial c[0] + c[1]x + c[2]x^2 + ...
func NewPoly(f Field, c ...int) *Poly {
	return &Poly{f: f, coeffs: append([]int(nil), c...)}
}

func (p *Poly) Field() Field { return p.f }

// Copy returns an independent copy of p.
func (p *Poly) Copy() *Poly { return NewPoly(p.f, p.coeffs...) }

// Set replaces the coefficients of p with those of o.
func (p *Poly) Set(o *Poly) *Poly {
	p.coeffs = append(p.coeffs[:0], o.coeffs...)
	return p
}

// Coeff returns the coefficient of x^i.
func (p *Poly) Coeff(i int) int {
	if i < len(p.coeffs) {
		return p.coeffs[i]
	}
	return 0
}

// SetCoeff sets the coefficient of x^i. Storage only grows for nonzero v.
func (p *Poly) SetCoeff(i, v int) {
	if i < len(p.coeffs) {
		p.coeffs[i] = v
		return
	}
	if v == 0 {
		return
	}
	for len(p.coeffs) < i {
		p.coeffs = append(p.coeffs, 0)
	}
	p.coeffs = append(p.coeffs, v)
}

// Degree is the highest power with a nonzero coefficient, or 0 for the zero
// polynomial.
func (p *Poly) Degree() int {
	for i := len(p.coeffs) - 1; i > 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return 0
}

func (p *Poly) IsZero() bool { return p.Degree() == 0 && p.Coeff(0) == 0 }

// Lead returns the coefficient of x^Degree().
func (p *Poly) Lead() int { return p.Coeff(p.Degree()) }

func (p *Poly) compatible(o *Poly) error {
	if !Equal(p.f, o.f) {
		return ErrFieldMismatch
	}
	return nil
}

func (p *Poly) Add(o *Poly) (*Poly, error) {
	if err := p.compatible(o); err != nil {
		return nil, err
	}
	for i := 0; i < len(o.coeffs); i++ {
		p.SetCoeff(i, p.f.Add(p.Coeff(i), o.coeffs[i]))
	}
	return p, nil
}

func (p *Poly) Sub(o *Poly) (*Poly, error) {
	if err := p.compatible(o); err != nil {
		return nil, err
	}
	for i := 0; i < len(o.coeffs); i++ {
		p.SetCoeff(i, p.f.Sub(p.Coeff(i), o.coeffs[i]))
	}
	return p, nil
}

func (p *Poly) Mul(o *Poly) (*Poly, error) {
	if err := p.compatible(o); err != nil {
		return nil, err
	}
	if len(p.coeffs) == 0 || len(o.coeffs) == 0 {
		p.coeffs = p.coeffs[:0]
		return p, nil
	}
	out := make([]int, len(p.coeffs)+len(o.coeffs)-1)
	for j, b := range o.coeffs {
		if b == 0 {
			continue
		}
		for i, a := range p.coeffs {
			out[i+j] = p.f.Add(out[i+j], p.f.Mul(a, b))
		}
	}
	p.coeffs = out
	return p, nil
}

// Scale multiplies every coefficient by c.
func (p *Poly) Scale(c int) *Poly {
	for i, a := range p.coeffs {
		p.coeffs[i] = p.f.Mul(a, c)
	}
	return p
}

// DivScalar divides every coefficient by c.
func (p *Poly) DivScalar(c int) (*Poly, error) {
	r, err := p.f.Reciprocal(c)
	if err != nil {
		return nil, err
	}
	return p.Scale(r), nil
}

// Div replaces p with the quotient p / d. When rem is non-nil it receives
// the remainder.
func (p *Poly) Div(d, rem *Poly) (*Poly, error) {
	if err := p.compatible(d); err != nil {
		return nil, err
	}
	if rem == nil {
		rem = &Poly{f: p.f}
	} else if err := p.compatible(rem); err != nil {
		return nil, err
	}
	if d.IsZero() {
		return nil, ErrDivideByZero
	}
	dd := d.Degree()
	inv, err := p.f.Reciprocal(d.Lead())
	if err != nil {
		return nil, err
	}
	rem.Set(p)
	q := &Poly{f: p.f}
	for !rem.IsZero() && rem.Degree() >= dd {
		rd := rem.Degree()
		t := p.f.Mul(rem.Coeff(rd), inv)
		qi := rd - dd
		q.SetCoeff(qi, t)
		for i := 0; i <= dd; i++ {
			rem.SetCoeff(qi+i, p.f.Sub(rem.Coeff(qi+i), p.f.Mul(d.Coeff(i), t)))
		}
	}
	return p.Set(q), nil
}

// Eval returns p(x) by Horner's rule.
func (p *Poly) Eval(x int) int {
	y := 0
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		y = p.f.Add(p.f.Mul(y, x), p.coeffs[i])
	}
	return y
}

// Zeros returns every field element where p evaluates to zero.
func (p *Poly) Zeros() []int {
	var z []int
	for x := 0; x < p.f.Size(); x++ {
		if p.Eval(x) == 0 {
			z = append(z, x)
		}
	}
	return z
}

func (p *Poly) String() string {
	var sb strings.Builder
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(strconv.Itoa(c))
		switch {
		case i > 1:
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(i))
		case i == 1:
			sb.WriteString("x")
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// LagrangeInterpolate returns the polynomial of degree < len(values) with
// p(i) = values[i], where i is read as a field element.
func LagrangeInterpolate(f Field, values []int) (*Poly, error) {
	n := len(values)
	if n > f.Size() {
		return nil, ErrBadCodeParams
	}
	// all = prod_j (x - j)
	all := make([]int, n+1)
	all[0] = 1
	for j := 0; j < n; j++ {
		nj := f.Negate(j)
		for k := j + 1; k > 0; k-- {
			all[k] = f.Add(all[k-1], f.Mul(all[k], nj))
		}
		all[0] = f.Mul(all[0], nj)
	}

	out := make([]int, n)
	basis := make([]int, n)
	for i := 0; i < n; i++ {
		if values[i] == 0 {
			continue
		}
		// basis = all / (x - i), by synthetic division.
		carry := all[n]
		for k := n - 1; k >= 0; k-- {
			basis[k] = carry
			carry = f.Add(all[k], f.Mul(carry, i))
		}
		d := 1
		for j := 0; j < n; j++ {
			if j != i {
				d = f.Mul(d, f.Sub(i, j))
			}
		}
		c, err := f.Div(values[i], d)
		if err != nil {
			return nil, err
		}
		for k := 0; k < n; k++ {
			out[k] = f.Add(out[k], f.Mul(basis[k], c))
		}
	}
	p := &Poly{f: f}
	for k := n - 1; k >= 0; k-- {
		p.SetCoeff(k, out[k])
	}
	return p, nil
}
