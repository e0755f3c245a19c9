package fec

import "fmt"

// ReedSolomon is a systematic Reed-Solomon code over a Field. Codeword
// symbol i is the message polynomial evaluated at the field element i; the
// first k symbols are the message itself.
type ReedSolomon struct {
	f     Field
	k     int
	check int
}

// NewReedSolomon returns a code with k message symbols and check (even)
// check symbols.
func NewReedSolomon(f Field, k, check int) (*ReedSolomon, error) {
	if k <= 0 || check < 0 || check%2 != 0 {
		return nil, fmt.Errorf("%w: k=%d check=%d", ErrBadCodeParams, k, check)
	}
	if k+check > f.Size() {
		return nil, fmt.Errorf("%w: n=%d exceeds field size %d", ErrBadCodeParams, k+check, f.Size())
	}
	return &ReedSolomon{f: f, k: k, check: check}, nil
}

func (rs *ReedSolomon) MessageSize() int { return rs.k }
func (rs *ReedSolomon) CheckSize() int { return rs.check }
func (rs *ReedSolomon) CodewordSize() int { return rs.k + rs.check }

// Encode returns the n-symbol codeword for msg.
func (rs *ReedSolomon) Encode(msg []int) ([]int, error) {
	if len(msg) != rs.k {
		return nil, fmt.Errorf("%w: message has %d symbols, want %d", ErrCodewordLength, len(msg), rs.k)
	}
	p, err := LagrangeInterpolate(rs.f, msg)
	if err != nil {
		return nil, err
	}
	cw := make([]int, rs.k+rs.check)
	copy(cw, msg)
	for i := rs.k; i < len(cw); i++ {
		cw[i] = p.Eval(i)
	}
	return cw, nil
}

// Decode corrects up to check/2 symbol errors in cw using the
// Berlekamp-Welch algorithm and returns the message. It returns
// ErrUncorrectable when the error locator does not divide the solved
// quotient polynomial.
func (rs *ReedSolomon) Decode(cw []int) ([]int, error) {
	n := rs.k + rs.check
	if len(cw) != n {
		return nil, fmt.Errorf("%w: codeword has %d symbols, want %d", ErrCodewordLength, len(cw), n)
	}
	f := rs.f
	e := rs.check / 2
	na := rs.k + e

	// Unknowns: Q_0..Q_{na-1}, then E_0..E_{e-1}; E_e is fixed to 1.
	// Row r: Q(r) - cw[r]*E'(r) = cw[r]*r^e.
	m := make([][]int, n)
	for r := 0; r < n; r++ {
		row := make([]int, n+1)
		pw := 1
		for c := 0; c < na; c++ {
			row[c] = pw
			pw = f.Mul(pw, r)
		}
		pw = 1
		for c := na; c < n; c++ {
			row[c] = f.Negate(f.Mul(pw, cw[r]))
			pw = f.Mul(pw, r)
		}
		row[n] = f.Mul(f.Pow(r, e), cw[r])
		m[r] = row
	}
	if err := RowReduce(f, m); err != nil {
		return nil, err
	}

	q := &Poly{f: f}
	for i := 0; i < na; i++ {
		q.SetCoeff(i, m[i][n])
	}
	loc := &Poly{f: f}
	for i := 0; i < e; i++ {
		loc.SetCoeff(i, m[na+i][n])
	}
	loc.SetCoeff(e, 1)

	rem := &Poly{f: f}
	if _, err := q.Div(loc, rem); err != nil {
		return nil, err
	}
	if !rem.IsZero() {
		return nil, ErrUncorrectable
	}
	msg := make([]int, rs.k)
	for i := range msg {
		msg[i] = q.Eval(i)
	}
	return msg, nil
}
