// Package javarand reproduces the 48-bit linear congruential generator of
// java.util.Random bit for bit. The codec's tile scrambling, parity fixups
// and patch shuffle are defined in terms of its output, so images written by
// other implementations only decode if every draw matches.
package javarand

const (
	multiplier = 0x5deece66d
	addend     = 0xb
	mask       = 1<<48 - 1
)

// Rand is not safe for concurrent use.
type Rand struct {
	seed uint64
}

// New returns a generator seeded like new java.util.Random(seed).
func New(seed int64) *Rand {
	return &Rand{seed: (uint64(seed) ^ multiplier) & mask}
}

func (r *Rand) next(bits uint) int32 {
	r.seed = (r.seed*multiplier + addend) & mask
	return int32(int64(r.seed) >> (48 - bits))
}

// Int32 returns 32 random bits as a signed value, possibly negative (Java's nextInt()).
func (r *Rand) Int32() int32 { return r.next(32) }

// Intn returns a value in [0, n) using Java's rejection scheme (nextInt(n)).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("javarand: invalid argument to Intn")
	}
	bound := int32(n)
	if bound&-bound == bound {
		return int((int64(bound) * int64(r.next(31))) >> 31)
	}
	for {
		bits := r.next(31)
		val := bits % bound
		if bits-val+(bound-1) >= 0 { // int32 overflow rejects the tail
			return int(val)
		}
	}
}

// Shuffle permutes s in place like Collections.shuffle(list, rnd).
func Shuffle[T any](r *Rand, s []T) {
	for i := len(s); i > 1; i-- {
		j := r.Intn(i)
		s[i-1], s[j] = s[j], s[i-1]
	}
}

// Perm returns a shuffled [0, n).
func (r *Rand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(r, p)
	return p
}
