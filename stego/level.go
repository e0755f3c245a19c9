package stego

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/allanzhao/rsteg/fec"
)

// Level selects how many of the 256 symbols in a codeword carry data.
type Level int

const (
	LevelLow      Level = iota // 224 data symbols, corrects 16 errors
	LevelMedium                // 192 data symbols, corrects 32 errors
	LevelHigh                  // 128 data symbols, corrects 64 errors
	LevelVeryHigh              // 64 data symbols, corrects 96 errors
)

var levelNames = [...]string{"low", "medium", "high", "very_high"}

var levelSymbols = [...]int{224, 192, 128, 64}

func (l Level) Valid() bool { return l >= LevelLow && l <= LevelVeryHigh }

func (l Level) String() string {
	if !l.Valid() {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// MessageSymbols is the number of data symbols per codeword.
func (l Level) MessageSymbols() int { return levelSymbols[l] }

// CheckSymbols is the number of Reed-Solomon check symbols per codeword.
func (l Level) CheckSymbols() int { return CodewordLength - levelSymbols[l] }

// DataRate is the fraction of each codeword that carries data.
func (l Level) DataRate() float64 { return float64(l.MessageSymbols()) / CodewordLength }

// PacketBytes is the number of envelope bytes carried per codeword.
func (l Level) PacketBytes() int { return l.MessageSymbols() / 2 * 3 }

func (l Level) code() (*fec.ReedSolomon, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrLevel, int(l))
	}
	return fec.NewReedSolomon(fec.GF4096(), l.MessageSymbols(), l.CheckSymbols())
}

// ParseLevel accepts a level name (case-insensitive, "-" or "_" separated)
// or its numeric id.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for i, n := range levelNames {
		if s == n {
			return Level(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Level(n).Valid() {
		return Level(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrLevel, s)
}
