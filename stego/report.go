package stego

import (
	"github.com/francoispqt/gojay"

	"github.com/allanzhao/rsteg/bitfield"
)

// Report describes what a decoder can see in a bitfield without running
// error correction.
type Report struct {
	Width, Height int
	Alignment     Alignment

	Detected   bool  // at least one patch verified
	Version    int   // majority protocol version
	Level      Level // majority level
	LevelVotes int   // verified patches agreeing with the majority

	Positions       int // patch positions visited
	PatchesAccepted int
	Rejected        map[string]int // by reason

	Codewords      int // distinct codeword indices seen
	Contiguous     int // codewords present from 0 without a gap
	SymbolsPresent int // readable symbols in the contiguous codewords
	SymbolsErased  int // unreadable symbols in the contiguous codewords
}

// Inspect runs alignment recovery and the patch scan on bf.
func Inspect(bf *bitfield.Bitfield) *Report {
	s := scanPatches(bf, FindAlignment(bf), nil)
	r := &Report{
		Width:           bf.Width(),
		Height:          bf.Height(),
		Alignment:       s.align,
		Positions:       s.positions,
		PatchesAccepted: s.accepted,
		Rejected:        s.rejected,
		Codewords:       len(s.codewords),
		Contiguous:      s.contiguous(),
	}
	if meta, ok := s.metadata(); ok {
		r.Detected = true
		r.Version = meta.Version
		r.Level = meta.Level
		r.LevelVotes = s.votes.Count(meta.key())
	}
	r.SymbolsPresent = s.presentSymbols(r.Contiguous)
	r.SymbolsErased = r.Contiguous*CodewordLength - r.SymbolsPresent
	return r
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (r *Report) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("width", r.Width)
	enc.IntKey("height", r.Height)
	enc.ObjectKey("alignment", &r.Alignment)
	enc.BoolKey("detected", r.Detected)
	if r.Detected {
		enc.IntKey("version", r.Version)
		enc.StringKey("level", r.Level.String())
		enc.IntKey("level_votes", r.LevelVotes)
	}
	enc.IntKey("positions", r.Positions)
	enc.IntKey("patches_accepted", r.PatchesAccepted)
	enc.ObjectKey("patches_rejected", rejectCounts(r.Rejected))
	enc.IntKey("codewords", r.Codewords)
	enc.IntKey("contiguous_codewords", r.Contiguous)
	enc.IntKey("symbols_present", r.SymbolsPresent)
	enc.IntKey("symbols_erased", r.SymbolsErased)
}

func (r *Report) IsNil() bool { return r == nil }

func (a *Alignment) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("x", a.OffsetX)
	enc.IntKey("y", a.OffsetY)
	enc.Float32Key("tile_confidence", a.TileConfidence)
	enc.Float32Key("patch_confidence", a.PatchConfidence)
}

func (a *Alignment) IsNil() bool { return a == nil }

type rejectCounts map[string]int

func (c rejectCounts) MarshalJSONObject(enc *gojay.Encoder) {
	for _, reason := range []string{RejectMissing, RejectUnused, RejectChecksum, RejectMismatch} {
		enc.IntKey(reason, c[reason])
	}
}

func (c rejectCounts) IsNil() bool { return c == nil }
