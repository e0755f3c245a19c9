package stego

import (
	"github.com/allanzhao/rsteg/bitfield"
	"github.com/allanzhao/rsteg/internal/mode"
)

// scan is what a pass over the patch grid recovered.
type scan struct {
	align     Alignment
	codewords map[int][]int // codeword index -> symbols, erased where unread
	votes     *mode.Finder[int]
	positions int
	accepted  int
	rejected  map[string]int
}

type patchHit struct {
	x0, y0 int
	index  int
	key    int
}

// scanPatches visits every patch position of the grid described by align,
// including the partial patches cut by the image edges. Patches whose index
// and metadata tiles verify vote on the version and level; the symbols of
// those agreeing with the majority are collected.
func scanPatches(bf *bitfield.Bitfield, align Alignment, m *Metrics) *scan {
	s := &scan{
		align:     align,
		codewords: make(map[int][]int),
		votes:     mode.New[int](),
		rejected:  make(map[string]int),
	}
	reject := func(reason string) {
		s.rejected[reason]++
		m.rejectPatch(reason)
	}

	var hits []patchHit
	ix, iy := indexTileX*TileWidth, indexTileY*TileWidth
	mx, my := metadataTileX*TileWidth, metadataTileY*TileWidth
	for y0 := (align.OffsetY - PatchWidthBits) % PatchWidthBits; y0 < bf.Height(); y0 += PatchWidthBits {
		for x0 := (align.OffsetX - PatchWidthBits) % PatchWidthBits; x0 < bf.Width(); x0 += PatchWidthBits {
			s.positions++
			index := unpackTileIfExists(bf, x0+ix, y0+iy, indexTile)
			word := unpackTileIfExists(bf, x0+mx, y0+my, metadataTile)
			switch {
			case index == erased || word == erased:
				reject(RejectMissing)
				continue
			case index == UnusedPatch:
				reject(RejectUnused)
				continue
			}
			meta := ParseMetadata(word)
			if !meta.Valid(index) {
				reject(RejectChecksum)
				continue
			}
			s.votes.Add(meta.key())
			hits = append(hits, patchHit{x0: x0, y0: y0, index: index, key: meta.key()})
		}
	}

	key, ok := s.votes.Mode()
	if !ok {
		return s
	}
	for _, h := range hits {
		if h.key != key {
			reject(RejectMismatch)
			continue
		}
		s.accepted++
		m.acceptPatch()
		s.collect(bf, h.x0, h.y0, h.index)
	}
	return s
}

// collect stores the readable data tiles of the patch at (x0, y0).
func (s *scan) collect(bf *bitfield.Bitfield, x0, y0, index int) {
	for local := 0; local < DataTilesPerPatch; local++ {
		x := x0 + local%PatchWidthTiles*TileWidth
		y := y0 + local/PatchWidthTiles*TileWidth
		sym := unpackTileIfExists(bf, x, y, local)
		if sym == erased {
			continue
		}
		ci, si := codewordSlot(index, local)
		cw, ok := s.codewords[ci]
		if !ok {
			cw = make([]int, CodewordLength)
			for i := range cw {
				cw[i] = erased
			}
			s.codewords[ci] = cw
		}
		// TODO: mark a symbol erased when two patches disagree on it.
		cw[si] = sym
	}
}

// metadata returns the majority version and level of the verified patches.
func (s *scan) metadata() (Metadata, bool) {
	key, ok := s.votes.Mode()
	if !ok {
		return Metadata{}, false
	}
	return ParseMetadata(key), true
}

// contiguous is the number of codewords present from index 0 without a gap.
func (s *scan) contiguous() int {
	n := 0
	for {
		if _, ok := s.codewords[n]; !ok {
			return n
		}
		n++
	}
}

// presentSymbols counts the symbols that were read in the first n codewords.
func (s *scan) presentSymbols(n int) int {
	c := 0
	for i := 0; i < n; i++ {
		for _, v := range s.codewords[i] {
			if v != erased {
				c++
			}
		}
	}
	return c
}
