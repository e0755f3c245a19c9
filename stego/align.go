package stego

import (
	"math"

	"github.com/allanzhao/rsteg/bitfield"
)

// Alignment is the recovered position of the patch grid. Patches start at
// x = OffsetX + 16*i and y = OffsetY + 16*j.
type Alignment struct {
	OffsetX, OffsetY int
	TileConfidence   float32 // fraction of even-parity tiles at the chosen tile phase
	PatchConfidence  float32 // fraction of tiles agreeing with the chosen patch phase
}

// FindAlignment estimates the patch grid offset of bf in two steps: first
// the tile phase (0..3 on each axis) with the most parity-valid tiles, then
// the patch phase that best agrees with the local indices stored in the
// bottom row of every tile.
func FindAlignment(bf *bitfield.Bitfield) Alignment {
	tc := tilePhaseConfidences(bf)
	tp := indexOfMax(tc[:])
	tx, ty := tp&3, tp>>2&3

	pc := patchPhaseConfidences(bf, tx, ty)
	pp := indexOfMax(pc[:])
	return Alignment{
		OffsetX:         tx + (pp&3)*TileWidth,
		OffsetY:         ty + (pp>>2&3)*TileWidth,
		TileConfidence:  tc[tp],
		PatchConfidence: pc[pp],
	}
}

// tilePhaseConfidences returns, for phase y*4+x, the fraction of tiles on
// that grid with even parity.
func tilePhaseConfidences(bf *bitfield.Bitfield) [TileBits]float32 {
	var conf [TileBits]float32
	for yo := 0; yo < TileWidth; yo++ {
		for xo := 0; xo < TileWidth; xo++ {
			count, total := 0, 0
			for y := yo; y <= bf.Height()-TileWidth; y += TileWidth {
				for x := xo; x <= bf.Width()-TileWidth; x += TileWidth {
					if parity(bf.BitsWrap(x, y, TileBits, TileWidth)) == 0 {
						count++
					}
					total++
				}
			}
			if total > 0 {
				conf[yo*TileWidth+xo] = float32(count) / float32(total)
			}
		}
	}
	return conf
}

// patchPhaseConfidences votes on the patch phase given the tile phase
// (xo, yo). A tile whose index bits say it sits at (xa, ya) inside its patch,
// found at tile column xm and row ym (mod 4), votes for patch phase
// (xm-xa, ym-ya) mod 4.
func patchPhaseConfidences(bf *bitfield.Bitfield, xo, yo int) [PatchTiles]float32 {
	var counts [PatchTiles]int
	total := 0
	ym := 0
	for y := yo; y <= bf.Height()-TileWidth; y += TileWidth {
		xm := 0
		for x := xo; x <= bf.Width()-TileWidth; x += TileWidth {
			code := int(bf.Bits(x, y+TileWidth-1, TileWidth))
			xa, ya := code&3, code>>2&3
			counts[(ym-ya)&3<<2|(xm-xa)&3]++
			total++
			xm = (xm + 1) & 3
		}
		ym = (ym + 1) & 3
	}
	var conf [PatchTiles]float32
	if total > 0 {
		for i, c := range counts {
			conf[i] = float32(c) / float32(total)
		}
	}
	return conf
}

// indexOfMax returns the first index holding the largest positive value, or
// 0 when no value is positive.
func indexOfMax(v []float32) int {
	best, idx := float32(math.SmallestNonzeroFloat32), 0
	for i, x := range v {
		if x > best {
			best, idx = x, i
		}
	}
	return idx
}
