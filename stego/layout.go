package stego

import (
	"github.com/allanzhao/rsteg/internal/javarand"
)

// Layout places logical patches on the physical patch grid. Logical patch i
// goes to grid slot order[i], a fixed pseudo-random permutation, so that a
// crop removes symbols scattered across many codewords instead of a run
// from one.
type Layout struct {
	Cols, Rows int
	order      []int // logical -> physical
	inv        []int // physical -> logical
}

// NewLayout returns the layout for a grid of cols x rows patches.
func NewLayout(cols, rows int) *Layout {
	if cols < 0 || rows < 0 {
		cols, rows = 0, 0
	}
	order := javarand.New(shuffleSeed).Perm(cols * rows)
	inv := make([]int, len(order))
	for logical, phys := range order {
		inv[phys] = logical
	}
	return &Layout{Cols: cols, Rows: rows, order: order, inv: inv}
}

// LayoutFor returns the layout of the whole patches that fit in a w x h
// bitfield.
func LayoutFor(w, h int) *Layout { return NewLayout(w/PatchWidthBits, h/PatchWidthBits) }

// Len is the number of patches.
func (l *Layout) Len() int { return len(l.order) }

// DataSlots is the number of data tiles across all patches.
func (l *Layout) DataSlots() int { return l.Len() * DataTilesPerPatch }

// Origin returns the top-left bit of logical patch i.
func (l *Layout) Origin(i int) (x, y int) {
	p := l.order[i]
	return p % l.Cols * PatchWidthBits, p / l.Cols * PatchWidthBits
}

// Logical returns the logical index of the patch in grid column col, row row.
func (l *Layout) Logical(col, row int) int { return l.inv[row*l.Cols+col] }

// neededPatches is the number of patches that carry a real index for n
// codewords: whole groups of CodewordLength patches, one group per
// DataTilesPerPatch codewords.
func neededPatches(codewords int) int {
	return (codewords + DataTilesPerPatch - 1) / DataTilesPerPatch * CodewordLength
}

// codewordSlot maps a patch index and data tile to a codeword index and the
// symbol offset within it.
func codewordSlot(patchIndex, tile int) (codeword, symbol int) {
	return patchIndex/CodewordLength*DataTilesPerPatch + tile, patchIndex % CodewordLength
}
