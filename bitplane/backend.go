package bitplane

import (
	"image"

	"github.com/allanzhao/rsteg/bitfield"
)

//go:generate mockgen -typed -package mockbitplane -destination ../internal/mocks/mockbitplane/backend.go github.com/allanzhao/rsteg/bitplane Backend

// Backend is anything that stores bitplanes.
type Backend interface {
	Bounds() image.Rectangle
	Bitplane(ch Channel, bit int) (*bitfield.Bitfield, error)
	SetBitplane(ch Channel, bit int, bf *bitfield.Bitfield) error
}

// Image is a Backend over an NRGBA image.
type Image struct {
	img *image.NRGBA
}

var _ Backend = &Image{}

// NewImage wraps a copy of img.
func NewImage(img image.Image) *Image { return &Image{img: ToNRGBA(img)} }

func (i *Image) NRGBA() *image.NRGBA { return i.img }

func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

func (i *Image) Bitplane(ch Channel, bit int) (*bitfield.Bitfield, error) {
	return Get(i.img, ch, bit)
}

func (i *Image) SetBitplane(ch Channel, bit int, bf *bitfield.Bitfield) error {
	return Put(i.img, ch, bit, bf)
}
