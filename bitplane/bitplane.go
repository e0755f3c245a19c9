// Package bitplane moves single bitplanes of image channels in and out of
// bitfields.
package bitplane

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/allanzhao/rsteg/bitfield"
)

var (
	ErrSizeMismatch      = errors.New("bitplane: image and bitfield dimensions differ")
	ErrUnsupportedFormat = errors.New("bitplane: unsupported image format")
	ErrBadPlane          = errors.New("bitplane: channel or bit out of range")
)

// Channel is a band in ARGB order.
type Channel int

const (
	Alpha Channel = iota
	Red
	Green
	Blue
)

var channelNames = [...]string{"alpha", "red", "green", "blue"}

func (c Channel) Valid() bool { return c >= Alpha && c <= Blue }

func (c Channel) String() string {
	if !c.Valid() {
		return "Channel(" + strconv.Itoa(int(c)) + ")"
	}
	return channelNames[c]
}

// ParseChannel accepts a channel name, its first letter or its band number.
func ParseChannel(s string) (Channel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range channelNames {
		if s == n || s == n[:1] || s == strconv.Itoa(i) {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: channel %q", ErrBadPlane, s)
}

func checkPlane(ch Channel, bit int) error {
	if !ch.Valid() || bit < 0 || bit > 7 {
		return fmt.Errorf("%w: %v bit %d", ErrBadPlane, ch, bit)
	}
	return nil
}

// component returns the address of channel ch within an NRGBA pixel.
func component(c *color.NRGBA, ch Channel) *uint8 {
	switch ch {
	case Alpha:
		return &c.A
	case Red:
		return &c.R
	case Green:
		return &c.G
	default:
		return &c.B
	}
}

// pixOffset is the byte offset of ch inside an NRGBA Pix entry.
func pixOffset(ch Channel) int {
	if ch == Alpha {
		return 3
	}
	return int(ch) - 1
}

// Get returns bit of channel ch for every pixel of img. Pixels are read as
// non-premultiplied 8-bit colour.
func Get(img image.Image, ch Channel, bit int) (*bitfield.Bitfield, error) {
	if err := checkPlane(ch, bit); err != nil {
		return nil, err
	}
	b := img.Bounds()
	bf := bitfield.New(b.Dx(), b.Dy())
	if n, ok := img.(*image.NRGBA); ok {
		off := pixOffset(ch)
		for y := 0; y < b.Dy(); y++ {
			row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				bf.SetBit(x, y, row[4*x+off]>>uint(bit)&1 == 1)
			}
		}
		return bf, nil
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			bf.SetBit(x, y, *component(&c, ch)>>uint(bit)&1 == 1)
		}
	}
	return bf, nil
}

// Put overwrites bit of channel ch in img with bf.
func Put(img draw.Image, ch Channel, bit int, bf *bitfield.Bitfield) error {
	if err := checkPlane(ch, bit); err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() != bf.Width() || b.Dy() != bf.Height() {
		return fmt.Errorf("%w: image %dx%d, bitfield %dx%d", ErrSizeMismatch, b.Dx(), b.Dy(), bf.Width(), bf.Height())
	}
	mask := uint8(1) << uint(bit)
	set := func(v uint8, on bool) uint8 {
		if on {
			return v | mask
		}
		return v &^ mask
	}
	if n, ok := img.(*image.NRGBA); ok {
		off := pixOffset(ch)
		for y := 0; y < b.Dy(); y++ {
			row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				row[4*x+off] = set(row[4*x+off], bf.Bit(x, y))
			}
		}
		return nil
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p := component(&c, ch)
			*p = set(*p, bf.Bit(x, y))
			img.Set(b.Min.X+x, b.Min.Y+y, c)
		}
	}
	return nil
}

// ToNRGBA returns a copy of img as non-premultiplied colour with bounds
// starting at (0, 0).
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[i:i+4*b.Dx()])
		}
		return dst
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
		}
	}
	return dst
}
