package stego

import (
	"math/bits"
	"sync"

	"github.com/allanzhao/rsteg/bitfield"
	"github.com/allanzhao/rsteg/crc"
	"github.com/allanzhao/rsteg/internal/javarand"
)

// Version is the protocol version written into every patch.
const Version = 0

// Geometry. A patch is a 4x4 grid of 4x4-bit tiles. Tile (x, y) inside a
// patch has local index y*4+x, which is also stored in the tile's top four
// bits so a decoder can find patch boundaries.
const (
	TilePayloadBits   = 12
	TilePayloadMask   = 1<<TilePayloadBits - 1
	TileWidth         = 4
	TileBits          = TileWidth * TileWidth
	PatchWidthTiles   = 4
	PatchTiles        = PatchWidthTiles * PatchWidthTiles
	PatchWidthBits    = PatchWidthTiles * TileWidth
	DataTilesPerPatch = 14
	CodewordLength    = 256

	indexTileX    = 2
	indexTileY    = 3
	metadataTileX = 3
	metadataTileY = 3

	// UnusedPatch marks patches beyond what the payload needs.
	UnusedPatch = 1<<TilePayloadBits - 1
	// erased marks an unreadable tile.
	erased = -1

	paritySeed   = 0
	scrambleSeed = 1
	shuffleSeed  = 2
)

var (
	indexTile    = localIndex(indexTileX, indexTileY)
	metadataTile = localIndex(metadataTileX, metadataTileY)
)

func localIndex(xTile, yTile int) int { return (yTile&3)<<2 | xTile&3 }

var (
	scrambleOnce  sync.Once
	scrambleTable [PatchTiles]uint32
)

// scrambleMasks returns the per-position payload masks: the low 12 bits of
// the first 16 draws from the scramble seed.
func scrambleMasks() *[PatchTiles]uint32 {
	scrambleOnce.Do(func() {
		r := javarand.New(scrambleSeed)
		for i := range scrambleTable {
			scrambleTable[i] = uint32(r.Int32()) & TilePayloadMask
		}
	})
	return &scrambleTable
}

func parity(v uint32) uint32 { return uint32(bits.OnesCount32(v) & 1) }

// packTile writes payload into the tile whose top-left bit is (x, y). One of
// the four index bits is flipped, chosen by parityRand, when needed to make
// the tile's parity even. parityRand is drawn from for every tile.
func packTile(bf *bitfield.Bitfield, x, y, local int, payload int, parityRand *javarand.Rand) {
	v := uint32(payload)&TilePayloadMask ^ scrambleMasks()[local]
	v |= uint32(local) << TilePayloadBits
	v ^= parity(v) << uint(TilePayloadBits+parityRand.Intn(4))
	bf.SetBitsWrap(x, y, TileBits, v, TileWidth)
}

// unpackTile returns the payload of the tile at (x, y), or erased when the
// tile fails its parity check.
func unpackTile(bf *bitfield.Bitfield, x, y, local int) int {
	v := bf.BitsWrap(x, y, TileBits, TileWidth)
	if parity(v) != 0 {
		return erased
	}
	return int((v ^ scrambleMasks()[local]) & TilePayloadMask)
}

// tileExists reports whether the whole tile at (x, y) is inside bf.
func tileExists(bf *bitfield.Bitfield, x, y int) bool {
	return x >= 0 && x <= bf.Width()-TileWidth && y >= 0 && y <= bf.Height()-TileWidth
}

func unpackTileIfExists(bf *bitfield.Bitfield, x, y, local int) int {
	if !tileExists(bf, x, y) {
		return erased
	}
	return unpackTile(bf, x, y, local)
}

// Metadata is the per-patch descriptor stored in the metadata tile:
// version in bits 0-1, level in bits 2-3, checksum in bits 4-11.
type Metadata struct {
	Version  int
	Level    Level
	Checksum int
}

func ParseMetadata(word int) Metadata {
	return Metadata{
		Version:  word & 3,
		Level:    Level((word >> 2) & 3),
		Checksum: (word >> 4) & 0xff,
	}
}

func (m Metadata) Word() int {
	return m.Version&3 | int(m.Level)&3<<2 | m.Checksum&0xff<<4
}

// key is the version and level nibble, used for majority voting.
func (m Metadata) key() int { return m.Word() & 0xf }

// PatchChecksum is the CRC-8 binding a metadata word to its patch index.
func (m Metadata) PatchChecksum(patchIndex int) int {
	v := crc.CRC8.UpdateByte(0, byte(m.Version))
	v = crc.CRC8.UpdateByte(v, byte(m.Level))
	return int(crc.CRC8.UpdateUint32(v, uint32(patchIndex)))
}

// ForPatch returns m with the checksum for patchIndex filled in.
func (m Metadata) ForPatch(patchIndex int) Metadata {
	m.Checksum = m.PatchChecksum(patchIndex)
	return m
}

func (m Metadata) Valid(patchIndex int) bool { return m.Checksum == m.PatchChecksum(patchIndex) }
