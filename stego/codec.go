// Package stego hides a byte payload in a bitfield so that it survives bit
// errors, padding and small crops.
//
// The bitfield is cut into 16x16-bit patches of sixteen 4x4-bit tiles. Each
// tile carries 12 payload bits, its position inside the patch and an even
// parity bit. Fourteen tiles per patch carry one symbol of fourteen
// Reed-Solomon codewords over GF(2^12); the other two carry the patch index
// and a metadata word. Patches are spread over the image in a fixed
// pseudo-random order.
package stego

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/allanzhao/rsteg/bitfield"
	"github.com/allanzhao/rsteg/fec"
	"github.com/allanzhao/rsteg/internal/javarand"
	"github.com/allanzhao/rsteg/internal/packet"
)

// Options configures an Encoder or Decoder.
type Options struct {
	Level   Level              // error correction level used when encoding
	Logger  logrus.FieldLogger // default: package logger, warnings and above
	Metrics *Metrics           // optional
	Workers int                // concurrent codeword decodes (default numCPU)
}

var defaultLogger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = defaultLogger
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
}

// Encoder writes payloads into bitfields.
type Encoder struct {
	opts Options
	code *fec.ReedSolomon
}

func NewEncoder(opts Options) (*Encoder, error) {
	opts.setDefaults()
	code, err := opts.Level.code()
	if err != nil {
		return nil, err
	}
	return &Encoder{opts: opts, code: code}, nil
}

// Encode embeds payload into bf, overwriting every whole patch. Nothing is
// written when the payload does not fit.
func (e *Encoder) Encode(bf *bitfield.Bitfield, payload []byte) (err error) {
	start := time.Now()
	defer func() { e.opts.Metrics.observe("encode", start, err) }()

	env := Envelope{Payload: payload}
	raw, err := env.MarshalBinary()
	if err != nil {
		return err
	}
	pw, err := packet.NewWriter(e.code.MessageSize())
	if err != nil {
		return err
	}
	_, _ = pw.Write(raw)
	packets := pw.Packets()

	layout := LayoutFor(bf.Width(), bf.Height())
	if len(packets)*CodewordLength > layout.DataSlots() {
		return fmt.Errorf("%w: %d codewords, room for %d", ErrCapacity, len(packets), layout.DataSlots()/CodewordLength)
	}

	codewords := make([][]int, len(packets))
	for i, p := range packets {
		if codewords[i], err = e.code.Encode(p); err != nil {
			return err
		}
	}

	log := e.opts.Logger.WithFields(logrus.Fields{
		"level":     e.opts.Level,
		"bytes":     len(payload),
		"codewords": len(codewords),
		"patches":   layout.Len(),
	})
	if needed := neededPatches(len(codewords)); needed > layout.Len() {
		log.WithField("needed", needed).Warn("last codeword group is only partly placed; payload will not decode")
	}
	log.Debug("encoding payload")

	writePatches(bf, layout, Metadata{Version: Version, Level: e.opts.Level}, codewords)
	return nil
}

// writePatches fills every patch of layout. Logical patch i carries symbol
// i%256 of codewords (i/256)*14 .. (i/256)*14+13; patches past the last
// needed group are marked unused.
func writePatches(bf *bitfield.Bitfield, layout *Layout, meta Metadata, codewords [][]int) {
	parityRand := javarand.New(paritySeed)
	needed := neededPatches(len(codewords))

	for i := 0; i < layout.Len(); i++ {
		x0, y0 := layout.Origin(i)
		word := meta.ForPatch(i).Word()
		for local := 0; local < PatchTiles; local++ {
			var payload int
			switch local {
			case indexTile:
				payload = UnusedPatch
				if i < needed {
					payload = i
				}
			case metadataTile:
				payload = word
			default:
				if ci, si := codewordSlot(i, local); ci < len(codewords) {
					payload = codewords[ci][si]
				}
			}
			x := x0 + local%PatchWidthTiles*TileWidth
			y := y0 + local/PatchWidthTiles*TileWidth
			packTile(bf, x, y, local, payload, parityRand)
		}
	}
}

// Decoder reads payloads back out of bitfields.
type Decoder struct {
	opts Options
}

// NewDecoder returns a Decoder. opts.Level is ignored; the level is read from
// the image.
func NewDecoder(opts Options) *Decoder {
	opts.setDefaults()
	return &Decoder{opts: opts}
}

func (d *Decoder) Decode(bf *bitfield.Bitfield) ([]byte, error) {
	return d.DecodeContext(context.Background(), bf)
}

// DecodeContext is Decode with cancellation checked between codewords.
// Only the codewords covering the envelope are decoded; stray codewords read
// from noise past them are ignored.
func (d *Decoder) DecodeContext(ctx context.Context, bf *bitfield.Bitfield) (payload []byte, err error) {
	start := time.Now()
	defer func() { d.opts.Metrics.observe("decode", start, err) }()

	align := FindAlignment(bf)
	s := scanPatches(bf, align, d.opts.Metrics)
	log := d.opts.Logger.WithFields(logrus.Fields{
		"alignment": fmt.Sprintf("%d,%d", align.OffsetX, align.OffsetY),
		"accepted":  s.accepted,
		"codewords": len(s.codewords),
	})

	meta, ok := s.metadata()
	if !ok {
		log.Debug("no valid patches")
		return nil, fmt.Errorf("%w: no valid patches found", ErrCorrupt)
	}
	if meta.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersion, meta.Version, Version)
	}
	code, err := meta.Level.code()
	if err != nil {
		return nil, err
	}
	n := s.contiguous()
	log.WithFields(logrus.Fields{"level": meta.Level, "contiguous": n}).Debug("decoding codewords")
	if n == 0 {
		return nil, fmt.Errorf("%w: first codeword missing", ErrCorrupt)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The first codeword carries the envelope length, which bounds how many
	// of the collected codewords belong to the payload.
	first, err := d.decodeCodeword(code, s.codewords[0], 0)
	if err != nil {
		return nil, err
	}
	need, err := codewordsNeeded(first, meta.Level)
	if err != nil {
		return nil, err
	}
	if need > n {
		return nil, fmt.Errorf("%w: codeword %d missing, payload needs %d", ErrCorrupt, n, need)
	}

	packets := make([][]int, need)
	packets[0] = first
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i := 1; i < need; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			msg, err := d.decodeCodeword(code, s.codewords[i], i)
			if err != nil {
				return err
			}
			packets[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Debug("codeword decode failed")
		return nil, err
	}

	r, err := packet.NewReader(packets)
	if err != nil {
		return nil, err
	}
	env, err := ReadEnvelope(r)
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

func (d *Decoder) decodeCodeword(code *fec.ReedSolomon, cw []int, i int) ([]int, error) {
	d.opts.Metrics.erased(eraseSymbols(cw))
	msg, err := code.Decode(cw)
	d.opts.Metrics.codeword(err)
	if errors.Is(err, fec.ErrUncorrectable) {
		return nil, fmt.Errorf("%w: codeword %d: %v", ErrCorrupt, i, err)
	}
	return msg, err
}

// codewordsNeeded reads the envelope length from the first decoded packet and
// returns the number of packets the whole envelope occupies.
func codewordsNeeded(first []int, level Level) (int, error) {
	r, err := packet.NewReader([][]int{first})
	if err != nil {
		return 0, err
	}
	var hdr [envelopeHeader]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, truncated(err)
	}
	n, err := payloadLength(hdr[:])
	if err != nil {
		return 0, err
	}
	size := envelopeHeader + n + envelopeFooter
	return (size + level.PacketBytes() - 1) / level.PacketBytes(), nil
}

// eraseSymbols replaces unreadable symbols with zero and returns how many it
// replaced. The decoder treats them as ordinary errors.
func eraseSymbols(cw []int) int {
	n := 0
	for i, v := range cw {
		if v == erased {
			cw[i] = 0
			n++
		}
	}
	return n
}

// Encode embeds payload into bf at the given level with default options.
func Encode(bf *bitfield.Bitfield, payload []byte, level Level) error {
	e, err := NewEncoder(Options{Level: level})
	if err != nil {
		return err
	}
	return e.Encode(bf, payload)
}

// Decode extracts a payload from bf with default options.
func Decode(bf *bitfield.Bitfield) ([]byte, error) { return NewDecoder(Options{}).Decode(bf) }

// Capacity is the largest payload, in bytes, that fits in a w x h bitfield at
// level with every codeword symbol placed. A codeword spans 256 patches, so
// only whole groups of 256 patches count. It is 0 when nothing fits.
func Capacity(w, h int, level Level) int {
	if !level.Valid() {
		return 0
	}
	codewords := LayoutFor(w, h).Len() / CodewordLength * DataTilesPerPatch
	n := codewords*level.PacketBytes() - envelopeHeader - envelopeFooter
	return min(max(n, 0), MaxPayload)
}
