// Package packet repacks a byte stream into fixed-length packets of 12-bit
// symbols and back. Every 3 bytes become 2 symbols:
//
//	sym[2i]   = b[3i]        | (b[3i+1] & 0x0f) << 8
//	sym[2i+1] = b[3i+1] >> 4 | b[3i+2] << 4
package packet

import (
	"errors"
	"io"
)

// ErrOddPacketLength is returned for packets that cannot hold whole byte
// triples.
var ErrOddPacketLength = errors.New("packet: symbols per packet must be even and positive")

// BytesPerPacket is the byte capacity of a packet of n symbols.
func BytesPerPacket(n int) int { return n / 2 * 3 }

// Writer collects bytes into packets of a fixed symbol count. The first
// packet exists before anything is written, so an empty stream still yields
// one all-zero packet.
type Writer struct {
	n       int
	packets [][]int
	pos     int // byte offset in the last packet
}

func NewWriter(symbolsPerPacket int) (*Writer, error) {
	if symbolsPerPacket <= 0 || symbolsPerPacket%2 != 0 {
		return nil, ErrOddPacketLength
	}
	w := &Writer{n: symbolsPerPacket}
	w.Reset()
	return w, nil
}

// Reset discards all packets and starts a fresh one.
func (w *Writer) Reset() {
	w.packets = [][]int{make([]int, w.n)}
	w.pos = 0
}

func (w *Writer) WriteByte(b byte) error {
	if w.pos == BytesPerPacket(w.n) {
		w.packets = append(w.packets, make([]int, w.n))
		w.pos = 0
	}
	p := w.packets[len(w.packets)-1]
	s := w.pos / 3 * 2
	v := int(b)
	switch w.pos % 3 {
	case 0:
		p[s] |= v
	case 1:
		p[s] |= (v & 0x0f) << 8
		p[s+1] |= (v & 0xf0) >> 4
	case 2:
		p[s+1] |= v << 4
	}
	w.pos++
	return nil
}

func (w *Writer) Write(b []byte) (int, error) {
	for _, c := range b {
		_ = w.WriteByte(c)
	}
	return len(b), nil
}

// Packets returns the packets written so far. The last one may be partly
// filled; its unused symbols are zero.
func (w *Writer) Packets() [][]int { return w.packets }

// Reader reads bytes back out of a queue of packets.
type Reader struct {
	packets [][]int
	pos     int
}

// NewReader consumes packets in order. Packet lengths must be even.
func NewReader(packets [][]int) (*Reader, error) {
	for _, p := range packets {
		if len(p)%2 != 0 {
			return nil, ErrOddPacketLength
		}
	}
	return &Reader{packets: packets}, nil
}

func (r *Reader) ReadByte() (byte, error) {
	for len(r.packets) > 0 && r.pos >= BytesPerPacket(len(r.packets[0])) {
		r.packets = r.packets[1:]
		r.pos = 0
	}
	if len(r.packets) == 0 {
		return 0, io.EOF
	}
	p := r.packets[0]
	s := r.pos / 3 * 2
	var v int
	switch r.pos % 3 {
	case 0:
		v = p[s]
	case 1:
		v = (p[s]>>8)&0x0f | (p[s+1]<<4)&0xf0
	case 2:
		v = p[s+1] >> 4
	}
	r.pos++
	return byte(v), nil
}

func (r *Reader) Read(b []byte) (int, error) {
	for i := range b {
		c, err := r.ReadByte()
		if err != nil {
			if i > 0 {
				return i, nil
			}
			return 0, err
		}
		b[i] = c
	}
	return len(b), nil
}
