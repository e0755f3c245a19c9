package stego

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/allanzhao/rsteg/crc"
)

// Envelope frames the payload inside the decoded byte stream.
// Layout:
//
//	LENGTH  u32 BE  payload length, at most MaxPayload
//	PAYLOAD LENGTH bytes
//	CRC     u32 BE  CRC-32 over LENGTH (fed least significant byte first)
//	                followed by PAYLOAD
//
// Anything after CRC is padding from the last packet and is ignored.
const (
	MaxPayload     = 10000000
	envelopeHeader = 4
	envelopeFooter = 4
)

type Envelope struct {
	Payload []byte
}

func envelopeChecksum(payload []byte) uint32 {
	d := crc.CRC32.NewDigest()
	d.WriteUint32(uint32(len(payload)))
	_, _ = d.Write(payload)
	return d.Sum32()
}

// Size is the framed length of e.
func (e *Envelope) Size() int { return envelopeHeader + len(e.Payload) + envelopeFooter }

func (e *Envelope) MarshalBinary() ([]byte, error) {
	if len(e.Payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrLength, len(e.Payload))
	}
	b := make([]byte, e.Size())
	binary.BigEndian.PutUint32(b[0:4], uint32(len(e.Payload)))
	copy(b[4:], e.Payload)
	binary.BigEndian.PutUint32(b[4+len(e.Payload):], envelopeChecksum(e.Payload))
	return b, nil
}

// UnmarshalBinary parses an envelope from the start of b.
func (e *Envelope) UnmarshalBinary(b []byte) error {
	got, err := ReadEnvelope(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*e = *got
	return nil
}

// ReadEnvelope reads one envelope from r and verifies its checksum.
func ReadEnvelope(r io.Reader) (*Envelope, error) {
	var hdr [envelopeHeader]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, truncated(err)
	}
	n, err := payloadLength(hdr[:])
	if err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, truncated(err)
	}
	var ftr [envelopeFooter]byte
	if _, err := io.ReadFull(r, ftr[:]); err != nil {
		return nil, truncated(err)
	}
	if binary.BigEndian.Uint32(ftr[:]) != envelopeChecksum(payload) {
		return nil, ErrChecksum
	}
	return &Envelope{Payload: payload}, nil
}

// payloadLength parses the LENGTH field at the start of hdr.
func payloadLength(hdr []byte) (int, error) {
	n := int32(binary.BigEndian.Uint32(hdr))
	if n < 0 || n > MaxPayload {
		return 0, fmt.Errorf("%w: %d", ErrLength, n)
	}
	return int(n), nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: envelope truncated", ErrCorrupt)
	}
	return err
}
