package stego

import (
	"errors"
	"fmt"
)

// ErrCodec is the category of every encode/decode failure the codec
// reports. Field arithmetic errors are passed through unwrapped.
var ErrCodec = errors.New("stego: codec failure")

var (
	ErrCapacity = fmt.Errorf("%w: too much data to fit in this image", ErrCodec)
	ErrCorrupt  = fmt.Errorf("%w: data is damaged beyond recovery", ErrCodec)
	ErrVersion  = fmt.Errorf("%w: unsupported protocol version", ErrCodec)
	ErrChecksum = fmt.Errorf("%w: incorrect data checksum", ErrCodec)
	ErrLength   = fmt.Errorf("%w: payload length out of range", ErrCodec)
	ErrLevel    = fmt.Errorf("%w: unknown error correction level", ErrCodec)
)
