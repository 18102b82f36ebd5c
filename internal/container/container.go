// Package container implements the on-disk format: a fixed 1028-byte header
// (original length plus the 256-entry frequency table) followed by the
// packed payload. The layout is flat and fixed-size, the textbook case
// encoding/binary exists for — no repo in the retrieved corpus reaches for
// a serialization library at this level.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vladFlux/CUDA-Compression/internal/histogram"
)

// HeaderSize is the length of the fixed-size header: a uint32 length field
// followed by 256 uint32 frequency counts.
const HeaderSize = 4 + 256*4

// CorruptInputError is returned by Read when the header itself is
// truncated, or when the header declares a nonzero length but no payload
// follows it. A payload that is present but too short is not detected here.
type CorruptInputError struct {
	Reason string
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("container: corrupt input: %s", e.Reason)
}

// Write emits the container format: length, frequency table, packed
// payload, in that order, native little-endian.
func Write(w io.Writer, n uint32, h histogram.Table, payload []byte) error {
	var hdr bytes.Buffer
	hdr.Grow(HeaderSize)
	if err := binary.Write(&hdr, binary.LittleEndian, n); err != nil {
		return err
	}
	if err := binary.Write(&hdr, binary.LittleEndian, h); err != nil {
		return err
	}
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// Read parses the container format out of src, returning the original
// length, the frequency table, and the packed payload slice (a view into
// src, not copied).
func Read(src []byte) (n uint32, h histogram.Table, payload []byte, err error) {
	if len(src) < HeaderSize {
		return 0, h, nil, &CorruptInputError{Reason: "header truncated"}
	}
	n = binary.LittleEndian.Uint32(src[0:4])
	for i := 0; i < 256; i++ {
		off := 4 + i*4
		h[i] = binary.LittleEndian.Uint32(src[off : off+4])
	}
	payload = src[HeaderSize:]
	if n > 0 && len(payload) == 0 {
		return n, h, nil, &CorruptInputError{Reason: "empty payload for nonzero length"}
	}
	return n, h, payload, nil
}
