package pngenc

import (
	"encoding/binary"
	"io"

	"github.com/gogpu/ggcurve/internal/checksum"
)

// maxChunkLen is the largest chunk payload the PNG format allows.
const maxChunkLen = 1<<31 - 1

// Chunk is a single PNG chunk. Its length and CRC are always derived
// from Type and Data, so they cannot go stale.
type Chunk struct {
	Type [4]byte
	Data []byte
}

// NewChunk returns a chunk of the given four-letter type.
// It panics if typ is not exactly four bytes long.
func NewChunk(typ string, data []byte) Chunk {
	if len(typ) != 4 {
		panic("pngenc: chunk type must be 4 bytes: " + typ)
	}
	var c Chunk
	copy(c.Type[:], typ)
	c.Data = data
	return c
}

// Name returns the chunk type as a string.
func (c Chunk) Name() string { return string(c.Type[:]) }

// Len returns the value of the chunk's length field.
func (c Chunk) Len() uint32 { return uint32(len(c.Data)) }

// CRC returns the CRC-32 over the chunk type followed by its data.
func (c Chunk) CRC() uint32 {
	return checksum.UpdateCRC32(checksum.CRC32(c.Type[:]), c.Data)
}

// chunkOverhead is the length, type and CRC framing around chunk data.
const chunkOverhead = 12

func (c Chunk) check() error {
	if len(c.Data) > maxChunkLen {
		return UnsupportedError(c.Name() + " chunk is too large")
	}
	return nil
}

// WriteTo writes the serialized chunk to w.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], c.Len())
	copy(header[4:], c.Type[:])

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], c.CRC())

	var total int64
	for _, b := range [][]byte{header[:], c.Data, footer[:]} {
		n, err := w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
