// Package zstore wraps raw bytes in a zlib stream (RFC 1950) whose
// DEFLATE body (RFC 1951) uses only stored, uncompressed blocks.
//
// The output is a valid zlib stream that any inflater accepts. No
// entropy coding is done; the point is a byte-exact container, not a
// small one.
package zstore

import (
	"encoding/binary"

	"github.com/gogpu/ggcurve/internal/checksum"
)

const (
	// cmf selects DEFLATE with a 32K window.
	cmf = 0x78
	// flg completes the header so that (cmf<<8 | flg) % 31 == 0,
	// with FDICT unset and FLEVEL 0 (fastest).
	flg = 0x01

	// MaxBlock is the largest payload a single stored block can hold.
	MaxBlock = 0xFFFF

	headerLen  = 2
	blockLen   = 5 // BFINAL/BTYPE byte + LEN + NLEN
	trailerLen = 4
)

// Block header bytes: BFINAL in bit 0, BTYPE=00 (stored) in bits 1-2.
const (
	blockMore  = 0x00
	blockFinal = 0x01
)

// Len returns the size of the framed stream for an n-byte payload.
func Len(n int) int {
	blocks := 1
	if n > 0 {
		blocks = (n + MaxBlock - 1) / MaxBlock
	}
	return headerLen + blocks*blockLen + n + trailerLen
}

// Frame returns payload wrapped in a stored-mode zlib stream.
func Frame(payload []byte) []byte {
	return AppendFrame(make([]byte, 0, Len(len(payload))), payload)
}

// AppendFrame appends the stored-mode zlib framing of payload to dst and
// returns the extended slice.
func AppendFrame(dst, payload []byte) []byte {
	dst = append(dst, cmf, flg)

	rest := payload
	for {
		n := min(len(rest), MaxBlock)
		final := n == len(rest)
		dst = appendBlockHeader(dst, n, final)
		dst = append(dst, rest[:n]...)
		rest = rest[n:]
		if final {
			break
		}
	}

	return binary.BigEndian.AppendUint32(dst, checksum.Adler32(payload))
}

func appendBlockHeader(dst []byte, n int, final bool) []byte {
	h := byte(blockMore)
	if final {
		h = blockFinal
	}
	dst = append(dst, h)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(n))
	return binary.LittleEndian.AppendUint16(dst, ^uint16(n))
}
