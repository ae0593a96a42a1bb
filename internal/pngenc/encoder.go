// Package pngenc assembles 8-bit greyscale PNG files from pre-filtered
// scanlines.
//
// The scanline layout is the one PNG stores inside IDAT: every row starts
// with a filter-type byte followed by one byte per pixel. Compression is
// delegated to zstore, which emits stored (uncompressed) DEFLATE blocks.
package pngenc

import (
	"encoding/binary"
	"image"
	"io"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/ggcurve/internal/zstore"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

// Color type and bit depth, as per the PNG spec.
const (
	ctGrayscale = 0
	bitDepth8   = 8
)

// Filter types, as per the PNG spec.
const (
	ftNone  = 0
	nFilter = 5
)

// maxKeywordLen is the longest tEXt keyword the PNG spec allows.
const maxKeywordLen = 79

// A FormatError reports that the input cannot be encoded as a valid PNG.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// An UnsupportedError reports that the input needs a PNG feature this
// encoder does not provide.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "png: unsupported feature: " + string(e) }

// Text is a tEXt chunk entry. Keyword and Value are UTF-8 and are stored
// as Latin-1; text outside Latin-1 is a FormatError.
type Text struct {
	Keyword string
	Value   string
}

// Encoder writes PNG files. The zero value is ready to use and emits
// only the signature and the IHDR, IDAT and IEND chunks.
type Encoder struct {
	// Text entries are written as tEXt chunks between IHDR and IDAT.
	Text []Text
}

// Encode writes a PNG of the given dimensions to w. scanlines holds
// height rows of 1+width bytes each, the first byte of every row being
// its filter type.
func Encode(w io.Writer, width, height int, scanlines []byte) error {
	var e Encoder
	return e.Encode(w, width, height, scanlines)
}

// Encode writes a PNG of the given dimensions to w.
func (enc *Encoder) Encode(w io.Writer, width, height int, scanlines []byte) error {
	if err := checkScanlines(width, height, scanlines); err != nil {
		return err
	}
	text := make([]Chunk, 0, len(enc.Text))
	for _, t := range enc.Text {
		c, err := textChunk(t)
		if err != nil {
			return err
		}
		text = append(text, c)
	}

	e := &encoder{w: w}
	e.writeString(pngHeader)
	e.writeChunk(ihdrChunk(width, height))
	for _, c := range text {
		e.writeChunk(c)
	}
	e.writeChunk(NewChunk("IDAT", zstore.Frame(scanlines)))
	e.writeChunk(NewChunk("IEND", nil))
	return e.err
}

// EncodedLen returns the size in bytes of the file Encode writes for a
// width x height image. Text entries that would fail to encode are not
// counted.
func (enc *Encoder) EncodedLen(width, height int) int {
	n := len(pngHeader) +
		chunkOverhead + ihdrLen +
		chunkOverhead + zstore.Len((width+1)*height) +
		chunkOverhead
	for _, t := range enc.Text {
		if c, err := textChunk(t); err == nil {
			n += chunkOverhead + len(c.Data)
		}
	}
	return n
}

// encoder carries the first write error; later writes become no-ops.
type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) writeChunk(c Chunk) {
	if e.err != nil {
		return
	}
	_, e.err = c.WriteTo(e.w)
}

const ihdrLen = 13

func ihdrChunk(width, height int) Chunk {
	var b [ihdrLen]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(width))
	binary.BigEndian.PutUint32(b[4:8], uint32(height))
	b[8] = bitDepth8
	b[9] = ctGrayscale
	b[10] = 0 // deflate
	b[11] = 0 // adaptive filtering
	b[12] = 0 // no interlace
	return NewChunk("IHDR", b[:])
}

var latin1 = charmap.ISO8859_1

func textChunk(t Text) (Chunk, error) {
	keyword, err := latin1.NewEncoder().String(t.Keyword)
	if err != nil {
		return Chunk{}, FormatError("tEXt keyword " + strconv.Quote(t.Keyword) + " is not Latin-1")
	}
	value, err := latin1.NewEncoder().String(t.Value)
	if err != nil {
		return Chunk{}, FormatError("tEXt value " + strconv.Quote(t.Value) + " is not Latin-1")
	}
	if len(keyword) == 0 || len(keyword) > maxKeywordLen {
		return Chunk{}, FormatError("tEXt keyword length " + strconv.Itoa(len(keyword)))
	}
	for i := 0; i < len(keyword); i++ {
		if c := keyword[i]; c == 0 || c == ' ' && (i == 0 || i == len(keyword)-1) {
			return Chunk{}, FormatError("bad tEXt keyword " + strconv.Quote(t.Keyword))
		}
	}
	for i := 0; i < len(value); i++ {
		if value[i] == 0 {
			return Chunk{}, FormatError("NUL in tEXt value")
		}
	}
	data := make([]byte, 0, len(keyword)+1+len(value))
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, value...)
	return NewChunk("tEXt", data), nil
}

func checkScanlines(width, height int, scanlines []byte) error {
	if width <= 0 || height <= 0 {
		return FormatError("non-positive dimension")
	}
	if int64(width) > maxChunkLen || int64(height) > maxChunkLen {
		return UnsupportedError("dimension overflow")
	}
	stride := width + 1
	if int64(stride)*int64(height) != int64(len(scanlines)) {
		return FormatError("scanline length " + strconv.Itoa(len(scanlines)) +
			" does not match " + strconv.Itoa(width) + "x" + strconv.Itoa(height))
	}
	if zstore.Len(len(scanlines)) > maxChunkLen {
		return UnsupportedError("IDAT chunk is too large")
	}
	for y := 0; y < height; y++ {
		if ft := scanlines[y*stride]; ft >= nFilter {
			return FormatError("bad filter type " + strconv.Itoa(int(ft)) + " in row " + strconv.Itoa(y))
		}
	}
	return nil
}

// GrayScanlines converts img to the scanline layout Encode expects,
// using filter type None for every row.
func GrayScanlines(img *image.Gray) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, (w+1)*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		out = append(out, ftNone)
		out = append(out, img.Pix[i:i+w]...)
	}
	return out
}
