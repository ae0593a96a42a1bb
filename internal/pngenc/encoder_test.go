package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"slices"
	"testing"
)

// gradient returns scanlines for a width x height image whose pixel
// (x, y) has value x*7+y.
func gradient(width, height int) []byte {
	out := make([]byte, 0, (width+1)*height)
	for y := range height {
		out = append(out, ftNone)
		for x := range width {
			out = append(out, byte(x*7+y))
		}
	}
	return out
}

type chunkInfo struct {
	name string
	data []byte
}

// splitChunks walks a PNG stream and verifies every chunk CRC.
func splitChunks(t *testing.T, b []byte) []chunkInfo {
	t.Helper()
	if !bytes.HasPrefix(b, []byte(pngHeader)) {
		t.Fatalf("missing PNG signature: % x", b[:min(8, len(b))])
	}
	b = b[len(pngHeader):]
	var out []chunkInfo
	for len(b) > 0 {
		if len(b) < 12 {
			t.Fatalf("truncated chunk: %d bytes left", len(b))
		}
		n := binary.BigEndian.Uint32(b[:4])
		body := b[4 : 8+n]
		crc := binary.BigEndian.Uint32(b[8+n : 12+n])
		if want := crc32.ChecksumIEEE(body); crc != want {
			t.Errorf("%s CRC = %#08x, want %#08x", body[:4], crc, want)
		}
		out = append(out, chunkInfo{name: string(body[:4]), data: body[4:]})
		b = b[12+n:]
	}
	return out
}

func TestEncode_ChunkSequence(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, 3, 2, gradient(3, 2)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	chunks := splitChunks(t, buf.Bytes())
	var names []string
	for _, c := range chunks {
		names = append(names, c.name)
	}
	if got, want := names, []string{"IHDR", "IDAT", "IEND"}; !slices.Equal(got, want) {
		t.Fatalf("chunks = %v, want %v", got, want)
	}

	ihdr := chunks[0].data
	want := []byte{0, 0, 0, 3, 0, 0, 0, 2, 8, 0, 0, 0, 0}
	if !bytes.Equal(ihdr, want) {
		t.Errorf("IHDR = % x, want % x", ihdr, want)
	}
	if len(chunks[2].data) != 0 {
		t.Errorf("IEND length = %d, want 0", len(chunks[2].data))
	}
}

func TestEncode_DecodesWithStdlib(t *testing.T) {
	const w, h = 37, 11
	var buf bytes.Buffer
	if err := Encode(&buf, w, h, gradient(w, h)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("decoded %T, want *image.Gray", img)
	}
	if gray.Bounds() != image.Rect(0, 0, w, h) {
		t.Fatalf("Bounds() = %v", gray.Bounds())
	}
	for y := range h {
		for x := range w {
			if got, want := gray.GrayAt(x, y).Y, byte(x*7+y); got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestEncode_TextChunk(t *testing.T) {
	enc := Encoder{Text: []Text{{Keyword: "Comment", Value: "2x^3+1"}}}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, 2, 2, gradient(2, 2)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	chunks := splitChunks(t, buf.Bytes())
	if len(chunks) != 4 || chunks[1].name != "tEXt" {
		t.Fatalf("chunks = %v, want tEXt second", chunks)
	}
	if got, want := string(chunks[1].data), "Comment\x002x^3+1"; got != want {
		t.Errorf("tEXt = %q, want %q", got, want)
	}
	if _, err := png.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Errorf("png.Decode() with tEXt error = %v", err)
	}
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		enc       Encoder
		w, h      int
		scanlines []byte
	}{
		{"zero width", Encoder{}, 0, 1, []byte{0}},
		{"short", Encoder{}, 4, 4, make([]byte, 19)},
		{"long", Encoder{}, 1, 1, make([]byte, 3)},
		{"bad filter", Encoder{}, 1, 2, []byte{0, 1, 9, 1}},
		{"empty keyword", Encoder{Text: []Text{{Value: "v"}}}, 1, 1, []byte{0, 0}},
		{"NUL value", Encoder{Text: []Text{{Keyword: "k", Value: "a\x00b"}}}, 1, 1, []byte{0, 0}},
		{"non-Latin-1 value", Encoder{Text: []Text{{Keyword: "k", Value: "x\u4e2d"}}}, 1, 1, []byte{0, 0}},
		{"non-Latin-1 keyword", Encoder{Text: []Text{{Keyword: "\u4e2d", Value: "v"}}}, 1, 1, []byte{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.enc.Encode(&buf, tt.w, tt.h, tt.scanlines)
			var fe FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Encode() error = %v, want FormatError", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Encode() wrote %d bytes on error", buf.Len())
			}
		})
	}
}

type failWriter struct {
	n     int
	limit int
}

var errWrite = errors.New("write failed")

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	if f.n > f.limit {
		return 0, errWrite
	}
	return len(p), nil
}

func TestEncode_StickyWriteError(t *testing.T) {
	for limit := range 6 {
		fw := &failWriter{limit: limit}
		if err := Encode(fw, 2, 2, gradient(2, 2)); !errors.Is(err, errWrite) {
			t.Errorf("limit %d: Encode() error = %v, want %v", limit, err, errWrite)
		}
		if fw.n != limit+1 {
			t.Errorf("limit %d: writes after failure = %d, want %d", limit, fw.n, limit+1)
		}
	}
}

func TestChunk_WriteTo(t *testing.T) {
	c := NewChunk("IDAT", []byte{1, 2, 3})
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if int(n) != chunkOverhead+3 || buf.Len() != int(n) {
		t.Errorf("WriteTo() = %d bytes (buffer %d), want %d", n, buf.Len(), chunkOverhead+3)
	}
	want := []byte{0, 0, 0, 3, 'I', 'D', 'A', 'T', 1, 2, 3}
	want = binary.BigEndian.AppendUint32(want, crc32.ChecksumIEEE([]byte("IDAT\x01\x02\x03")))
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WriteTo() = % x, want % x", buf.Bytes(), want)
	}
}

func TestEncode_TextLatin1(t *testing.T) {
	enc := Encoder{Text: []Text{{Keyword: "Comment", Value: "2x\u00e9"}}}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, 2, 2, gradient(2, 2)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	chunks := splitChunks(t, buf.Bytes())
	if got, want := string(chunks[1].data), "Comment\x002x\xe9"; got != want {
		t.Errorf("tEXt = %q, want %q", got, want)
	}
	if n := enc.EncodedLen(2, 2); n != buf.Len() {
		t.Errorf("EncodedLen() = %d, want %d", n, buf.Len())
	}
}

func TestEncoder_EncodedLen(t *testing.T) {
	encs := []Encoder{
		{},
		{Text: []Text{{Keyword: "Comment", Value: "x^2+1"}, {Keyword: "Software", Value: "ggcurve"}}},
	}
	for _, enc := range encs {
		for _, size := range [][2]int{{1, 1}, {128, 128}, {300, 300}} {
			w, h := size[0], size[1]
			var buf bytes.Buffer
			if err := enc.Encode(&buf, w, h, gradient(w, h)); err != nil {
				t.Fatalf("Encode(%dx%d) error = %v", w, h, err)
			}
			if n := enc.EncodedLen(w, h); n != buf.Len() {
				t.Errorf("EncodedLen(%d, %d) with %d texts = %d, want %d", w, h, len(enc.Text), n, buf.Len())
			}
		}
	}
}

func TestChunk_CRCFollowsData(t *testing.T) {
	c := NewChunk("IEND", nil)
	if got := c.CRC(); got != 0xAE426082 {
		t.Errorf("IEND CRC = %#08x, want 0xae426082", got)
	}
	c.Data = []byte{0}
	if got, want := c.CRC(), crc32.ChecksumIEEE([]byte("IEND\x00")); got != want {
		t.Errorf("CRC after data change = %#08x, want %#08x", got, want)
	}
}

func TestNewChunk_BadType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewChunk(\"IDA\") did not panic")
		}
	}()
	NewChunk("IDA", nil)
}

func TestGrayScanlines(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i + 1)
	}
	sub := img.SubImage(image.Rect(1, 0, 3, 2)).(*image.Gray)
	got := GrayScanlines(sub)
	want := []byte{0, 2, 3, 0, 6, 7}
	if !bytes.Equal(got, want) {
		t.Errorf("GrayScanlines() = %v, want %v", got, want)
	}
}

func BenchmarkEncode(b *testing.B) {
	s := gradient(128, 128)
	var buf bytes.Buffer
	for b.Loop() {
		buf.Reset()
		_ = Encode(&buf, 128, 128, s)
	}
}
