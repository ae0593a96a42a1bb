package raster

import (
	"errors"
	"image"
	"image/color"
)

// Pixel values stored in a Buffer.
const (
	Background byte = 0x00
	Curve      byte = 0xFF
)

var (
	// ErrInvalidSize is returned for non-positive or overflowing dimensions.
	ErrInvalidSize = errors.New("raster: invalid grid size")

	// ErrBufferSize is returned when pixel data does not hold
	// (width+1)*height bytes.
	ErrBufferSize = errors.New("raster: buffer length does not match grid")
)

// Buffer is a greyscale intensity buffer laid out as PNG scanlines: each
// of the height rows is one padding byte (always 0, which doubles as the
// PNG "None" filter type) followed by width pixel bytes.
//
// Buffer implements image.Image; the padding column is not part of the
// image.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

// NewBuffer wraps pix as a width x height buffer. pix must hold exactly
// (width+1)*height bytes. The buffer takes ownership of pix.
func NewBuffer(width, height int, pix []byte) (*Buffer, error) {
	n, err := bufferLen(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != n {
		return nil, ErrBufferSize
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

func bufferLen(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, ErrInvalidSize
	}
	stride := width + 1
	n := stride * height
	if stride <= 0 || n/height != stride {
		return 0, ErrInvalidSize
	}
	return n, nil
}

// Width returns the number of pixel columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Stride returns the distance in bytes between the starts of two rows.
func (b *Buffer) Stride() int { return b.width + 1 }

// Pix returns the raw scanline bytes, padding included.
// The slice aliases the buffer.
func (b *Buffer) Pix() []byte { return b.pix }

// Row returns the pixel bytes of row y, without the padding byte.
// Row 0 is the top of the image.
func (b *Buffer) Row(y int) []byte {
	i := y * b.Stride()
	return b.pix[i+1 : i+1+b.width]
}

// Lit reports whether the curve passes through pixel (x, y).
func (b *Buffer) Lit(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.pix[y*b.Stride()+1+x] == Curve
}

// Count returns the number of curve pixels.
func (b *Buffer) Count() int {
	n := 0
	for y := range b.height {
		for x := range b.width {
			if b.Lit(x, y) {
				n++
			}
		}
	}
	return n
}

// Gray copies the buffer into a new image.Gray, which image libraries
// handle without going through At.
func (b *Buffer) Gray() *image.Gray {
	img := image.NewGray(b.Bounds())
	for y := range b.height {
		copy(img.Pix[y*img.Stride:], b.Row(y))
	}
	return img
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.Gray{}
	}
	return color.Gray{Y: b.pix[y*b.Stride()+1+x]}
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.GrayModel
}
