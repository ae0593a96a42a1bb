// Package preview builds an enlarged, captioned copy of a rendered curve
// for quick inspection.
//
// The preview is still an 8-bit greyscale image and is written with the
// same stored-mode PNG encoder as the main output.
package preview

import (
	"errors"
	"image"
	"image/color"
	"io"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggcurve/internal/pngenc"
)

// Defaults for Options.
const (
	DefaultScale    = 4
	DefaultFontSize = 14
	MaxScale        = 32
)

// Caption band colors.
var (
	bandColor = color.Gray{Y: 0x30}
	textColor = color.Gray{Y: 0xFF}
)

// ErrScale is returned for a scale outside [1, MaxScale].
var ErrScale = errors.New("preview: scale out of range")

// Options configures a preview.
type Options struct {
	// Scale is the integer zoom factor. Zero means DefaultScale.
	Scale int
	// Caption is drawn in a band below the curve. An empty caption
	// omits the band.
	Caption string
	// FontSize is the caption size in pixels. Zero means DefaultFontSize.
	FontSize float64
}

func (o Options) scale() int {
	if o.Scale == 0 {
		return DefaultScale
	}
	return o.Scale
}

func (o Options) fontSize() float64 {
	if o.FontSize <= 0 {
		return DefaultFontSize
	}
	return o.FontSize
}

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Render returns a zoomed greyscale copy of src with an optional caption
// band underneath.
func Render(src image.Image, opts Options) (*image.Gray, error) {
	scale := opts.scale()
	if scale < 1 || scale > MaxScale {
		return nil, ErrScale
	}
	sb := src.Bounds()
	plot := image.Rect(0, 0, sb.Dx()*scale, sb.Dy()*scale)

	var face font.Face
	band := 0
	if opts.Caption != "" {
		f, err := goRegular()
		if err != nil {
			return nil, err
		}
		face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    opts.fontSize(),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		defer func() { _ = face.Close() }()
		m := face.Metrics()
		band = (m.Ascent + m.Descent).Ceil() + 2*pad(m)
	}

	dst := image.NewGray(image.Rect(0, 0, plot.Dx(), plot.Dy()+band))
	draw.NearestNeighbor.Scale(dst, plot, src, sb, draw.Src, nil)

	if face != nil {
		bandRect := image.Rect(0, plot.Max.Y, plot.Max.X, plot.Max.Y+band)
		draw.Draw(dst, bandRect, image.NewUniform(bandColor), image.Point{}, draw.Src)
		drawCaption(dst, bandRect, face, opts.Caption)
	}
	return dst, nil
}

func pad(m font.Metrics) int {
	return max(m.Descent.Ceil(), 2)
}

// drawCaption writes text left-aligned in r, eliding the tail with "..."
// when it does not fit.
func drawCaption(dst draw.Image, r image.Rectangle, face font.Face, text string) {
	m := face.Metrics()
	p := pad(m)
	room := fixed.I(r.Dx() - 2*p)
	text = fit(face, text, room)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(r.Min.X+p, r.Min.Y+p+m.Ascent.Ceil()),
	}
	d.DrawString(text)
}

func fit(face font.Face, text string, room fixed.Int26_6) string {
	if font.MeasureString(face, text) <= room {
		return text
	}
	const ellipsis = "..."
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ellipsis
		if font.MeasureString(face, s) <= room {
			return s
		}
	}
	return ""
}

// Encode renders a preview of src and writes it to w as a PNG.
func Encode(w io.Writer, src image.Image, opts Options) error {
	img, err := Render(src, opts)
	if err != nil {
		return err
	}
	b := img.Bounds()
	return pngenc.Encode(w, b.Dx(), b.Dy(), pngenc.GrayScanlines(img))
}
