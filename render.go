package ggcurve

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/gogpu/ggcurve/expr"
	"github.com/gogpu/ggcurve/internal/parallel"
	"github.com/gogpu/ggcurve/internal/pngenc"
	"github.com/gogpu/ggcurve/internal/zstore"
	"github.com/gogpu/ggcurve/raster"
)

// Renderer turns expressions into PNG files. A Renderer is safe for
// concurrent use until Close is called.
type Renderer struct {
	opts rendererOptions
	pool *parallel.WorkerPool
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("ggcurve: grid %dx%d: %w", o.width, o.height, raster.ErrInvalidSize)
	}

	r := &Renderer{opts: o}
	if o.workers > 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	return r, nil
}

// Close releases the worker pool, if any.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Width returns the grid width.
func (r *Renderer) Width() int { return r.opts.width }

// Height returns the grid height.
func (r *Renderer) Height() int { return r.opts.height }

// Normalize prepares user input for parsing: full-width forms such as
// "２ｘ＾３" are folded to their ASCII equivalents and surrounding space
// is trimmed.
func Normalize(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// Parse normalizes and parses an expression.
func (r *Renderer) Parse(expression string) (expr.Expression, error) {
	s := Normalize(expression)
	e, err := expr.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("ggcurve: parse %q: %w", s, err)
	}
	Logger().Debug("parsed expression", "input", s, "tree", e.String())
	return e, nil
}

// Rasterize parses expression and samples it onto the grid.
func (r *Renderer) Rasterize(expression string) (*raster.Buffer, error) {
	e, err := r.Parse(expression)
	if err != nil {
		return nil, err
	}
	return r.RasterizeExpr(e)
}

// RasterizeExpr samples an already parsed expression onto the grid.
func (r *Renderer) RasterizeExpr(e expr.Expression) (*raster.Buffer, error) {
	var opts []raster.Option
	if r.pool != nil {
		opts = append(opts, raster.WithRunner(r.pool), raster.WithBands(r.pool.Workers()*2))
	}

	start := time.Now()
	b, err := raster.Rasterize(e.Eval, r.opts.width, r.opts.height, opts...)
	if err != nil {
		return nil, fmt.Errorf("ggcurve: rasterize: %w", err)
	}
	Logger().Debug("rasterized",
		"width", b.Width(), "height", b.Height(),
		"lit", b.Count(), "elapsed", time.Since(start))
	return b, nil
}

// Render returns the PNG encoding of expression.
func (r *Renderer) Render(expression string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(r.encoder(expression).EncodedLen(r.opts.width, r.opts.height))
	if err := r.RenderTo(&buf, expression); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo writes the PNG encoding of expression to w. Nothing is
// written if the expression does not parse.
func (r *Renderer) RenderTo(w io.Writer, expression string) error {
	e, err := r.Parse(expression)
	if err != nil {
		return err
	}
	b, err := r.RasterizeExpr(e)
	if err != nil {
		return err
	}
	return r.Encode(w, b, expression)
}

// Encode writes b to w as a PNG. expression is only used for the
// Comment chunk enabled by WithComment; with the comment enabled, text
// outside Latin-1 fails with a pngenc.FormatError.
func (r *Renderer) Encode(w io.Writer, b *raster.Buffer, expression string) error {
	enc := r.encoder(expression)
	if err := enc.Encode(w, b.Width(), b.Height(), b.Pix()); err != nil {
		return fmt.Errorf("ggcurve: encode: %w", err)
	}
	Logger().Debug("encoded", "scanlines", len(b.Pix()), "idat", zstore.Len(len(b.Pix())))
	return nil
}

func (r *Renderer) encoder(expression string) *pngenc.Encoder {
	if !r.opts.comment {
		return &pngenc.Encoder{Text: r.opts.text}
	}
	text := make([]pngenc.Text, 0, len(r.opts.text)+1)
	text = append(text, pngenc.Text{Keyword: "Comment", Value: Normalize(expression)})
	return &pngenc.Encoder{Text: append(text, r.opts.text...)}
}

// Render returns the PNG encoding of expression on the default
// 128x128 grid.
func Render(expression string) ([]byte, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Render(expression)
}
