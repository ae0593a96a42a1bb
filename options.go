package ggcurve

import "github.com/gogpu/ggcurve/internal/pngenc"

// Default grid size.
const (
	DefaultWidth  = 128
	DefaultHeight = 128
)

// Option configures a Renderer.
//
// Example:
//
//	r, err := ggcurve.NewRenderer(ggcurve.WithGrid(256, 64), ggcurve.WithComment())
type Option func(*rendererOptions)

type rendererOptions struct {
	width   int
	height  int
	workers int
	comment bool
	text    []pngenc.Text
}

func defaultOptions() rendererOptions {
	return rendererOptions{
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// WithGrid sets the grid size in pixels. Both dimensions must be positive;
// NewRenderer reports an error otherwise.
func WithGrid(width, height int) Option {
	return func(o *rendererOptions) {
		o.width = width
		o.height = height
	}
}

// WithWorkers rasterizes on a pool of n goroutines. Values below 2 keep
// rasterization on the calling goroutine, which is the default.
// The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithComment stores the normalized expression in a tEXt "Comment"
// chunk of every rendered file.
func WithComment() Option {
	return func(o *rendererOptions) {
		o.comment = true
	}
}

// WithText adds a tEXt chunk with the given keyword and value to every
// rendered file. Keywords must be 1-79 bytes without NUL.
func WithText(keyword, value string) Option {
	return func(o *rendererOptions) {
		o.text = append(o.text, pngenc.Text{Keyword: keyword, Value: value})
	}
}
