// Package raster samples a function of x onto a grid and marks the cells
// the curve passes through.
//
// The grid uses a Cartesian y axis: the top image row is y = height and
// the bottom one is y = 1, so the picture reads the way the curve is
// usually drawn. A cell is part of the curve when its row lies within
// one unit of f(x). There is one sample per column and no anti-aliasing.
package raster

// Func is a real function of one variable. expr.Expression.Eval has this
// shape.
type Func func(x float64) float64

// Runner splits [0, n) into at most count ranges and calls fn on each,
// possibly concurrently, returning when all calls are done.
// *parallel.WorkerPool implements Runner.
type Runner interface {
	Bands(n, count int, fn func(lo, hi int))
}

// Option configures Rasterize.
type Option func(*options)

type options struct {
	runner Runner
	bands  int
}

// WithRunner spreads rows across r. The output is identical to the
// sequential result.
func WithRunner(r Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithBands sets how many row bands WithRunner splits the grid into.
// The default is 8.
func WithBands(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bands = n
		}
	}
}

type serial struct{}

func (serial) Bands(n, _ int, fn func(lo, hi int)) {
	if n > 0 {
		fn(0, n)
	}
}

// Rasterize renders f on a width x height grid.
//
// For linear index i over the (width+1)*height buffer, val = i mod
// (width+1). A val of 0 is the padding byte and stays Background.
// Otherwise x = val-1 and row = height - (i-val)/width (integer
// division), and the cell is Curve when (row - f(x))^2 <= 1. NaN samples
// never match.
//
// f is called once per column, since every row of a column samples the
// same x.
func Rasterize(f Func, width, height int, opts ...Option) (*Buffer, error) {
	n, err := bufferLen(width, height)
	if err != nil {
		return nil, err
	}
	o := options{runner: serial{}, bands: 8}
	for _, opt := range opts {
		opt(&o)
	}

	samples := make([]float64, width)
	o.runner.Bands(width, o.bands, func(lo, hi int) {
		for x := lo; x < hi; x++ {
			samples[x] = f(float64(x))
		}
	})

	stride := width + 1
	pix := make([]byte, n)
	o.runner.Bands(height, o.bands, func(lo, hi int) {
		for line := lo; line < hi; line++ {
			start := line * stride
			row := float64(height - start/width)
			scan := pix[start+1 : start+stride]
			for x, y := range samples {
				d := row - y
				if d*d <= 1.0 {
					scan[x] = Curve
				}
			}
		}
	})

	return &Buffer{width: width, height: height, pix: pix}, nil
}
