package ggcurve

import (
	"testing"

	"github.com/gogpu/ggcurve/internal/pngenc"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.width != DefaultWidth || o.height != DefaultHeight {
		t.Errorf("grid = %dx%d, want %dx%d", o.width, o.height, DefaultWidth, DefaultHeight)
	}
	if o.workers != 0 || o.comment || len(o.text) != 0 {
		t.Errorf("defaultOptions() = %+v, want no workers and no text", o)
	}
}

func TestOptions_Apply(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{
		WithGrid(256, 64),
		WithWorkers(4),
		WithComment(),
		WithText("Software", "ggcurve"),
		WithText("Author", "someone"),
	} {
		opt(&o)
	}
	if o.width != 256 || o.height != 64 {
		t.Errorf("grid = %dx%d, want 256x64", o.width, o.height)
	}
	if o.workers != 4 {
		t.Errorf("workers = %d, want 4", o.workers)
	}
	if !o.comment {
		t.Error("comment not enabled")
	}
	want := []pngenc.Text{{Keyword: "Software", Value: "ggcurve"}, {Keyword: "Author", Value: "someone"}}
	if len(o.text) != len(want) {
		t.Fatalf("text = %v, want %v", o.text, want)
	}
	for i := range want {
		if o.text[i] != want[i] {
			t.Errorf("text[%d] = %v, want %v", i, o.text[i], want[i])
		}
	}
}

func TestNewRenderer_Workers(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		r, err := NewRenderer(WithWorkers(n))
		if err != nil {
			t.Fatalf("NewRenderer(WithWorkers(%d)) error = %v", n, err)
		}
		if r.pool != nil {
			t.Errorf("WithWorkers(%d) created a pool", n)
		}
		r.Close()
	}

	r, err := NewRenderer(WithWorkers(3))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.pool == nil || r.pool.Workers() != 3 {
		t.Errorf("WithWorkers(3) pool = %v", r.pool)
	}
}
