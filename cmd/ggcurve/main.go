// Command ggcurve plots a polynomial-like expression as a greyscale PNG.
//
// Usage:
//
//	ggcurve [flags] <expression>
//
// Arguments are joined with spaces, so "x^2 + 1" may be passed quoted or
// as separate words. Flags override values from the -config file.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/gogpu/ggcurve"
	"github.com/gogpu/ggcurve/expr"
	"github.com/gogpu/ggcurve/internal/config"
	"github.com/gogpu/ggcurve/internal/console"
	"github.com/gogpu/ggcurve/preview"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	cfg     config.Config
	path    string
	preview string
	dump    bool
	digest  bool
}

func newFlagSet(stderr io.Writer, fl *flags) *flag.FlagSet {
	fs := flag.NewFlagSet("ggcurve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: ggcurve [flags] <expression>")
		fs.PrintDefaults()
	}

	def := config.Default()
	fl.cfg = def
	fs.StringVar(&fl.path, "config", "", "TOML configuration `file`")
	fs.StringVar(&fl.cfg.Output, "output", def.Output, "output `file`")
	fs.IntVar(&fl.cfg.Width, "width", def.Width, "grid width")
	fs.IntVar(&fl.cfg.Height, "height", def.Height, "grid height")
	fs.IntVar(&fl.cfg.Workers, "workers", def.Workers, "rasterizer goroutines")
	fs.BoolVar(&fl.cfg.Comment, "comment", def.Comment, "store the expression in a tEXt Comment chunk")
	fs.StringVar(&fl.preview, "preview", "", "also write a zoomed, captioned preview to `file`")
	fs.IntVar(&fl.cfg.Preview.Scale, "scale", def.Preview.Scale, "preview zoom factor")
	fs.StringVar(&fl.cfg.Preview.Caption, "caption", def.Preview.Caption, "preview caption (default the expression)")
	fs.StringVar(&fl.cfg.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")
	fs.StringVar(&fl.cfg.Color, "color", def.Color, "auto, on or off")
	fs.BoolVar(&fl.dump, "dump", false, "print the parsed expression tree to stderr")
	fs.BoolVar(&fl.digest, "digest", false, "print the BLAKE3 digest of the output")
	return fs
}

// merge applies explicitly set flags over base.
func (fl *flags) merge(fs *flag.FlagSet, base config.Config) config.Config {
	set := map[string]func(){
		"output":    func() { base.Output = fl.cfg.Output },
		"width":     func() { base.Width = fl.cfg.Width },
		"height":    func() { base.Height = fl.cfg.Height },
		"workers":   func() { base.Workers = fl.cfg.Workers },
		"comment":   func() { base.Comment = fl.cfg.Comment },
		"scale":     func() { base.Preview.Scale = fl.cfg.Preview.Scale },
		"caption":   func() { base.Preview.Caption = fl.cfg.Preview.Caption },
		"log-level": func() { base.LogLevel = fl.cfg.LogLevel },
		"color":     func() { base.Color = fl.cfg.Color },
		"preview": func() {
			base.Preview.Enabled = true
			base.Preview.Output = fl.preview
		},
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
	return base
}

func run(args []string, stdout, stderr io.Writer) int {
	var fl flags
	fs := newFlagSet(stderr, &fl)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg := config.Default()
	if fl.path != "" {
		var err error
		if cfg, err = config.Load(fl.path); err != nil {
			fmt.Fprintln(stderr, "ggcurve:", err)
			return exitUsage
		}
	}
	cfg = fl.merge(fs, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "ggcurve:", err)
		return exitUsage
	}

	level, _ := cfg.Level()
	color, _ := cfg.ColorMode()
	log := slog.New(console.NewHandler(stderr, &console.Options{Level: level, Color: color}))
	ggcurve.SetLogger(log)
	defer ggcurve.SetLogger(nil)

	expression := ggcurve.Normalize(strings.Join(fs.Args(), " "))
	if expression == "" {
		fs.Usage()
		return exitUsage
	}

	if err := render(cfg, expression, fl, log, stdout, stderr); err != nil {
		log.Error("render failed", "err", err)
		if errors.Is(err, expr.ErrEmptyInput) {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}

func render(cfg config.Config, expression string, fl flags, log *slog.Logger, stdout, stderr io.Writer) error {
	opts := []ggcurve.Option{
		ggcurve.WithGrid(cfg.Width, cfg.Height),
		ggcurve.WithWorkers(cfg.Workers),
	}
	if cfg.Comment {
		opts = append(opts, ggcurve.WithComment())
	}
	r, err := ggcurve.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	// Parse, rasterize and encode before any file is created.
	e, err := r.Parse(expression)
	if err != nil {
		return err
	}
	if fl.dump {
		expr.Fdump(stderr, e)
	}

	b, err := r.RasterizeExpr(e)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := r.Encode(&out, b, expression); err != nil {
		return err
	}
	data := out.Bytes()
	if err := writeFile(cfg.Output, data, log); err != nil {
		return err
	}

	sum := digest(data)
	log.Info("wrote output", "path", cfg.Output, "bytes", len(data), "blake3", sum)
	if fl.digest {
		fmt.Fprintf(stdout, "%s  %s\n", sum, cfg.Output)
	}

	if !cfg.Preview.Enabled {
		return nil
	}
	caption := cfg.Preview.Caption
	if caption == "" {
		caption = expression
	}
	popts := preview.Options{Scale: cfg.Preview.Scale, Caption: caption}
	img := b.Gray()
	if err := createFile(cfg.Preview.Output, log, func(w io.Writer) error {
		return preview.Encode(w, img, popts)
	}); err != nil {
		return err
	}
	log.Info("wrote preview", "path", cfg.Preview.Output, "scale", popts.Scale)
	return nil
}

func writeFile(path string, data []byte, log *slog.Logger) error {
	return createFile(path, log, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// createFile runs write against a new file at path. The file is always
// closed and is removed if write or close fails.
func createFile(path string, log *slog.Logger, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil {
				log.Warn("cannot remove partial output", "path", path, "err", rerr)
			}
		}
	}()
	return write(f)
}

func digest(data []byte) string {
	h := blake3.New()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
