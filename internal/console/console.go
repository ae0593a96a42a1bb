// Package console provides an slog.Handler for human-readable terminal
// output.
//
// Lines look like
//
//	15:04:05     INFO [ggcurve] wrote output path=curve.png bytes=16595
//
// Level tags and the section are colored when the destination is a
// terminal, or when color is forced on.
package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

// ColorMode selects whether escapes are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

var colorNames = map[string]ColorMode{
	"auto": ColorAuto,
	"on":   ColorOn,
	"off":  ColorOff,
}

// ParseColorMode parses "auto", "on" or "off". The empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	if s == "" {
		return ColorAuto, nil
	}
	m, ok := colorNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unrecognised color mode %q", s)
	}
	return m, nil
}

func (m ColorMode) String() string {
	for k, v := range colorNames {
		if v == m {
			return k
		}
	}
	return "ColorMode(" + strconv.Itoa(int(m)) + ")"
}

// SectionKey is the attribute key that sets the bracketed section.
const SectionKey = "section"

const defaultSection = "ggcurve"

// level tags, uncolored then colored
var levelTags = [2][4]string{
	{"   DEBUG", "    INFO", " WARNING", "   ERROR"},
	{
		"\033[37m   DEBUG\033[0m",
		"\033[34m    INFO\033[0m",
		"\033[33m WARNING\033[0m",
		"\033[31m   ERROR\033[0m",
	},
}

var sectionFormats = [2]string{
	" %s [%s] ",
	" %s [\033[36m%s\033[0m] ",
}

func levelIndex(l slog.Level) int {
	switch {
	case l < slog.LevelInfo:
		return 0
	case l < slog.LevelWarn:
		return 1
	case l < slog.LevelError:
		return 2
	default:
		return 3
	}
}

// Options configures a Handler.
type Options struct {
	// Level is the minimum level written. Nil means slog.LevelInfo.
	Level slog.Leveler
	// Color selects escape output.
	Color ColorMode
}

type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// Handler is an slog.Handler writing one line per record.
type Handler struct {
	out     *sink
	level   slog.Leveler
	color   int
	section string
	prefix  string // pre-rendered attrs from WithAttrs
	group   string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler returns a Handler writing to w. If w is a terminal and color
// is not off, escapes are enabled and routed through go-colorable.
func NewHandler(w io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = &Options{}
	}
	h := &Handler{
		level:   opts.Level,
		section: defaultSection,
	}
	if h.level == nil {
		h.level = slog.LevelInfo
	}
	if opts.Color == ColorOn {
		h.color = 1
	}
	if f, ok := w.(*os.File); ok && opts.Color != ColorOff && isTerminal(f) {
		w = colorable.NewColorable(f)
		h.color = 1
	}
	h.out = &sink{w: w}
	return h
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Enabled reports whether l is at or above the configured level.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle writes r as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(r.Time.Format(time.TimeOnly))
	}

	section := h.section
	var attrs bytes.Buffer
	attrs.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == SectionKey && h.group == "" {
			section = a.Value.String()
			return true
		}
		appendAttr(&attrs, h.group, a)
		return true
	})

	fmt.Fprintf(&buf, sectionFormats[h.color], levelTags[h.color][levelIndex(r.Level)], section)
	buf.WriteString(r.Message)
	buf.Write(attrs.Bytes())
	buf.WriteByte('\n')

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	_, err := h.out.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that adds attrs to every record. A section
// attribute replaces the bracketed section instead.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		if a.Key == SectionKey && h.group == "" {
			h2.section = a.Value.String()
			continue
		}
		appendAttr(&buf, h.group, a)
	}
	h2.prefix = buf.String()
	return &h2
}

// WithGroup returns a handler that qualifies later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = joinKey(h.group, name)
	return &h2
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func appendAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		g := a.Value.Group()
		if len(g) == 0 {
			return
		}
		if a.Key != "" {
			group = joinKey(group, a.Key)
		}
		for _, ga := range g {
			appendAttr(buf, group, ga)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(joinKey(group, a.Key))
	buf.WriteByte('=')
	buf.WriteString(quote(a.Value.String()))
}

func quote(s string) string {
	if s == "" || slices.ContainsFunc([]rune(s), needsQuote) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(r rune) bool {
	return r == '"' || r == '=' || !unicode.IsPrint(r) || unicode.IsSpace(r)
}
