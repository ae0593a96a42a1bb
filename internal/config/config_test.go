package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggcurve/internal/console"
)

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
output = "out.png"
width = 64
log_level = "debug"
color = "off"

[preview]
enabled = true
scale = 8
caption = "parabola"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Output != "out.png" || cfg.Width != 64 || cfg.Height != 128 {
		t.Errorf("Parse() = %+v", cfg)
	}
	if !cfg.Preview.Enabled || cfg.Preview.Scale != 8 || cfg.Preview.Output != "preview.png" {
		t.Errorf("Parse() preview = %+v", cfg.Preview)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("Level() = %v, want DEBUG", l)
	}
	if m, _ := cfg.ColorMode(); m != console.ColorOff {
		t.Errorf("ColorMode() = %v, want off", m)
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse("outptu = \"x.png\"\n[preview]\nzoom = 2\n")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("Parse() error = %v, want ErrUnknownKey", err)
	}
	for _, k := range []string{"outptu", "preview.zoom"} {
		if !strings.Contains(err.Error(), k) {
			t.Errorf("error %q does not name %q", err, k)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"width = 0",
		"height = -3",
		`output = ""`,
		`log_level = "loud"`,
		`color = "maybe"`,
		"[preview]\nenabled = true\noutput = \"\"",
		"width = \"wide\"",
		"[preview]\nscale = -3",
		"[preview]\nscale = 33",
	}
	for _, text := range tests {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", text)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ggcurve.toml")
	if err := os.WriteFile(path, []byte("comment = true\nworkers = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Comment || cfg.Workers != 4 {
		t.Errorf("Load() = %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}
