// Package config loads the command's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/ggcurve/internal/console"
	"github.com/gogpu/ggcurve/preview"
)

// Preview holds the [preview] table.
type Preview struct {
	Enabled bool   `toml:"enabled"`
	Output  string `toml:"output"`
	Scale   int    `toml:"scale"`
	Caption string `toml:"caption"`
}

// Config is the full command configuration. Zero fields in a file keep
// their defaults.
type Config struct {
	Output   string  `toml:"output"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Workers  int     `toml:"workers"`
	Comment  bool    `toml:"comment"`
	LogLevel string  `toml:"log_level"`
	Color    string  `toml:"color"`
	Preview  Preview `toml:"preview"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:   "curve.png",
		Width:    128,
		Height:   128,
		Workers:  1,
		LogLevel: "info",
		Color:    "auto",
		Preview: Preview{
			Output: "preview.png",
			Scale:  4,
		},
	}
}

// ErrUnknownKey is wrapped by Load when the file has keys Config does not
// define.
var ErrUnknownKey = errors.New("config: unknown key")

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := finish(path, md, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := finish("", md, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func finish(path string, md toml.MetaData, cfg Config) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		if path != "" {
			return fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(names, ", "))
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(names, ", "))
	}
	return cfg.Validate()
}

// Validate checks values that cannot be caught by decoding.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid grid %dx%d", c.Width, c.Height)
	case c.Output == "":
		return errors.New("config: empty output path")
	case c.Preview.Enabled && c.Preview.Output == "":
		return errors.New("config: preview enabled without output path")
	case c.Preview.Scale < 0 || c.Preview.Scale > preview.MaxScale:
		return fmt.Errorf("config: preview scale %d outside [0, %d]", c.Preview.Scale, preview.MaxScale)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.ColorMode(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// ColorMode parses Color.
func (c Config) ColorMode() (console.ColorMode, error) {
	m, err := console.ParseColorMode(c.Color)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return m, nil
}
