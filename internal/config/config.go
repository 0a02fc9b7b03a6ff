// Package config loads the optional YAML settings file shared by the
// command-line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default
// file is not an error.
const DefaultPath = "pepasm.yaml"

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Listing struct {
	Title string `yaml:"title"`
	Scale int    `yaml:"scale"`
}

type Config struct {
	BaseAddress int     `yaml:"base_address"`
	OSSymbols   bool    `yaml:"os_symbols"`
	Log         Log     `yaml:"log"`
	Listing     Listing `yaml:"listing"`
}

func Default() Config {
	return Config{
		OSSymbols: true,
		Log:       Log{Level: "warn", Format: "text"},
		Listing:   Listing{Scale: 1},
	}
}

// Parse overlays data onto the defaults. Keys absent from data keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. When path is DefaultPath and the file does not exist
// the defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func (c Config) Validate() error {
	if c.BaseAddress < 0 || c.BaseAddress > 0xFFFF {
		return fmt.Errorf("base_address %d out of range", c.BaseAddress)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Listing.Scale < 0 {
		return fmt.Errorf("listing.scale %d is negative", c.Listing.Scale)
	}
	return nil
}

func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
