// Package config loads generator settings from YAML or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/towngen/pkg/town"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
)

// Config holds all user-facing configuration for towngen.
type Config struct {
	Town   TownConfig   `yaml:"town" toml:"town"`
	Output OutputConfig `yaml:"output" toml:"output"`
}

type TownConfig struct {
	Patches     int   `yaml:"patches" toml:"patches"`
	Walls       bool  `yaml:"walls" toml:"walls"`
	Water       bool  `yaml:"water" toml:"water"`
	Overlay     bool  `yaml:"overlay" toml:"overlay"`
	Seed        int64 `yaml:"seed" toml:"seed"`
	MaxAttempts int   `yaml:"max_attempts" toml:"max_attempts"`
}

type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
	Indent bool   `yaml:"indent" toml:"indent"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	o := town.DefaultOptions()
	return &Config{
		Town: TownConfig{
			Patches:     o.Patches,
			Walls:       o.Walls,
			Water:       o.Water,
			Overlay:     o.Overlay,
			Seed:        o.Seed,
			MaxAttempts: o.MaxAttempts,
		},
		Output: OutputConfig{Format: FormatGeoJSON, Indent: true},
	}
}

// Load reads a config file, picking the decoder from the extension. If the
// file does not exist, built-in defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing config TOML: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}

	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) check() error {
	switch c.Output.Format {
	case FormatJSON, FormatGeoJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output.Format, FormatJSON, FormatGeoJSON)
}

// Options converts the town section into generator options.
func (c *Config) Options() town.Options {
	return town.Options{
		Patches:     c.Town.Patches,
		Walls:       c.Town.Walls,
		Water:       c.Town.Water,
		Overlay:     c.Town.Overlay,
		Seed:        c.Town.Seed,
		MaxAttempts: c.Town.MaxAttempts,
	}
}
