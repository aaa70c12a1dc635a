// Package config loads geoq settings from TOML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/logging"
)

// ErrInvalid wraps every validation and decoding failure.
var ErrInvalid = errors.New("invalid config")

// Config is the decoded configuration file.
type Config struct {
	Tolerance ToleranceConfig `toml:"tolerance"`
	Log       LogConfig       `toml:"log"`
	Engine    EngineConfig    `toml:"engine"`
	Sweep     SweepConfig     `toml:"sweep"`
}

// ToleranceConfig selects the comparison epsilon. A positive Epsilon
// overrides Preset.
type ToleranceConfig struct {
	Preset  string  `toml:"preset"`
	Epsilon float64 `toml:"epsilon"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type EngineConfig struct {
	Timeout time.Duration `toml:"timeout"`
}

type SweepConfig struct {
	Workers int `toml:"workers"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Tolerance: ToleranceConfig{Preset: "single"},
		Log:       LogConfig{Level: "info"},
		Engine:    EngineConfig{Timeout: 5 * time.Second},
		Sweep:     SweepConfig{Workers: 4},
	}
}

// Load reads and validates the file at path. Missing keys keep their
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch strings.ToLower(c.Tolerance.Preset) {
	case "", "single", "double":
	default:
		return fmt.Errorf("%w: tolerance preset %q", ErrInvalid, c.Tolerance.Preset)
	}
	if c.Tolerance.Epsilon < 0 || math.IsNaN(c.Tolerance.Epsilon) {
		return fmt.Errorf("%w: tolerance epsilon %v", ErrInvalid, c.Tolerance.Epsilon)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("%w: engine timeout must be positive, got %s", ErrInvalid, c.Engine.Timeout)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("%w: sweep workers must be at least 1, got %d", ErrInvalid, c.Sweep.Workers)
	}
	return nil
}

// Tolerance resolves the configured tolerance.
func (c Config) Tolerance() geom.Tolerance {
	if c.Tolerance.Epsilon > 0 {
		return geom.WithEpsilon(c.Tolerance.Epsilon)
	}
	if strings.EqualFold(c.Tolerance.Preset, "double") {
		return geom.Double
	}
	return geom.Single
}
