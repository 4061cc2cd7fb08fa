// Package config loads the YAML settings of the Rips build pipeline and turns
// them into rips options and a logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/rips"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Neighbor index backends accepted in NeighborIndex.
const (
	IndexCoverTree  = "covertree"
	IndexBruteForce = "bruteforce"
)

// Config describes one Vietoris-Rips build.
type Config struct {
	Epsilon          float64 `yaml:"epsilon"`
	MaxDimension     int     `yaml:"max_dimension"`
	CoveringConstant float64 `yaml:"covering_constant"`
	NeighborIndex    string  `yaml:"neighbor_index"`
	LogLevel         string  `yaml:"log_level"`
}

// Default returns the settings used for keys absent from a file.
func Default() Config {
	return Config{
		Epsilon:          1,
		MaxDimension:     2,
		CoveringConstant: covertree.DefaultCoveringConstant,
		NeighborIndex:    IndexCoverTree,
		LogLevel:         "info",
	}
}

// Parse decodes a YAML document over the defaults. Unknown keys are errors.
// An empty document yields the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

// Load reads and parses the file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Default(), fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Validate checks every setting and returns ErrInvalidConfig naming the
// first bad one.
func (c Config) Validate() error {
	switch {
	case !(c.Epsilon >= 0) || math.IsInf(c.Epsilon, 1):
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, c.Epsilon)
	case c.MaxDimension < 0:
		return fmt.Errorf("%w: max_dimension %d", ErrInvalidConfig, c.MaxDimension)
	case !(c.CoveringConstant > 1) || math.IsInf(c.CoveringConstant, 1):
		return fmt.Errorf("%w: covering_constant %v", ErrInvalidConfig, c.CoveringConstant)
	case c.NeighborIndex != IndexCoverTree && c.NeighborIndex != IndexBruteForce:
		return fmt.Errorf("%w: neighbor_index %q", ErrInvalidConfig, c.NeighborIndex)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Options translates the settings into rips options, attaching logger when
// it is not nil.
func (c Config) Options(logger *slog.Logger) []rips.Option {
	opts := []rips.Option{
		rips.WithCoverTreeOptions(covertree.WithCoveringConstant(c.CoveringConstant)),
	}
	if c.NeighborIndex == IndexBruteForce {
		opts = append(opts, rips.WithBruteForce())
	}
	if logger != nil {
		opts = append(opts, rips.WithLogger(logger))
	}
	return opts
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}
