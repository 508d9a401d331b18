package eval

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/exoplanet-imaging-challenge/eidc2/metrics"
)

// ErrConfig indicates an invalid evaluation config file.
var ErrConfig = errors.New("eval: invalid config")

// Config is the YAML evaluation configuration consumed by the CLI.
type Config struct {
	Tasks Tasks `yaml:"tasks"`

	// Mode is the distance mode: "relative" (default) or "absolute".
	Mode string `yaml:"mode"`

	// Weights for the final combined score; both default to 0.5.
	AstroWeight float64 `yaml:"astro_weight"`
	PhotoWeight float64 `yaml:"photo_weight"`
}

// LoadConfig reads and validates a YAML evaluation config.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("eval: reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("eval: parsing config: %w", err)
	}

	if cfg.Tasks.Astrometry.Submission == "" || cfg.Tasks.Astrometry.GroundTruth == "" {
		return nil, fmt.Errorf("%w: astrometry archives missing", ErrConfig)
	}
	if cfg.Tasks.Photometry.Submission == "" || cfg.Tasks.Photometry.GroundTruth == "" {
		return nil, fmt.Errorf("%w: photometry archives missing", ErrConfig)
	}

	if _, err := cfg.DistanceMode(); err != nil {
		return nil, err
	}

	if cfg.AstroWeight == 0 && cfg.PhotoWeight == 0 {
		cfg.AstroWeight = 0.5
		cfg.PhotoWeight = 0.5
	}

	if cfg.AstroWeight < 0 || cfg.PhotoWeight < 0 {
		return nil, fmt.Errorf("%w: negative task weight", ErrConfig)
	}

	return &cfg, nil
}

// DistanceMode maps the config's mode name to a metrics.Mode.
func (c *Config) DistanceMode() (metrics.Mode, error) {
	switch c.Mode {
	case "", "relative":
		return metrics.ModeRelative, nil
	case "absolute":
		return metrics.ModeAbsolute, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrConfig, c.Mode)
	}
}

// Options expands the config into run options.
func (c *Config) Options() ([]RunOption, error) {
	mode, err := c.DistanceMode()
	if err != nil {
		return nil, err
	}

	return []RunOption{WithRunMode(mode), WithWeights(c.AstroWeight, c.PhotoWeight)}, nil
}
