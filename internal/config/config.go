// Package config provides configuration loading for the borderscan CLI.
// It handles loading defaults from YAML files and provides built-in values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"borderscan/internal/scan"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Detection parameters
	Detection struct {
		// Threshold controls detection aggressiveness; lower is more
		// conservative
		Threshold float64 `yaml:"threshold"`

		// Indent is the fraction of each side searched for a border
		Indent float64 `yaml:"indent"`

		// Stripes is the column-thinning coefficient in (0, 1]
		Stripes float64 `yaml:"stripes"`

		// MaxStripes caps sampled columns per side; 0 means no cap
		MaxStripes int `yaml:"maxStripes"`

		// Fast stops each side after a single refinement iteration
		Fast bool `yaml:"fast"`
	} `yaml:"detection"`

	// Loading parameters
	Loading struct {
		// Size bounds the working resolution; 0 keeps the original size
		Size int `yaml:"size"`

		// MaxFrames caps frames kept from animated sources; 0 keeps all
		MaxFrames int `yaml:"maxFrames"`
	} `yaml:"loading"`

	// Runtime parameters
	Runtime struct {
		// Workers bounds per-frame parallelism; 0 picks a value from the
		// machine's core count
		Workers int `yaml:"workers"`

		// Seed fixes the random sampling for reproducible runs; 0 derives
		// one from the clock
		Seed int64 `yaml:"seed"`
	} `yaml:"runtime"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Detection.Threshold = 0.5
	cfg.Detection.Indent = 0.25
	cfg.Detection.Stripes = 1.0
	cfg.Detection.Fast = true
	return cfg
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.ScanOptions().Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// ScanOptions converts the detection and runtime sections into scanner
// options.
func (c *Config) ScanOptions() scan.Options {
	return scan.Options{
		Threshold:  c.Detection.Threshold,
		Indent:     c.Detection.Indent,
		Stripes:    c.Detection.Stripes,
		MaxStripes: c.Detection.MaxStripes,
		Fast:       c.Detection.Fast,
		Workers:    c.Runtime.Workers,
		Seed:       c.Runtime.Seed,
	}
}
