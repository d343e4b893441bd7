package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toposcope/toposcope/viewer"
)

// Config is the YAML configuration file. Every field is optional; zero
// values leave the corresponding default untouched.
type Config struct {
	Theme        string  `yaml:"theme"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	LinkDistance float64 `yaml:"linkDistance"`
	LinkStrength float64 `yaml:"linkStrength"`
	Theta        float64 `yaml:"theta"`
	DistanceMax  float64 `yaml:"distanceMax"`
	Drift        bool    `yaml:"drift"`
	Metadata     *bool   `yaml:"metadata"`
	LayoutDB     string  `yaml:"layoutDb"`
}

// loadConfig reads the config file when --config was given and overlays
// it onto the default viewer options.
func loadConfig() (Config, viewer.Options, error) {
	opts := viewer.DefaultOptions()
	var cfg Config
	if configPath == "" {
		return cfg, opts, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, opts, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, opts, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Theme != "" {
		opts.Theme = cfg.Theme
	}
	if cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height > 0 {
		opts.Height = cfg.Height
	}
	if cfg.LinkDistance > 0 {
		opts.LinkDistance = cfg.LinkDistance
	}
	if cfg.LinkStrength > 0 {
		opts.LinkStrength = cfg.LinkStrength
	}
	if cfg.Theta > 0 {
		opts.Theta = cfg.Theta
	}
	if cfg.DistanceMax > 0 {
		opts.DistanceMax = cfg.DistanceMax
	}
	if cfg.Metadata != nil {
		opts.Metadata = *cfg.Metadata
	}
	opts.Drift = cfg.Drift
	return cfg, opts, nil
}
