package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string
	Targets      []string

	Show bool
	Run  bool

	// Format selects the show-mode renderer: "text", "yaml" or "json".
	Format string

	// Forward and Inverse gate the two walk directions; both default to
	// enabled and are only switched off by the --no-* flags.
	Forward bool
	Inverse bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if !cfg.Show && !cfg.Run {
		// Neither mode requested: default to the side-effect-free one.
		cfg.Show = true
	}
	return &cfg, nil
}
