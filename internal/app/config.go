package app

import (
	"errors"
	"fmt"
)

// Output formats understood by Run.
const (
	FormatTree    = "tree"
	FormatDefects = "defects"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeclPaths []string // .hcl, .yaml and .yml files or directories

	LogFormat string
	LogLevel  string
	Workers   int
	Format    string
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.DeclPaths) == 0 {
		return nil, errors.New("at least one declaration path is required")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	switch cfg.Format {
	case "":
		cfg.Format = FormatTree
	case FormatTree, FormatDefects:
	default:
		return nil, fmt.Errorf("invalid format %q: must be %q or %q", cfg.Format, FormatTree, FormatDefects)
	}
	return &cfg, nil
}
