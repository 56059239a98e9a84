package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by LoadFile. They override file values.
const (
	EnvDecls     = "SCOPEGRAPH_DECLS"
	EnvLogLevel  = "SCOPEGRAPH_LOG_LEVEL"
	EnvLogFormat = "SCOPEGRAPH_LOG_FORMAT"
	EnvWorkers   = "SCOPEGRAPH_WORKERS"
	EnvFormat    = "SCOPEGRAPH_FORMAT"
)

// File is the optional YAML configuration of the CLI. Zero values mean
// "not set"; the CLI fills them from flags and defaults.
type File struct {
	Decls     []string `yaml:"decls"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
	Workers   int      `yaml:"workers"`
	Format    string   `yaml:"format"`
}

// LoadFile reads a .env file from the working directory if present, then the
// YAML file at path (skipped when path is empty), then applies SCOPEGRAPH_*
// environment overrides.
func LoadFile(path string) (*File, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var f File
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := f.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDecls); ok && v != "" {
		f.Decls = []string{v}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		f.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		f.LogFormat = v
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		f.Format = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		f.Workers = n
	}
	return nil
}
