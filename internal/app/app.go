package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/scopegraph/internal/config"
	"github.com/specialistvlad/scopegraph/internal/hcl_adapter"
	"github.com/specialistvlad/scopegraph/internal/yaml_adapter"
)

// App encapsulates the driver's dependencies and configuration.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders []config.Loader
}

// NewApp builds an App writing results to outW and logs to logW. Without
// explicit loaders it reads both HCL and YAML declarations, sharing one
// notation cache between them.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		cache, err := config.NewNotationCache(config.DefaultNotationCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to set up loaders: %w", err)
		}
		loaders = []config.Loader{
			hcl_adapter.NewLoader(cache),
			yaml_adapter.NewLoader(cache),
		}
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
	}, nil
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
