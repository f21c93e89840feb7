package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/blueprintgo/internal/artifact"
	"github.com/specialistvlad/blueprintgo/internal/build"
	"github.com/specialistvlad/blueprintgo/internal/cache"
	"github.com/specialistvlad/blueprintgo/internal/compiler"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/hcl"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/modules"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	registry *registry.Registry
	build    *build.Service
	sink     artifact.Sink

	healthServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own logger, registry and build service. Scripts go
// to outW and logs to logW. When no modules are given the builtin set is
// used.
func NewApp(outW, logW io.Writer, cfg *Config, mods ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(mods) == 0 {
		mods = modules.Core()
	}
	var extra []string
	if cfg.ModulesPath != "" {
		extra = append(extra, cfg.ModulesPath)
	}
	reg, err := registry.Load(ctx, hcl.NewLoader(), mods, extra...)
	if err != nil {
		return nil, fmt.Errorf("failed to load node kinds: %w", err)
	}
	logger.Debug("Registry loaded.", "kinds", len(reg.Definitions()))

	rc, err := cache.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	sink, err := newSink(cfg.Publish)
	if err != nil {
		return nil, err
	}

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		registry: reg,
		build:    build.NewService(compiler.New(reg), rc),
		sink:     sink,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func newSink(publish string) (artifact.Sink, error) {
	switch publish {
	case "":
		return nil, nil
	case PublishS3:
		s, err := artifact.NewS3Sink(artifact.S3ConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("configure s3 publishing: %w", err)
		}
		return s, nil
	}
	return &artifact.FileSink{Dir: publish}, nil
}
