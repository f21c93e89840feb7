// Package build is the entry point the outer surfaces (CLI, HTTP server,
// socket.io watcher) use to turn snapshots into scripts. It adds result
// caching and logging around the compiler.
package build

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/cache"
	"github.com/specialistvlad/blueprintgo/internal/compiler"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/model"
)

// Service compiles snapshots, serving repeated requests from a cache.
type Service struct {
	compiler *compiler.Compiler
	cache    *cache.Cache
}

// NewService creates a build service. A nil cache disables caching.
func NewService(c *compiler.Compiler, rc *cache.Cache) *Service {
	return &Service{compiler: c, cache: rc}
}

// Compile compiles snap with opts.
func (s *Service) Compile(ctx context.Context, snap *model.Snapshot, opts compiler.Options) (*compiler.Result, error) {
	logger := ctxlog.FromContext(ctx)

	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	var key string
	if s.cache != nil {
		k, err := cache.Key(snap, opts)
		if err != nil {
			return nil, fmt.Errorf("hash snapshot: %w", err)
		}
		if res, ok := s.cache.Get(k); ok {
			logger.Debug("Build served from cache.", "nodes", len(snap.Nodes))
			return res, nil
		}
		key = k
	}

	res, err := s.compiler.Compile(ctx, snap, opts)
	if err != nil {
		logger.Warn("Build failed.", "error", err)
		return nil, err
	}
	for _, w := range res.Warnings {
		logger.Warn("Build warning.", "kind", w.Kind, "message", w.Message)
	}
	if s.cache != nil {
		s.cache.Add(key, res)
	}
	logger.Info("Build finished.", "nodes", len(snap.Nodes), "warnings", len(res.Warnings))
	return res, nil
}

// CompileJSON parses a JSON snapshot and compiles it.
func (s *Service) CompileJSON(ctx context.Context, raw []byte, opts compiler.Options) (*compiler.Result, error) {
	snap, err := model.ParseBytes(raw)
	if err != nil {
		return nil, err
	}
	return s.Compile(ctx, snap, opts)
}
