package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
)

// Load builds a sealed registry: it registers every module's emitters,
// parses the manifests the modules ship, loads extra manifests from paths
// and validates the result.
func Load(ctx context.Context, loader config.Loader, modules []Module, paths ...string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	reg := New()

	cfg := &config.Model{}
	for _, mod := range modules {
		mod.Register(reg)
		if mp, ok := mod.(ManifestProvider); ok {
			name, src := mp.Manifest()
			m, err := loader.Parse(ctx, name, src)
			if err != nil {
				return nil, fmt.Errorf("failed to load module manifest: %w", err)
			}
			cfg.Merge(m)
		}
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if len(paths) > 0 {
		extra, err := loader.Load(ctx, paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifests: %w", err)
		}
		cfg.Merge(extra)
	}

	if err := reg.PopulateDefinitions(cfg); err != nil {
		return nil, err
	}
	logger.Debug("Registry definitions populated from manifests.", "kinds", len(cfg.Kinds))

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}
