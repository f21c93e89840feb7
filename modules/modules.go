// Package modules lists the node-kind modules compiled into blueprintgo.
package modules

import (
	"context"

	"github.com/specialistvlad/blueprintgo/internal/hcl"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/modules/core"
	"github.com/specialistvlad/blueprintgo/modules/effects"
	"github.com/specialistvlad/blueprintgo/modules/operators"
	"github.com/specialistvlad/blueprintgo/modules/values"
	"github.com/specialistvlad/blueprintgo/modules/variables"
)

// Core returns the definitive list of builtin modules.
func Core() []registry.Module {
	return []registry.Module{
		&core.Module{},
		&values.Module{},
		&variables.Module{},
		&operators.Module{},
		&effects.Module{},
	}
}

// LoadRegistry builds a sealed registry from the builtin modules plus any
// manifests found under extraPaths.
func LoadRegistry(ctx context.Context, extraPaths ...string) (*registry.Registry, error) {
	return registry.Load(ctx, hcl.NewLoader(), Core(), extraPaths...)
}
