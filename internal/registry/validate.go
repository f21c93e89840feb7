package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Validate performs a strict parity check between manifests and Go emitters,
// binds each definition to its emitter and seals the registry.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string
	var entries []*Definition

	for _, def := range r.order {
		if def.EmitterName != "" {
			e, ok := r.emitters[def.EmitterName]
			if !ok {
				errs = append(errs, fmt.Sprintf("node '%s': manifest names emitter '%s', which is not registered", def.Kind, def.EmitterName))
				continue
			}
			def.Emitter = e
		}

		if def.Entry {
			entries = append(entries, def)
			if def.IsStatement() {
				errs = append(errs, fmt.Sprintf("node '%s': the entry kind cannot have an exec input", def.Kind))
			}
			if _, ok := def.Output(model.PinExecOut); !ok {
				errs = append(errs, fmt.Sprintf("node '%s': the entry kind must declare output '%s'", def.Kind, model.PinExecOut))
			}
		}

		for _, in := range def.Inputs {
			if in.IsExec() && in.Name != model.PinExecIn {
				errs = append(errs, fmt.Sprintf("node '%s': exec input '%s' is not supported, only '%s'", def.Kind, in.Name, model.PinExecIn))
			}
		}

		if def.IsStatement() && (def.Emitter == nil || def.Emitter.Statement == nil) {
			errs = append(errs, fmt.Sprintf("node '%s': has an exec input but no statement emitter", def.Kind))
		}
		if !def.IsStatement() && len(def.BranchOutputs()) > 0 {
			errs = append(errs, fmt.Sprintf("node '%s': declares branch outputs without an exec input", def.Kind))
		}

		for _, p := range append(append([]*Pin(nil), def.Inputs...), def.Outputs...) {
			if !p.IsExec() && p.Type.Equals(cty.DynamicPseudoType) {
				logger.Debug("Node pin accepts any type; connection type checks are disabled for it.", "kind", def.Kind, "pin", p.Name)
			}
		}
	}

	switch len(entries) {
	case 0:
		errs = append(errs, "no node kind has the entry role")
	case 1:
	default:
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Kind
		}
		errs = append(errs, fmt.Sprintf("exactly one node kind may have the entry role, found: %s", strings.Join(names, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	r.entry = entries[0]
	r.sealed = true
	logger.Debug("Registry validated and sealed.", "kinds", len(r.order), "emitters", len(r.emitters))
	return nil
}
