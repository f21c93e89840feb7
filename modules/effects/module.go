// Package effects provides the generic "effect" emitter. Manifests declare
// effect kinds by naming the script keyword in `statement`; the data inputs
// become its arguments:
//
//	add_stability = 0.05
//	country_event = { id = "my_mod.1" days = 3 }
//
// A kind with a single input named "value" uses the short form.
package effects

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded kind declarations.
func (m *Module) Manifest() (string, []byte) {
	return "effects/manifest.hcl", manifest
}

// Register registers the emitter with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEmitter("effect", &registry.RegisteredEmitter{Statement: EmitEffect})
}

// EmitEffect renders `<statement> = <args>`.
func EmitEffect(ec registry.EmitContext) (string, error) {
	def := ec.Definition()
	keyword := def.Statement
	if keyword == "" {
		return "", fmt.Errorf("kind %q uses the effect emitter without a statement keyword", def.Kind)
	}

	var data []*registry.Pin
	for _, p := range def.Inputs {
		if !p.IsExec() {
			data = append(data, p)
		}
	}

	switch {
	case len(data) == 0:
		return keyword + " = yes", nil
	case len(data) == 1 && data[0].Name == "value":
		v, err := ec.Input("value")
		if err != nil {
			return "", err
		}
		return keyword + " = " + v, nil
	}

	args := make([]string, 0, len(data))
	for _, p := range data {
		v, err := ec.Input(p.Name)
		if err != nil {
			return "", err
		}
		args = append(args, p.Name+" = "+v)
	}
	return fmt.Sprintf("%s = { %s }", keyword, strings.Join(args, " ")), nil
}
