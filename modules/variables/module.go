// Package variables provides the kinds that read and write declared graph
// variables. Both reference the variable through the node data entry
// "variableName".
package variables

import (
	_ "embed"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// NameKey is the node data entry naming the referenced variable.
const NameKey = "variableName"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded kind declarations.
func (m *Module) Manifest() (string, []byte) {
	return "variables/manifest.hcl", manifest
}

// Register registers the emitters with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEmitter("varget", &registry.RegisteredEmitter{Output: EmitGet})
	r.RegisterEmitter("varset", &registry.RegisteredEmitter{Statement: EmitSet})
}

// EmitGet references the variable by name.
func EmitGet(ec registry.EmitContext, _ string) (string, error) {
	name, err := variableName(ec)
	if err != nil {
		return "", err
	}
	return name, nil
}

// EmitSet assigns the value input to the variable.
func EmitSet(ec registry.EmitContext) (string, error) {
	name, err := variableName(ec)
	if err != nil {
		return "", err
	}
	val, err := ec.Input("value")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("set_variable = { var = %s value = %s }", name, val), nil
}

func variableName(ec registry.EmitContext) (string, error) {
	name, _ := ec.Node().DataString(NameKey)
	v, err := ec.Variable(name)
	if err != nil {
		return "", err
	}
	return v.Name, nil
}
