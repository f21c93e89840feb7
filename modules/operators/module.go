// Package operators provides pure arithmetic, comparison and logic kinds.
// Each renders as a parenthesized infix expression so operands compose
// without precedence surprises.
package operators

import (
	_ "embed"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Binary maps each binary kind to its operator.
var Binary = map[string]string{
	"add":      "+",
	"subtract": "-",
	"multiply": "*",
	"divide":   "/",
	"equal":    "==",
	"gt":       ">",
	"lt":       "<",
	"and":      "&&",
	"or":       "||",
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded kind declarations.
func (m *Module) Manifest() (string, []byte) {
	return "operators/manifest.hcl", manifest
}

// Register registers one emitter per operator kind.
func (m *Module) Register(r *registry.Registry) {
	for kind, op := range Binary {
		r.RegisterEmitter(kind, &registry.RegisteredEmitter{Output: binary(op)})
	}
	r.RegisterEmitter("not", &registry.RegisteredEmitter{Output: EmitNot})
}

func binary(op string) func(registry.EmitContext, string) (string, error) {
	return func(ec registry.EmitContext, _ string) (string, error) {
		a, err := ec.Input("a")
		if err != nil {
			return "", err
		}
		b, err := ec.Input("b")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", a, op, b), nil
	}
}

// EmitNot negates its input.
func EmitNot(ec registry.EmitContext, _ string) (string, error) {
	v, err := ec.Input("value")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(!%s)", v), nil
}
