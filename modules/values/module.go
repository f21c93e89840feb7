// Package values provides data source kinds: constants and random numbers.
package values

import (
	_ "embed"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/internal/value"
)

//go:embed manifest.hcl
var manifest []byte

// DataKey is the node data entry holding a constant's literal.
const DataKey = "value"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded kind declarations.
func (m *Module) Manifest() (string, []byte) {
	return "values/manifest.hcl", manifest
}

// Register registers the emitters with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEmitter("constant", &registry.RegisteredEmitter{Output: EmitConstant})
	r.RegisterEmitter("random", &registry.RegisteredEmitter{Output: EmitRandom})
}

// EmitConstant renders the node's literal.
func EmitConstant(ec registry.EmitContext, pin string) (string, error) {
	n := ec.Node()
	raw, ok := n.DataValue(DataKey)
	if !ok || raw == nil {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pin, Msg: "constant has no value"}
	}
	v, err := value.FromGo(raw)
	if err != nil {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pin, Msg: err.Error()}
	}
	lit, err := value.Literal(v)
	if err != nil {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pin, Msg: err.Error()}
	}
	return lit, nil
}

// EmitRandom draws into the pin variable before the consuming statement.
func EmitRandom(ec registry.EmitContext, pin string) (string, error) {
	lo, err := ec.Input("min")
	if err != nil {
		return "", err
	}
	hi, err := ec.Input("max")
	if err != nil {
		return "", err
	}
	tmp := ec.PinVar(pin)
	ec.Prepend(fmt.Sprintf("set_temp_variable_to_random = { var = %s min = %s max = %s }", tmp, lo, hi))
	return tmp, nil
}
