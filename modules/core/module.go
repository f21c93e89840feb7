// Package core provides the control-flow node kinds: the entry node,
// logging, news events, conditionals and loops.
package core

import (
	_ "embed"
	"fmt"
	"math/big"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded kind declarations.
func (m *Module) Manifest() (string, []byte) {
	return "core/manifest.hcl", manifest
}

// Register registers the emitters with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEmitter("log", &registry.RegisteredEmitter{Statement: EmitLog})
	r.RegisterEmitter("alert", &registry.RegisteredEmitter{Statement: EmitAlert})
	r.RegisterEmitter("if", &registry.RegisteredEmitter{Statement: EmitIf})
	r.RegisterEmitter("loop", &registry.RegisteredEmitter{
		Statement: EmitLoop,
		Output:    pinVarOutput,
	})
	r.RegisterEmitter("foreach", &registry.RegisteredEmitter{
		Statement: EmitForEach,
		Output:    pinVarOutput,
	})
}

// EmitLog writes the message to the game log.
func EmitLog(ec registry.EmitContext) (string, error) {
	msg, err := ec.Input("message")
	if err != nil {
		return "", err
	}
	return "log = " + msg, nil
}

// EmitAlert fires <namespace>.<event>.
func EmitAlert(ec registry.EmitContext) (string, error) {
	id, err := ec.Input("event")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("news_event = { id = %s.%s }", ec.Namespace(), id), nil
}

// EmitIf renders a limited if block followed by an else block when the
// else branch has content.
func EmitIf(ec registry.EmitContext) (string, error) {
	cond, err := ec.Input("condition")
	if err != nil {
		return "", err
	}
	then, err := ec.Branch("then")
	if err != nil {
		return "", err
	}
	otherwise, err := ec.Branch("else")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "if = {\n\tlimit = { %s }\n%s}", cond, then)
	if otherwise != "" {
		fmt.Fprintf(&sb, "\nelse = {\n%s}", otherwise)
	}
	return sb.String(), nil
}

// EmitLoop repeats the body count times. A literal count of zero or less
// leaves only a comment; the body is still rendered so its errors surface.
func EmitLoop(ec registry.EmitContext) (string, error) {
	body, err := ec.Branch("body")
	if err != nil {
		return "", err
	}
	if v, ok := ec.Literal("count"); ok && v.Type() == cty.Number {
		if v.AsBigFloat().Cmp(big.NewFloat(0)) <= 0 {
			return fmt.Sprintf("# loop skipped (count = %s)", v.AsBigFloat().Text('g', -1)), nil
		}
	}
	count, err := ec.Input("count")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("for_loop_effect = {\n\tstart = 0\n\tend = %s\n\tvalue = %s\n%s}", count, ec.PinVar("index"), body), nil
}

// EmitForEach walks every element of an array.
func EmitForEach(ec registry.EmitContext) (string, error) {
	array, err := ec.Input("array")
	if err != nil {
		return "", err
	}
	body, err := ec.Branch("body")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("for_each_loop = {\n\tarray = %s\n\tvalue = %s\n\tindex = %s\n%s}",
		array, ec.PinVar("element"), ec.PinVar("index"), body), nil
}

// pinVarOutput exposes loop outputs through the variables the loop statement
// assigns.
func pinVarOutput(ec registry.EmitContext, pin string) (string, error) {
	return ec.PinVar(pin), nil
}
