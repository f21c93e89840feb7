package compiler

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/flow"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// emitContext implements registry.EmitContext for one node. step is nil
// when the node is rendered for one of its data outputs.
type emitContext struct {
	c    *compilation
	node *model.Node
	def  *registry.Definition
	step *flow.Step
}

var _ registry.EmitContext = (*emitContext)(nil)

func (e *emitContext) Context() context.Context         { return e.c.ctx }
func (e *emitContext) Node() *model.Node                { return e.node }
func (e *emitContext) Definition() *registry.Definition { return e.def }
func (e *emitContext) Namespace() string                { return e.c.opts.TargetNamespace }
func (e *emitContext) ScriptType() string               { return e.c.opts.ScriptType }

func (e *emitContext) Input(pin string) (string, error) {
	return e.c.resolveInput(e.node, e.def, pin)
}

func (e *emitContext) Literal(pin string) (cty.Value, bool) {
	p, ok := e.def.Input(pin)
	if !ok || p.IsExec() {
		return cty.NilVal, false
	}
	if _, connected := e.c.g.ConnectionInto(e.node.ID, pin); connected {
		return cty.NilVal, false
	}
	v, ok, err := literalValue(e.node, p)
	if err != nil || !ok {
		return cty.NilVal, false
	}
	return v, true
}

func (e *emitContext) PinVar(pin string) string {
	return e.c.names.Name(e.node.ID, pin)
}

func (e *emitContext) Branch(pin string) (string, error) {
	if e.step == nil {
		return "", fmt.Errorf("node %q: branch %q requested while rendering a data output", e.node.ID, pin)
	}
	body := e.step.Branch(pin)
	if body == nil {
		return "", fmt.Errorf("node %q: kind %q has no branch output %q", e.node.ID, e.def.Kind, pin)
	}
	return e.c.renderBranch(body)
}

func (e *emitContext) Variable(name string) (*model.Variable, error) {
	v, ok := e.c.g.VariableByName(name)
	if !ok {
		return nil, &diag.MissingVariableError{NodeID: e.node.ID, Variable: name}
	}
	return v, nil
}

func (e *emitContext) Prepend(stmt string) {
	e.c.prepend(stmt)
}
