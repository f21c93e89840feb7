package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func execPin(name string) *registry.Pin {
	return &registry.Pin{Name: name, Kind: config.PinKindExec}
}

func dataPin(name string, ty cty.Type) *registry.Pin {
	return &registry.Pin{Name: name, Kind: config.PinKindData, Type: ty}
}

var stubStatement = &registry.RegisteredEmitter{
	Statement: func(ec registry.EmitContext) (string, error) { return ec.Node().ID, nil },
}

// Registry returns a sealed registry with a handful of structural kinds that
// do not depend on the builtin modules:
//
//	begin   entry, exec out
//	step    exec in/out, data input "value" (any)
//	branch  exec in/out, exec outputs "then" and "else"
//	number  data output "out" (number)
//	text    data output "out" (string)
//	sum     data inputs "a", "b" (number), data output "out" (number)
func Registry(t testing.TB) *registry.Registry {
	t.Helper()

	r := registry.New()
	defs := []*registry.Definition{
		{Kind: "begin", Entry: true, Outputs: []*registry.Pin{execPin(model.PinExecOut)}},
		{
			Kind:    "step",
			Pure:    true,
			Inputs:  []*registry.Pin{execPin(model.PinExecIn), dataPin("value", cty.DynamicPseudoType)},
			Outputs: []*registry.Pin{execPin(model.PinExecOut)},
			Emitter: stubStatement,
		},
		{
			Kind:    "branch",
			Pure:    true,
			Inputs:  []*registry.Pin{execPin(model.PinExecIn)},
			Outputs: []*registry.Pin{execPin(model.PinExecOut), execPin("then"), execPin("else")},
			Emitter: stubStatement,
		},
		{Kind: "number", Pure: true, Outputs: []*registry.Pin{dataPin("out", cty.Number)}},
		{Kind: "text", Pure: true, Outputs: []*registry.Pin{dataPin("out", cty.String)}},
		{
			Kind:    "sum",
			Pure:    true,
			Inputs:  []*registry.Pin{dataPin("a", cty.Number), dataPin("b", cty.Number)},
			Outputs: []*registry.Pin{dataPin("out", cty.Number)},
		},
	}
	for _, d := range defs {
		require.NoError(t, r.Define(d))
	}
	require.NoError(t, r.Validate(context.Background()))
	return r
}
