package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/hcl"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
node "begin" {
  entry = true
  output "$pin_exec_out" { kind = "exec" }
}

node "say" {
  emitter = "say"
  input "$pin_exec_in" { kind = "exec" }
  input "text" {
    type    = string
    default = ""
  }
  output "$pin_exec_out" { kind = "exec" }
}
`

type testModule struct{ manifest string }

func (m testModule) Register(r *Registry) {
	r.RegisterEmitter("say", &RegisteredEmitter{
		Statement: func(ec EmitContext) (string, error) { return "say", nil },
	})
}

func (m testModule) Manifest() (string, []byte) { return "say.hcl", []byte(m.manifest) }

func TestLoad(t *testing.T) {
	reg, err := Load(context.Background(), hcl.NewLoader(), []Module{testModule{manifest: testManifest}})
	require.NoError(t, err)
	require.True(t, reg.Sealed())

	require.NotNil(t, reg.Entry())
	assert.Equal(t, "begin", reg.Entry().Kind)

	say, ok := reg.Lookup("say")
	require.True(t, ok)
	require.NotNil(t, say.Emitter, "emitter is bound during validation")
	assert.True(t, say.IsStatement())
	assert.Empty(t, say.BranchOutputs())

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	kinds := []string{}
	for _, d := range reg.Definitions() {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []string{"begin", "say"}, kinds)
}

func TestRegisterEmitter(t *testing.T) {
	t.Run("duplicate name panics", func(t *testing.T) {
		r := New()
		r.RegisterEmitter("x", &RegisteredEmitter{})
		assert.Panics(t, func() { r.RegisterEmitter("x", &RegisteredEmitter{}) })
	})

	t.Run("registration after seal panics", func(t *testing.T) {
		reg, err := Load(context.Background(), hcl.NewLoader(), []Module{testModule{manifest: testManifest}})
		require.NoError(t, err)
		assert.Panics(t, func() { reg.RegisterEmitter("late", &RegisteredEmitter{}) })
		assert.Panics(t, func() { _ = reg.Define(&Definition{Kind: "late"}) })
	})
}

func TestDefine(t *testing.T) {
	r := New()
	require.NoError(t, r.Define(&Definition{Kind: "a"}))
	assert.ErrorContains(t, r.Define(&Definition{Kind: "a"}), "defined more than once")
	assert.ErrorContains(t, r.Define(&Definition{}), "empty kind")

	err := r.PopulateDefinitions(&config.Model{Kinds: []*config.KindDefinition{{Kind: "a", Source: "dup.hcl"}}})
	assert.ErrorContains(t, err, "dup.hcl")
}

func TestValidate(t *testing.T) {
	exec := func(name string) *Pin { return &Pin{Name: name, Kind: config.PinKindExec} }
	entry := func() *Definition {
		return &Definition{Kind: "begin", Entry: true, Outputs: []*Pin{exec(model.PinExecOut)}}
	}

	testCases := []struct {
		name    string
		defs    []*Definition
		wantErr string
	}{
		{
			name:    "no entry kind",
			defs:    nil,
			wantErr: "no node kind has the entry role",
		},
		{
			name:    "two entry kinds",
			defs:    []*Definition{entry(), {Kind: "start", Entry: true, Outputs: []*Pin{exec(model.PinExecOut)}}},
			wantErr: "found: begin, start",
		},
		{
			name:    "unknown emitter",
			defs:    []*Definition{entry(), {Kind: "x", EmitterName: "nope"}},
			wantErr: "names emitter 'nope', which is not registered",
		},
		{
			name:    "statement kind without emitter",
			defs:    []*Definition{entry(), {Kind: "x", Inputs: []*Pin{exec(model.PinExecIn)}}},
			wantErr: "has an exec input but no statement emitter",
		},
		{
			name:    "custom exec input",
			defs:    []*Definition{entry(), {Kind: "x", Inputs: []*Pin{exec("go")}}},
			wantErr: "exec input 'go' is not supported",
		},
		{
			name:    "branches without exec input",
			defs:    []*Definition{entry(), {Kind: "x", Outputs: []*Pin{exec("body")}}},
			wantErr: "branch outputs without an exec input",
		},
		{
			name:    "entry without exec out",
			defs:    []*Definition{{Kind: "begin", Entry: true}},
			wantErr: "must declare output '$pin_exec_out'",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			for _, d := range tc.defs {
				require.NoError(t, r.Define(d))
			}
			err := r.Validate(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, "registry validation failed")
			assert.ErrorContains(t, err, tc.wantErr)
			assert.False(t, r.Sealed())
		})
	}
}
