package modules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLoadRegistryBuiltins(t *testing.T) {
	reg, err := LoadRegistry(context.Background())
	require.NoError(t, err)
	require.True(t, reg.Sealed())
	assert.Equal(t, "begin", reg.Entry().Kind)

	kinds := []string{
		"begin", "log", "alert", "if", "loop", "foreach",
		"constant", "random", "varget", "varset",
		"add", "subtract", "multiply", "divide", "equal", "gt", "lt", "and", "or", "not",
		"add_political_power", "add_stability", "country_event",
	}
	for _, k := range kinds {
		def, ok := reg.Lookup(k)
		if !assert.True(t, ok, k) {
			continue
		}
		if k != "begin" {
			assert.NotNil(t, def.Emitter, k)
		}
	}

	random, _ := reg.Lookup("random")
	assert.False(t, random.Pure)
	add, _ := reg.Lookup("add")
	assert.True(t, add.Pure)

	ifDef, ok := reg.Lookup("if")
	require.True(t, ok)
	cond, ok := ifDef.Input("condition")
	require.True(t, ok)
	assert.Equal(t, cty.Bool, cond.Type)
	require.NotNil(t, cond.Default)
	assert.True(t, cond.Default.RawEquals(cty.False))

	branches := ifDef.BranchOutputs()
	require.Len(t, branches, 2)
	assert.Equal(t, "then", branches[0].Name)
	assert.Equal(t, "else", branches[1].Name)

	logDef, ok := reg.Lookup("log")
	require.True(t, ok)
	assert.True(t, logDef.IsStatement())
	_, ok = logDef.Output(model.PinExecOut)
	assert.True(t, ok)
}

func TestLoadRegistryExtraManifest(t *testing.T) {
	dir := t.TempDir()
	src := `
node "add_war_support" {
  label     = "Add War Support"
  emitter   = "effect"
  statement = "add_war_support"

  input "$pin_exec_in" { kind = "exec" }
  input "value" {
    type    = number
    default = 0.1
  }

  output "$pin_exec_out" { kind = "exec" }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "war.hcl"), []byte(src), 0o644))

	reg, err := LoadRegistry(context.Background(), dir)
	require.NoError(t, err)
	def, ok := reg.Lookup("add_war_support")
	require.True(t, ok)
	assert.Equal(t, "add_war_support", def.Statement)
	assert.NotNil(t, def.Emitter)
}

func TestLoadRegistryRejectsDuplicateKind(t *testing.T) {
	dir := t.TempDir()
	src := `
node "log" {
  emitter = "log"

  input "$pin_exec_in" { kind = "exec" }
  output "$pin_exec_out" { kind = "exec" }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.hcl"), []byte(src), 0o644))

	_, err := LoadRegistry(context.Background(), dir)
	assert.ErrorContains(t, err, "'log' is defined more than once")
}

func TestLoadRegistryRejectsUnknownEmitter(t *testing.T) {
	dir := t.TempDir()
	src := `
node "teleport" {
  emitter = "teleport"

  input "$pin_exec_in" { kind = "exec" }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.hcl"), []byte(src), 0o644))

	_, err := LoadRegistry(context.Background(), dir)
	assert.ErrorContains(t, err, "emitter 'teleport', which is not registered")
}
