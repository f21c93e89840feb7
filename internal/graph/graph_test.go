package graph

import (
	"context"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexes(t *testing.T) {
	reg := testutil.Registry(t)
	snap := testutil.NewSnapshot().
		Begin().
		Node("s1", "step", nil).
		Node("s2", "step", nil).
		Node("n", "number", map[string]any{"v": 1}).
		Chain(model.BeginID, "s1", "s2").
		Connect("n", "out", "s1", "value").
		Connect("n", "out", "s2", "value").
		Variable("score", "number", 3).
		Build()

	g, err := New(context.Background(), snap, reg)
	require.NoError(t, err)

	assert.Equal(t, model.BeginID, g.Entry().ID)
	n, ok := g.NodeByID("s1")
	require.True(t, ok)
	assert.Equal(t, "step", n.Kind)
	_, ok = g.NodeByID("nope")
	assert.False(t, ok)

	assert.Equal(t, "step", g.DefinitionOf("s2").Kind)
	assert.Nil(t, g.DefinitionOf("nope"))

	pin, ok := g.PinDefinitionOf("s1", "value")
	require.True(t, ok)
	assert.Equal(t, "value", pin.Name)
	pin, ok = g.PinDefinitionOf("s1", model.PinExecOut)
	require.True(t, ok)
	assert.True(t, pin.IsExec())
	_, ok = g.PinDefinitionOf("s1", "bogus")
	assert.False(t, ok)

	fanOut := g.ConnectionsFrom("n", "out")
	require.Len(t, fanOut, 2)
	assert.Equal(t, "s1", fanOut[0].ToNodeID, "insertion order is preserved")
	assert.Equal(t, "s2", fanOut[1].ToNodeID)

	in, ok := g.ConnectionInto("s2", "value")
	require.True(t, ok)
	assert.Equal(t, "n", in.FromNodeID)
	_, ok = g.ConnectionInto(model.BeginID, model.PinExecIn)
	assert.False(t, ok)

	v, ok := g.VariableByName("score")
	require.True(t, ok)
	assert.Equal(t, "number", v.Type)
	def, ok := g.VariableDefault("score")
	require.True(t, ok)
	assert.Equal(t, "3", def.AsBigFloat().String())

	assert.Len(t, g.Nodes(), 4)
	assert.Len(t, g.Variables(), 1)
	assert.Same(t, snap, g.Snapshot())
	assert.Same(t, reg, g.Registry())
}

func TestNewIntegrityErrors(t *testing.T) {
	testCases := []struct {
		name     string
		snap     *model.Snapshot
		wantErr  error
		wantMsg  string
		wantConn string
		wantNode string
	}{
		{
			name:    "duplicate node id",
			snap:    testutil.NewSnapshot().Begin().Node("a", "step", nil).Node("a", "step", nil).Build(),
			wantErr: diag.ErrGraphIntegrity,
			wantMsg: "duplicate node id",
		},
		{
			name:     "unknown kind",
			snap:     testutil.NewSnapshot().Begin().Node("x", "teleport", nil).Build(),
			wantErr:  diag.ErrUnknownNodeKind,
			wantMsg:  `unknown node kind "teleport"`,
			wantNode: "x",
		},
		{
			name:     "dangling target node",
			snap:     testutil.NewSnapshot().Begin().Exec(model.BeginID, "", "ghost").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  `target node "ghost" does not exist`,
			wantConn: "c1",
		},
		{
			name:     "missing pin",
			snap:     testutil.NewSnapshot().Begin().Node("s", "step", nil).Connect(model.BeginID, "later", "s", model.PinExecIn).Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  `has no output pin "later"`,
			wantConn: "c1",
		},
		{
			name:     "input used as source",
			snap:     testutil.NewSnapshot().Begin().Node("a", "step", nil).Node("b", "step", nil).Connect("a", "value", "b", "value").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "is an input and cannot be a connection source",
			wantConn: "c1",
		},
		{
			name:     "exec to data",
			snap:     testutil.NewSnapshot().Begin().Node("s", "step", nil).Connect(model.BeginID, model.PinExecOut, "s", "value").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "cannot connect exec output",
			wantConn: "c1",
		},
		{
			name:     "type mismatch",
			snap:     testutil.NewSnapshot().Begin().Node("t", "text", nil).Node("sum", "sum", nil).Connect("t", "out", "sum", "a").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "type mismatch",
			wantConn: "c1",
		},
		{
			name:     "self connection",
			snap:     testutil.NewSnapshot().Begin().Node("sum", "sum", nil).Connect("sum", "out", "sum", "a").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "cannot connect to itself",
			wantConn: "c1",
		},
		{
			name: "exec output fan-out",
			snap: testutil.NewSnapshot().Begin().Node("a", "step", nil).Node("b", "step", nil).
				Exec(model.BeginID, "", "a").Exec(model.BeginID, "", "b").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "drives 2 connections",
			wantConn: "c2",
		},
		{
			name: "data input fan-in",
			snap: testutil.NewSnapshot().Begin().Node("n1", "number", nil).Node("n2", "number", nil).Node("sum", "sum", nil).
				Connect("n1", "out", "sum", "a").Connect("n2", "out", "sum", "a").Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "has 2 incoming connections",
			wantConn: "c2",
		},
		{
			name:    "no entry node",
			snap:    testutil.NewSnapshot().Node("s", "step", nil).Build(),
			wantErr: diag.ErrGraphIntegrity,
			wantMsg: "no entry node",
		},
		{
			name:     "two entry nodes",
			snap:     testutil.NewSnapshot().Begin().Node("b2", "begin", nil).Build(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "second entry node",
			wantNode: "b2",
		},
		{
			name: "data cycle",
			snap: testutil.NewSnapshot().Begin().Node("x", "sum", nil).Node("y", "sum", nil).
				Connect("x", "out", "y", "a").Connect("y", "out", "x", "a").Build(),
			wantErr: diag.ErrGraphIntegrity,
			wantMsg: "data-flow cycle",
		},
		{
			name:    "duplicate variable",
			snap:    testutil.NewSnapshot().Begin().Variable("v", "number", 1).Variable("v", "string", "x").Build(),
			wantErr: diag.ErrGraphIntegrity,
			wantMsg: "duplicate variable name",
		},
		{
			name:    "unknown variable type",
			snap:    testutil.NewSnapshot().Begin().Variable("v", "float", 1).Build(),
			wantErr: diag.ErrGraphIntegrity,
			wantMsg: "unknown variable type",
		},
		{
			name:    "variable default of wrong type",
			snap:    testutil.NewSnapshot().Begin().Variable("v", "boolean", "maybe").Build(),
			wantErr: diag.ErrGraphIntegrity,
			wantMsg: `variable "v"`,
		},
		{
			name: "duplicate connection id",
			snap: func() *model.Snapshot {
				s := testutil.NewSnapshot().Begin().Node("a", "step", nil).Node("b", "step", nil).Chain(model.BeginID, "a", "b").Build()
				s.Connections[1].ID = s.Connections[0].ID
				return s
			}(),
			wantErr:  diag.ErrGraphIntegrity,
			wantMsg:  "duplicate connection id",
			wantConn: "c1",
		},
	}

	reg := testutil.Registry(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(context.Background(), tc.snap, reg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorContains(t, err, tc.wantMsg)

			if tc.wantConn != "" {
				var gi *diag.GraphIntegrityError
				require.ErrorAs(t, err, &gi)
				assert.Equal(t, tc.wantConn, gi.ConnectionID)
			}
			if tc.wantNode != "" {
				d := diag.FromError(err)
				require.NotNil(t, d.NodeID)
				assert.Equal(t, tc.wantNode, *d.NodeID)
			}
		})
	}
}

func TestCheckExecFanIn(t *testing.T) {
	snap := testutil.NewSnapshot().Begin().Node("br", "branch", nil).Node("s", "step", nil).
		Exec(model.BeginID, "", "br").Exec("br", "then", "s").Exec("br", "else", "s").Build()

	g, err := New(context.Background(), snap, testutil.Registry(t))
	require.NoError(t, err, "fan-in is not rejected while indexing")
	assert.Len(t, g.ConnectionsInto("s", model.PinExecIn), 2)

	err = g.CheckExecFanIn()
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrGraphIntegrity)
	assert.ErrorContains(t, err, "has 2 predecessors")

	var gi *diag.GraphIntegrityError
	require.ErrorAs(t, err, &gi)
	assert.Equal(t, "c3", gi.ConnectionID)
}

func TestCheckExecCycles(t *testing.T) {
	testCases := []struct {
		name     string
		snap     *model.Snapshot
		wantNode string
		wantPin  string
	}{
		{
			name: "main chain loops back",
			snap: testutil.NewSnapshot().Begin().Node("A", "step", nil).Node("B", "step", nil).
				Chain(model.BeginID, "A", "B", "A").Build(),
			wantNode: "A",
			wantPin:  model.PinExecOut,
		},
		{
			name: "branch loops back",
			snap: testutil.NewSnapshot().Begin().Node("br", "branch", nil).Node("x", "step", nil).
				Exec(model.BeginID, "", "br").Exec("br", "then", "x").Exec("x", "", "br").Build(),
			wantNode: "br",
			wantPin:  "then",
		},
		{
			name: "converging branches",
			snap: testutil.NewSnapshot().Begin().Node("br", "branch", nil).Node("s", "step", nil).
				Exec(model.BeginID, "", "br").Exec("br", "then", "s").Exec("br", "else", "s").Build(),
		},
		{
			name: "loop not reachable from entry",
			snap: testutil.NewSnapshot().Begin().Node("A", "step", nil).Node("B", "step", nil).
				Chain("A", "B", "A").Build(),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(context.Background(), tc.snap, testutil.Registry(t))
			require.NoError(t, err)

			err = g.CheckExecCycles()
			if tc.wantNode == "" {
				assert.NoError(t, err)
				return
			}
			var cyc *diag.CyclicControlFlowError
			require.ErrorAs(t, err, &cyc)
			assert.Equal(t, tc.wantNode, cyc.NodeID)
			assert.Equal(t, tc.wantPin, cyc.PinName)
		})
	}
}

func TestNewRequiresSealedRegistry(t *testing.T) {
	_, err := New(context.Background(), testutil.NewSnapshot().Begin().Build(), registry.New())
	assert.ErrorContains(t, err, "registry must be validated")

	_, err = New(context.Background(), nil, testutil.Registry(t))
	assert.ErrorIs(t, err, diag.ErrGraphIntegrity)
}
