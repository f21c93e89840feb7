package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// New indexes and validates a snapshot against a sealed registry.
//
// Exec fan-in is the one structural rule not checked here: a control-flow
// loop also shows up as fan-in and is reported more precisely as a cycle.
// Callers that forbid fan-in run CheckExecCycles, then CheckExecFanIn.
func New(ctx context.Context, snap *model.Snapshot, reg *registry.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	if snap == nil {
		return nil, &diag.GraphIntegrityError{Msg: "snapshot is nil"}
	}
	if reg == nil || !reg.Sealed() {
		return nil, fmt.Errorf("graph: registry must be validated before use")
	}

	g := &Graph{
		snapshot:  snap,
		registry:  reg,
		nodes:     make(map[string]*model.Node, len(snap.Nodes)),
		defs:      make(map[string]*registry.Definition, len(snap.Nodes)),
		outgoing:  make(map[pinKey][]*model.Connection),
		incoming:  make(map[pinKey][]*model.Connection),
		variables: make(map[string]*model.Variable, len(snap.Variables)),
		defaults:  make(map[string]cty.Value, len(snap.Variables)),
	}

	steps := []func() error{
		g.indexNodes,
		g.indexVariables,
		g.indexConnections,
		g.checkFanRules,
		g.findEntry,
		g.checkDataCycles,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	logger.Debug("Graph indexed and validated.", "nodes", len(snap.Nodes), "connections", len(snap.Connections), "variables", len(snap.Variables))
	return g, nil
}

func (g *Graph) indexNodes() error {
	for i, n := range g.snapshot.Nodes {
		if n == nil {
			return &diag.GraphIntegrityError{Msg: fmt.Sprintf("node at index %d is null", i)}
		}
		if n.ID == "" {
			return &diag.GraphIntegrityError{Msg: fmt.Sprintf("node at index %d has an empty id", i)}
		}
		if _, dup := g.nodes[n.ID]; dup {
			return &diag.GraphIntegrityError{NodeID: n.ID, Msg: "duplicate node id"}
		}
		g.nodes[n.ID] = n
	}
	for _, n := range g.snapshot.Nodes {
		def, ok := g.registry.Lookup(n.Kind)
		if !ok {
			return &diag.UnknownNodeKindError{NodeID: n.ID, Kind: n.Kind}
		}
		g.defs[n.ID] = def
	}
	return nil
}

func (g *Graph) indexVariables() error {
	for i, v := range g.snapshot.Variables {
		if v == nil {
			return &diag.GraphIntegrityError{Msg: fmt.Sprintf("variable at index %d is null", i)}
		}
		if v.Name == "" {
			return &diag.GraphIntegrityError{Msg: fmt.Sprintf("variable at index %d has an empty name", i)}
		}
		if _, dup := g.variables[v.Name]; dup {
			return &diag.GraphIntegrityError{Variable: v.Name, Msg: "duplicate variable name"}
		}
		def, err := value.VariableDefault(v.Type, v.DefaultValue)
		if err != nil {
			return &diag.GraphIntegrityError{Variable: v.Name, Msg: err.Error()}
		}
		g.variables[v.Name] = v
		g.defaults[v.Name] = def
	}
	return nil
}

func (g *Graph) indexConnections() error {
	seen := make(map[string]struct{}, len(g.snapshot.Connections))
	for i, c := range g.snapshot.Connections {
		if c == nil {
			return &diag.GraphIntegrityError{Msg: fmt.Sprintf("connection at index %d is null", i)}
		}
		if c.ID == "" {
			return &diag.GraphIntegrityError{Msg: fmt.Sprintf("connection at index %d has an empty id", i)}
		}
		if _, dup := seen[c.ID]; dup {
			return &diag.GraphIntegrityError{ConnectionID: c.ID, Msg: "duplicate connection id"}
		}
		seen[c.ID] = struct{}{}

		if err := g.checkConnection(c); err != nil {
			return err
		}

		from := pinKey{c.FromNodeID, c.FromPinName}
		to := pinKey{c.ToNodeID, c.ToPinName}
		g.outgoing[from] = append(g.outgoing[from], c)
		g.incoming[to] = append(g.incoming[to], c)
	}
	return nil
}

func (g *Graph) checkConnection(c *model.Connection) error {
	fail := func(format string, args ...any) error {
		return &diag.GraphIntegrityError{ConnectionID: c.ID, Msg: fmt.Sprintf(format, args...)}
	}

	fromDef, ok := g.defs[c.FromNodeID]
	if !ok {
		return fail("source node %q does not exist", c.FromNodeID)
	}
	toDef, ok := g.defs[c.ToNodeID]
	if !ok {
		return fail("target node %q does not exist", c.ToNodeID)
	}
	if c.FromNodeID == c.ToNodeID {
		return fail("node %q cannot connect to itself", c.FromNodeID)
	}

	out, ok := fromDef.Output(c.FromPinName)
	if !ok {
		if _, isInput := fromDef.Input(c.FromPinName); isInput {
			return fail("pin %q of node %q is an input and cannot be a connection source", c.FromPinName, c.FromNodeID)
		}
		return fail("node %q (%s) has no output pin %q", c.FromNodeID, fromDef.Kind, c.FromPinName)
	}
	in, ok := toDef.Input(c.ToPinName)
	if !ok {
		if _, isOutput := toDef.Output(c.ToPinName); isOutput {
			return fail("pin %q of node %q is an output and cannot be a connection target", c.ToPinName, c.ToNodeID)
		}
		return fail("node %q (%s) has no input pin %q", c.ToNodeID, toDef.Kind, c.ToPinName)
	}

	if out.Kind != in.Kind {
		return fail("cannot connect %s output %q to %s input %q", out.Kind, out.Name, in.Kind, in.Name)
	}
	if !out.IsExec() && !value.Compatible(out.Type, in.Type) {
		return fail("type mismatch: output %q is %s, input %q requires %s", out.Name, out.Type.FriendlyName(), in.Name, in.Type.FriendlyName())
	}
	return nil
}

func (g *Graph) checkFanRules() error {
	for _, c := range g.snapshot.Connections {
		from := pinKey{c.FromNodeID, c.FromPinName}
		to := pinKey{c.ToNodeID, c.ToPinName}
		out, _ := g.defs[c.FromNodeID].Output(c.FromPinName)

		if out.IsExec() {
			if n := len(g.outgoing[from]); n > 1 {
				return &diag.GraphIntegrityError{ConnectionID: g.outgoing[from][1].ID, NodeID: c.FromNodeID, PinName: c.FromPinName,
					Msg: fmt.Sprintf("exec output %q of node %q drives %d connections; at most one is allowed", c.FromPinName, c.FromNodeID, n)}
			}
			continue
		}
		if n := len(g.incoming[to]); n > 1 {
			return &diag.GraphIntegrityError{ConnectionID: g.incoming[to][1].ID, NodeID: c.ToNodeID, PinName: c.ToPinName,
				Msg: fmt.Sprintf("data input %q of node %q has %d incoming connections; at most one is allowed", c.ToPinName, c.ToNodeID, n)}
		}
	}
	return nil
}

// CheckExecFanIn rejects exec inputs driven by more than one exec output.
func (g *Graph) CheckExecFanIn() error {
	for _, c := range g.snapshot.Connections {
		if c.ToPinName != model.PinExecIn {
			continue
		}
		conns := g.incoming[pinKey{c.ToNodeID, c.ToPinName}]
		if len(conns) > 1 {
			return &diag.GraphIntegrityError{ConnectionID: conns[1].ID, NodeID: c.ToNodeID, PinName: c.ToPinName,
				Msg: fmt.Sprintf("exec input %q of node %q has %d predecessors; at most one is allowed", c.ToPinName, c.ToNodeID, len(conns))}
		}
	}
	return nil
}

func (g *Graph) findEntry() error {
	for _, n := range g.snapshot.Nodes {
		if !g.defs[n.ID].Entry {
			continue
		}
		if g.entry != nil {
			return &diag.GraphIntegrityError{NodeID: n.ID, Msg: fmt.Sprintf("second entry node; %q is already the entry", g.entry.ID)}
		}
		g.entry = n
	}
	if g.entry == nil {
		return &diag.GraphIntegrityError{Msg: "graph has no entry node"}
	}
	return nil
}
