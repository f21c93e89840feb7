package graph

import (
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

type pinKey struct {
	node string
	pin  string
}

// Graph is the query surface over one validated snapshot.
type Graph struct {
	snapshot  *model.Snapshot
	registry  *registry.Registry
	nodes     map[string]*model.Node
	defs      map[string]*registry.Definition
	outgoing  map[pinKey][]*model.Connection
	incoming  map[pinKey][]*model.Connection
	variables map[string]*model.Variable
	defaults  map[string]cty.Value
	entry     *model.Node
}

// Snapshot returns the snapshot the graph was built from.
func (g *Graph) Snapshot() *model.Snapshot { return g.snapshot }

// Registry returns the registry used to resolve node kinds.
func (g *Graph) Registry() *registry.Registry { return g.registry }

// Nodes returns the nodes in snapshot order.
func (g *Graph) Nodes() []*model.Node { return g.snapshot.Nodes }

// Variables returns the declared variables in snapshot order.
func (g *Graph) Variables() []*model.Variable { return g.snapshot.Variables }

// Entry returns the single entry-role node.
func (g *Graph) Entry() *model.Node { return g.entry }

// NodeByID returns the node with the given id.
func (g *Graph) NodeByID(id string) (*model.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// DefinitionOf returns the definition of a node's kind, or nil for an
// unknown node id.
func (g *Graph) DefinitionOf(nodeID string) *registry.Definition {
	return g.defs[nodeID]
}

// PinDefinitionOf returns the declared pin of a node. Inputs are searched
// before outputs.
func (g *Graph) PinDefinitionOf(nodeID, pin string) (*registry.Pin, bool) {
	def := g.defs[nodeID]
	if def == nil {
		return nil, false
	}
	if p, ok := def.Input(pin); ok {
		return p, true
	}
	return def.Output(pin)
}

// ConnectionsFrom returns the connections leaving an output pin in snapshot
// order.
func (g *Graph) ConnectionsFrom(nodeID, pin string) []*model.Connection {
	return g.outgoing[pinKey{nodeID, pin}]
}

// ConnectionInto returns the connection feeding an input pin. An exec input
// with fan-in may have several; the first is returned.
func (g *Graph) ConnectionInto(nodeID, pin string) (*model.Connection, bool) {
	conns := g.incoming[pinKey{nodeID, pin}]
	if len(conns) == 0 {
		return nil, false
	}
	return conns[0], true
}

// ConnectionsInto returns every connection feeding an input pin.
func (g *Graph) ConnectionsInto(nodeID, pin string) []*model.Connection {
	return g.incoming[pinKey{nodeID, pin}]
}

// VariableByName returns a declared variable.
func (g *Graph) VariableByName(name string) (*model.Variable, bool) {
	v, ok := g.variables[name]
	return v, ok
}

// VariableDefault returns the typed default of a declared variable. The value
// is null when the variable has no default.
func (g *Graph) VariableDefault(name string) (cty.Value, bool) {
	v, ok := g.defaults[name]
	return v, ok
}
