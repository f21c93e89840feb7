package flow

import (
	"context"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/graph"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
)

// Block is an ordered run of steps sharing one nesting level.
type Block struct {
	Steps []*Step
}

// Step is one node on an execution chain.
type Step struct {
	Node       *model.Node
	Definition *registry.Definition
	Branches   []*Branch
}

// Branch is the nested block hanging off one exec output of a step.
type Branch struct {
	Pin  string
	Body *Block
}

// Branch returns the body resolved for an exec output, or nil when the step
// has no such branch.
func (s *Step) Branch(pin string) *Block {
	for _, b := range s.Branches {
		if b.Pin == pin {
			return b.Body
		}
	}
	return nil
}

// Plan is the resolved execution tree of a graph.
type Plan struct {
	Body    *Block
	visited map[string]struct{}
}

// Visited reports whether a node appears anywhere on the execution tree.
func (p *Plan) Visited(nodeID string) bool {
	_, ok := p.visited[nodeID]
	return ok
}

type edge struct {
	node string
	pin  string
}

// path is the set of exec outputs taken to reach the current chain.
type path map[edge]struct{}

func (p path) with(e edge) path {
	next := make(path, len(p)+1)
	for k := range p {
		next[k] = struct{}{}
	}
	next[e] = struct{}{}
	return next
}

type resolver struct {
	g       *graph.Graph
	visited map[string]struct{}
}

// Resolve builds the execution tree of g from its entry node.
func Resolve(ctx context.Context, g *graph.Graph) (*Plan, error) {
	r := &resolver{g: g, visited: make(map[string]struct{})}
	body, err := r.chain(g.Entry(), path{})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Execution order resolved.", "visited", len(r.visited))
	return &Plan{Body: body, visited: r.visited}, nil
}

func (r *resolver) chain(start *model.Node, taken path) (*Block, error) {
	block := &Block{}
	for current := start; current != nil; {
		def := r.g.DefinitionOf(current.ID)
		r.visited[current.ID] = struct{}{}

		step := &Step{Node: current, Definition: def}
		for _, out := range def.BranchOutputs() {
			e := edge{current.ID, out.Name}
			if _, seen := taken[e]; seen {
				return nil, &diag.CyclicControlFlowError{NodeID: current.ID, PinName: out.Name}
			}
			body := &Block{}
			if next := r.successor(current.ID, out.Name); next != nil {
				var err error
				if body, err = r.chain(next, taken.with(e)); err != nil {
					return nil, err
				}
			}
			step.Branches = append(step.Branches, &Branch{Pin: out.Name, Body: body})
		}
		block.Steps = append(block.Steps, step)

		next := r.successor(current.ID, model.PinExecOut)
		if next == nil {
			break
		}
		e := edge{current.ID, model.PinExecOut}
		if _, seen := taken[e]; seen {
			return nil, &diag.CyclicControlFlowError{NodeID: current.ID, PinName: model.PinExecOut}
		}
		taken = taken.with(e)
		current = next
	}
	return block, nil
}

// successor returns the node driven by an exec output, if any.
func (r *resolver) successor(nodeID, pin string) *model.Node {
	conns := r.g.ConnectionsFrom(nodeID, pin)
	if len(conns) == 0 {
		return nil
	}
	n, _ := r.g.NodeByID(conns[0].ToNodeID)
	return n
}
