package graph

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/model"
)

// checkDataCycles rejects a data-flow graph in which a value depends on
// itself. Exec connections are ignored; control-flow loops are reported by
// the execution resolver instead.
func (g *Graph) checkDataCycles() error {
	// Data edges in snapshot order, keyed by source node.
	edges := make(map[string][]string)
	for _, c := range g.snapshot.Connections {
		out, _ := g.defs[c.FromNodeID].Output(c.FromPinName)
		if out.IsExec() {
			continue
		}
		edges[c.FromNodeID] = append(edges[c.FromNodeID], c.ToNodeID)
	}

	// permanent: fully explored and not part of a cycle.
	// temporary: on the current DFS stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return &diag.GraphIntegrityError{NodeID: id, Msg: fmt.Sprintf("data-flow cycle detected involving node %q", id)}
		}
		temporary[id] = true
		for _, next := range edges[id] {
			if err := visit(next); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for _, n := range g.snapshot.Nodes {
		if err := visit(n.ID); err != nil {
			return err
		}
	}
	return nil
}

// CheckExecCycles walks the exec edges reachable from the entry node once
// and rejects a control-flow loop, naming the node that is re-entered and
// the output it was left through. Converging branches are not loops.
func (g *Graph) CheckExecCycles() error {
	done := make(map[string]bool)
	// leaving holds the exec output currently explored for each node on
	// the DFS stack.
	leaving := make(map[string]string)

	var visit func(id string) error
	visit = func(id string) error {
		def := g.defs[id]
		outs := def.BranchOutputs()
		if out, ok := def.Output(model.PinExecOut); ok {
			outs = append(outs, out)
		}
		for _, out := range outs {
			leaving[id] = out.Name
			for _, c := range g.outgoing[pinKey{id, out.Name}] {
				next := c.ToNodeID
				if pin, onStack := leaving[next]; onStack {
					return &diag.CyclicControlFlowError{NodeID: next, PinName: pin}
				}
				if done[next] {
					continue
				}
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		delete(leaving, id)
		done[id] = true
		return nil
	}

	if g.entry == nil {
		return nil
	}
	return visit(g.entry.ID)
}
