package diag

import (
	"errors"
	"fmt"
)

// Diagnostic is the structured record handed to collaborators.
type Diagnostic struct {
	Kind    string  `json:"kind"`
	NodeID  *string `json:"nodeId"`
	Message string  `json:"message"`
}

func (d Diagnostic) String() string {
	if d.NodeID == nil {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Kind, *d.NodeID, d.Message)
}

// UnreachableNode builds the warning for a node the compiler never visited.
func UnreachableNode(nodeID, kind string) Diagnostic {
	id := nodeID
	return Diagnostic{
		Kind:    KindUnreachableNode,
		NodeID:  &id,
		Message: fmt.Sprintf("node %q (%s) is not reachable from the entry node and was not emitted", nodeID, kind),
	}
}

// FromError converts a compile error into a Diagnostic. Errors outside the
// taxonomy are reported as InternalError with no node.
func FromError(err error) Diagnostic {
	var (
		gi *GraphIntegrityError
		uk *UnknownNodeKindError
		cc *CyclicControlFlowError
		mv *MissingVariableError
		ui *UnresolvedInputError
	)
	switch {
	case errors.As(err, &gi):
		return Diagnostic{Kind: KindGraphIntegrity, NodeID: optional(gi.NodeID), Message: gi.Error()}
	case errors.As(err, &uk):
		return Diagnostic{Kind: KindUnknownNodeKind, NodeID: optional(uk.NodeID), Message: uk.Error()}
	case errors.As(err, &cc):
		return Diagnostic{Kind: KindCyclicControlFlow, NodeID: optional(cc.NodeID), Message: cc.Error()}
	case errors.As(err, &mv):
		return Diagnostic{Kind: KindMissingVariable, NodeID: optional(mv.NodeID), Message: mv.Error()}
	case errors.As(err, &ui):
		return Diagnostic{Kind: KindUnresolvedInput, NodeID: optional(ui.NodeID), Message: ui.Error()}
	}
	return Diagnostic{Kind: KindInternal, Message: err.Error()}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
