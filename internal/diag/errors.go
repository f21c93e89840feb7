package diag

import (
	"errors"
	"fmt"
)

// Diagnostic kind tags.
const (
	KindGraphIntegrity    = "GraphIntegrityError"
	KindUnknownNodeKind   = "UnknownNodeKindError"
	KindCyclicControlFlow = "CyclicControlFlowError"
	KindMissingVariable   = "MissingVariableError"
	KindUnresolvedInput   = "UnresolvedInputError"
	KindUnreachableNode   = "UnreachableNodeWarning"
	KindInternal          = "InternalError"
)

// Sentinels for errors.Is matching.
var (
	ErrGraphIntegrity    = errors.New("graph integrity error")
	ErrUnknownNodeKind   = errors.New("unknown node kind")
	ErrCyclicControlFlow = errors.New("cyclic control flow")
	ErrMissingVariable   = errors.New("missing variable")
	ErrUnresolvedInput   = errors.New("unresolved input")
)

// GraphIntegrityError reports a structural violation in the snapshot. At most
// one of ConnectionID, NodeID or Variable is usually set, naming the offender.
type GraphIntegrityError struct {
	ConnectionID string
	NodeID       string
	PinName      string
	Variable     string
	Msg          string
}

func (e *GraphIntegrityError) Error() string {
	switch {
	case e.ConnectionID != "":
		return fmt.Sprintf("graph integrity: connection %q: %s", e.ConnectionID, e.Msg)
	case e.NodeID != "" && e.PinName != "":
		return fmt.Sprintf("graph integrity: node %q pin %q: %s", e.NodeID, e.PinName, e.Msg)
	case e.NodeID != "":
		return fmt.Sprintf("graph integrity: node %q: %s", e.NodeID, e.Msg)
	case e.Variable != "":
		return fmt.Sprintf("graph integrity: variable %q: %s", e.Variable, e.Msg)
	}
	return "graph integrity: " + e.Msg
}

func (e *GraphIntegrityError) Unwrap() error { return ErrGraphIntegrity }

// UnknownNodeKindError reports a node whose kind is not registered.
type UnknownNodeKindError struct {
	NodeID string
	Kind   string
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("node %q: unknown node kind %q", e.NodeID, e.Kind)
}

func (e *UnknownNodeKindError) Unwrap() error { return ErrUnknownNodeKind }

// CyclicControlFlowError reports a node re-entered through the same exec
// output within one execution path.
type CyclicControlFlowError struct {
	NodeID  string
	PinName string
}

func (e *CyclicControlFlowError) Error() string {
	return fmt.Sprintf("cyclic control flow: node %q re-entered via exec output %q", e.NodeID, e.PinName)
}

func (e *CyclicControlFlowError) Unwrap() error { return ErrCyclicControlFlow }

// MissingVariableError reports a reference to an undeclared variable.
type MissingVariableError struct {
	NodeID   string
	Variable string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("node %q: variable %q is not declared", e.NodeID, e.Variable)
}

func (e *MissingVariableError) Unwrap() error { return ErrMissingVariable }

// UnresolvedInputError reports a data input with no connection, no literal
// and no default, or whose value cannot be used.
type UnresolvedInputError struct {
	NodeID  string
	PinName string
	Msg     string
}

func (e *UnresolvedInputError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "no connection, literal or default value"
	}
	return fmt.Sprintf("node %q: input %q unresolved: %s", e.NodeID, e.PinName, msg)
}

func (e *UnresolvedInputError) Unwrap() error { return ErrUnresolvedInput }
