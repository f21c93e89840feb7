// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the snapshot structures and their JSON shape.

package model

import (
	"encoding/json"
)

// Standard pin and node identifiers shared by the editor and the compiler.
const (
	PinExecIn  = "$pin_exec_in"
	PinExecOut = "$pin_exec_out"
	BeginID    = "$begin"
)

// Snapshot is the complete graph as produced by an editor.
type Snapshot struct {
	Nodes       []*Node       `json:"nodes"`
	Connections []*Connection `json:"connections"`
	Variables   []*Variable   `json:"variables"`
}

// Node is one placed instance of a node kind.
type Node struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Position json.RawMessage `json:"position,omitempty"`
	Data     map[string]any  `json:"data,omitempty"`
}

// Connection joins an output pin of one node to an input pin of another.
type Connection struct {
	ID          string `json:"id"`
	FromNodeID  string `json:"fromNodeId"`
	FromPinName string `json:"fromPinName"`
	ToNodeID    string `json:"toNodeId"`
	ToPinName   string `json:"toPinName"`
}

// Variable is a graph-level declared value.
type Variable struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue any    `json:"defaultValue"`
}

// DataValue returns the literal stored under key in the node's data map.
func (n *Node) DataValue(key string) (any, bool) {
	if n == nil || n.Data == nil {
		return nil, false
	}
	v, ok := n.Data[key]
	return v, ok
}

// DataString returns the data entry under key when it is a string.
func (n *Node) DataString(key string) (string, bool) {
	v, ok := n.DataValue(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
