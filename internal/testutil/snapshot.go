// Package testutil holds helpers shared by package tests: a fluent snapshot
// builder, a small programmatic registry and a goroutine-safe buffer.
package testutil

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/model"
)

// SnapshotBuilder assembles snapshots in tests. Connection ids are assigned
// sequentially as c1, c2, ...
type SnapshotBuilder struct {
	snap *model.Snapshot
}

// NewSnapshot starts an empty snapshot.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{snap: &model.Snapshot{}}
}

// Node adds a node. data may be nil.
func (b *SnapshotBuilder) Node(id, kind string, data map[string]any) *SnapshotBuilder {
	b.snap.Nodes = append(b.snap.Nodes, &model.Node{ID: id, Kind: kind, Data: data})
	return b
}

// Begin adds the standard entry node.
func (b *SnapshotBuilder) Begin() *SnapshotBuilder {
	return b.Node(model.BeginID, "begin", nil)
}

// Connect adds a connection between two pins.
func (b *SnapshotBuilder) Connect(fromID, fromPin, toID, toPin string) *SnapshotBuilder {
	b.snap.Connections = append(b.snap.Connections, &model.Connection{
		ID:          fmt.Sprintf("c%d", len(b.snap.Connections)+1),
		FromNodeID:  fromID,
		FromPinName: fromPin,
		ToNodeID:    toID,
		ToPinName:   toPin,
	})
	return b
}

// Exec connects fromPin of fromID to the exec input of toID. An empty fromPin
// means the standard exec output.
func (b *SnapshotBuilder) Exec(fromID, fromPin, toID string) *SnapshotBuilder {
	if fromPin == "" {
		fromPin = model.PinExecOut
	}
	return b.Connect(fromID, fromPin, toID, model.PinExecIn)
}

// Chain connects the standard exec pins of ids in order.
func (b *SnapshotBuilder) Chain(ids ...string) *SnapshotBuilder {
	for i := 1; i < len(ids); i++ {
		b.Exec(ids[i-1], "", ids[i])
	}
	return b
}

// Variable declares a graph variable.
func (b *SnapshotBuilder) Variable(name, typ string, def any) *SnapshotBuilder {
	b.snap.Variables = append(b.snap.Variables, &model.Variable{Name: name, Type: typ, DefaultValue: def})
	return b
}

// Build returns the assembled snapshot.
func (b *SnapshotBuilder) Build() *model.Snapshot {
	return b.snap
}
