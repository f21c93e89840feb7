package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Pin kinds.
const (
	PinKindExec = "exec"
	PinKindData = "data"
)

// Model is the merged set of node-kind manifests from every loaded source.
// Kinds keep their declaration order.
type Model struct {
	Kinds []*KindDefinition
}

// KindDefinition is the format-agnostic representation of a `node` block.
type KindDefinition struct {
	Kind        string
	Label       string
	Description string
	Category    string
	Emitter     string
	Statement   string
	Prelude     string
	Entry       bool
	Pure        bool
	Hidden      bool
	Inputs      []*PinDefinition
	Outputs     []*PinDefinition
	Source      string
}

// PinDefinition is the format-agnostic representation of an `input` or
// `output` block.
type PinDefinition struct {
	Name        string
	Kind        string
	Type        cty.Type
	Default     *cty.Value
	Description string
}

// Merge appends the kinds of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Kinds = append(m.Kinds, other.Kinds...)
}
