package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes the top level of a manifest file.
type fileRoot struct {
	Nodes  []*nodeBlock `hcl:"node,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// nodeBlock is a `node "<kind>" { ... }` block.
type nodeBlock struct {
	Kind        string      `hcl:"kind,label"`
	Label       string      `hcl:"label,optional"`
	Description string      `hcl:"description,optional"`
	Category    string      `hcl:"category,optional"`
	Emitter     string      `hcl:"emitter,optional"`
	Statement   string      `hcl:"statement,optional"`
	Prelude     string      `hcl:"prelude,optional"`
	Entry       bool        `hcl:"entry,optional"`
	Pure        *bool       `hcl:"pure,optional"`
	Hidden      bool        `hcl:"hidden,optional"`
	Inputs      []*pinBlock `hcl:"input,block"`
	Outputs     []*pinBlock `hcl:"output,block"`
}

// pinBlock is an `input "<name>"` or `output "<name>"` block.
type pinBlock struct {
	Name        string         `hcl:"name,label"`
	Kind        string         `hcl:"kind,optional"`
	Type        hcl.Expression `hcl:"type,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
}
