package registry

import (
	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Pin is one declared input or output of a node kind.
type Pin struct {
	Name        string
	Kind        string
	Type        cty.Type
	Default     *cty.Value
	Description string
}

// IsExec reports whether the pin carries control flow.
func (p *Pin) IsExec() bool { return p.Kind == config.PinKindExec }

// Definition describes a node kind: its pins, flags and bound emitter.
type Definition struct {
	Kind        string
	Label       string
	Description string
	Category    string
	Entry       bool
	Pure        bool
	Hidden      bool
	Prelude     string
	Statement   string
	EmitterName string
	Inputs      []*Pin
	Outputs     []*Pin

	// Emitter is bound from EmitterName by Validate.
	Emitter *RegisteredEmitter
}

// Input returns the input pin with the given name.
func (d *Definition) Input(name string) (*Pin, bool) {
	return findPin(d.Inputs, name)
}

// Output returns the output pin with the given name.
func (d *Definition) Output(name string) (*Pin, bool) {
	return findPin(d.Outputs, name)
}

// IsStatement reports whether nodes of this kind sit on the execution chain.
func (d *Definition) IsStatement() bool {
	_, ok := d.Input(model.PinExecIn)
	return ok
}

// BranchOutputs returns the exec outputs other than the standard one, in
// declaration order.
func (d *Definition) BranchOutputs() []*Pin {
	var out []*Pin
	for _, p := range d.Outputs {
		if p.IsExec() && p.Name != model.PinExecOut {
			out = append(out, p)
		}
	}
	return out
}

func findPin(pins []*Pin, name string) (*Pin, bool) {
	for _, p := range pins {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// definitionFromConfig converts a manifest kind into a registry definition.
func definitionFromConfig(k *config.KindDefinition) *Definition {
	def := &Definition{
		Kind:        k.Kind,
		Label:       k.Label,
		Description: k.Description,
		Category:    k.Category,
		Entry:       k.Entry,
		Pure:        k.Pure,
		Hidden:      k.Hidden,
		Prelude:     k.Prelude,
		Statement:   k.Statement,
		EmitterName: k.Emitter,
	}
	for _, p := range k.Inputs {
		def.Inputs = append(def.Inputs, pinFromConfig(p))
	}
	for _, p := range k.Outputs {
		def.Outputs = append(def.Outputs, pinFromConfig(p))
	}
	return def
}

func pinFromConfig(p *config.PinDefinition) *Pin {
	return &Pin{
		Name:        p.Name,
		Kind:        p.Kind,
		Type:        p.Type,
		Default:     p.Default,
		Description: p.Description,
	}
}
