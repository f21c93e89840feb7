package registry

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/config"
)

// Module is the interface that all node-kind modules implement to register
// their emitters.
type Module interface {
	Register(r *Registry)
}

// ManifestProvider is implemented by modules that ship their own manifest.
type ManifestProvider interface {
	Manifest() (filename string, src []byte)
}

// Registry holds the emitters and node definitions for one application
// instance.
type Registry struct {
	emitters    map[string]*RegisteredEmitter
	definitions map[string]*Definition
	order       []*Definition
	entry       *Definition
	sealed      bool
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		emitters:    make(map[string]*RegisteredEmitter),
		definitions: make(map[string]*Definition),
	}
}

// Define adds a node definition. Kinds must be unique.
func (r *Registry) Define(def *Definition) error {
	if r.sealed {
		panic(fmt.Sprintf("node kind '%s' defined after the registry was sealed", def.Kind))
	}
	if def.Kind == "" {
		return fmt.Errorf("node definition has an empty kind")
	}
	if _, exists := r.definitions[def.Kind]; exists {
		return fmt.Errorf("node kind '%s' is defined more than once", def.Kind)
	}
	r.definitions[def.Kind] = def
	r.order = append(r.order, def)
	return nil
}

// PopulateDefinitions copies the kinds of a loaded manifest model into the
// registry.
func (r *Registry) PopulateDefinitions(model *config.Model) error {
	for _, k := range model.Kinds {
		if err := r.Define(definitionFromConfig(k)); err != nil {
			if k.Source != "" {
				return fmt.Errorf("%s: %w", k.Source, err)
			}
			return err
		}
	}
	return nil
}

// Lookup returns the definition of a node kind.
func (r *Registry) Lookup(kind string) (*Definition, bool) {
	def, ok := r.definitions[kind]
	return def, ok
}

// Definitions returns every definition in registration order.
func (r *Registry) Definitions() []*Definition {
	return append([]*Definition(nil), r.order...)
}

// Entry returns the kind with the entry role. It is nil before Validate.
func (r *Registry) Entry() *Definition {
	return r.entry
}

// Sealed reports whether Validate has completed successfully.
func (r *Registry) Sealed() bool {
	return r.sealed
}
