package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// EmitContext is what an emitter sees while rendering one node. It is
// implemented by the compiler.
type EmitContext interface {
	// Context carries the logger.
	Context() context.Context
	Node() *model.Node
	Definition() *Definition
	Namespace() string
	ScriptType() string

	// Input resolves a data input into a target-language expression.
	Input(pin string) (string, error)
	// Literal returns the constant value of an unconnected data input
	// (node data, then pin default) converted to the declared type.
	Literal(pin string) (cty.Value, bool)
	// PinVar returns the stable variable name allocated for one of the
	// node's pins.
	PinVar(pin string) string
	// Branch returns the already-rendered body of an exec output, indented
	// one level. An unconnected branch renders as "".
	Branch(pin string) (string, error)
	// Variable looks up a declared graph variable.
	Variable(name string) (*model.Variable, error)
	// Prepend queues a preparatory statement emitted right before the
	// statement currently being rendered.
	Prepend(stmt string)
}

// RegisteredEmitter holds the Go rendering rules of a node kind. Statement
// renders the node's place on the execution chain; Output renders the
// expression of one of its data outputs. Either may be nil.
type RegisteredEmitter struct {
	Statement func(ec EmitContext) (string, error)
	Output    func(ec EmitContext, pin string) (string, error)
}

// RegisterEmitter registers a Go emitter under the name manifests refer to.
func (r *Registry) RegisterEmitter(name string, e *RegisteredEmitter) {
	if r.sealed {
		panic(fmt.Sprintf("emitter '%s' registered after the registry was sealed", name))
	}
	if _, exists := r.emitters[name]; exists {
		panic(fmt.Sprintf("emitter with name '%s' already registered", name))
	}
	slog.Debug("Registering emitter.", "name", name)
	r.emitters[name] = e
}
