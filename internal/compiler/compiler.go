package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/flow"
	"github.com/specialistvlad/blueprintgo/internal/graph"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
)

// DefaultNamespace is used when Options.TargetNamespace is empty.
const DefaultNamespace = "my_mod"

// Script types understood by the header writer.
const (
	ScriptEvent         = "event"
	ScriptDecision      = "decision"
	ScriptNationalFocus = "national_focus"
	ScriptIdea          = "idea"
)

// Options control one compilation.
type Options struct {
	TargetNamespace string `json:"targetNamespace,omitempty"`
	EmitComments    bool   `json:"emitComments,omitempty"`
	ScriptType      string `json:"scriptType,omitempty"`
	AllowExecFanIn  bool   `json:"allowExecFanIn,omitempty"`
}

// Normalize fills defaults and validates the namespace and script type.
func (o Options) Normalize() (Options, error) {
	o.TargetNamespace = strings.TrimSpace(o.TargetNamespace)
	if o.TargetNamespace == "" {
		o.TargetNamespace = DefaultNamespace
	}
	if strings.ContainsAny(o.TargetNamespace, " \t\r\n{}=#\"") {
		return o, fmt.Errorf("invalid target namespace %q", o.TargetNamespace)
	}
	switch o.ScriptType {
	case "":
		o.ScriptType = ScriptEvent
	case ScriptEvent, ScriptDecision, ScriptNationalFocus, ScriptIdea:
	default:
		return o, fmt.Errorf("unknown script type %q", o.ScriptType)
	}
	return o, nil
}

// Result is the output of a successful compilation. It must be treated as
// read-only since it may be shared through a cache.
type Result struct {
	Script   string            `json:"script"`
	Warnings []diag.Diagnostic `json:"warnings"`
}

// Compiler compiles snapshots against one sealed registry.
type Compiler struct {
	registry *registry.Registry
}

// New creates a compiler for the given registry.
func New(reg *registry.Registry) *Compiler {
	return &Compiler{registry: reg}
}

// Registry returns the registry the compiler resolves node kinds against.
func (c *Compiler) Registry() *registry.Registry {
	return c.registry
}

// Compile validates snap and emits its script. Any error aborts the whole
// compilation; no partial script is returned.
func (c *Compiler) Compile(ctx context.Context, snap *model.Snapshot, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	g, err := graph.New(ctx, snap, c.registry)
	if err != nil {
		return nil, err
	}
	if err := g.CheckExecCycles(); err != nil {
		return nil, err
	}
	if !opts.AllowExecFanIn {
		if err := g.CheckExecFanIn(); err != nil {
			return nil, err
		}
	}
	plan, err := flow.Resolve(ctx, g)
	if err != nil {
		return nil, err
	}

	comp := newCompilation(ctx, g, opts)
	body, err := comp.renderBlock(plan.Body)
	if err != nil {
		return nil, err
	}
	script, err := comp.assemble(body)
	if err != nil {
		return nil, err
	}

	warnings := []diag.Diagnostic{}
	for _, n := range g.Nodes() {
		if plan.Visited(n.ID) || comp.reached(n.ID) {
			continue
		}
		warnings = append(warnings, diag.UnreachableNode(n.ID, n.Kind))
	}

	logger.Debug("Compilation finished.", "nodes", len(g.Nodes()), "warnings", len(warnings), "bytes", len(script))
	return &Result{Script: script, Warnings: warnings}, nil
}
