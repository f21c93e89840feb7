package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/flow"
	"github.com/specialistvlad/blueprintgo/internal/graph"
	"github.com/specialistvlad/blueprintgo/internal/registry"
)

type pinKey struct {
	node string
	pin  string
}

// memoScope holds the temporaries bound for side-effecting outputs within
// one block. Lookups see enclosing blocks; stores stay local.
type memoScope struct {
	parent *memoScope
	values map[pinKey]string
}

func (s *memoScope) lookup(k pinKey) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[k]; ok {
			return v, true
		}
	}
	return "", false
}

func (s *memoScope) store(k pinKey, expr string) {
	s.values[k] = expr
}

// compilation is the per-call state of one Compile.
type compilation struct {
	ctx   context.Context
	g     *graph.Graph
	opts  Options
	names *names
	scope *memoScope

	// pending collects preparatory statements for the statement being
	// rendered.
	pending *[]string

	preludes    []string
	preludeSeen map[string]struct{}
	dataReached map[string]struct{}
}

func newCompilation(ctx context.Context, g *graph.Graph, opts Options) *compilation {
	reserved := make([]string, 0, len(g.Variables()))
	for _, v := range g.Variables() {
		reserved = append(reserved, v.Name)
	}
	return &compilation{
		ctx:         ctx,
		g:           g,
		opts:        opts,
		names:       newNames(reserved),
		scope:       &memoScope{values: make(map[pinKey]string)},
		preludeSeen: make(map[string]struct{}),
		dataReached: make(map[string]struct{}),
	}
}

// reached reports whether data resolution pulled a node in.
func (c *compilation) reached(nodeID string) bool {
	_, ok := c.dataReached[nodeID]
	return ok
}

func (c *compilation) renderBlock(block *flow.Block) (string, error) {
	var sb strings.Builder
	for _, step := range block.Steps {
		frag, err := c.renderStep(step)
		if err != nil {
			return "", err
		}
		sb.WriteString(frag)
	}
	return sb.String(), nil
}

func (c *compilation) renderStep(step *flow.Step) (string, error) {
	def := step.Definition
	if def.Emitter == nil || def.Emitter.Statement == nil {
		return "", nil
	}
	c.usePrelude(def)

	outer := c.pending
	var prep []string
	c.pending = &prep
	stmt, err := def.Emitter.Statement(&emitContext{c: c, node: step.Node, def: def, step: step})
	c.pending = outer
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if c.opts.EmitComments {
		fmt.Fprintf(&sb, "# %s (node: %s)\n", step.Node.ID, step.Node.Kind)
	}
	for _, p := range prep {
		writeFragment(&sb, p)
	}
	writeFragment(&sb, stmt)
	return sb.String(), nil
}

// renderBranch renders a nested block one indentation level deeper, inside
// its own memo scope.
func (c *compilation) renderBranch(body *flow.Block) (string, error) {
	c.scope = &memoScope{parent: c.scope, values: make(map[pinKey]string)}
	defer func() { c.scope = c.scope.parent }()

	text, err := c.renderBlock(body)
	if err != nil {
		return "", err
	}
	return indent(text), nil
}

func (c *compilation) prepend(stmt string) {
	if c.pending == nil {
		return
	}
	*c.pending = append(*c.pending, stmt)
}

func (c *compilation) usePrelude(def *registry.Definition) {
	if def.Prelude == "" {
		return
	}
	if _, seen := c.preludeSeen[def.Kind]; seen {
		return
	}
	c.preludeSeen[def.Kind] = struct{}{}
	c.preludes = append(c.preludes, strings.TrimRight(def.Prelude, "\n"))
}

// writeFragment writes text followed by exactly one newline. Empty text
// writes nothing.
func writeFragment(sb *strings.Builder, text string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	sb.WriteString(text)
	sb.WriteByte('\n')
}

// indent prefixes every non-empty line with one tab.
func indent(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "\t" + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
