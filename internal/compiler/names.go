package compiler

import (
	"fmt"
	"strings"
)

// names allocates target-language variable names for node pins. A name is
// stable for a (node, pin) pair within one compilation and never collides
// with a declared variable or another allocation.
type names struct {
	taken map[string]struct{}
	byPin map[pinKey]string
}

func newNames(reserved []string) *names {
	n := &names{
		taken: make(map[string]struct{}, len(reserved)),
		byPin: make(map[pinKey]string),
	}
	for _, r := range reserved {
		n.taken[r] = struct{}{}
	}
	return n
}

// Name returns the variable name for a node pin, allocating it on first use.
func (n *names) Name(nodeID, pin string) string {
	k := pinKey{nodeID, pin}
	if name, ok := n.byPin[k]; ok {
		return name
	}

	base := sanitize("_" + nodeID + "_" + pin)
	name := base
	for i := 2; ; i++ {
		if _, clash := n.taken[name]; !clash {
			break
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.taken[name] = struct{}{}
	n.byPin[k] = name
	return name
}

// sanitize maps every character outside [A-Za-z0-9_] to an underscore.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
}
