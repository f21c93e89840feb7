package compiler

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/value"
)

// assemble joins header, preludes, variable definitions and body.
func (c *compilation) assemble(body string) (string, error) {
	ns := c.opts.TargetNamespace
	sections := []string{
		strings.Join([]string{
			"# HOI4 MOD Script",
			"# Generated by blueprintgo",
			"# Namespace: " + ns,
			"# Type: " + c.opts.ScriptType,
		}, "\n"),
	}
	if c.opts.ScriptType == ScriptEvent {
		sections = append(sections, "add_namespace = "+ns)
	}
	if len(c.preludes) > 0 {
		sections = append(sections, strings.Join(c.preludes, "\n"))
	}

	vars, err := c.variableDefinitions()
	if err != nil {
		return "", err
	}
	if vars != "" {
		sections = append(sections, vars)
	}
	if body = strings.TrimRight(body, "\n"); body != "" {
		sections = append(sections, body)
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

func (c *compilation) variableDefinitions() (string, error) {
	vars := c.g.Variables()
	if len(vars) == 0 {
		return "", nil
	}

	lines := []string{"# Variable Definitions"}
	for _, v := range vars {
		def, ok := c.g.VariableDefault(v.Name)
		if !ok || def.IsNull() {
			lines = append(lines, fmt.Sprintf("# %s = undefined", v.Name))
			continue
		}
		lit, err := value.Literal(def)
		if err != nil {
			return "", fmt.Errorf("variable %q: %w", v.Name, err)
		}
		if v.Type == value.TypeNumber {
			lines = append(lines, fmt.Sprintf("set_variable = { var = %s value = %s }", v.Name, lit))
			continue
		}
		lines = append(lines, fmt.Sprintf("# %s = %s", v.Name, lit))
	}
	return strings.Join(lines, "\n"), nil
}
