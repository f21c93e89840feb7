// This file translates decoded manifest blocks into the format-agnostic
// config model.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/value"
)

func translateNode(ctx context.Context, nb *nodeBlock, filename string) (*config.KindDefinition, error) {
	if nb.Kind == "" {
		return nil, fmt.Errorf("node block has an empty kind label")
	}

	def := &config.KindDefinition{
		Kind:        nb.Kind,
		Label:       nb.Label,
		Description: nb.Description,
		Category:    nb.Category,
		Emitter:     nb.Emitter,
		Statement:   nb.Statement,
		Prelude:     nb.Prelude,
		Entry:       nb.Entry,
		Pure:        true,
		Hidden:      nb.Hidden,
		Source:      filename,
	}
	if nb.Pure != nil {
		def.Pure = *nb.Pure
	}
	if def.Label == "" {
		def.Label = nb.Kind
	}

	var err error
	if def.Inputs, err = translatePins(ctx, nb.Kind, "input", nb.Inputs); err != nil {
		return nil, err
	}
	if def.Outputs, err = translatePins(ctx, nb.Kind, "output", nb.Outputs); err != nil {
		return nil, err
	}
	return def, nil
}

func translatePins(ctx context.Context, kind, direction string, blocks []*pinBlock) ([]*config.PinDefinition, error) {
	seen := make(map[string]struct{}, len(blocks))
	pins := make([]*config.PinDefinition, 0, len(blocks))
	for _, pb := range blocks {
		if _, dup := seen[pb.Name]; dup {
			return nil, fmt.Errorf("node %q: %s %q declared more than once", kind, direction, pb.Name)
		}
		seen[pb.Name] = struct{}{}

		pin, err := translatePin(ctx, pb)
		if err != nil {
			return nil, fmt.Errorf("node %q, %s %q: %w", kind, direction, pb.Name, err)
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

func translatePin(ctx context.Context, pb *pinBlock) (*config.PinDefinition, error) {
	pin := &config.PinDefinition{
		Name:        pb.Name,
		Kind:        pb.Kind,
		Description: pb.Description,
	}
	if pin.Kind == "" {
		pin.Kind = config.PinKindData
	}

	hasType := !isMissingExpr(pb.Type)
	hasDefault := pb.Default != nil && !pb.Default.IsNull()

	switch pin.Kind {
	case config.PinKindExec:
		if hasType || hasDefault {
			return nil, fmt.Errorf("exec pins cannot declare a type or default")
		}
		return pin, nil
	case config.PinKindData:
	default:
		return nil, fmt.Errorf("unknown pin kind %q: must be 'exec' or 'data'", pin.Kind)
	}

	if !hasType {
		return nil, fmt.Errorf("missing 'type' attribute")
	}
	ty, err := typeExprToCtyType(ctx, pb.Type)
	if err != nil {
		return nil, err
	}
	pin.Type = ty

	if hasDefault {
		coerced, err := value.Coerce(*pb.Default, ty)
		if err != nil {
			return nil, fmt.Errorf("invalid default value: %w", err)
		}
		pin.Default = &coerced
	}
	return pin, nil
}

// isMissingExpr reports whether gohcl synthesized expr for an absent
// optional attribute.
func isMissingExpr(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if _, ok := expr.(hclsyntax.Expression); ok {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}
