package compiler

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// resolveInput produces the expression feeding a data input: the source
// output when connected, otherwise the node's literal or the pin default.
func (c *compilation) resolveInput(n *model.Node, def *registry.Definition, pinName string) (string, error) {
	pin, ok := def.Input(pinName)
	if !ok || pin.IsExec() {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pinName, Msg: fmt.Sprintf("kind %q has no data input with this name", def.Kind)}
	}

	if conn, ok := c.g.ConnectionInto(n.ID, pinName); ok {
		return c.resolveOutput(conn.FromNodeID, conn.FromPinName)
	}

	val, ok, err := literalValue(n, pin)
	if err != nil {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pinName, Msg: err.Error()}
	}
	if !ok {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pinName}
	}
	lit, err := value.Literal(val)
	if err != nil {
		return "", &diag.UnresolvedInputError{NodeID: n.ID, PinName: pinName, Msg: err.Error()}
	}
	return lit, nil
}

// resolveOutput produces the expression of a node's data output. Pure kinds
// are re-rendered at every use; side-effecting kinds are bound to their pin
// variable once and reused within the current block and its children.
func (c *compilation) resolveOutput(nodeID, pinName string) (string, error) {
	n, _ := c.g.NodeByID(nodeID)
	def := c.g.DefinitionOf(nodeID)
	c.dataReached[nodeID] = struct{}{}

	k := pinKey{nodeID, pinName}
	if !def.Pure {
		if expr, ok := c.scope.lookup(k); ok {
			return expr, nil
		}
	}
	c.usePrelude(def)

	var expr string
	if def.Emitter != nil && def.Emitter.Output != nil {
		var err error
		expr, err = def.Emitter.Output(&emitContext{c: c, node: n, def: def}, pinName)
		if err != nil {
			return "", err
		}
	} else {
		expr = c.names.Name(nodeID, pinName)
	}

	if !def.Pure {
		if tmp := c.names.Name(nodeID, pinName); expr != tmp {
			c.prepend(fmt.Sprintf("set_temp_variable = { var = %s value = %s }", tmp, expr))
			expr = tmp
		}
		c.scope.store(k, expr)
	}
	return expr, nil
}

// literalValue returns the constant for an unconnected data input: the node
// data entry named after the pin, then the pin default. A null data entry
// counts as absent.
func literalValue(n *model.Node, pin *registry.Pin) (cty.Value, bool, error) {
	if raw, ok := n.DataValue(pin.Name); ok && raw != nil {
		v, err := value.FromGo(raw)
		if err != nil {
			return cty.NilVal, false, err
		}
		v, err = value.Coerce(v, pin.Type)
		if err != nil {
			return cty.NilVal, false, err
		}
		return v, true, nil
	}
	if pin.Default != nil && !pin.Default.IsNull() {
		return *pin.Default, true, nil
	}
	return cty.NilVal, false, nil
}
