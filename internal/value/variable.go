package value

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Variable type tags accepted in snapshots.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// VariableType maps a snapshot variable type tag to the cty type its default
// value is checked against. Object and array accept any structural shape.
func VariableType(tag string) (cty.Type, error) {
	switch tag {
	case TypeString:
		return cty.String, nil
	case TypeNumber:
		return cty.Number, nil
	case TypeBoolean:
		return cty.Bool, nil
	case TypeObject, TypeArray:
		return cty.DynamicPseudoType, nil
	}
	return cty.NilType, fmt.Errorf("unknown variable type %q: expected one of string, number, boolean, object, array", tag)
}

// VariableDefault converts a declared variable's default value. It returns a
// null value when no default is given.
func VariableDefault(tag string, raw any) (cty.Value, error) {
	ty, err := VariableType(tag)
	if err != nil {
		return cty.NilVal, err
	}
	v, err := FromGo(raw)
	if err != nil {
		return cty.NilVal, err
	}
	if v.IsNull() {
		return v, nil
	}

	switch tag {
	case TypeObject:
		if !v.Type().IsObjectType() && !v.Type().IsMapType() {
			return cty.NilVal, fmt.Errorf("default value must be an object, got %s", v.Type().FriendlyName())
		}
		return v, nil
	case TypeArray:
		vt := v.Type()
		if !vt.IsTupleType() && !vt.IsListType() && !vt.IsSetType() {
			return cty.NilVal, fmt.Errorf("default value must be an array, got %s", vt.FriendlyName())
		}
		return v, nil
	}
	return Coerce(v, ty)
}
