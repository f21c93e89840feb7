// Package value bridges the open, JSON-shaped values found in snapshots with
// the cty type system used for pin declarations, and renders values as
// literals of the target script language.
package value

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// FromGo converts a value decoded from JSON (or built in Go) into a cty.Value.
// Arrays become tuples and maps become objects so heterogeneous content is
// preserved; conversion to a declared type happens later.
func FromGo(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return t, nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case json.Number:
		n, err := cty.ParseNumberVal(string(t))
		if err != nil {
			return cty.NilVal, fmt.Errorf("invalid number %q: %w", string(t), err)
		}
		return n, nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case float32:
		return cty.NumberFloatVal(float64(t)), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int32:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case uint:
		return cty.NumberUIntVal(uint64(t)), nil
	case uint64:
		return cty.NumberUIntVal(t), nil
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(t))
		for i, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(t))
		for k, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("attribute %q: %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}

	// Typed slices, maps and structs go through gocty's reflection.
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported value of type %T: %w", v, err)
	}
	return gocty.ToCtyValue(v, ty)
}

// Coerce converts val to the declared type. A DynamicPseudoType declaration
// accepts any value unchanged.
func Coerce(val cty.Value, declared cty.Type) (cty.Value, error) {
	if declared == cty.NilType || declared.Equals(cty.DynamicPseudoType) {
		return val, nil
	}
	out, err := convert.Convert(val, declared)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot use %s value as %s: %w", friendly(val.Type()), declared.FriendlyName(), err)
	}
	return out, nil
}

// Compatible reports whether a value of type from may flow into a pin of type
// to without an unsafe conversion.
func Compatible(from, to cty.Type) bool {
	if from.Equals(cty.DynamicPseudoType) || to.Equals(cty.DynamicPseudoType) {
		return true
	}
	return convert.GetConversion(from, to) != nil
}

// Literal renders val as a target-language literal: strings quoted, numbers
// in shortest decimal form, booleans as true/false, collections as JSON.
func Literal(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("null value has no literal form")
	}
	if !val.IsKnown() {
		return "", fmt.Errorf("unknown value has no literal form")
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return strconv.Quote(val.AsString()), nil
	case ty == cty.Number:
		return FormatNumber(val.AsBigFloat()), nil
	case ty == cty.Bool:
		if val.True() {
			return "true", nil
		}
		return "false", nil
	}

	b, err := ctyjson.Marshal(val, ty)
	if err != nil {
		return "", fmt.Errorf("render %s literal: %w", ty.FriendlyName(), err)
	}
	return string(b), nil
}

// Render coerces val to the declared type and renders it as a literal.
func Render(val cty.Value, declared cty.Type) (string, error) {
	coerced, err := Coerce(val, declared)
	if err != nil {
		return "", err
	}
	return Literal(coerced)
}

// FormatNumber prints f in plain decimal notation without trailing zeros.
func FormatNumber(f *big.Float) string {
	if f.IsInt() {
		i, _ := f.Int(nil)
		return i.String()
	}
	return f.Text('f', -1)
}

func friendly(ty cty.Type) string {
	if ty == cty.NilType {
		return "nil"
	}
	return ty.FriendlyName()
}
