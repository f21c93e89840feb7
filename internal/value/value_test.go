package value

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLiteral(t *testing.T) {
	testCases := []struct {
		name     string
		in       any
		declared cty.Type
		want     string
	}{
		{"string is quoted", "hello", cty.String, `"hello"`},
		{"quotes are escaped", `say "hi"`, cty.String, `"say \"hi\""`},
		{"integer", 42, cty.Number, "42"},
		{"float", 1.5, cty.Number, "1.5"},
		{"json number keeps value", json.Number("0.10"), cty.Number, "0.1"},
		{"negative", json.Number("-3"), cty.Number, "-3"},
		{"bool true", true, cty.Bool, "true"},
		{"bool false", false, cty.Bool, "false"},
		{"any keeps string", "x", cty.DynamicPseudoType, `"x"`},
		{"any keeps bool", true, cty.DynamicPseudoType, "true"},
		{"number converts to string", 7, cty.String, `"7"`},
		{"list", []any{"a", "b"}, cty.List(cty.String), `["a","b"]`},
		{"tuple as any", []any{1, "b"}, cty.DynamicPseudoType, `[1,"b"]`},
		{"object", map[string]any{"a": 1}, cty.DynamicPseudoType, `{"a":1}`},
		{"typed go slice", []string{"x"}, cty.List(cty.String), `["x"]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := FromGo(tc.in)
			require.NoError(t, err)
			got, err := Render(v, tc.declared)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	t.Run("string to number is rejected", func(t *testing.T) {
		_, err := Render(cty.StringVal("abc"), cty.Number)
		assert.Error(t, err)
	})

	t.Run("null has no literal", func(t *testing.T) {
		v, err := FromGo(nil)
		require.NoError(t, err)
		_, err = Literal(v)
		assert.ErrorContains(t, err, "null")
	})

	t.Run("bad json number", func(t *testing.T) {
		_, err := FromGo(json.Number("1..2"))
		assert.Error(t, err)
	})
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible(cty.Number, cty.Number))
	assert.True(t, Compatible(cty.Number, cty.String), "number to string is a safe conversion")
	assert.False(t, Compatible(cty.String, cty.Number))
	assert.False(t, Compatible(cty.Bool, cty.Number))
	assert.True(t, Compatible(cty.DynamicPseudoType, cty.Number))
	assert.True(t, Compatible(cty.List(cty.String), cty.DynamicPseudoType))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "100", FormatNumber(big.NewFloat(100)))
	assert.Equal(t, "0.25", FormatNumber(big.NewFloat(0.25)))
}

func TestVariableDefault(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		v, err := VariableDefault(TypeNumber, json.Number("3"))
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.NumberIntVal(3)) || v.Equals(cty.NumberIntVal(3)).True())
	})

	t.Run("missing default is null", func(t *testing.T) {
		v, err := VariableDefault(TypeString, nil)
		require.NoError(t, err)
		assert.True(t, v.IsNull())
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := VariableDefault(TypeArray, map[string]any{"a": 1})
		assert.ErrorContains(t, err, "must be an array")

		_, err = VariableDefault(TypeObject, []any{1})
		assert.ErrorContains(t, err, "must be an object")

		_, err = VariableDefault(TypeBoolean, "yes")
		assert.Error(t, err)
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := VariableType("float")
		assert.ErrorContains(t, err, "unknown variable type")
	})
}
