package diag

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinels(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"graph integrity", &GraphIntegrityError{NodeID: "a", Msg: "boom"}, ErrGraphIntegrity},
		{"unknown kind", &UnknownNodeKindError{NodeID: "a", Kind: "x"}, ErrUnknownNodeKind},
		{"cycle", &CyclicControlFlowError{NodeID: "a", PinName: "$pin_exec_out"}, ErrCyclicControlFlow},
		{"missing variable", &MissingVariableError{NodeID: "a", Variable: "score"}, ErrMissingVariable},
		{"unresolved input", &UnresolvedInputError{NodeID: "a", PinName: "in"}, ErrUnresolvedInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("compile: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
		})
	}
}

func TestGraphIntegrityErrorMessage(t *testing.T) {
	assert.Contains(t, (&GraphIntegrityError{ConnectionID: "c9", Msg: "dangling"}).Error(), `connection "c9"`)
	assert.Contains(t, (&GraphIntegrityError{NodeID: "n", PinName: "p", Msg: "m"}).Error(), `node "n" pin "p"`)
	assert.Contains(t, (&GraphIntegrityError{Variable: "v", Msg: "m"}).Error(), `variable "v"`)
	assert.Equal(t, "graph integrity: no entry", (&GraphIntegrityError{Msg: "no entry"}).Error())
}

func TestFromError(t *testing.T) {
	t.Run("taxonomy error keeps node id", func(t *testing.T) {
		d := FromError(fmt.Errorf("wrap: %w", &MissingVariableError{NodeID: "get1", Variable: "score"}))
		assert.Equal(t, KindMissingVariable, d.Kind)
		require.NotNil(t, d.NodeID)
		assert.Equal(t, "get1", *d.NodeID)
		assert.Contains(t, d.Message, "score")
	})

	t.Run("connection level integrity error has null node", func(t *testing.T) {
		d := FromError(&GraphIntegrityError{ConnectionID: "c1", Msg: "x"})
		assert.Equal(t, KindGraphIntegrity, d.Kind)
		assert.Nil(t, d.NodeID)

		b, err := json.Marshal(d)
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"GraphIntegrityError","nodeId":null,"message":"graph integrity: connection \"c1\": x"}`, string(b))
	})

	t.Run("foreign error is internal", func(t *testing.T) {
		d := FromError(errors.New("disk on fire"))
		assert.Equal(t, KindInternal, d.Kind)
		assert.Nil(t, d.NodeID)
	})
}

func TestUnreachableNode(t *testing.T) {
	d := UnreachableNode("orphan", "log")
	assert.Equal(t, KindUnreachableNode, d.Kind)
	require.NotNil(t, d.NodeID)
	assert.Equal(t, "orphan", *d.NodeID)
	assert.Equal(t, `UnreachableNodeWarning [orphan]: `+d.Message, d.String())
}
