package document_test

import (
	"encoding/json"
	"testing"

	"github.com/scalsui/scals/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_WireRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "Nested Parameters",
			raw: `{
				"type": "setState",
				"parameters": {
					"path": "cart.items",
					"value": [{"sku": "a-1", "qty": 2}, {"sku": "b-9", "qty": 1}],
					"local": true
				}
			}`,
		},
		{
			name: "No Parameters",
			raw:  `{"type": "dismiss"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a document.Action
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &a))

			out, err := json.Marshal(a)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out), "decoded action must re-encode to the same wire form")
		})
	}
}

func TestActionBinding_WireRoundTrip(t *testing.T) {
	t.Run("Reference Form", func(t *testing.T) {
		raw := `"save-cart"`

		var b document.ActionBinding
		require.NoError(t, json.Unmarshal([]byte(raw), &b))
		assert.Equal(t, "save-cart", b.Reference)
		assert.Nil(t, b.Inline)

		out, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	})

	t.Run("Inline Form", func(t *testing.T) {
		raw := `{"type": "toggleState", "parameters": {"path": "expanded", "local": true}}`

		var b document.ActionBinding
		require.NoError(t, json.Unmarshal([]byte(raw), &b))
		assert.Empty(t, b.Reference)
		require.NotNil(t, b.Inline)
		assert.Equal(t, "toggleState", b.Inline.Type)

		out, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	})
}
