package actions_test

import (
	"context"
	"testing"
	"time"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(kind string, params map[string]value.Value) value.Value {
	obj := map[string]value.Value{"type": value.String(kind)}
	if params != nil {
		obj["parameters"] = value.Object(params)
	}
	return value.Object(obj)
}

func TestSequence_StepsObserveEarlierWrites(t *testing.T) {
	h := newHarness(t)

	// Two writes to the same key, the second depending on the first.
	// Strict ordering means the counter lands on 2, not 1.
	err := h.run(t, document.Action{Type: "sequence", Parameters: map[string]value.Value{
		"actions": value.Array([]value.Value{
			step("setState", map[string]value.Value{
				"path":  value.String("counter"),
				"value": value.Int(1),
			}),
			step("setState", map[string]value.Value{
				"path":  value.String("counter"),
				"value": value.String("${counter + 1}"),
			}),
		}...),
	}})
	require.NoError(t, err)
	assert.True(t, value.Int(2).Equal(h.store.Get("counter")))
}

func TestSequence_AwaitsEachStep(t *testing.T) {
	h := newHarness(t)

	events := make(chan string, 4)
	require.NoError(t, h.engine.Registry().Register("slowStep",
		action.ResolverFunc(func(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
			name, _ := a.Parameters["name"].AsString()
			return action.Definition{Kind: "slowStep", ExecutionData: name}, nil
		}),
		action.HandlerFunc(func(_ context.Context, def action.Definition, _ action.ExecutionContext) error {
			name := def.ExecutionData.(string)
			events <- name + ":start"
			time.Sleep(10 * time.Millisecond)
			events <- name + ":end"
			return nil
		})))

	err := h.run(t, document.Action{Type: "sequence", Parameters: map[string]value.Value{
		"actions": value.Array([]value.Value{
			step("slowStep", map[string]value.Value{"name": value.String("first")}),
			step("slowStep", map[string]value.Value{"name": value.String("second")}),
		}...),
	}})
	require.NoError(t, err)

	close(events)
	var order []string
	for e := range events {
		order = append(order, e)
	}
	assert.Equal(t, []string{"first:start", "first:end", "second:start", "second:end"}, order)
}

func TestSequence_ResolutionIsAllOrNothing(t *testing.T) {
	h := newHarness(t)

	_, err := h.engine.Resolve(document.Action{Type: "sequence", Parameters: map[string]value.Value{
		"actions": value.Array([]value.Value{
			step("setState", map[string]value.Value{
				"path":  value.String("counter"),
				"value": value.Int(1),
			}),
			step("noSuchKind", nil),
		}...),
	}}, action.ResolutionContext{})

	require.ErrorIs(t, err, action.ErrUnknownKind)
	assert.True(t, h.store.Get("counter").IsNull(), "no step runs when any step fails to resolve")
}

func TestSequence_AbortsOnFirstFailedStep(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, document.Action{Type: "sequence", Parameters: map[string]value.Value{
		"actions": value.Array([]value.Value{
			step("setState", map[string]value.Value{
				"path":  value.String("a"),
				"value": value.Int(1),
			}),
			step("appendToArray", map[string]value.Value{
				"path":  value.String("missing"),
				"value": value.Int(1),
			}),
			step("setState", map[string]value.Value{
				"path":  value.String("b"),
				"value": value.Int(2),
			}),
		}...),
	}})

	require.Error(t, err)
	assert.True(t, value.Int(1).Equal(h.store.Get("a")), "steps before the failure committed")
	assert.True(t, h.store.Get("b").IsNull(), "steps after the failure never ran")
}

func TestSequence_RequiresActionsArray(t *testing.T) {
	h := newHarness(t)

	_, err := h.engine.Resolve(document.Action{Type: "sequence"}, action.ResolutionContext{})
	assert.ErrorIs(t, err, action.ErrInvalidParameters)

	_, err = h.engine.Resolve(document.Action{Type: "sequence", Parameters: map[string]value.Value{
		"actions": value.String("not an array"),
	}}, action.ResolutionContext{})
	assert.ErrorIs(t, err, action.ErrInvalidParameters)
}

func TestSequence_Nested(t *testing.T) {
	h := newHarness(t)

	inner := value.Object(map[string]value.Value{
		"type": value.String("sequence"),
		"parameters": value.Object(map[string]value.Value{
			"actions": value.Array([]value.Value{
				step("setState", map[string]value.Value{
					"path":  value.String("nested"),
					"value": value.Bool(true),
				}),
			}...),
		}),
	})

	err := h.run(t, document.Action{Type: "sequence", Parameters: map[string]value.Value{
		"actions": value.Array([]value.Value{inner}...),
	}})
	require.NoError(t, err)
	assert.True(t, value.Bool(true).Equal(h.store.Get("nested")))
}
