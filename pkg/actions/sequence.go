package actions

import (
	"context"
	"fmt"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/value"
)

// sequenceData is the resolved form of a sequence: every step already
// carries its own handler-ready definition.
type sequenceData struct {
	Steps []action.Definition
}

// resolveSequence recursively resolves each step through the engine. Any
// step failing aborts resolution of the whole sequence; there are no
// partial sequences.
func resolveSequence(a document.Action, rctx action.ResolutionContext) (action.Definition, error) {
	raw, ok := a.Parameters["actions"]
	if !ok {
		return action.Definition{}, fmt.Errorf("%w: sequence requires parameter %q", action.ErrInvalidParameters, "actions")
	}
	elems, ok := raw.AsArray()
	if !ok {
		return action.Definition{}, fmt.Errorf("%w: sequence actions must be an array", action.ErrInvalidParameters)
	}

	steps := make([]action.Definition, 0, len(elems))
	for i, elem := range elems {
		step, err := stepAction(elem)
		if err != nil {
			return action.Definition{}, fmt.Errorf("%w: sequence step %d: %v", action.ErrInvalidParameters, i, err)
		}
		resolved, err := rctx.ResolveStep(step)
		if err != nil {
			return action.Definition{}, fmt.Errorf("sequence step %d: %w", i, err)
		}
		steps = append(steps, resolved)
	}
	return action.Definition{Kind: KindSequence, ExecutionData: sequenceData{Steps: steps}}, nil
}

// stepAction converts one element of the actions array into a document
// action.
func stepAction(elem value.Value) (document.Action, error) {
	obj, ok := elem.AsObject()
	if !ok {
		return document.Action{}, fmt.Errorf("step must be an action object")
	}
	kind, ok := obj["type"].AsString()
	if !ok || kind == "" {
		return document.Action{}, fmt.Errorf("step is missing its type")
	}
	act := document.Action{Type: kind}
	if params, ok := obj["parameters"].AsObject(); ok {
		act.Parameters = params
	}
	return act, nil
}

// executeSequence runs the resolved steps strictly in order, awaiting each
// step's completion before starting the next. This is the engine's only
// cross-action ordering guarantee.
func executeSequence(ctx context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(sequenceData)
	for i, step := range data.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ectx.Engine.Execute(ctx, step, ectx); err != nil {
			return fmt.Errorf("sequence step %d: %w", i, err)
		}
	}
	return nil
}
