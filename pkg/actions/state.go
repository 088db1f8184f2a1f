package actions

import (
	"context"
	"fmt"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
)

// setStateData carries the validated parameters of a setState action.
// Value stays raw until execution so templates see then-current state.
type setStateData struct {
	Path  string `mapstructure:"path"`
	Value any    `mapstructure:"value"`
	Local bool   `mapstructure:"local"`
}

func resolveSetState(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "path", "value"); err != nil {
		return action.Definition{}, err
	}
	var data setStateData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.Path == "" {
		return action.Definition{}, fmt.Errorf("%w: setState path must not be empty", action.ErrInvalidParameters)
	}
	return action.Definition{Kind: KindSetState, ExecutionData: data}, nil
}

func executeSetState(_ context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(setStateData)
	v := evalParam(ectx, data.Value)
	if data.Local {
		if ectx.Scope == nil {
			return fmt.Errorf("setState %q targets local state outside any scope", data.Path)
		}
		return ectx.Scope.SetLocal(data.Path, v)
	}
	return ectx.Store.Set(data.Path, v)
}

type toggleStateData struct {
	Path  string `mapstructure:"path"`
	Local bool   `mapstructure:"local"`
}

func resolveToggleState(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "path"); err != nil {
		return action.Definition{}, err
	}
	var data toggleStateData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.Path == "" {
		return action.Definition{}, fmt.Errorf("%w: toggleState path must not be empty", action.ErrInvalidParameters)
	}
	return action.Definition{Kind: KindToggleState, ExecutionData: data}, nil
}

func executeToggleState(_ context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(toggleStateData)
	if data.Local {
		if ectx.Scope == nil {
			return fmt.Errorf("toggleState %q targets local state outside any scope", data.Path)
		}
		return ectx.Scope.ToggleLocal(data.Path)
	}
	return ectx.Store.Toggle(data.Path)
}

type appendData struct {
	Path  string `mapstructure:"path"`
	Value any    `mapstructure:"value"`
	Local bool   `mapstructure:"local"`
}

func resolveAppendToArray(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "path", "value"); err != nil {
		return action.Definition{}, err
	}
	var data appendData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.Path == "" {
		return action.Definition{}, fmt.Errorf("%w: appendToArray path must not be empty", action.ErrInvalidParameters)
	}
	return action.Definition{Kind: KindAppendToArray, ExecutionData: data}, nil
}

func executeAppendToArray(_ context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(appendData)
	v := evalParam(ectx, data.Value)
	if data.Local {
		if ectx.Scope == nil {
			return fmt.Errorf("appendToArray %q targets local state outside any scope", data.Path)
		}
		return ectx.Scope.AppendLocal(data.Path, v)
	}
	return ectx.Store.Append(data.Path, v)
}

type removeData struct {
	Path  string `mapstructure:"path"`
	Index int    `mapstructure:"index"`
}

func resolveRemoveFromArray(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "path", "index"); err != nil {
		return action.Definition{}, err
	}
	var data removeData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.Path == "" {
		return action.Definition{}, fmt.Errorf("%w: removeFromArray path must not be empty", action.ErrInvalidParameters)
	}
	if data.Index < 0 {
		return action.Definition{}, fmt.Errorf("%w: removeFromArray index must not be negative", action.ErrInvalidParameters)
	}
	return action.Definition{Kind: KindRemoveFromArray, ExecutionData: data}, nil
}

func executeRemoveFromArray(_ context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(removeData)
	return ectx.Store.RemoveAt(data.Path, data.Index)
}
