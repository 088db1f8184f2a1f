package actions

import (
	"context"
	"fmt"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/ports"
	"github.com/scalsui/scals/pkg/value"
)

func resolveDismiss(_ document.Action, _ action.ResolutionContext) (action.Definition, error) {
	return action.Definition{Kind: KindDismiss}, nil
}

func executeDismiss(ctx context.Context, _ action.Definition, ectx action.ExecutionContext) error {
	if ectx.Bridge == nil {
		ectx.Logger.Debug("dismiss ignored: no host bridge configured")
		return nil
	}
	return ectx.Bridge.Dismiss(ctx)
}

type navigateData struct {
	Destination string         `mapstructure:"destination"`
	Params      map[string]any `mapstructure:"params"`
}

func resolveNavigate(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "destination"); err != nil {
		return action.Definition{}, err
	}
	var data navigateData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.Destination == "" {
		return action.Definition{}, fmt.Errorf("%w: navigate destination must not be empty", action.ErrInvalidParameters)
	}
	return action.Definition{Kind: KindNavigate, ExecutionData: data}, nil
}

func executeNavigate(ctx context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(navigateData)
	if ectx.Bridge == nil {
		ectx.Logger.Debug("navigate ignored: no host bridge configured", "destination", data.Destination)
		return nil
	}

	destination := evalString(ectx, data.Destination)
	params := make(map[string]value.Value, len(data.Params))
	for k, raw := range data.Params {
		params[k] = evalParam(ectx, raw)
	}
	return ectx.Bridge.Navigate(ctx, destination, params)
}

type showAlertData struct {
	Title   string   `mapstructure:"title"`
	Message string   `mapstructure:"message"`
	Buttons []string `mapstructure:"buttons"`
}

func resolveShowAlert(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "title"); err != nil {
		return action.Definition{}, err
	}
	var data showAlertData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	return action.Definition{Kind: KindShowAlert, ExecutionData: data}, nil
}

func executeShowAlert(ctx context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(showAlertData)
	if ectx.Bridge == nil {
		ectx.Logger.Debug("showAlert ignored: no host bridge configured", "title", data.Title)
		return nil
	}
	return ectx.Bridge.ShowAlert(ctx, ports.Alert{
		Title:   evalString(ectx, data.Title),
		Message: evalString(ectx, data.Message),
		Buttons: data.Buttons,
	})
}
