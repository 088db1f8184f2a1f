package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/value"
)

// httpClient has no global timeout: the engine imposes none, and requests
// stay cancelable through the cancel registry.
var httpClient = &http.Client{}

type httpRequestData struct {
	ID      string            `mapstructure:"id"`
	URL     string            `mapstructure:"url"`
	Method  string            `mapstructure:"method"`
	Headers map[string]string `mapstructure:"headers"`
	Body    any               `mapstructure:"body"`
	SaveTo  string            `mapstructure:"saveTo"`
}

func resolveHTTPRequest(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "url"); err != nil {
		return action.Definition{}, err
	}
	var data httpRequestData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.URL == "" {
		return action.Definition{}, fmt.Errorf("%w: httpRequest url must not be empty", action.ErrInvalidParameters)
	}
	if data.Method == "" {
		data.Method = http.MethodGet
	}
	data.Method = strings.ToUpper(data.Method)
	switch data.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return action.Definition{}, fmt.Errorf("%w: httpRequest method %q is not supported", action.ErrInvalidParameters, data.Method)
	}
	return action.Definition{Kind: KindHTTPRequest, ExecutionData: data}, nil
}

func executeHTTPRequest(ctx context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(httpRequestData)
	url := evalString(ectx, data.URL)

	reqCtx := ctx
	if data.ID != "" && ectx.Cancels != nil {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithCancel(ctx)
		ectx.Cancels.Track(data.ID, cancel)
		defer ectx.Cancels.Release(data.ID)
	}

	var body io.Reader
	if data.Body != nil {
		encoded, err := json.Marshal(evalParam(ectx, data.Body))
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(reqCtx, data.Method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range data.Headers {
		req.Header.Set(k, evalString(ectx, v))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", data.Method, url, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("request %s %s: unexpected status %d", data.Method, url, resp.StatusCode)
	}

	if data.SaveTo == "" {
		return nil
	}

	var decoded value.Value
	if err := json.Unmarshal(payload, &decoded); err != nil {
		// Non-JSON responses persist as raw text.
		decoded = value.String(string(payload))
	}
	return ectx.Store.Set(data.SaveTo, decoded)
}

type cancelRequestData struct {
	ID string `mapstructure:"id"`
}

func resolveCancelRequest(a document.Action, _ action.ResolutionContext) (action.Definition, error) {
	if err := requireParams(a, "id"); err != nil {
		return action.Definition{}, err
	}
	var data cancelRequestData
	if err := decodeParams(a, &data); err != nil {
		return action.Definition{}, err
	}
	if data.ID == "" {
		return action.Definition{}, fmt.Errorf("%w: cancelRequest id must not be empty", action.ErrInvalidParameters)
	}
	return action.Definition{Kind: KindCancelRequest, ExecutionData: data}, nil
}

func executeCancelRequest(_ context.Context, def action.Definition, ectx action.ExecutionContext) error {
	data := def.ExecutionData.(cancelRequestData)
	if ectx.Cancels == nil {
		return nil
	}
	if !ectx.Cancels.Cancel(data.ID) {
		ectx.Logger.Debug("cancelRequest found nothing in flight", "id", data.ID)
	}
	return nil
}
