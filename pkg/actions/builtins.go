// Package actions supplies the built-in action vocabulary as ordinary
// registrants. The engine has zero special-cased knowledge of any kind
// defined here; hosts that want a different vocabulary simply register
// their own resolvers and handlers instead.
package actions

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/value"
)

// Built-in action kinds.
const (
	KindDismiss         action.Kind = "dismiss"
	KindSetState        action.Kind = "setState"
	KindToggleState     action.Kind = "toggleState"
	KindShowAlert       action.Kind = "showAlert"
	KindNavigate        action.Kind = "navigate"
	KindSequence        action.Kind = "sequence"
	KindHTTPRequest     action.Kind = "httpRequest"
	KindCancelRequest   action.Kind = "cancelRequest"
	KindAppendToArray   action.Kind = "appendToArray"
	KindRemoveFromArray action.Kind = "removeFromArray"
)

// RegisterBuiltins wires every built-in kind into the registry. It fails
// on the first conflict with an already-registered kind.
func RegisterBuiltins(reg *action.Registry) error {
	entries := []struct {
		kind     action.Kind
		resolver action.Resolver
		handler  action.Handler
	}{
		{KindDismiss, action.ResolverFunc(resolveDismiss), action.HandlerFunc(executeDismiss)},
		{KindSetState, action.ResolverFunc(resolveSetState), action.HandlerFunc(executeSetState)},
		{KindToggleState, action.ResolverFunc(resolveToggleState), action.HandlerFunc(executeToggleState)},
		{KindShowAlert, action.ResolverFunc(resolveShowAlert), action.HandlerFunc(executeShowAlert)},
		{KindNavigate, action.ResolverFunc(resolveNavigate), action.HandlerFunc(executeNavigate)},
		{KindSequence, action.ResolverFunc(resolveSequence), action.HandlerFunc(executeSequence)},
		{KindHTTPRequest, action.ResolverFunc(resolveHTTPRequest), action.HandlerFunc(executeHTTPRequest)},
		{KindCancelRequest, action.ResolverFunc(resolveCancelRequest), action.HandlerFunc(executeCancelRequest)},
		{KindAppendToArray, action.ResolverFunc(resolveAppendToArray), action.HandlerFunc(executeAppendToArray)},
		{KindRemoveFromArray, action.ResolverFunc(resolveRemoveFromArray), action.HandlerFunc(executeRemoveFromArray)},
	}
	for _, entry := range entries {
		if err := reg.Register(entry.kind, entry.resolver, entry.handler); err != nil {
			return err
		}
	}
	return nil
}

// decodeParams converts loosely-typed action parameters into a typed
// per-kind struct.
func decodeParams(a document.Action, out any) error {
	raw := make(map[string]any, len(a.Parameters))
	for k, v := range a.Parameters {
		raw[k] = v.ToAny()
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", action.ErrInvalidParameters, err)
	}
	return nil
}

// requireParams checks that every named parameter is present (a present
// Null counts; an absent key does not).
func requireParams(a document.Action, names ...string) error {
	for _, name := range names {
		if _, ok := a.Parameters[name]; !ok {
			return fmt.Errorf("%w: %q requires parameter %q", action.ErrInvalidParameters, a.Type, name)
		}
	}
	return nil
}

// evalParam resolves an execution-time parameter. String parameters run
// through template resolution against current state, so a sequence step
// observes the writes of earlier steps; everything else converts as-is.
func evalParam(ectx action.ExecutionContext, raw any) value.Value {
	if s, ok := raw.(string); ok && ectx.Bindings != nil {
		return ectx.Bindings.ResolveTemplate(s)
	}
	v, err := value.FromAny(raw)
	if err != nil {
		return value.Null()
	}
	return v
}

// evalString resolves a string parameter through template resolution and
// stringifies the result.
func evalString(ectx action.ExecutionContext, raw string) string {
	if ectx.Bindings == nil {
		return raw
	}
	return ectx.Bindings.ResolveTemplate(raw).Stringify()
}
