// Package action converts dynamic, open-ended action records into
// handler-ready definitions and executes them. The engine here is pure
// orchestration: it contains no type switch over action kinds. All
// kind-specific behavior lives in resolvers and handlers registered by the
// host or by plugins, keyed by an open string Kind.
package action

import (
	"context"

	"github.com/scalsui/scals/pkg/document"
)

// Kind names an action's behavior family, e.g. "setState". It is an open
// identifier: new kinds require registration, not code changes here.
type Kind string

// Definition is the resolved, handler-ready form of a document action.
// ExecutionData is produced by the kind's resolver and consumed only by
// the matching kind's handler; the engine treats it as opaque.
type Definition struct {
	Kind          Kind
	ExecutionData any
}

// Resolver validates a document action's parameters and produces the
// kind-specific execution data.
type Resolver interface {
	Resolve(a document.Action, rctx ResolutionContext) (Definition, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(a document.Action, rctx ResolutionContext) (Definition, error)

func (f ResolverFunc) Resolve(a document.Action, rctx ResolutionContext) (Definition, error) {
	return f(a, rctx)
}

// Handler executes a resolved definition. Handlers may suspend (network,
// timers) and must honor ctx cancellation.
type Handler interface {
	Execute(ctx context.Context, def Definition, ectx ExecutionContext) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, def Definition, ectx ExecutionContext) error

func (f HandlerFunc) Execute(ctx context.Context, def Definition, ectx ExecutionContext) error {
	return f(ctx, def, ectx)
}
