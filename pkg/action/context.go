package action

import (
	"log/slog"

	"github.com/scalsui/scals/pkg/binding"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/ports"
	"github.com/scalsui/scals/pkg/statestore"
)

// ResolutionContext is passed to every resolver during the parse-to-IR
// pass. It carries the document (for named action lookups by composite
// resolvers) and the engine, so composites can recursively resolve their
// steps without knowing about specific kinds.
type ResolutionContext struct {
	Document *document.Definition
	Engine   *Engine
	Logger   *slog.Logger
}

// ResolveStep recursively resolves a nested document action through the
// engine. Composite resolvers use it for their steps.
func (rctx ResolutionContext) ResolveStep(a document.Action) (Definition, error) {
	if rctx.Engine == nil {
		return Definition{}, &ResolutionError{Kind: Kind(a.Type), Err: ErrUnknownKind}
	}
	return rctx.Engine.Resolve(a, rctx)
}

// ExecutionContext is the bundle handed to every handler invocation: the
// state store (with the scope of the node that fired the action), binding
// resolution for execution-time templates, the host bridge for UI side
// effects, and the cancellation registry for long-running work.
type ExecutionContext struct {
	Store        *statestore.Store
	Scope        *statestore.Scope
	Bindings     *binding.Resolver
	Bridge       ports.HostBridge
	Cancels      *CancelRegistry
	Engine       *Engine
	Logger       *slog.Logger
	InvocationID string
}
