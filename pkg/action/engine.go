package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/observability"
)

// Engine drives the action state machine: Bound -> Resolved -> Defined ->
// Executing -> Completed/Failed. It owns no kind-specific behavior; every
// step is a registry lookup.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
	hooks    observability.Hooks
	metrics  *observability.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks fired around resolution and
// execution.
func WithHooks(hooks observability.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine over the given registry.
func New(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *Registry { return e.registry }

// ResolveBinding turns an ActionBinding (reference or inline form) into a
// handler-ready Definition. Reference bindings look up the document's
// named actions table; an unknown name is a resolution error.
func (e *Engine) ResolveBinding(b document.ActionBinding, rctx ResolutionContext) (Definition, error) {
	act, err := e.lookupBinding(b, rctx.Document)
	if err != nil {
		return Definition{}, err
	}
	return e.Resolve(*act, rctx)
}

func (e *Engine) lookupBinding(b document.ActionBinding, def *document.Definition) (*document.Action, error) {
	if b.Reference != "" {
		if def == nil {
			return nil, &ResolutionError{Err: fmt.Errorf("%w: %q (no document in context)", ErrUnknownActionRef, b.Reference)}
		}
		named, ok := def.Actions[b.Reference]
		if !ok {
			return nil, &ResolutionError{Err: fmt.Errorf("%w: %q", ErrUnknownActionRef, b.Reference)}
		}
		return &named, nil
	}
	if b.Inline == nil {
		return nil, &ResolutionError{Err: errors.New("empty action binding")}
	}
	return b.Inline, nil
}

// Resolve looks up the kind's registered resolver and lets it validate
// parameters and produce execution data. A kind without a resolver fails
// with ErrUnknownKind; it never fails open.
func (e *Engine) Resolve(a document.Action, rctx ResolutionContext) (Definition, error) {
	if rctx.Engine == nil {
		rctx.Engine = e
	}
	if rctx.Logger == nil {
		rctx.Logger = e.logger
	}

	kind := Kind(a.Type)
	def, err := e.resolve(kind, a, rctx)

	e.hooks.EmitResolve(context.Background(), &observability.ActionEvent{Kind: a.Type, Err: err})
	e.metrics.ObserveResolve(a.Type, err)
	if err != nil {
		e.logger.Debug("action resolution failed", "kind", a.Type, "err", err)
	}
	return def, err
}

func (e *Engine) resolve(kind Kind, a document.Action, rctx ResolutionContext) (Definition, error) {
	resolver, ok := e.registry.Resolver(kind)
	if !ok {
		return Definition{}, &ResolutionError{Kind: kind, Err: fmt.Errorf("%w: %q", ErrUnknownKind, a.Type)}
	}

	def, err := resolver.Resolve(a, rctx)
	if err != nil {
		var resErr *ResolutionError
		if errors.As(err, &resErr) {
			return Definition{}, err
		}
		return Definition{}, &ResolutionError{Kind: kind, Err: err}
	}
	if def.Kind == "" {
		def.Kind = kind
	}
	return def, nil
}

// Execute looks up the definition's registered handler and runs it. A
// missing handler is a runtime error, reported distinctly from a missing
// resolver. Failures are scoped to the invocation: they never crash the
// engine or leave the state store partially mutated.
func (e *Engine) Execute(ctx context.Context, def Definition, ectx ExecutionContext) error {
	if ectx.Engine == nil {
		ectx.Engine = e
	}
	if ectx.Logger == nil {
		ectx.Logger = e.logger
	}
	if ectx.InvocationID == "" {
		ectx.InvocationID = uuid.NewString()
	}

	start := time.Now()
	err := e.execute(ctx, def, ectx)
	elapsed := time.Since(start)

	e.hooks.EmitExecute(ctx, &observability.ActionEvent{
		Kind:         string(def.Kind),
		InvocationID: ectx.InvocationID,
		Duration:     elapsed,
		Err:          err,
	})
	e.metrics.ObserveExecute(string(def.Kind), elapsed, err)

	if err != nil {
		e.logger.Warn("action execution failed",
			"kind", string(def.Kind), "invocation", ectx.InvocationID, "err", err)
	} else {
		e.logger.Debug("action executed",
			"kind", string(def.Kind), "invocation", ectx.InvocationID, "duration", elapsed)
	}
	return err
}

func (e *Engine) execute(ctx context.Context, def Definition, ectx ExecutionContext) error {
	handler, ok := e.registry.Handler(def.Kind)
	if !ok {
		return &ExecutionError{
			Kind:         def.Kind,
			InvocationID: ectx.InvocationID,
			Err:          fmt.Errorf("%w: %q", ErrNoHandler, string(def.Kind)),
		}
	}

	if err := handler.Execute(ctx, def, ectx); err != nil {
		var execErr *ExecutionError
		if errors.As(err, &execErr) {
			return err
		}
		return &ExecutionError{Kind: def.Kind, InvocationID: ectx.InvocationID, Err: err}
	}
	return nil
}

// ExecuteBinding resolves and immediately executes an action binding.
// This is the renderer-facing entry point for user interactions.
func (e *Engine) ExecuteBinding(ctx context.Context, b document.ActionBinding, rctx ResolutionContext, ectx ExecutionContext) error {
	def, err := e.ResolveBinding(b, rctx)
	if err != nil {
		return err
	}
	return e.Execute(ctx, def, ectx)
}
