package scals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/actions"
	"github.com/scalsui/scals/pkg/binding"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/observability"
	"github.com/scalsui/scals/pkg/ports"
	"github.com/scalsui/scals/pkg/resolver"
	"github.com/scalsui/scals/pkg/statestore"
)

// Version is the library version, stamped by the release process.
var Version = "0.1.0"

// ErrNoInteraction is returned when executing a node event that has no
// action bound in the resolved tree.
var ErrNoInteraction = errors.New("no action bound for node event")

// ErrNoSnapshotStore is returned by persistence operations when the engine
// was built without a snapshot store.
var ErrNoSnapshotStore = errors.New("no snapshot store configured")

// Engine is the high-level entry point for the library. It owns the action
// registry and the host-facing wiring (design system, bridge, persistence)
// and spawns per-document sessions.
type Engine struct {
	logger    *slog.Logger
	registry  *action.Registry
	actions   *action.Engine
	provider  ports.DesignSystemProvider
	bridge    ports.HostBridge
	snapshots ports.SnapshotStore
	hooks     observability.Hooks
	metrics   *observability.Metrics
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithActionRegistry injects a pre-populated action registry, bypassing
// the default built-in vocabulary.
func WithActionRegistry(reg *action.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithDesignSystemProvider wires the resolver for "@"-prefixed style
// references.
func WithDesignSystemProvider(p ports.DesignSystemProvider) Option {
	return func(e *Engine) {
		e.provider = p
	}
}

// WithHostBridge wires the host callbacks used by navigation and alert
// actions.
func WithHostBridge(b ports.HostBridge) Option {
	return func(e *Engine) {
		e.bridge = b
	}
}

// WithSnapshotStore enables session persistence.
func WithSnapshotStore(s ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.snapshots = s
	}
}

// WithHooks registers lifecycle callbacks fired around action resolution
// and execution.
func WithHooks(hooks observability.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics wires Prometheus instrumentation for action execution.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes an Engine. Without options it carries the built-in
// action vocabulary, no persistence, and a no-op logger.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.registry == nil {
		eng.registry = action.NewRegistry()
		if err := actions.RegisterBuiltins(eng.registry); err != nil {
			return nil, fmt.Errorf("register built-in actions: %w", err)
		}
	}

	eng.actions = action.New(eng.registry,
		action.WithLogger(eng.logger),
		action.WithHooks(eng.hooks),
		action.WithMetrics(eng.metrics),
	)
	return eng, nil
}

// Registry exposes the action registry so hosts and plugins can register
// custom kinds before documents load.
func (e *Engine) Registry() *action.Registry { return e.registry }

// Parse decodes and validates a document against the engine's registered
// action vocabulary. One unresolvable action fails the whole parse.
func (e *Engine) Parse(data []byte) (*document.Definition, error) {
	return document.ParseStrict(data, e.registry)
}

// NewSession binds a parsed document to a fresh state store. When a
// snapshot store is configured and holds state for the session ID, that
// state is restored before the document's initial state seeds the gaps.
func (e *Engine) NewSession(ctx context.Context, sessionID string, def *document.Definition) (*Session, error) {
	if def == nil {
		return nil, errors.New("session requires a document")
	}

	store := statestore.New(nil)
	if e.snapshots != nil {
		snapshot, err := e.snapshots.Load(ctx, sessionID)
		switch {
		case err == nil:
			store.Restore(snapshot)
			e.logger.Debug("session restored from snapshot", "session", sessionID)
		case errors.Is(err, ports.ErrSnapshotNotFound):
		default:
			return nil, fmt.Errorf("load snapshot for %q: %w", sessionID, err)
		}
	}

	return &Session{
		ID:      sessionID,
		engine:  e,
		doc:     def,
		store:   store,
		res:     resolver.New(def, store, e.provider, resolver.WithLogger(e.logger)),
		binder:  binding.New(store, def.DataSources, binding.WithLogger(e.logger)),
		cancels: action.NewCancelRegistry(),
	}, nil
}
