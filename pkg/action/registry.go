package action

import (
	"fmt"
	"sync"

	"github.com/scalsui/scals/pkg/document"
)

// Registry maps action kinds to their resolvers and handlers. It is
// populated at startup by the host and by plugins, then read concurrently
// during resolution and execution. Registering a kind twice is rejected.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[Kind]Resolver
	handlers  map[Kind]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[Kind]Resolver),
		handlers:  make(map[Kind]Handler),
	}
}

// Register wires both sides of a kind at once. This is the extension point
// hosts and plugins use before first document resolution.
func (r *Registry) Register(kind Kind, resolver Resolver, handler Handler) error {
	if err := r.RegisterResolver(kind, resolver); err != nil {
		return err
	}
	return r.RegisterHandler(kind, handler)
}

// RegisterResolver wires the resolver for a kind.
func (r *Registry) RegisterResolver(kind Kind, resolver Resolver) error {
	if kind == "" {
		return fmt.Errorf("action kind must not be empty")
	}
	if resolver == nil {
		return fmt.Errorf("resolver for kind %q must not be nil", string(kind))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resolvers[kind]; exists {
		return fmt.Errorf("resolver for kind %q: %w", string(kind), ErrDuplicateRegistration)
	}
	r.resolvers[kind] = resolver
	return nil
}

// RegisterHandler wires the handler for a kind.
func (r *Registry) RegisterHandler(kind Kind, handler Handler) error {
	if kind == "" {
		return fmt.Errorf("action kind must not be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler for kind %q must not be nil", string(kind))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[kind]; exists {
		return fmt.Errorf("handler for kind %q: %w", string(kind), ErrDuplicateRegistration)
	}
	r.handlers[kind] = handler
	return nil
}

// Resolver returns the registered resolver for a kind.
func (r *Registry) Resolver(kind Kind) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolver, ok := r.resolvers[kind]
	return resolver, ok
}

// Handler returns the registered handler for a kind.
func (r *Registry) Handler(kind Kind) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[kind]
	return handler, ok
}

// Kinds returns every kind with a registered resolver.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.resolvers))
	for kind := range r.resolvers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// ValidateAction implements document.ActionValidator: an action validates
// if its kind's resolver accepts its parameters. Used by strict parsing to
// fail a whole document on a single malformed action.
func (r *Registry) ValidateAction(a document.Action) error {
	eng := New(r)
	_, err := eng.Resolve(a, ResolutionContext{})
	return err
}
