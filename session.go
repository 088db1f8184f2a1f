package scals

import (
	"context"
	"fmt"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/binding"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/resolver"
	"github.com/scalsui/scals/pkg/statestore"
)

// Session is one live document instance: a parsed definition bound to a
// state store. Trees are resolved on demand against current state; action
// execution mutates state, and the next Tree call reflects it.
type Session struct {
	ID      string
	engine  *Engine
	doc     *document.Definition
	store   *statestore.Store
	res     *resolver.Resolver
	binder  *binding.Resolver
	cancels *action.CancelRegistry
}

// Document returns the session's parsed document.
func (s *Session) Document() *document.Definition { return s.doc }

// Store exposes the session's state store for host-driven reads and
// writes outside the action system.
func (s *Session) Store() *statestore.Store { return s.store }

// Tree resolves the document against the current state snapshot.
func (s *Session) Tree() *resolver.Tree {
	return s.res.Resolve()
}

// Execute runs the action bound to a node event in the given resolved
// tree. The tree pins the node's scope; state changes land in the store,
// so the caller re-resolves to observe them.
func (s *Session) Execute(ctx context.Context, tree *resolver.Tree, nodeID, event string) error {
	in, ok := tree.Interaction(nodeID, event)
	if !ok {
		return fmt.Errorf("%w: %s on %q", ErrNoInteraction, event, nodeID)
	}
	return s.executeInteraction(ctx, in)
}

// Appear fires the document's onAppear lifecycle action, if any.
func (s *Session) Appear(ctx context.Context, tree *resolver.Tree) error {
	return s.lifecycle(ctx, tree, "onAppear")
}

// Disappear fires the document's onDisappear lifecycle action, if any.
func (s *Session) Disappear(ctx context.Context, tree *resolver.Tree) error {
	return s.lifecycle(ctx, tree, "onDisappear")
}

func (s *Session) lifecycle(ctx context.Context, tree *resolver.Tree, event string) error {
	in, ok := tree.RootAction(event)
	if !ok {
		return nil
	}
	return s.executeInteraction(ctx, in)
}

func (s *Session) executeInteraction(ctx context.Context, in resolver.Interaction) error {
	binder := in.Bindings
	if binder == nil {
		binder = s.binder
	}
	return s.engine.actions.ExecuteBinding(ctx, in.Binding,
		action.ResolutionContext{Document: s.doc, Logger: s.engine.logger},
		action.ExecutionContext{
			Store:    s.store,
			Scope:    in.Scope,
			Bindings: binder,
			Bridge:   s.engine.bridge,
			Cancels:  s.cancels,
		})
}

// Run resolves and executes an arbitrary document action against the
// session's global scope. Hosts use it for programmatic state changes
// that should flow through the same pipeline as user interactions.
func (s *Session) Run(ctx context.Context, a document.Action) error {
	def, err := s.engine.actions.Resolve(a,
		action.ResolutionContext{Document: s.doc, Logger: s.engine.logger})
	if err != nil {
		return err
	}
	return s.engine.actions.Execute(ctx, def, action.ExecutionContext{
		Store:    s.store,
		Bindings: s.binder,
		Bridge:   s.engine.bridge,
		Cancels:  s.cancels,
	})
}

// Save persists the session's full state snapshot.
func (s *Session) Save(ctx context.Context) error {
	if s.engine.snapshots == nil {
		return ErrNoSnapshotStore
	}
	return s.engine.snapshots.Save(ctx, s.ID, s.store.Snapshot())
}

// Delete removes the session's persisted snapshot.
func (s *Session) Delete(ctx context.Context) error {
	if s.engine.snapshots == nil {
		return ErrNoSnapshotStore
	}
	return s.engine.snapshots.Delete(ctx, s.ID)
}
