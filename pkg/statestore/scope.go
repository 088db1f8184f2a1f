package statestore

import (
	"fmt"

	"github.com/scalsui/scals/pkg/value"
)

// Scope is a view of the store bound to one local-state owner (a node that
// declared a state block). Local reads and writes are namespaced by the
// owner id, so two sibling subtrees using the same local path never
// collide. Global operations pass through to the shared tree.
type Scope struct {
	store *Store
	owner string
}

// Scope returns a view bound to the given owner id. Seeding happens via
// SetLocal; an owner with no writes reads Null everywhere.
func (s *Store) Scope(ownerID string) *Scope {
	return &Scope{store: s, owner: ownerID}
}

// Owner returns the owning node id of this scope.
func (s *Scope) Owner() string { return s.owner }

// Store returns the underlying shared store.
func (s *Scope) Store() *Store { return s.store }

func (s *Scope) localSegments(path string) []string {
	return append([]string{localNamespace, s.owner}, splitPath(path)...)
}

// GetLocal reads a path inside this owner's local namespace.
func (s *Scope) GetLocal(path string) value.Value {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return s.store.getSegments(s.localSegments(path))
}

// SetLocal writes a path inside this owner's local namespace.
func (s *Scope) SetLocal(path string, v value.Value) error {
	if path == "" {
		return fmt.Errorf("state path must not be empty")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.setSegments(s.localSegments(path), v)
	return nil
}

// ToggleLocal flips a boolean inside this owner's local namespace, with
// the same absent-initializes-to-true rule as Store.Toggle.
func (s *Scope) ToggleLocal(path string) error {
	if path == "" {
		return fmt.Errorf("state path must not be empty")
	}
	segs := s.localSegments(path)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	current := s.store.getSegments(segs)
	if current.IsNull() {
		s.store.setSegments(segs, value.Bool(true))
		return nil
	}
	b, ok := current.AsBool()
	if !ok {
		return fmt.Errorf("toggle %q: %w (found %s)", path, ErrNotBoolean, current.Kind())
	}
	s.store.setSegments(segs, value.Bool(!b))
	return nil
}

// AppendLocal adds v to the array at path inside this owner's local
// namespace, with the same strict non-array rule as Store.Append.
func (s *Scope) AppendLocal(path string, v value.Value) error {
	if path == "" {
		return fmt.Errorf("state path must not be empty")
	}
	segs := s.localSegments(path)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	current := s.store.getSegments(segs)
	if _, ok := current.AsArray(); !ok {
		return fmt.Errorf("append %q: %w (found %s)", path, ErrNotArray, current.Kind())
	}
	s.store.setSegments(segs, current.AppendElem(v))
	return nil
}

// LocalSnapshot returns this owner's local namespace as plain Go types,
// for expression environments. Missing owners yield an empty map.
func (s *Scope) LocalSnapshot() map[string]any {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	raw := s.store.getSegments([]string{localNamespace, s.owner})
	obj, ok := raw.AsObject()
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v.ToAny()
	}
	return out
}

// Seed writes an initial local state block for this owner without
// overwriting values that already exist (re-resolution keeps user edits).
func (s *Scope) Seed(initial map[string]value.Value) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for key, v := range initial {
		segs := s.localSegments(key)
		if s.store.getSegments(segs).IsNull() {
			s.store.setSegments(segs, v)
		}
	}
}
