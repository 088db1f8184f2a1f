// Package statestore provides the path-addressable mutable state container
// shared by bindings and action handlers. One Store exists per document
// instance; global state lives at its root and node-local state blocks are
// namespaced under a reserved key so sibling subtrees cannot observe each
// other's local values.
//
// Reads degrade to Null for missing paths. Mutations are serialized behind
// a single writer lock and either apply fully or not at all.
package statestore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/scalsui/scals/pkg/value"
)

// localNamespace is the reserved root key holding node-local scopes.
// Public path operations refuse it: reads degrade to Null, mutations
// error. Local state is reached only through a Scope.
const localNamespace = "$local"

// ErrNotArray is returned by Append when the target is not an array.
var ErrNotArray = errors.New("target is not an array")

// ErrNotBoolean is returned by Toggle when the target holds a non-boolean.
var ErrNotBoolean = errors.New("target is not a boolean")

// Store is a mutable tree of values addressed by dot-separated paths.
// It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	root map[string]value.Value
}

// New creates a store seeded with the given initial global state.
func New(initial map[string]value.Value) *Store {
	root := make(map[string]value.Value, len(initial))
	for k, v := range initial {
		root[k] = v
	}
	return &Store{root: root}
}

// Get resolves a dot-separated path. Nested segments address into objects
// (by field name) and arrays (by decimal index). A missing or unreachable
// path yields Null, never an error.
func (s *Store) Get(path string) value.Value {
	segs, err := publicSegments(path)
	if err != nil {
		return value.Null()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSegments(segs)
}

// Set stores v at the path, materializing intermediate objects as needed.
// Existing non-object intermediates are replaced by objects.
func (s *Store) Set(path string, v value.Value) error {
	segs, err := publicSegments(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("state path must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSegments(segs, v)
	return nil
}

// Toggle flips the boolean at path. An absent (Null) target initializes to
// true; any other non-boolean target is a type error and leaves the store
// untouched.
func (s *Store) Toggle(path string) error {
	segs, err := publicSegments(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("state path must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.getSegments(segs)
	switch {
	case current.IsNull():
		s.setSegments(segs, value.Bool(true))
	default:
		b, ok := current.AsBool()
		if !ok {
			return fmt.Errorf("toggle %q: %w (found %s)", path, ErrNotBoolean, current.Kind())
		}
		s.setSegments(segs, value.Bool(!b))
	}
	return nil
}

// Append adds v to the end of the array at path. A non-array target,
// including an absent one, is a type error and leaves the store untouched.
func (s *Store) Append(path string, v value.Value) error {
	segs, err := publicSegments(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("state path must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.getSegments(segs)
	if _, ok := current.AsArray(); !ok {
		return fmt.Errorf("append %q: %w (found %s)", path, ErrNotArray, current.Kind())
	}
	s.setSegments(segs, current.AppendElem(v))
	return nil
}

// RemoveAt deletes the element at index from the array at path.
// Out-of-range indices are a no-op; a non-array target is a type error.
func (s *Store) RemoveAt(path string, index int) error {
	segs, err := publicSegments(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("state path must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.getSegments(segs)
	arr, ok := current.AsArray()
	if !ok {
		return fmt.Errorf("remove from %q: %w (found %s)", path, ErrNotArray, current.Kind())
	}
	if index < 0 || index >= len(arr) {
		return nil
	}
	next := make([]value.Value, 0, len(arr)-1)
	next = append(next, arr[:index]...)
	next = append(next, arr[index+1:]...)
	s.setSegments(segs, value.Array(next...))
	return nil
}

// Snapshot returns a deep copy of the full state tree (local scopes
// included) in plain Go types, suitable for persistence.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.root))
	for k, v := range s.root {
		out[k] = v.ToAny()
	}
	return out
}

// GlobalSnapshot is Snapshot without the local-scope namespace. It is the
// environment expressions evaluate against.
func (s *Store) GlobalSnapshot() map[string]any {
	out := s.Snapshot()
	delete(out, localNamespace)
	return out
}

// Restore replaces the entire state tree with a previously captured
// snapshot. Unconvertible entries are dropped.
func (s *Store) Restore(snapshot map[string]any) {
	root := make(map[string]value.Value, len(snapshot))
	for k, raw := range snapshot {
		if v, err := value.FromAny(raw); err == nil {
			root[k] = v
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
}

// getSegments must be called with at least a read lock held.
func (s *Store) getSegments(segs []string) value.Value {
	if len(segs) == 0 {
		return value.Null()
	}
	current, ok := s.root[segs[0]]
	if !ok {
		return value.Null()
	}
	for _, seg := range segs[1:] {
		current = descend(current, seg)
		if current.IsNull() {
			return value.Null()
		}
	}
	return current
}

// setSegments must be called with the write lock held.
func (s *Store) setSegments(segs []string, v value.Value) {
	s.root[segs[0]] = graft(s.root[segs[0]], segs[1:], v)
}

func descend(v value.Value, seg string) value.Value {
	if arr, ok := v.AsArray(); ok {
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(arr) {
			return value.Null()
		}
		return arr[idx]
	}
	return v.Field(seg)
}

// graft writes v at the remaining path below current, returning the new
// subtree. Intermediate objects are materialized; array elements are
// replaced in place when the segment is a valid index.
func graft(current value.Value, segs []string, v value.Value) value.Value {
	if len(segs) == 0 {
		return v
	}
	seg := segs[0]

	if arr, ok := current.AsArray(); ok {
		if idx, err := strconv.Atoi(seg); err == nil && idx >= 0 && idx < len(arr) {
			next := make([]value.Value, len(arr))
			copy(next, arr)
			next[idx] = graft(arr[idx], segs[1:], v)
			return value.Array(next...)
		}
	}
	return current.WithField(seg, graft(current.Field(seg), segs[1:], v))
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// publicSegments splits a caller-supplied path, refusing the reserved
// local namespace so documents cannot reach into other subtrees' local
// state through global paths.
func publicSegments(path string) ([]string, error) {
	segs := splitPath(path)
	if len(segs) > 0 && segs[0] == localNamespace {
		return nil, fmt.Errorf("state path %q is reserved for local scopes", path)
	}
	return segs, nil
}
