package action

import (
	"errors"
	"fmt"
)

// Resolution-time sentinels. Resolution failures are fatal to the single
// action (or composite) being resolved and are propagated to the caller.
var (
	// ErrUnknownKind marks an action kind with no registered resolver.
	ErrUnknownKind = errors.New("no resolver registered for action kind")

	// ErrInvalidParameters marks a document action whose parameters fail
	// the kind resolver's validation.
	ErrInvalidParameters = errors.New("invalid action parameters")

	// ErrUnknownActionRef marks an action binding referencing a name that
	// is not in the document's actions table.
	ErrUnknownActionRef = errors.New("unknown action reference")
)

// Execution-time sentinels.
var (
	// ErrNoHandler marks a resolved kind with no registered handler. It is
	// a runtime error, deliberately distinct from ErrUnknownKind.
	ErrNoHandler = errors.New("no handler registered for action kind")
)

// ErrDuplicateRegistration is returned when a kind is registered twice.
// The registry rejects re-registration rather than overwriting: silently
// swapping behavior for an already-wired kind hides bugs.
var ErrDuplicateRegistration = errors.New("action kind already registered")

// ResolutionError reports a failure to turn a document action into a
// Definition.
type ResolutionError struct {
	Kind Kind
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve action %q: %v", string(e.Kind), e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ExecutionError reports a failure of a single action invocation. It is
// scoped to that invocation: the engine and the state store survive it.
type ExecutionError struct {
	Kind         Kind
	InvocationID string
	Err          error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute action %q (invocation %s): %v", string(e.Kind), e.InvocationID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
