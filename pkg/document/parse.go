package document

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidEncoding marks input that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

// ErrDecode marks schema or type mismatches anywhere in the document.
var ErrDecode = errors.New("document failed to decode")

// ParseError is the single error surface of the parser. Use errors.Is with
// ErrInvalidEncoding or ErrDecode to distinguish the two failure classes.
type ParseError struct {
	Stage string // "encoding" or "decode"
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse document (%s): %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func encodingError(err error) error {
	return &ParseError{Stage: "encoding", Err: fmt.Errorf("%w: %w", ErrInvalidEncoding, err)}
}

func decodeError(err error) error {
	return &ParseError{Stage: "decode", Err: fmt.Errorf("%w: %w", ErrDecode, err)}
}

// ActionValidator validates the document form of an action. The action
// registry implements it; ParseStrict uses it to reject documents whose
// actions cannot resolve.
type ActionValidator interface {
	ValidateAction(a Action) error
}

// Parse decodes a raw JSON document into a Definition. It fails fast: the
// first structural or type error anywhere in the tree rejects the whole
// document, with no partial recovery.
func Parse(data []byte) (*Definition, error) {
	if !utf8.Valid(data) {
		return nil, encodingError(errors.New("input contains invalid byte sequences"))
	}

	var def Definition
	if err := def.decodeFrom(data); err != nil {
		return nil, decodeError(err)
	}
	return &def, nil
}

// ParseStrict decodes like Parse and additionally validates every action
// in the document (the named actions table, root actions and every node's
// event bindings) against the supplied validator. A single invalid action
// fails the entire parse.
func ParseStrict(data []byte, validator ActionValidator) (*Definition, error) {
	def, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if validator == nil {
		return def, nil
	}

	for name, act := range def.Actions {
		if err := validator.ValidateAction(act); err != nil {
			return nil, decodeError(fmt.Errorf("action %q: %w", name, err))
		}
	}
	if err := validateBindings(def, def.Root.Actions, validator, "root"); err != nil {
		return nil, err
	}

	var walkErr error
	def.Walk(func(n Node) bool {
		var bindings map[string]ActionBinding
		switch t := n.(type) {
		case *Component:
			bindings = t.Actions
		case *Layout:
			bindings = t.Actions
		default:
			return true
		}
		where := n.NodeType()
		if n.NodeID() != "" {
			where = fmt.Sprintf("%s %q", n.NodeType(), n.NodeID())
		}
		walkErr = validateBindings(def, bindings, validator, where)
		return walkErr == nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return def, nil
}

func validateBindings(def *Definition, bindings map[string]ActionBinding, validator ActionValidator, where string) error {
	for event, binding := range bindings {
		act := binding.Inline
		if binding.Reference != "" {
			named, ok := def.Actions[binding.Reference]
			if !ok {
				return decodeError(fmt.Errorf("%s %s: unknown action reference %q", where, event, binding.Reference))
			}
			act = &named
		}
		if act == nil {
			continue
		}
		if err := validator.ValidateAction(*act); err != nil {
			return decodeError(fmt.Errorf("%s %s: %w", where, event, err))
		}
	}
	return nil
}
