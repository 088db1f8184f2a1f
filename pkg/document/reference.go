package document

import (
	"encoding/json"
	"fmt"

	"github.com/scalsui/scals/pkg/value"
)

// RefKind discriminates the flavors of a DataReference.
type RefKind string

const (
	RefStatic       RefKind = "static"
	RefBinding      RefKind = "binding"
	RefLocalBinding RefKind = "localBinding"
)

// DataReference points a component property at data: either a literal
// value, a state path (global or local), or a template string with ${...}
// segments. Exactly one of Value, Path and Template is meaningful for a
// given Kind; Template may appear on any kind and takes precedence.
type DataReference struct {
	Kind     RefKind      `json:"kind"`
	Value    *value.Value `json:"value,omitempty"`
	Path     string       `json:"path,omitempty"`
	Template string       `json:"template,omitempty"`
}

// UnmarshalJSON infers the kind when the wire form omits it: a value means
// static, a bare path means binding.
func (r *DataReference) UnmarshalJSON(data []byte) error {
	type plain DataReference
	var aux plain
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = DataReference(aux)
	if r.Kind == "" && r.Template == "" {
		switch {
		case r.Value != nil:
			r.Kind = RefStatic
		case r.Path != "":
			r.Kind = RefBinding
		}
	}
	return nil
}

// Action is the document form of an action: an open string-tagged type plus
// loosely-typed parameters. New action vocabulary requires no change here.
type Action struct {
	Type       string                 `json:"type"`
	Parameters map[string]value.Value `json:"parameters,omitempty"`
}

// ActionBinding attaches behavior to a component event. It is either a
// reference into the document's named actions table or an inline Action.
type ActionBinding struct {
	Reference string
	Inline    *Action
}

// IsZero reports whether the binding is empty.
func (b ActionBinding) IsZero() bool {
	return b.Reference == "" && b.Inline == nil
}

// UnmarshalJSON accepts either a bare string (reference form) or an action
// object (inline form).
func (b *ActionBinding) UnmarshalJSON(data []byte) error {
	var ref string
	if err := json.Unmarshal(data, &ref); err == nil {
		if ref == "" {
			return fmt.Errorf("action binding reference must not be empty")
		}
		b.Reference = ref
		b.Inline = nil
		return nil
	}

	var inline Action
	if err := json.Unmarshal(data, &inline); err != nil {
		return fmt.Errorf("action binding must be a reference string or an action object: %w", err)
	}
	if inline.Type == "" {
		return fmt.Errorf("inline action is missing its type")
	}
	b.Reference = ""
	b.Inline = &inline
	return nil
}

// MarshalJSON renders the binding back to its wire form.
func (b ActionBinding) MarshalJSON() ([]byte, error) {
	if b.Reference != "" {
		return json.Marshal(b.Reference)
	}
	if b.Inline != nil {
		return json.Marshal(b.Inline)
	}
	return []byte("null"), nil
}
