package document

import (
	"encoding/json"
	"fmt"

	"github.com/scalsui/scals/pkg/value"
)

// Layout type tags. Any other tag decodes as a generic Component.
const (
	TypeVStack        = "vstack"
	TypeHStack        = "hstack"
	TypeZStack        = "zstack"
	TypeSectionLayout = "sectionLayout"
	TypeForEach       = "forEach"
	TypeSpacer        = "spacer"
)

// Node is a single element of the document tree.
type Node interface {
	// NodeID returns the stable identity of the node, or "" when anonymous.
	NodeID() string
	// NodeType returns the wire type tag.
	NodeType() string
	// LocalState returns the node's local state block, or nil.
	LocalState() map[string]value.Value
}

// InteractionStyles holds per-interaction-state style references for
// interactive components. Normal is the base; the others refine it.
type InteractionStyles struct {
	Normal   string `json:"normal"`
	Selected string `json:"selected,omitempty"`
	Disabled string `json:"disabled,omitempty"`
}

// Component is a leaf (or unrecognized container) element typed by an open
// kind tag. Unmodeled wire properties are preserved in Extra so unknown
// component kinds survive parsing and reach the renderer untouched.
type Component struct {
	Kind         string
	ID           string
	StyleID      string
	Style        *Style
	States       *InteractionStyles
	Text         string
	Placeholder  string
	Bind         string
	LocalBind    string
	DataSourceID string
	Data         map[string]DataReference
	Actions      map[string]ActionBinding
	State        map[string]value.Value
	Extra        map[string]value.Value
}

func (c *Component) NodeID() string                     { return c.ID }
func (c *Component) NodeType() string                   { return c.Kind }
func (c *Component) LocalState() map[string]value.Value { return c.State }

// Layout is a stack container with children.
type Layout struct {
	Kind      string // vstack, hstack or zstack
	ID        string
	StyleID   string
	Style     *Style
	Alignment string
	Spacing   float64
	Actions   map[string]ActionBinding
	State     map[string]value.Value
	Children  []Node
}

func (l *Layout) NodeID() string                     { return l.ID }
func (l *Layout) NodeType() string                   { return l.Kind }
func (l *Layout) LocalState() map[string]value.Value { return l.State }

// SectionConfig describes how one section lays out its rows.
type SectionConfig struct {
	Type      string  `json:"type,omitempty"` // vstack or hstack, defaults to vstack
	Alignment string  `json:"alignment,omitempty"`
	Spacing   float64 `json:"spacing,omitempty"`
}

// Section is one ordered segment of a SectionLayout.
type Section struct {
	ID           string
	Layout       *SectionConfig
	Header       Node
	Footer       Node
	DataSourceID string
	Template     Node
	Children     []Node
}

// SectionLayout arranges ordered sections, each with its own layout
// configuration and optional header/footer/data-source-driven template.
type SectionLayout struct {
	ID       string
	StyleID  string
	Style    *Style
	State    map[string]value.Value
	Sections []Section
}

func (s *SectionLayout) NodeID() string                     { return s.ID }
func (s *SectionLayout) NodeType() string                   { return TypeSectionLayout }
func (s *SectionLayout) LocalState() map[string]value.Value { return s.State }

// ForEach repeats a template node once per element of a bound collection.
type ForEach struct {
	ID           string
	Bind         string
	LocalBind    string
	DataSourceID string
	ItemName     string // variable name for the element, defaults to "item"
	IndexName    string // variable name for the position, defaults to "index"
	Template     Node
	State        map[string]value.Value
}

func (f *ForEach) NodeID() string                     { return f.ID }
func (f *ForEach) NodeType() string                   { return TypeForEach }
func (f *ForEach) LocalState() map[string]value.Value { return f.State }

// Spacer is flexible empty space. It carries no identity and no state.
type Spacer struct {
	MinLength *float64
}

func (s *Spacer) NodeID() string                     { return "" }
func (s *Spacer) NodeType() string                   { return TypeSpacer }
func (s *Spacer) LocalState() map[string]value.Value { return nil }

// decodeNode routes a raw tree element to its concrete shape by type tag.
func decodeNode(raw json.RawMessage) (Node, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("node is not an object: %w", err)
	}
	if probe.Type == "" {
		return nil, fmt.Errorf("node is missing its type")
	}

	switch probe.Type {
	case TypeVStack, TypeHStack, TypeZStack:
		return decodeLayout(probe.Type, raw)
	case TypeSectionLayout:
		return decodeSectionLayout(raw)
	case TypeForEach:
		return decodeForEach(raw)
	case TypeSpacer:
		var aux struct {
			MinLength *float64 `json:"minLength"`
		}
		if err := json.Unmarshal(raw, &aux); err != nil {
			return nil, fmt.Errorf("invalid spacer: %w", err)
		}
		return &Spacer{MinLength: aux.MinLength}, nil
	default:
		return decodeComponent(probe.Type, raw)
	}
}

func decodeNodeList(raw []json.RawMessage) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for i, elem := range raw {
		node, err := decodeNode(elem)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeLayout(kind string, raw json.RawMessage) (*Layout, error) {
	var aux struct {
		ID        string                   `json:"id"`
		StyleID   string                   `json:"styleId"`
		Style     *Style                   `json:"style"`
		Alignment string                   `json:"alignment"`
		Spacing   float64                  `json:"spacing"`
		Actions   map[string]ActionBinding `json:"actions"`
		State     map[string]value.Value   `json:"state"`
		Children  []json.RawMessage        `json:"children"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", kind, err)
	}
	children, err := decodeNodeList(aux.Children)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return &Layout{
		Kind:      kind,
		ID:        aux.ID,
		StyleID:   aux.StyleID,
		Style:     aux.Style,
		Alignment: aux.Alignment,
		Spacing:   aux.Spacing,
		Actions:   aux.Actions,
		State:     aux.State,
		Children:  children,
	}, nil
}

func decodeSectionLayout(raw json.RawMessage) (*SectionLayout, error) {
	var aux struct {
		ID       string                 `json:"id"`
		StyleID  string                 `json:"styleId"`
		Style    *Style                 `json:"style"`
		State    map[string]value.Value `json:"state"`
		Sections []struct {
			ID           string            `json:"id"`
			Layout       *SectionConfig    `json:"layout"`
			Header       json.RawMessage   `json:"header"`
			Footer       json.RawMessage   `json:"footer"`
			DataSourceID string            `json:"dataSourceId"`
			Template     json.RawMessage   `json:"template"`
			Children     []json.RawMessage `json:"children"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("invalid sectionLayout: %w", err)
	}

	out := &SectionLayout{
		ID:      aux.ID,
		StyleID: aux.StyleID,
		Style:   aux.Style,
		State:   aux.State,
	}
	for i, sec := range aux.Sections {
		section := Section{
			ID:           sec.ID,
			Layout:       sec.Layout,
			DataSourceID: sec.DataSourceID,
		}
		var err error
		if len(sec.Header) > 0 {
			if section.Header, err = decodeNode(sec.Header); err != nil {
				return nil, fmt.Errorf("sectionLayout section %d header: %w", i, err)
			}
		}
		if len(sec.Footer) > 0 {
			if section.Footer, err = decodeNode(sec.Footer); err != nil {
				return nil, fmt.Errorf("sectionLayout section %d footer: %w", i, err)
			}
		}
		if len(sec.Template) > 0 {
			if section.Template, err = decodeNode(sec.Template); err != nil {
				return nil, fmt.Errorf("sectionLayout section %d template: %w", i, err)
			}
		}
		if section.Children, err = decodeNodeList(sec.Children); err != nil {
			return nil, fmt.Errorf("sectionLayout section %d: %w", i, err)
		}
		out.Sections = append(out.Sections, section)
	}
	return out, nil
}

func decodeForEach(raw json.RawMessage) (*ForEach, error) {
	var aux struct {
		ID           string                 `json:"id"`
		Bind         string                 `json:"bind"`
		LocalBind    string                 `json:"localBind"`
		DataSourceID string                 `json:"dataSourceId"`
		ItemName     string                 `json:"itemName"`
		IndexName    string                 `json:"indexName"`
		Template     json.RawMessage        `json:"template"`
		State        map[string]value.Value `json:"state"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("invalid forEach: %w", err)
	}
	if len(aux.Template) == 0 {
		return nil, fmt.Errorf("forEach is missing its template")
	}
	template, err := decodeNode(aux.Template)
	if err != nil {
		return nil, fmt.Errorf("forEach template: %w", err)
	}

	out := &ForEach{
		ID:           aux.ID,
		Bind:         aux.Bind,
		LocalBind:    aux.LocalBind,
		DataSourceID: aux.DataSourceID,
		ItemName:     aux.ItemName,
		IndexName:    aux.IndexName,
		Template:     template,
		State:        aux.State,
	}
	if out.ItemName == "" {
		out.ItemName = "item"
	}
	if out.IndexName == "" {
		out.IndexName = "index"
	}
	return out, nil
}

// componentKeys are the wire properties modeled on Component; everything
// else lands in the Extra bag.
var componentKeys = map[string]bool{
	"type": true, "id": true, "styleId": true, "style": true, "styles": true,
	"text": true, "placeholder": true, "bind": true, "localBind": true,
	"dataSourceId": true, "data": true, "actions": true, "state": true,
}

func decodeComponent(kind string, raw json.RawMessage) (*Component, error) {
	var aux struct {
		ID           string                   `json:"id"`
		StyleID      string                   `json:"styleId"`
		Style        *Style                   `json:"style"`
		States       *InteractionStyles       `json:"styles"`
		Text         string                   `json:"text"`
		Placeholder  string                   `json:"placeholder"`
		Bind         string                   `json:"bind"`
		LocalBind    string                   `json:"localBind"`
		DataSourceID string                   `json:"dataSourceId"`
		Data         map[string]DataReference `json:"data"`
		Actions      map[string]ActionBinding `json:"actions"`
		State        map[string]value.Value   `json:"state"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("invalid %s component: %w", kind, err)
	}

	var bag map[string]value.Value
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, fmt.Errorf("invalid %s component: %w", kind, err)
	}
	for key := range bag {
		if componentKeys[key] {
			delete(bag, key)
		}
	}
	if len(bag) == 0 {
		bag = nil
	}

	return &Component{
		Kind:         kind,
		ID:           aux.ID,
		StyleID:      aux.StyleID,
		Style:        aux.Style,
		States:       aux.States,
		Text:         aux.Text,
		Placeholder:  aux.Placeholder,
		Bind:         aux.Bind,
		LocalBind:    aux.LocalBind,
		DataSourceID: aux.DataSourceID,
		Data:         aux.Data,
		Actions:      aux.Actions,
		State:        aux.State,
		Extra:        bag,
	}, nil
}
