package resolver

import (
	"github.com/scalsui/scals/pkg/binding"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/statestore"
	"github.com/scalsui/scals/pkg/value"
)

// StateStyles holds the concrete style of a node for each interaction
// state. Non-interactive nodes carry the same style in all three.
type StateStyles struct {
	Normal   document.Style `json:"normal"`
	Selected document.Style `json:"selected"`
	Disabled document.Style `json:"disabled"`
}

// Node is one render-ready element: every style flattened, every template
// evaluated, every data reference replaced by its current value. Nothing
// in a Node requires further resolution by the renderer.
type Node struct {
	Kind        string                 `json:"kind"`
	ID          string                 `json:"id"`
	Styles      StateStyles            `json:"styles"`
	Text        string                 `json:"text,omitempty"`
	Placeholder string                 `json:"placeholder,omitempty"`
	Value       value.Value            `json:"value,omitzero"`
	Data        map[string]value.Value `json:"data,omitempty"`
	Events      []string               `json:"events,omitempty"`
	Alignment   string                 `json:"alignment,omitempty"`
	Spacing     float64                `json:"spacing,omitempty"`
	MinLength   *float64               `json:"minLength,omitempty"`
	Extra       map[string]value.Value `json:"extra,omitempty"`
	Header      *Node                  `json:"header,omitempty"`
	Footer      *Node                  `json:"footer,omitempty"`
	Children    []*Node                `json:"children,omitempty"`
}

// Tree is a fully resolved document against one state snapshot. It also
// carries the interaction table: every node event that has an action
// bound, addressable by the node's stable id.
type Tree struct {
	DocumentID      string               `json:"documentId"`
	BackgroundColor string               `json:"backgroundColor,omitempty"`
	ColorScheme     string               `json:"colorScheme,omitempty"`
	EdgeInsets      *document.EdgeInsets `json:"edgeInsets,omitempty"`
	Style           document.Style       `json:"style"`
	Children        []*Node              `json:"children"`

	interactions map[string]nodeInteractions
	rootActions  map[string]document.ActionBinding
	rootBinder   *binding.Resolver
}

type nodeInteractions struct {
	events map[string]document.ActionBinding
	scope  *statestore.Scope
	binder *binding.Resolver
}

// Interaction bundles everything needed to execute one node event: the
// action binding plus the scope and binding resolver of the position in
// the tree where the node was resolved.
type Interaction struct {
	Binding  document.ActionBinding
	Scope    *statestore.Scope
	Bindings *binding.Resolver
}

// Interaction looks up the action bound to an event of a node.
func (t *Tree) Interaction(nodeID, event string) (Interaction, bool) {
	ni, ok := t.interactions[nodeID]
	if !ok {
		return Interaction{}, false
	}
	b, ok := ni.events[event]
	if !ok {
		return Interaction{}, false
	}
	return Interaction{Binding: b, Scope: ni.scope, Bindings: ni.binder}, true
}

// RootAction looks up a document-level lifecycle action (onAppear,
// onDisappear).
func (t *Tree) RootAction(event string) (Interaction, bool) {
	b, ok := t.rootActions[event]
	if !ok {
		return Interaction{}, false
	}
	return Interaction{Binding: b, Bindings: t.rootBinder}, true
}

// Walk visits every resolved node depth-first, section headers and
// footers included. Returning false stops the walk.
func (t *Tree) Walk(fn func(*Node) bool) {
	walkResolved(t.Children, fn)
}

func walkResolved(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if !walkResolvedNode(n, fn) {
			return false
		}
	}
	return true
}

func walkResolvedNode(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if n.Header != nil && !walkResolvedNode(n.Header, fn) {
		return false
	}
	if !walkResolved(n.Children, fn) {
		return false
	}
	return n.Footer == nil || walkResolvedNode(n.Footer, fn)
}
