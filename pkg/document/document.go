// Package document holds the typed representation of a parsed UI document
// and the schema-validating parser that produces it. Parsing is fail-fast
// and whole-document: any structural error anywhere in the tree rejects the
// entire input. Unknown component kinds, in contrast, are accepted and
// preserved as generic components so newer documents keep working against
// older hosts.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/scalsui/scals/pkg/value"
)

// Root is the top-level container of a document.
type Root struct {
	BackgroundColor string
	StyleID         string
	ColorScheme     string
	EdgeInsets      *EdgeInsets
	Actions         map[string]ActionBinding // onAppear / onDisappear
	Children        []Node
}

// Definition is a fully parsed document. ID and Root are mandatory;
// everything else defaults to absent.
type Definition struct {
	ID          string
	Version     string
	State       map[string]value.Value
	Styles      map[string]Style
	DataSources map[string]DataReference
	Actions     map[string]Action
	Root        Root
}

func (d *Definition) decodeFrom(data []byte) error {
	var aux struct {
		ID          string                   `json:"id"`
		Version     string                   `json:"version"`
		State       map[string]value.Value   `json:"state"`
		Styles      map[string]Style         `json:"styles"`
		DataSources map[string]DataReference `json:"dataSources"`
		Actions     map[string]Action        `json:"actions"`
		Root        *struct {
			BackgroundColor string                   `json:"backgroundColor"`
			StyleID         string                   `json:"styleId"`
			ColorScheme     string                   `json:"colorScheme"`
			EdgeInsets      *EdgeInsets              `json:"edgeInsets"`
			Actions         map[string]ActionBinding `json:"actions"`
			Children        []json.RawMessage        `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.ID == "" {
		return fmt.Errorf("document is missing its id")
	}
	if aux.Root == nil {
		return fmt.Errorf("document is missing its root")
	}
	if aux.Root.Children == nil {
		return fmt.Errorf("document root is missing its children")
	}

	children, err := decodeNodeList(aux.Root.Children)
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}

	d.ID = aux.ID
	d.Version = aux.Version
	d.State = aux.State
	d.Styles = aux.Styles
	d.DataSources = aux.DataSources
	d.Actions = aux.Actions
	d.Root = Root{
		BackgroundColor: aux.Root.BackgroundColor,
		StyleID:         aux.Root.StyleID,
		ColorScheme:     aux.Root.ColorScheme,
		EdgeInsets:      aux.Root.EdgeInsets,
		Actions:         aux.Root.Actions,
		Children:        children,
	}
	return nil
}

// Walk visits every node of the tree in depth-first document order,
// including section headers, footers and templates. Returning false from
// fn stops the walk.
func (d *Definition) Walk(fn func(Node) bool) {
	walkNodes(d.Root.Children, fn)
}

func walkNodes(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !walkNode(n, fn) {
			return false
		}
	}
	return true
}

func walkNode(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	switch t := n.(type) {
	case *Layout:
		return walkNodes(t.Children, fn)
	case *SectionLayout:
		for _, sec := range t.Sections {
			if !walkNode(sec.Header, fn) || !walkNode(sec.Footer, fn) || !walkNode(sec.Template, fn) {
				return false
			}
			if !walkNodes(sec.Children, fn) {
				return false
			}
		}
	case *ForEach:
		return walkNode(t.Template, fn)
	}
	return true
}
