// Package validator performs static integrity checks on parsed documents:
// dangling style, data-source and action references, style inheritance
// cycles, and duplicate node ids. The parser accepts these documents (the
// engine degrades quietly at runtime); the validator exists so authors
// hear about them before shipping.
package validator

import (
	"fmt"
	"strings"

	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/style"
)

// ValidateDocument checks the cross-reference integrity of a document.
// All findings are collected and reported at once.
func ValidateDocument(def *document.Definition) error {
	var problems []string

	problems = append(problems, checkStyles(def)...)
	problems = append(problems, checkTree(def)...)

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

func checkStyles(def *document.Definition) []string {
	var problems []string

	for id, s := range def.Styles {
		if s.Inherits == "" {
			continue
		}
		// Follow the inherits chain to detect dangling parents and cycles.
		seen := map[string]bool{id: true}
		current := s.Inherits
		for current != "" {
			if seen[current] {
				problems = append(problems, fmt.Sprintf("style %q: inheritance cycle through %q", id, current))
				break
			}
			seen[current] = true
			parent, ok := def.Styles[current]
			if !ok {
				problems = append(problems, fmt.Sprintf("style %q: inherits unknown style %q", id, current))
				break
			}
			current = parent.Inherits
		}
	}
	return problems
}

func checkTree(def *document.Definition) []string {
	var problems []string
	seenIDs := make(map[string]bool)

	report := func(where, format string, args ...any) {
		problems = append(problems, where+": "+fmt.Sprintf(format, args...))
	}

	checkStyleRef := func(where, ref string) {
		if ref == "" || strings.HasPrefix(ref, style.DesignSystemPrefix) {
			return
		}
		if _, ok := def.Styles[ref]; !ok {
			report(where, "unknown style %q", ref)
		}
	}
	checkDataSource := func(where, id string) {
		if id == "" {
			return
		}
		if _, ok := def.DataSources[id]; !ok {
			report(where, "unknown data source %q", id)
		}
	}
	checkActions := func(where string, bindings map[string]document.ActionBinding) {
		for event, b := range bindings {
			if b.Reference == "" {
				continue
			}
			if _, ok := def.Actions[b.Reference]; !ok {
				report(where, "%s references unknown action %q", event, b.Reference)
			}
		}
	}

	checkStyleRef("root", def.Root.StyleID)
	checkActions("root", def.Root.Actions)

	def.Walk(func(n document.Node) bool {
		where := n.NodeType()
		if n.NodeID() != "" {
			where = fmt.Sprintf("%s %q", n.NodeType(), n.NodeID())
			if seenIDs[n.NodeID()] {
				report(where, "duplicate node id")
			}
			seenIDs[n.NodeID()] = true
		}

		switch t := n.(type) {
		case *document.Component:
			checkStyleRef(where, t.StyleID)
			if t.States != nil {
				checkStyleRef(where, t.States.Normal)
				checkStyleRef(where, t.States.Selected)
				checkStyleRef(where, t.States.Disabled)
			}
			checkDataSource(where, t.DataSourceID)
			checkActions(where, t.Actions)
		case *document.Layout:
			checkStyleRef(where, t.StyleID)
			checkActions(where, t.Actions)
		case *document.SectionLayout:
			checkStyleRef(where, t.StyleID)
			for _, sec := range t.Sections {
				checkDataSource(where, sec.DataSourceID)
			}
		case *document.ForEach:
			checkDataSource(where, t.DataSourceID)
		}
		return true
	})

	return problems
}
