// Package graph renders resolved trees as Mermaid flowcharts, for
// inspecting document structure without a host renderer.
package graph

import (
	"fmt"
	"strings"

	"github.com/scalsui/scals/pkg/resolver"
)

// GenerateMermaid produces Mermaid flowchart syntax for a resolved tree.
// Shapes carry meaning:
// - Document root: ((Circle))
// - Stacks and section layouts: [[Subroutine]]
// - Interactive nodes (events bound): [/Parallelogram/]
// - Everything else: [Rectangle]
// Interactive nodes are additionally highlighted with a class style.
func GenerateMermaid(tree *resolver.Tree) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    root((\"%s\"))\n", escapeLabel(tree.DocumentID)))

	g := &generator{sb: &sb}
	for _, child := range tree.Children {
		g.writeNode("root", child)
	}

	if len(g.interactive) > 0 {
		sb.WriteString("\n    %% Interactive nodes\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef interactive fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, id := range g.interactive {
			sb.WriteString(fmt.Sprintf("    class %s interactive;\n", id))
		}
	}

	return sb.String()
}

type generator struct {
	sb          *strings.Builder
	counter     int
	interactive []string
}

func (g *generator) writeNode(parentID string, n *resolver.Node) {
	if n == nil {
		return
	}

	id := g.idFor(n)
	opener, closer := "[", "]"
	switch {
	case len(n.Events) > 0:
		opener, closer = "[/", "/]"
	case len(n.Children) > 0 || n.Header != nil || n.Footer != nil:
		opener, closer = "[[", "]]"
	}

	label := n.Kind
	if n.Text != "" {
		label = fmt.Sprintf("%s: %s", n.Kind, n.Text)
	}
	g.sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(label), closer))

	arrow := "-->"
	if len(n.Events) > 0 {
		arrow = fmt.Sprintf("-- \"%s\" -->", strings.Join(n.Events, ","))
		g.interactive = append(g.interactive, id)
	}
	g.sb.WriteString(fmt.Sprintf("    %s %s %s\n", parentID, arrow, id))

	g.writeNode(id, n.Header)
	for _, child := range n.Children {
		g.writeNode(id, child)
	}
	g.writeNode(id, n.Footer)
}

// idFor returns the node's Mermaid identifier: its sanitized id when it
// has one, a synthesized one otherwise.
func (g *generator) idFor(n *resolver.Node) string {
	if n.ID != "" {
		return sanitizeMermaidID(n.ID)
	}
	g.counter++
	return fmt.Sprintf("anon%d", g.counter)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "[", "_")
	s = strings.ReplaceAll(s, "]", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}
