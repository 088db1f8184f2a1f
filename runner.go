package scals

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/scalsui/scals/pkg/resolver"
)

// Runner drives an interactive session loop over provided IO. It exists
// for terminal previews and tests; real hosts render trees themselves.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms a node's text before output. This allows TUI
// rendering (e.g. ANSI styling) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. The caller must set Input and Output.
func NewRunner() *Runner {
	return &Runner{}
}

// Run renders the session's tree and processes interaction commands of
// the form "tap <nodeID> [event]" until EOF or "quit". Each command
// re-resolves the tree so output always reflects current state.
func (r *Runner) Run(ctx context.Context, session *Session) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	tree := session.Tree()
	if err := session.Appear(ctx, tree); err != nil {
		fmt.Fprintf(r.Output, "onAppear failed: %v\n", err)
	}

	for {
		tree = session.Tree()
		r.render(tree)

		if r.Headless {
			return nil
		}

		fmt.Fprint(r.Output, "> ")
		line, err := lineReader.ReadString('\n')
		if err == io.EOF {
			return session.Disappear(ctx, tree)
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return session.Disappear(ctx, tree)
		case "tap":
			if len(fields) < 2 {
				fmt.Fprintln(r.Output, "usage: tap <nodeID> [event]")
				continue
			}
			event := "onTap"
			if len(fields) > 2 {
				event = fields[2]
			}
			if err := session.Execute(ctx, tree, fields[1], event); err != nil {
				fmt.Fprintf(r.Output, "action failed: %v\n", err)
			}
		default:
			fmt.Fprintf(r.Output, "unknown command %q\n", fields[0])
		}
	}
}

func (r *Runner) render(tree *resolver.Tree) {
	for _, n := range tree.Children {
		r.renderNode(n, 0)
	}
}

func (r *Runner) renderNode(n *resolver.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	label := n.Kind
	if text := r.renderText(n.Text); text != "" {
		label = fmt.Sprintf("%s %q", n.Kind, text)
	}
	if len(n.Events) > 0 {
		label = fmt.Sprintf("%s [%s: %s]", label, n.ID, strings.Join(n.Events, ","))
	}
	fmt.Fprintf(r.Output, "%s%s\n", indent, label)

	if n.Header != nil {
		r.renderNode(n.Header, depth+1)
	}
	for _, child := range n.Children {
		r.renderNode(child, depth+1)
	}
	if n.Footer != nil {
		r.renderNode(n.Footer, depth+1)
	}
}

func (r *Runner) renderText(text string) string {
	if text == "" || r.Renderer == nil {
		return text
	}
	rendered, err := r.Renderer(text)
	if err != nil {
		return text
	}
	return rendered
}
