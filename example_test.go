package scals_test

import (
	"context"
	"fmt"
	"log"

	"github.com/scalsui/scals"
	"github.com/scalsui/scals/pkg/resolver"
)

// Example demonstrates the full loop: parse a document, bind a session,
// fire an interaction, and re-resolve the tree to observe the new state.
func Example() {
	engine, err := scals.New()
	if err != nil {
		log.Fatal(err)
	}

	doc, err := engine.Parse([]byte(`{
		"id": "counter",
		"state": {"count": 0},
		"root": {"children": [
			{"type": "label", "id": "display", "text": "Count: ${count}"},
			{"type": "button", "id": "plus", "actions": {
				"onTap": {"type": "setState", "parameters": {
					"path": "count", "value": "${count + 1}"
				}}
			}}
		]}
	}`))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	session, err := engine.NewSession(ctx, "demo", doc)
	if err != nil {
		log.Fatal(err)
	}

	tree := session.Tree()
	if err := session.Execute(ctx, tree, "plus", "onTap"); err != nil {
		log.Fatal(err)
	}

	session.Tree().Walk(func(n *resolver.Node) bool {
		if n.ID == "display" {
			fmt.Println(n.Text)
			return false
		}
		return true
	})
	// Output: Count: 1
}
