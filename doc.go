/*
Package scals is a server-driven UI engine: it parses JSON UI documents into typed component trees, resolves styles, data bindings and template expressions against a concurrent state store, and executes user-triggered actions through an open plugin registry.

It separates the document (what the server sends) from the state (what the user changed) and from side-effects (what the host performs). This hexagonal layout lets the engine sit behind any surface: a native renderer, an HTTP service, or a CLI.

# Concept

A document declares components, styles, data sources and actions. The engine owns everything between the wire format and the renderer: schema-validating parse, style inheritance and design-system resolution, ${...} expression evaluation, repeater expansion, and an action state machine whose vocabulary is entirely registry-driven. The host ("bridge") supplies UI side-effects like navigation and alerts.

# Key Features

  - Fail-fast parsing: one malformed node or unresolvable action rejects the whole document.
  - Total resolution: unknown styles, dangling bindings and failing expressions degrade quietly instead of erroring.
  - Open action vocabulary: every action kind, built-ins included, goes through the same registry; hosts add kinds without touching the engine.
  - Scoped state: path-addressable global state plus per-component local state with strict sibling isolation.
  - Session persistence: snapshot stores (in-memory, Redis) let a document instance survive process restarts.

# Usage

Create an Engine, parse a document, and bind it to a session.

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/scalsui/scals"
	)

	func main() {
		eng, err := scals.New()
		if err != nil {
			log.Fatal(err)
		}

		raw, err := os.ReadFile("home.json")
		if err != nil {
			log.Fatal(err)
		}

		doc, err := eng.Parse(raw)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		session, err := eng.NewSession(ctx, "session-123", doc)
		if err != nil {
			log.Fatal(err)
		}

		// Resolve -> render -> interact -> re-resolve.
		tree := session.Tree()
		if err := session.Appear(ctx, tree); err != nil {
			log.Printf("onAppear: %v", err)
		}

		if err := session.Execute(ctx, tree, "save-button", "onTap"); err != nil {
			log.Printf("onTap: %v", err)
		}

		tree = session.Tree() // reflects the action's state changes
		_ = tree
	}
*/
package scals
