// Package resolver turns a parsed document plus current state into a
// render-ready tree: styles flattened, templates evaluated, data
// references replaced by values, repeaters expanded, and every actionable
// node indexed for execution. Resolution never mutates global state; it
// only seeds declared local state blocks that have not been touched yet,
// so re-resolving after user edits preserves them.
package resolver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/scalsui/scals/pkg/binding"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/ports"
	"github.com/scalsui/scals/pkg/statestore"
	"github.com/scalsui/scals/pkg/style"
	"github.com/scalsui/scals/pkg/value"
)

// Resolver resolves one document against one state store. It is cheap to
// keep around and safe to call repeatedly as state changes.
type Resolver struct {
	doc    *document.Definition
	store  *statestore.Store
	styles *style.Resolver
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for degraded-resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver and seeds the store with the document's declared
// initial state. Seeding never overwrites: keys the store already holds
// keep their values.
func New(doc *document.Definition, store *statestore.Store, provider ports.DesignSystemProvider, opts ...Option) *Resolver {
	r := &Resolver{
		doc:    doc,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = style.New(doc.Styles,
		style.WithProvider(provider),
		style.WithLogger(r.logger))

	for key, v := range doc.State {
		if store.Get(key).IsNull() {
			if err := store.Set(key, v); err != nil {
				r.logger.Warn("failed to seed document state", "key", key, "err", err)
			}
		}
	}
	return r
}

// Resolve builds the render tree for the current state snapshot.
func (r *Resolver) Resolve() *Tree {
	binder := binding.New(r.store, r.doc.DataSources, binding.WithLogger(r.logger))
	tree := &Tree{
		DocumentID:      r.doc.ID,
		BackgroundColor: r.doc.Root.BackgroundColor,
		ColorScheme:     r.doc.Root.ColorScheme,
		EdgeInsets:      r.doc.Root.EdgeInsets,
		Style:           r.styles.Resolve(r.doc.Root.StyleID, nil),
		interactions:    make(map[string]nodeInteractions),
		rootActions:     r.doc.Root.Actions,
		rootBinder:      binder,
	}

	b := &builder{res: r, tree: tree}
	tree.Children = b.nodes(r.doc.Root.Children, "root", binder, nil)
	return tree
}

// builder carries the per-resolution accumulation: the tree under
// construction, its interaction index, and the repeat suffix appended to
// explicit ids inside repeater instances so siblings stay distinct.
type builder struct {
	res    *Resolver
	tree   *Tree
	suffix string
}

// nodes resolves a sibling list. The path names the parent position and
// seeds synthesized ids for anonymous nodes.
func (b *builder) nodes(in []document.Node, path string, binder *binding.Resolver, scope *statestore.Scope) []*Node {
	out := make([]*Node, 0, len(in))
	for i, n := range in {
		out = append(out, b.node(n, fmt.Sprintf("%s.%d", path, i), binder, scope)...)
	}
	return out
}

// node resolves a single document node. Repeaters expand to zero or more
// resolved nodes; everything else resolves to exactly one.
func (b *builder) node(n document.Node, path string, binder *binding.Resolver, scope *statestore.Scope) []*Node {
	if n == nil {
		return nil
	}

	id := n.NodeID()
	if id == "" {
		id = path
	} else {
		id += b.suffix
	}

	// A declared local state block opens a scope owned by this node.
	// Descendant localBind references and local writes resolve here.
	if state := n.LocalState(); state != nil {
		scope = b.res.store.Scope(id)
		scope.Seed(state)
		binder = binder.InScope(scope)
	}

	switch t := n.(type) {
	case *document.Component:
		return []*Node{b.component(t, id, binder, scope)}
	case *document.Layout:
		return []*Node{b.layout(t, id, binder, scope)}
	case *document.SectionLayout:
		return []*Node{b.sectionLayout(t, id, binder, scope)}
	case *document.ForEach:
		return b.forEach(t, id, binder, scope)
	case *document.Spacer:
		return []*Node{{Kind: document.TypeSpacer, ID: id, MinLength: t.MinLength}}
	}

	b.res.logger.Warn("unhandled node shape", "type", n.NodeType(), "id", id)
	return nil
}

func (b *builder) component(c *document.Component, id string, binder *binding.Resolver, scope *statestore.Scope) *Node {
	node := &Node{
		Kind:        c.Kind,
		ID:          id,
		Text:        resolveText(binder, c.Text),
		Placeholder: resolveText(binder, c.Placeholder),
	}

	if c.States != nil {
		node.Styles.Normal, node.Styles.Selected, node.Styles.Disabled =
			b.res.styles.ResolveStates(c.States, c.Style)
	} else {
		s := b.res.styles.Resolve(c.StyleID, c.Style)
		node.Styles = StateStyles{Normal: s, Selected: s, Disabled: s}
	}

	switch {
	case c.Bind != "":
		node.Value = binder.ResolveBind(c.Bind)
	case c.LocalBind != "":
		node.Value = binder.ResolveLocalBind(c.LocalBind)
	case c.DataSourceID != "":
		node.Value = binder.ResolveDataSource(c.DataSourceID)
	}

	if len(c.Data) > 0 {
		node.Data = make(map[string]value.Value, len(c.Data))
		for k, ref := range c.Data {
			node.Data[k] = binder.Resolve(ref)
		}
	}

	if len(c.Extra) > 0 {
		node.Extra = make(map[string]value.Value, len(c.Extra))
		for k, v := range c.Extra {
			if s, ok := v.AsString(); ok {
				node.Extra[k] = binder.ResolveTemplate(s)
				continue
			}
			node.Extra[k] = v
		}
	}

	node.Events = b.register(id, c.Actions, binder, scope)
	return node
}

func (b *builder) layout(l *document.Layout, id string, binder *binding.Resolver, scope *statestore.Scope) *Node {
	s := b.res.styles.Resolve(l.StyleID, l.Style)
	return &Node{
		Kind:      l.Kind,
		ID:        id,
		Styles:    StateStyles{Normal: s, Selected: s, Disabled: s},
		Alignment: l.Alignment,
		Spacing:   l.Spacing,
		Events:    b.register(id, l.Actions, binder, scope),
		Children:  b.nodes(l.Children, id, binder, scope),
	}
}

func (b *builder) sectionLayout(sl *document.SectionLayout, id string, binder *binding.Resolver, scope *statestore.Scope) *Node {
	s := b.res.styles.Resolve(sl.StyleID, sl.Style)
	node := &Node{
		Kind:   document.TypeSectionLayout,
		ID:     id,
		Styles: StateStyles{Normal: s, Selected: s, Disabled: s},
	}

	for i, sec := range sl.Sections {
		secID := sec.ID
		if secID == "" {
			secID = fmt.Sprintf("%s.%d", id, i)
		}
		secNode := &Node{Kind: "section", ID: secID}
		if sec.Layout != nil {
			secNode.Kind = sectionKind(sec.Layout.Type)
			secNode.Alignment = sec.Layout.Alignment
			secNode.Spacing = sec.Layout.Spacing
		} else {
			secNode.Kind = document.TypeVStack
		}

		if sec.Header != nil {
			if headers := b.node(sec.Header, secID+".header", binder, scope); len(headers) > 0 {
				secNode.Header = headers[0]
			}
		}
		if sec.Footer != nil {
			if footers := b.node(sec.Footer, secID+".footer", binder, scope); len(footers) > 0 {
				secNode.Footer = footers[0]
			}
		}

		secNode.Children = b.nodes(sec.Children, secID, binder, scope)
		if sec.Template != nil && sec.DataSourceID != "" {
			items := b.expand(sec.Template, binder.ResolveDataSource(sec.DataSourceID),
				"item", "index", secID, binder, scope)
			secNode.Children = append(secNode.Children, items...)
		}

		node.Children = append(node.Children, secNode)
	}
	return node
}

func (b *builder) forEach(fe *document.ForEach, id string, binder *binding.Resolver, scope *statestore.Scope) []*Node {
	var collection value.Value
	switch {
	case fe.Bind != "":
		collection = binder.ResolveBind(fe.Bind)
	case fe.LocalBind != "":
		collection = binder.ResolveLocalBind(fe.LocalBind)
	case fe.DataSourceID != "":
		collection = binder.ResolveDataSource(fe.DataSourceID)
	}
	return b.expand(fe.Template, collection, fe.ItemName, fe.IndexName, id, binder, scope)
}

// expand instantiates a template once per element of a collection. A
// non-array collection expands to nothing.
func (b *builder) expand(template document.Node, collection value.Value, itemName, indexName, baseID string, binder *binding.Resolver, scope *statestore.Scope) []*Node {
	elems, ok := collection.AsArray()
	if !ok {
		if !collection.IsNull() {
			b.res.logger.Debug("repeater bound to a non-array", "id", baseID, "kind", collection.Kind().String())
		}
		return nil
	}

	out := make([]*Node, 0, len(elems))
	for i, elem := range elems {
		itemBinder := binder.WithVars(map[string]any{
			itemName:  elem.ToAny(),
			indexName: i,
		})
		instance := &builder{
			res:    b.res,
			tree:   b.tree,
			suffix: fmt.Sprintf("%s[%d]", b.suffix, i),
		}
		out = append(out, instance.node(template, fmt.Sprintf("%s[%d]", baseID, i), itemBinder, scope)...)
	}
	return out
}

// register indexes a node's action bindings for later execution and
// returns the bound event names.
func (b *builder) register(id string, actions map[string]document.ActionBinding, binder *binding.Resolver, scope *statestore.Scope) []string {
	if len(actions) == 0 {
		return nil
	}
	if _, exists := b.tree.interactions[id]; exists {
		b.res.logger.Warn("duplicate node id in interaction index", "id", id)
	}
	b.tree.interactions[id] = nodeInteractions{events: actions, scope: scope, binder: binder}

	events := make([]string, 0, len(actions))
	for event := range actions {
		events = append(events, event)
	}
	return events
}

func resolveText(binder *binding.Resolver, tmpl string) string {
	if tmpl == "" {
		return ""
	}
	return binder.ResolveTemplate(tmpl).Stringify()
}

func sectionKind(t string) string {
	if t == "" {
		return document.TypeVStack
	}
	return t
}
