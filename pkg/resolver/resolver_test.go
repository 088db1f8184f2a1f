package resolver_test

import (
	"context"
	"testing"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/actions"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/resolver"
	"github.com/scalsui/scals/pkg/statestore"
	"github.com/scalsui/scals/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *document.Definition {
	t.Helper()
	def, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return def
}

func findNode(t *testing.T, tree *resolver.Tree, id string) *resolver.Node {
	t.Helper()
	var found *resolver.Node
	tree.Walk(func(n *resolver.Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	require.NotNil(t, found, "node %q not in resolved tree", id)
	return found
}

func TestResolve_TextTemplates(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"user": {"name": "Ada"}, "unread": 3},
		"root": {"children": [
			{"type": "label", "id": "greeting", "text": "Hi ${user.name}, ${unread} unread"}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	assert.Equal(t, "Hi Ada, 3 unread", findNode(t, tree, "greeting").Text)
}

func TestResolve_ReResolutionSeesStateChanges(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"count": 0},
		"root": {"children": [
			{"type": "label", "id": "counter", "text": "${count}"}
		]}
	}`)
	store := statestore.New(nil)
	res := resolver.New(doc, store, nil)

	assert.Equal(t, "0", findNode(t, res.Resolve(), "counter").Text)
	require.NoError(t, store.Set("count", value.Int(7)))
	assert.Equal(t, "7", findNode(t, res.Resolve(), "counter").Text)
}

func TestResolve_SeedingDoesNotOverwrite(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"count": 0},
		"root": {"children": []}
	}`)
	store := statestore.New(nil)
	require.NoError(t, store.Set("count", value.Int(9)))

	resolver.New(doc, store, nil)
	assert.True(t, value.Int(9).Equal(store.Get("count")))
}

func TestResolve_Styles(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"styles": {
			"base":  {"fontSize": 14, "textColor": "#111111"},
			"title": {"inherits": "base", "fontSize": 24},
			"btn":         {"backgroundColor": "#0000FF"},
			"btnSelected": {"backgroundColor": "#FF0000"}
		},
		"root": {"children": [
			{"type": "label", "id": "heading", "styleId": "title",
			 "style": {"textColor": "#222222"}},
			{"type": "button", "id": "cta",
			 "styles": {"normal": "btn", "selected": "btnSelected"}}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	heading := findNode(t, tree, "heading").Styles.Normal
	require.NotNil(t, heading.FontSize)
	assert.Equal(t, 24.0, *heading.FontSize, "child overrides inherited size")
	require.NotNil(t, heading.TextColor)
	assert.Equal(t, "#222222", *heading.TextColor, "inline overrides named style")

	cta := findNode(t, tree, "cta").Styles
	assert.Equal(t, "#0000FF", *cta.Normal.BackgroundColor)
	assert.Equal(t, "#FF0000", *cta.Selected.BackgroundColor)
	assert.Equal(t, "#0000FF", *cta.Disabled.BackgroundColor, "disabled falls back to normal")
}

func TestResolve_BindsAndDataSources(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"profile": {"name": "Ada"}},
		"dataSources": {
			"who": {"path": "profile.name"}
		},
		"root": {"children": [
			{"type": "avatar", "id": "direct", "bind": "profile.name"},
			{"type": "avatar", "id": "indirect", "dataSourceId": "who"},
			{"type": "avatar", "id": "dangling", "dataSourceId": "nope"}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	assert.True(t, value.String("Ada").Equal(findNode(t, tree, "direct").Value))
	assert.True(t, value.String("Ada").Equal(findNode(t, tree, "indirect").Value))
	assert.True(t, findNode(t, tree, "dangling").Value.IsNull(), "dangling source degrades to null")
}

func TestResolve_ForEach(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"todos": [
			{"title": "write"}, {"title": "review"}, {"title": "ship"}
		]},
		"root": {"children": [
			{"type": "vstack", "id": "list", "children": [
				{"type": "forEach", "bind": "todos",
				 "template": {"type": "label", "id": "row", "text": "${index}: ${item.title}"}}
			]}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	list := findNode(t, tree, "list")
	require.Len(t, list.Children, 3)
	assert.Equal(t, "row[0]", list.Children[0].ID)
	assert.Equal(t, "0: write", list.Children[0].Text)
	assert.Equal(t, "2: ship", list.Children[2].Text)
}

func TestResolve_ForEachNonArrayExpandsToNothing(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"todos": "oops"},
		"root": {"children": [
			{"type": "vstack", "id": "list", "children": [
				{"type": "forEach", "bind": "todos",
				 "template": {"type": "label", "text": "${item}"}}
			]}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	assert.Empty(t, findNode(t, tree, "list").Children)
}

func TestResolve_SectionLayout(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"posts": [{"title": "one"}, {"title": "two"}]},
		"dataSources": {"posts": {"path": "posts"}},
		"root": {"children": [
			{"type": "sectionLayout", "id": "feed", "sections": [
				{"id": "stream",
				 "layout": {"type": "hstack", "spacing": 6},
				 "header": {"type": "label", "id": "hdr", "text": "Posts"},
				 "dataSourceId": "posts",
				 "template": {"type": "label", "text": "${item.title}"}}
			]}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	feed := findNode(t, tree, "feed")
	require.Len(t, feed.Children, 1)

	stream := feed.Children[0]
	assert.Equal(t, document.TypeHStack, stream.Kind)
	assert.Equal(t, 6.0, stream.Spacing)
	require.NotNil(t, stream.Header)
	assert.Equal(t, "Posts", stream.Header.Text)
	require.Len(t, stream.Children, 2)
	assert.Equal(t, "one", stream.Children[0].Text)
	assert.Equal(t, "two", stream.Children[1].Text)
}

func TestResolve_ExtraBagTemplates(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"state": {"stars": 4},
		"root": {"children": [
			{"type": "starRating", "id": "rating", "maxStars": 5, "current": "${stars}"}
		]}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	rating := findNode(t, tree, "rating")
	assert.True(t, value.Int(5).Equal(rating.Extra["maxStars"]))
	assert.True(t, value.Int(4).Equal(rating.Extra["current"]))
}

// sessionHarness wires resolver, store and the built-in action engine the
// way a live session does, so interaction round-trips can be exercised.
type sessionHarness struct {
	store  *statestore.Store
	res    *resolver.Resolver
	engine *action.Engine
	doc    *document.Definition
}

func newSession(t *testing.T, src string) *sessionHarness {
	t.Helper()
	reg := action.NewRegistry()
	require.NoError(t, actions.RegisterBuiltins(reg))
	doc := parse(t, src)
	store := statestore.New(nil)
	return &sessionHarness{
		store:  store,
		res:    resolver.New(doc, store, nil),
		engine: action.New(reg),
		doc:    doc,
	}
}

func (s *sessionHarness) fire(t *testing.T, tree *resolver.Tree, nodeID, event string) {
	t.Helper()
	in, ok := tree.Interaction(nodeID, event)
	require.True(t, ok, "no %s action on %q", event, nodeID)
	err := s.engine.ExecuteBinding(context.Background(), in.Binding,
		action.ResolutionContext{Document: s.doc},
		action.ExecutionContext{Store: s.store, Scope: in.Scope, Bindings: in.Bindings})
	require.NoError(t, err)
}

func TestResolve_LocalStateSiblingIsolation(t *testing.T) {
	s := newSession(t, `{
		"id": "t",
		"root": {"children": [
			{"type": "card", "id": "card-a",
			 "state": {"expanded": false},
			 "localBind": "expanded",
			 "actions": {"onTap": {"type": "toggleState",
				"parameters": {"path": "expanded", "local": true}}}},
			{"type": "card", "id": "card-b",
			 "state": {"expanded": false},
			 "localBind": "expanded",
			 "actions": {"onTap": {"type": "toggleState",
				"parameters": {"path": "expanded", "local": true}}}}
		]}
	}`)

	tree := s.res.Resolve()
	assert.True(t, value.Bool(false).Equal(findNode(t, tree, "card-a").Value))
	assert.True(t, value.Bool(false).Equal(findNode(t, tree, "card-b").Value))

	s.fire(t, tree, "card-a", "onTap")

	tree = s.res.Resolve()
	assert.True(t, value.Bool(true).Equal(findNode(t, tree, "card-a").Value), "tapped card expanded")
	assert.True(t, value.Bool(false).Equal(findNode(t, tree, "card-b").Value), "sibling untouched")
}

func TestResolve_RepeatedInstancesGetDistinctScopes(t *testing.T) {
	s := newSession(t, `{
		"id": "t",
		"state": {"rows": ["x", "y"]},
		"root": {"children": [
			{"type": "vstack", "id": "list", "children": [
				{"type": "forEach", "bind": "rows",
				 "template": {"type": "row", "id": "row",
					"state": {"selected": false},
					"localBind": "selected",
					"actions": {"onTap": {"type": "toggleState",
						"parameters": {"path": "selected", "local": true}}}}}
			]}
		]}
	}`)

	tree := s.res.Resolve()
	s.fire(t, tree, "row[1]", "onTap")

	tree = s.res.Resolve()
	list := findNode(t, tree, "list")
	require.Len(t, list.Children, 2)
	assert.True(t, value.Bool(false).Equal(list.Children[0].Value))
	assert.True(t, value.Bool(true).Equal(list.Children[1].Value))
}

func TestResolve_GlobalActionRoundTrip(t *testing.T) {
	s := newSession(t, `{
		"id": "t",
		"state": {"count": 0},
		"actions": {
			"bump": {"type": "setState", "parameters": {"path": "count", "value": "${count + 1}"}}
		},
		"root": {"children": [
			{"type": "label", "id": "counter", "text": "${count}"},
			{"type": "button", "id": "plus", "actions": {"onTap": "bump"}}
		]}
	}`)

	tree := s.res.Resolve()
	s.fire(t, tree, "plus", "onTap")
	s.fire(t, tree, "plus", "onTap")

	assert.Equal(t, "2", findNode(t, s.res.Resolve(), "counter").Text)
}

func TestResolve_RootActions(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"actions": {"hello": {"type": "dismiss"}},
		"root": {
			"actions": {"onAppear": "hello"},
			"children": []
		}
	}`)
	store := statestore.New(nil)
	tree := resolver.New(doc, store, nil).Resolve()

	in, ok := tree.RootAction("onAppear")
	require.True(t, ok)
	assert.Equal(t, "hello", in.Binding.Reference)

	_, ok = tree.RootAction("onDisappear")
	assert.False(t, ok)
}

func TestResolve_AnonymousNodesGetStableIDs(t *testing.T) {
	doc := parse(t, `{
		"id": "t",
		"root": {"children": [
			{"type": "vstack", "children": [
				{"type": "label", "text": "a"},
				{"type": "label", "text": "b"}
			]}
		]}
	}`)
	store := statestore.New(nil)

	first := resolver.New(doc, store, nil).Resolve()
	second := resolver.New(doc, store, nil).Resolve()

	var firstIDs, secondIDs []string
	first.Walk(func(n *resolver.Node) bool { firstIDs = append(firstIDs, n.ID); return true })
	second.Walk(func(n *resolver.Node) bool { secondIDs = append(secondIDs, n.ID); return true })

	assert.Equal(t, firstIDs, secondIDs, "synthesized ids are stable across resolutions")
	assert.Len(t, firstIDs, 3)
}
