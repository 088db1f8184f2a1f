package document_test

import (
	"testing"

	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, child string) document.Node {
	t.Helper()
	def, err := document.Parse([]byte(`{"id": "t", "root": {"children": [` + child + `]}}`))
	require.NoError(t, err)
	require.Len(t, def.Root.Children, 1)
	return def.Root.Children[0]
}

func TestDecode_UnknownKindBecomesComponent(t *testing.T) {
	node := parseOne(t, `{
		"type": "starRating",
		"id": "rating",
		"bind": "review.stars",
		"maxStars": 5,
		"allowsHalfStars": true
	}`)

	comp, ok := node.(*document.Component)
	require.True(t, ok, "unrecognized kinds decode as generic components")
	assert.Equal(t, "starRating", comp.Kind)
	assert.Equal(t, "rating", comp.ID)
	assert.Equal(t, "review.stars", comp.Bind)

	// Unmodeled wire properties survive in the extra bag.
	assert.True(t, value.Int(5).Equal(comp.Extra["maxStars"]))
	assert.True(t, value.Bool(true).Equal(comp.Extra["allowsHalfStars"]))
	assert.NotContains(t, comp.Extra, "bind", "modeled keys stay out of the bag")
}

func TestDecode_ComponentInteractionStyles(t *testing.T) {
	node := parseOne(t, `{
		"type": "button",
		"styles": {"normal": "btn", "selected": "btnSelected", "disabled": "btnDisabled"}
	}`)

	comp := node.(*document.Component)
	require.NotNil(t, comp.States)
	assert.Equal(t, "btn", comp.States.Normal)
	assert.Equal(t, "btnSelected", comp.States.Selected)
	assert.Equal(t, "btnDisabled", comp.States.Disabled)
}

func TestDecode_ActionBindingForms(t *testing.T) {
	node := parseOne(t, `{
		"type": "button",
		"actions": {
			"onTap": "sharedAction",
			"onLongPress": {"type": "dismiss"}
		}
	}`)

	comp := node.(*document.Component)
	assert.Equal(t, "sharedAction", comp.Actions["onTap"].Reference)
	require.NotNil(t, comp.Actions["onLongPress"].Inline)
	assert.Equal(t, "dismiss", comp.Actions["onLongPress"].Inline.Type)
}

func TestDecode_ActionBindingRejectsEmptyForms(t *testing.T) {
	_, err := document.Parse([]byte(`{"id": "t", "root": {"children": [
		{"type": "button", "actions": {"onTap": ""}}
	]}}`))
	assert.ErrorIs(t, err, document.ErrDecode)

	_, err = document.Parse([]byte(`{"id": "t", "root": {"children": [
		{"type": "button", "actions": {"onTap": {"parameters": {}}}}
	]}}`))
	assert.ErrorIs(t, err, document.ErrDecode)
}

func TestDecode_DataReferenceKindInference(t *testing.T) {
	def, err := document.Parse([]byte(`{
		"id": "t",
		"dataSources": {
			"literal": {"value": "hello"},
			"bound": {"path": "user.name"},
			"local": {"kind": "localBinding", "path": "expanded"},
			"templated": {"template": "${user.name}!"}
		},
		"root": {"children": []}
	}`))
	require.NoError(t, err)

	assert.Equal(t, document.RefStatic, def.DataSources["literal"].Kind)
	assert.Equal(t, document.RefBinding, def.DataSources["bound"].Kind)
	assert.Equal(t, document.RefLocalBinding, def.DataSources["local"].Kind)
	assert.Equal(t, "${user.name}!", def.DataSources["templated"].Template)
}

func TestDecode_ForEach(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		node := parseOne(t, `{
			"type": "forEach",
			"bind": "todos",
			"template": {"type": "label", "text": "${item.title}"}
		}`)

		fe := node.(*document.ForEach)
		assert.Equal(t, "todos", fe.Bind)
		assert.Equal(t, "item", fe.ItemName)
		assert.Equal(t, "index", fe.IndexName)
		require.NotNil(t, fe.Template)
	})

	t.Run("Custom Names", func(t *testing.T) {
		node := parseOne(t, `{
			"type": "forEach",
			"bind": "todos",
			"itemName": "todo",
			"indexName": "row",
			"template": {"type": "label", "text": "${todo.title}"}
		}`)

		fe := node.(*document.ForEach)
		assert.Equal(t, "todo", fe.ItemName)
		assert.Equal(t, "row", fe.IndexName)
	})

	t.Run("Missing Template Fails", func(t *testing.T) {
		_, err := document.Parse([]byte(`{"id": "t", "root": {"children": [
			{"type": "forEach", "bind": "todos"}
		]}}`))
		assert.ErrorIs(t, err, document.ErrDecode)
	})
}

func TestDecode_Spacer(t *testing.T) {
	node := parseOne(t, `{"type": "spacer", "minLength": 12}`)
	spacer := node.(*document.Spacer)
	require.NotNil(t, spacer.MinLength)
	assert.Equal(t, 12.0, *spacer.MinLength)

	node = parseOne(t, `{"type": "spacer"}`)
	assert.Nil(t, node.(*document.Spacer).MinLength)
}

func TestDecode_SectionLayout(t *testing.T) {
	node := parseOne(t, `{
		"type": "sectionLayout",
		"id": "feed",
		"sections": [
			{
				"id": "pinned",
				"layout": {"type": "hstack", "spacing": 4},
				"header": {"type": "label", "text": "Pinned"},
				"children": [{"type": "label", "text": "first"}]
			},
			{
				"id": "stream",
				"dataSourceId": "posts",
				"template": {"type": "label", "text": "${item.title}"},
				"footer": {"type": "label", "text": "End"}
			}
		]
	}`)

	sl := node.(*document.SectionLayout)
	require.Len(t, sl.Sections, 2)

	pinned := sl.Sections[0]
	assert.Equal(t, "pinned", pinned.ID)
	require.NotNil(t, pinned.Layout)
	assert.Equal(t, "hstack", pinned.Layout.Type)
	require.NotNil(t, pinned.Header)
	require.Len(t, pinned.Children, 1)

	stream := sl.Sections[1]
	assert.Equal(t, "posts", stream.DataSourceID)
	require.NotNil(t, stream.Template)
	require.NotNil(t, stream.Footer)
	assert.Nil(t, stream.Header)
}

func TestWalk_VisitsEveryNode(t *testing.T) {
	def, err := document.Parse([]byte(`{
		"id": "t",
		"root": {"children": [
			{"type": "vstack", "id": "outer", "children": [
				{"type": "label", "id": "a"},
				{"type": "hstack", "id": "inner", "children": [
					{"type": "label", "id": "b"}
				]}
			]},
			{"type": "forEach", "id": "list", "bind": "xs",
				"template": {"type": "label", "id": "tmpl"}},
			{"type": "sectionLayout", "id": "sections", "sections": [
				{"header": {"type": "label", "id": "hdr"},
				 "children": [{"type": "label", "id": "c"}]}
			]}
		]}
	}`))
	require.NoError(t, err)

	var ids []string
	def.Walk(func(n document.Node) bool {
		ids = append(ids, n.NodeID())
		return true
	})
	assert.Equal(t, []string{"outer", "a", "inner", "b", "list", "tmpl", "sections", "hdr", "c"}, ids)
}

func TestWalk_StopsOnFalse(t *testing.T) {
	def, err := document.Parse([]byte(`{
		"id": "t",
		"root": {"children": [
			{"type": "vstack", "id": "outer", "children": [
				{"type": "label", "id": "a"},
				{"type": "label", "id": "b"}
			]}
		]}
	}`))
	require.NoError(t, err)

	var count int
	def.Walk(func(document.Node) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}
