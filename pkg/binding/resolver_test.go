package binding_test

import (
	"testing"

	"github.com/scalsui/scals/pkg/binding"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/statestore"
	"github.com/scalsui/scals/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *statestore.Store {
	t.Helper()
	return statestore.New(map[string]value.Value{
		"counter": value.Int(2),
		"user": value.Object(map[string]value.Value{
			"name": value.String("Ada"),
			"age":  value.Int(36),
		}),
		"price": value.Double(9.5),
	})
}

func TestResolver_Bind(t *testing.T) {
	r := binding.New(newStore(t), nil)

	assert.Equal(t, value.String("Ada"), r.ResolveBind("user.name"))
	assert.True(t, r.ResolveBind("user.missing").IsNull())
	assert.True(t, r.ResolveBind("").IsNull())
}

func TestResolver_LocalBind(t *testing.T) {
	store := newStore(t)
	scope := store.Scope("panel")
	scope.Seed(map[string]value.Value{"open": value.Bool(true)})

	root := binding.New(store, nil)
	assert.True(t, root.ResolveLocalBind("open").IsNull(), "no scope means no local state")

	scoped := root.InScope(scope)
	assert.Equal(t, value.Bool(true), scoped.ResolveLocalBind("open"))
	assert.True(t, scoped.ResolveLocalBind("counter").IsNull(), "localBind must not fall through to global")
}

func TestResolver_DataSource(t *testing.T) {
	static := value.String("hello")
	sources := map[string]document.DataReference{
		"greeting": {Kind: document.RefStatic, Value: &static},
		"username": {Kind: document.RefBinding, Path: "user.name"},
		"headline": {Kind: document.RefBinding, Template: "${user.name} (${user.age})"},
	}
	r := binding.New(newStore(t), sources)

	assert.Equal(t, value.String("hello"), r.ResolveDataSource("greeting"))
	assert.Equal(t, value.String("Ada"), r.ResolveDataSource("username"))
	assert.Equal(t, value.String("Ada (36)"), r.ResolveDataSource("headline"))
	assert.True(t, r.ResolveDataSource("nope").IsNull())
}

func TestResolver_Templates(t *testing.T) {
	r := binding.New(newStore(t), nil)

	t.Run("Verbatim Without Segments", func(t *testing.T) {
		assert.Equal(t, value.String("plain text"), r.ResolveTemplate("plain text"))
	})

	t.Run("Single Segment Keeps Type", func(t *testing.T) {
		assert.Equal(t, value.Int(2), r.ResolveTemplate("${counter}"))
		assert.Equal(t, value.Int(3), r.ResolveTemplate("${counter + 1}"))
	})

	t.Run("Mixed Segments Stringify", func(t *testing.T) {
		out := r.ResolveTemplate("count: ${counter}, next: ${counter + 1}")
		assert.Equal(t, value.String("count: 2, next: 3"), out)
	})

	t.Run("Arithmetic And Concatenation", func(t *testing.T) {
		assert.Equal(t, value.Double(19), r.ResolveTemplate("${price * 2}"))
		assert.Equal(t, value.String("Ada!"), r.ResolveTemplate(`${user.name + "!"}`))
	})

	t.Run("Equality And Ternary", func(t *testing.T) {
		assert.Equal(t, value.Bool(true), r.ResolveTemplate("${counter == 2}"))
		assert.Equal(t, value.String("even"), r.ResolveTemplate(`${counter % 2 == 0 ? "even" : "odd"}`))
	})

	t.Run("Missing Variables Degrade", func(t *testing.T) {
		assert.True(t, r.ResolveTemplate("${nothing.here}").IsNull())
		assert.Equal(t, value.String("v="), r.ResolveTemplate("v=${nothing.here}"))
	})

	t.Run("Unterminated Marker Is Literal", func(t *testing.T) {
		assert.Equal(t, value.String("${oops"), r.ResolveTemplate("${oops"))
	})
}

func TestResolver_EvalIsReadOnly(t *testing.T) {
	store := newStore(t)
	r := binding.New(store, nil)

	before := store.Snapshot()
	_ = r.ResolveTemplate("${counter + 40}")
	_ = r.ResolveTemplate("${unknown ?? 1}")
	assert.Equal(t, before, store.Snapshot(), "evaluation must never mutate state")
}

func TestResolver_InjectedVars(t *testing.T) {
	r := binding.New(newStore(t), nil).WithVars(map[string]any{
		"item":  map[string]any{"label": "first"},
		"index": 0,
	})

	assert.Equal(t, value.String("first"), r.ResolveTemplate("${item.label}"))
	assert.Equal(t, value.Int(1), r.ResolveTemplate("${index + 1}"))
}

func TestResolver_StaticReference(t *testing.T) {
	r := binding.New(newStore(t), nil)

	v := value.Int(12)
	assert.Equal(t, value.Int(12), r.Resolve(document.DataReference{Kind: document.RefStatic, Value: &v}))
	assert.True(t, r.Resolve(document.DataReference{Kind: document.RefStatic}).IsNull())

	require.True(t, r.Resolve(document.DataReference{Kind: "weird"}).IsNull())
}
