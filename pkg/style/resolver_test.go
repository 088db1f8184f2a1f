package style_test

import (
	"testing"

	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/ports"
	"github.com/scalsui/scals/pkg/style"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string   { return &s }
func numptr(f float64) *float64 { return &f }

func TestResolver_InheritanceChain(t *testing.T) {
	styles := map[string]document.Style{
		"a": {FontSize: numptr(1)},
		"b": {Inherits: "a", TextColor: strptr("#111111")},
		"c": {Inherits: "b", FontSize: numptr(3)},
	}
	r := style.New(styles)

	resolved := r.Resolve("c", nil)
	assert.Equal(t, 3.0, *resolved.FontSize, "child overrides ancestor per property")
	assert.Equal(t, "#111111", *resolved.TextColor, "non-overridden ancestor properties survive")
}

func TestResolver_CycleBreaks(t *testing.T) {
	styles := map[string]document.Style{
		"a": {Inherits: "b", FontSize: numptr(10)},
		"b": {Inherits: "a", TextColor: strptr("#222222")},
	}
	r := style.New(styles)

	resolved := r.Resolve("a", nil)
	assert.Equal(t, 10.0, *resolved.FontSize)
	assert.Equal(t, "#222222", *resolved.TextColor)
}

func TestResolver_UnknownReferenceIsEmpty(t *testing.T) {
	r := style.New(nil)

	assert.True(t, r.Resolve("ghost", nil).IsZero())
	assert.True(t, r.Resolve("@ds.ghost", nil).IsZero(), "no provider configured")
}

func TestResolver_DesignSystemPrecedence(t *testing.T) {
	provider := ports.DesignSystemFunc(func(ref string) *document.Style {
		if ref == "@btn.primary" {
			return &document.Style{
				CornerRadius:    numptr(12),
				BackgroundColor: strptr("#6366F1"),
			}
		}
		return nil
	})
	r := style.New(map[string]document.Style{
		// A local style with the same name must never shadow a design
		// system reference.
		"@btn.primary": {BackgroundColor: strptr("#000000")},
	}, style.WithProvider(provider))

	inline := &document.Style{BackgroundColor: strptr("#FF0000")}
	resolved := r.Resolve("@btn.primary", inline)

	assert.Equal(t, 12.0, *resolved.CornerRadius, "provider properties survive")
	assert.Equal(t, "#FF0000", *resolved.BackgroundColor, "inline override wins per property")

	assert.True(t, r.Resolve("@btn.missing", nil).IsZero(), "provider miss degrades to empty")
}

func TestResolver_InlineOverridesLocal(t *testing.T) {
	r := style.New(map[string]document.Style{
		"title": {FontSize: numptr(20), TextColor: strptr("#333333")},
	})

	resolved := r.Resolve("title", &document.Style{FontSize: numptr(24)})
	assert.Equal(t, 24.0, *resolved.FontSize)
	assert.Equal(t, "#333333", *resolved.TextColor)
}

func TestResolver_PerStateStyles(t *testing.T) {
	r := style.New(map[string]document.Style{
		"btn":          {BackgroundColor: strptr("#FFFFFF"), CornerRadius: numptr(8)},
		"btn.selected": {BackgroundColor: strptr("#DDDDDD")},
	})

	normal, selected, disabled := r.ResolveStates(&document.InteractionStyles{
		Normal:   "btn",
		Selected: "btn.selected",
	}, nil)

	assert.Equal(t, "#FFFFFF", *normal.BackgroundColor)
	assert.Equal(t, "#DDDDDD", *selected.BackgroundColor)
	assert.Nil(t, selected.CornerRadius, "each state resolves independently, not as a refinement merge")
	assert.Equal(t, normal, disabled, "absent states fall back to normal")
}
