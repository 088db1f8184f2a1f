package ports

import "github.com/scalsui/scals/pkg/document"

// DesignSystemProvider resolves "@"-prefixed style references against an
// external design system. Returning nil means "no match"; the style
// resolver degrades to an empty style in that case.
type DesignSystemProvider interface {
	ResolveStyle(reference string) *document.Style
}

// DesignSystemFunc adapts a function to the DesignSystemProvider interface.
type DesignSystemFunc func(reference string) *document.Style

func (f DesignSystemFunc) ResolveStyle(reference string) *document.Style {
	return f(reference)
}
