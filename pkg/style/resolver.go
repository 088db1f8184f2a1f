// Package style flattens style references into concrete style records.
// Resolution merges three sources, weakest first: the inheritance chain of
// a named style (root ancestor first, child overriding per property), then
// a design-system style for "@"-prefixed references, then the component's
// inline style. Resolution is total: unknown references yield a zero style.
package style

import (
	"io"
	"log/slog"
	"strings"

	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/ports"
)

// DesignSystemPrefix marks references resolved by the external design
// system provider instead of the document's local style table.
const DesignSystemPrefix = "@"

// Resolver resolves style references for one document.
type Resolver struct {
	styles   map[string]document.Style
	provider ports.DesignSystemProvider
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProvider wires a design system provider for "@" references.
func WithProvider(p ports.DesignSystemProvider) Option {
	return func(r *Resolver) {
		r.provider = p
	}
}

// WithLogger sets the logger for degraded-resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver over the document's local style table.
func New(styles map[string]document.Style, opts ...Option) *Resolver {
	r := &Resolver{
		styles: styles,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve flattens the reference and merges the inline override on top.
// It never fails: an empty or unknown reference contributes nothing, and
// a nil inline override is skipped.
func (r *Resolver) Resolve(ref string, inline *document.Style) document.Style {
	base := r.resolveReference(ref)
	if inline != nil {
		base = base.Merge(*inline)
	}
	return base
}

// ResolveStates resolves the per-interaction-state references of an
// interactive component. Normal is the base; selected and disabled each
// resolve independently through the full pipeline, with the inline
// override applied to all three.
func (r *Resolver) ResolveStates(states *document.InteractionStyles, inline *document.Style) (normal, selected, disabled document.Style) {
	if states == nil {
		normal = r.Resolve("", inline)
		return normal, normal, normal
	}
	normal = r.Resolve(states.Normal, inline)
	selected = normal
	if states.Selected != "" {
		selected = r.Resolve(states.Selected, inline)
	}
	disabled = normal
	if states.Disabled != "" {
		disabled = r.Resolve(states.Disabled, inline)
	}
	return normal, selected, disabled
}

func (r *Resolver) resolveReference(ref string) document.Style {
	if ref == "" {
		return document.Style{}
	}
	if strings.HasPrefix(ref, DesignSystemPrefix) {
		if r.provider == nil {
			r.logger.Debug("design system reference without a provider", "ref", ref)
			return document.Style{}
		}
		resolved := r.provider.ResolveStyle(ref)
		if resolved == nil {
			r.logger.Debug("design system reference not found", "ref", ref)
			return document.Style{}
		}
		return *resolved
	}
	return r.flattenChain(ref)
}

// flattenChain walks inherits pointers from the named style to its root
// ancestor, then merges back down so children override ancestors per
// property. A repeated id means the chain is cyclic; the walk stops there
// and resolution proceeds with the chain collected so far.
func (r *Resolver) flattenChain(id string) document.Style {
	var chain []document.Style
	seen := map[string]bool{}

	for current := id; current != ""; {
		if seen[current] {
			r.logger.Warn("style inheritance cycle", "styleId", id, "repeated", current)
			break
		}
		seen[current] = true

		s, ok := r.styles[current]
		if !ok {
			if current == id {
				r.logger.Debug("unknown style reference", "styleId", id)
			}
			break
		}
		chain = append(chain, s)
		current = s.Inherits
	}

	var out document.Style
	for i := len(chain) - 1; i >= 0; i-- {
		out = out.Merge(chain[i])
	}
	return out
}
