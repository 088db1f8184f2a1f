// Package binding resolves data references and template expressions
// against the state store. Resolution is deliberately total: unresolvable
// paths and failing expressions degrade to Null (or to an empty segment
// inside a larger template) rather than erroring, because bindings are
// expected to tolerate not-yet-populated state. Evaluation never mutates
// the store.
package binding

import (
	"io"
	"log/slog"

	exprlang "github.com/expr-lang/expr"

	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/statestore"
	"github.com/scalsui/scals/pkg/value"
)

// Resolver evaluates bindings for one position in the document tree. It is
// cheap to copy; derived resolvers share the store but carry their own
// local scope and injected variables.
type Resolver struct {
	store       *statestore.Store
	scope       *statestore.Scope
	dataSources map[string]document.DataReference
	vars        map[string]any
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for degraded-evaluation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver over the given store and document data sources.
func New(store *statestore.Store, dataSources map[string]document.DataReference, opts ...Option) *Resolver {
	r := &Resolver{
		store:       store,
		dataSources: dataSources,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InScope returns a resolver whose localBind lookups route through the
// given scope. The receiver is unchanged.
func (r *Resolver) InScope(scope *statestore.Scope) *Resolver {
	derived := *r
	derived.scope = scope
	return &derived
}

// WithVars returns a resolver with extra expression variables (forEach
// item/index injection) overlaid on the state environment.
func (r *Resolver) WithVars(vars map[string]any) *Resolver {
	derived := *r
	merged := make(map[string]any, len(r.vars)+len(vars))
	for k, v := range r.vars {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}
	derived.vars = merged
	return &derived
}

// Scope returns the resolver's current local scope, or nil at the root.
func (r *Resolver) Scope() *statestore.Scope { return r.scope }

// Resolve produces the concrete value a DataReference points at.
func (r *Resolver) Resolve(ref document.DataReference) value.Value {
	if ref.Template != "" {
		return r.ResolveTemplate(ref.Template)
	}
	switch ref.Kind {
	case document.RefStatic:
		if ref.Value == nil {
			return value.Null()
		}
		return *ref.Value
	case document.RefBinding:
		return r.ResolveBind(ref.Path)
	case document.RefLocalBinding:
		return r.ResolveLocalBind(ref.Path)
	}
	return value.Null()
}

// ResolveBind reads a global state path.
func (r *Resolver) ResolveBind(path string) value.Value {
	if path == "" {
		return value.Null()
	}
	return r.store.Get(path)
}

// ResolveLocalBind reads a path in the nearest enclosing local scope.
// Outside any scope it yields Null; it never falls through to global state.
func (r *Resolver) ResolveLocalBind(path string) value.Value {
	if path == "" || r.scope == nil {
		return value.Null()
	}
	return r.scope.GetLocal(path)
}

// ResolveDataSource indirects through the document's named data sources.
// Unknown ids yield Null.
func (r *Resolver) ResolveDataSource(id string) value.Value {
	ref, ok := r.dataSources[id]
	if !ok {
		r.logger.Debug("unknown data source", "dataSourceId", id)
		return value.Null()
	}
	return r.Resolve(ref)
}

// ResolveTemplate evaluates a template string. A template with no ${...}
// segments is returned verbatim as a String. A template that is exactly
// one ${...} segment returns the expression's typed value. Mixed templates
// stringify each segment and concatenate, with failing segments rendering
// as empty text.
func (r *Resolver) ResolveTemplate(tmpl string) value.Value {
	segs := scanTemplate(tmpl)

	if len(segs) == 1 {
		if !segs[0].expr {
			return value.String(segs[0].text)
		}
		return r.Eval(segs[0].text)
	}

	var out []byte
	for _, seg := range segs {
		if !seg.expr {
			out = append(out, seg.text...)
			continue
		}
		out = append(out, r.Eval(seg.text).Stringify()...)
	}
	return value.String(string(out))
}

// Eval evaluates a single expression against current state. The
// environment exposes every top-level global state key, the enclosing
// local scope under "local", and any injected variables. Failures degrade
// to Null.
func (r *Resolver) Eval(code string) value.Value {
	program, err := compileExpression(code)
	if err != nil {
		r.logger.Debug("expression failed to compile", "expr", code, "err", err)
		return value.Null()
	}

	result, err := exprlang.Run(program, r.environment())
	if err != nil {
		r.logger.Debug("expression failed to evaluate", "expr", code, "err", err)
		return value.Null()
	}

	converted, err := value.FromAny(result)
	if err != nil {
		r.logger.Debug("expression produced an unsupported value", "expr", code, "err", err)
		return value.Null()
	}
	return converted
}

func (r *Resolver) environment() map[string]any {
	env := r.store.GlobalSnapshot()
	if r.scope != nil {
		env["local"] = r.scope.LocalSnapshot()
	}
	for k, v := range r.vars {
		env[k] = v
	}
	return env
}
