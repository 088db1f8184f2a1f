// Package observability provides lifecycle hooks and Prometheus metrics
// for the action engine. Both are optional: the engine runs silently when
// neither is wired.
package observability

import (
	"context"
	"time"
)

// ActionEvent describes one resolution or execution of an action.
type ActionEvent struct {
	Kind         string
	InvocationID string
	Duration     time.Duration
	Err          error
}

// Hooks defines callbacks for engine observability. Nil callbacks are
// skipped. Hooks run synchronously on the invocation's flow; keep them
// fast.
type Hooks struct {
	OnActionResolve func(context.Context, *ActionEvent)
	OnActionExecute func(context.Context, *ActionEvent)
}

// EmitResolve fires the resolution hook if set.
func (h Hooks) EmitResolve(ctx context.Context, ev *ActionEvent) {
	if h.OnActionResolve != nil {
		h.OnActionResolve(ctx, ev)
	}
}

// EmitExecute fires the execution hook if set.
func (h Hooks) EmitExecute(ctx context.Context, ev *ActionEvent) {
	if h.OnActionExecute != nil {
		h.OnActionExecute(ctx, ev)
	}
}
