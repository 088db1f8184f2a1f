package action

import (
	"context"
	"sync"
)

// CancelRegistry tracks in-flight cancelable work keyed by an explicit,
// document-supplied identifier. A request-style handler registers its
// context's cancel function under the id from its parameters; a
// cancel-style handler cancels by that id. The engine imposes no timeouts;
// that policy belongs to individual handlers.
type CancelRegistry struct {
	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewCancelRegistry creates an empty cancel registry.
func NewCancelRegistry() *CancelRegistry {
	return &CancelRegistry{cancels: make(map[string]context.CancelFunc)}
}

// Track registers cancel under id. A previous entry with the same id is
// canceled first: two in-flight requests must not share an id.
func (c *CancelRegistry) Track(id string, cancel context.CancelFunc) {
	if id == "" || cancel == nil {
		return
	}
	c.mu.Lock()
	prev := c.cancels[id]
	c.cancels[id] = cancel
	c.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// Cancel cancels the work tracked under id, reporting whether anything was
// in flight.
func (c *CancelRegistry) Cancel(id string) bool {
	c.mu.Lock()
	cancel, ok := c.cancels[id]
	delete(c.cancels, id)
	c.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Release forgets id without canceling. Handlers call it when their work
// completes normally.
func (c *CancelRegistry) Release(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	delete(c.cancels, id)
	c.mu.Unlock()
}
