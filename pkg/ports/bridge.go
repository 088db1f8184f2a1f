package ports

import (
	"context"

	"github.com/scalsui/scals/pkg/value"
)

// Alert is the payload of a showAlert action.
type Alert struct {
	Title   string
	Message string
	Buttons []string
}

// HostBridge receives the UI side-effects that only the host application
// can perform. Built-in action handlers call into it; the engine itself
// never does. All methods are invoked from action execution and may be
// called concurrently.
type HostBridge interface {
	// Dismiss closes the current presentation surface.
	Dismiss(ctx context.Context) error

	// Navigate pushes or presents the named destination.
	Navigate(ctx context.Context, destination string, params map[string]value.Value) error

	// ShowAlert presents an alert to the user.
	ShowAlert(ctx context.Context, alert Alert) error
}
