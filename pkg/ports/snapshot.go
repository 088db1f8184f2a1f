package ports

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when a session ID has no stored snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists state-store snapshots keyed by session ID,
// enabling a document instance to be restored in a later session.
type SnapshotStore interface {
	// Save persists the snapshot for a session.
	Save(ctx context.Context, sessionID string, snapshot map[string]any) error

	// Load retrieves the snapshot for a session.
	// Returns ErrSnapshotNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (map[string]any, error)

	// Delete removes the snapshot for a session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the session IDs with stored snapshots.
	List(ctx context.Context) ([]string, error)
}
