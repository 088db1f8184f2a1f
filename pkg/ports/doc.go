/*
Package ports defines the driven ports (interfaces) for the engine.

These interfaces decouple the resolution and execution core from its
collaborators: the host application's design system, the host-side effects
that actions like navigate and showAlert trigger, and the persistence of
state snapshots across rendering sessions.

# Key Interfaces

  - DesignSystemProvider: resolves "@"-prefixed style references outside
    the document's local style table.
  - HostBridge: receives UI side-effects (dismiss, navigate, alerts) that
    only the host can perform.
  - SnapshotStore: persists state-store snapshots so a document instance
    can be restored in a later session.
*/
package ports
