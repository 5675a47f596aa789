// Package eventstream publishes memory change events to an event stream
// backend. Publishers receive transport-neutral payloads after the memory
// service's write lock is released, so downstream consumers only ever see
// fully-persisted mutations.
package eventstream

import "context"

// Publisher publishes snapshot update events to an event stream backend.
type Publisher interface {
	PublishSnapshotUpdated(ctx context.Context, event *SnapshotUpdatedEvent) error
	Close() error
}
