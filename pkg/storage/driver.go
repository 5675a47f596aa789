// Package storage defines the persistence substrate for the hearth memory
// snapshot: a single named, opaque record of bytes.
//
// The memory service owns the serialization format; drivers only move bytes.
// A driver must report a missing record with [NotFoundError] so the service
// can tell "first run" apart from an I/O failure.
package storage

import "context"

// Driver reads and writes the single memory record for an installation.
type Driver interface {
	// Load returns the current record bytes. Returns NotFoundError if no
	// record has ever been saved.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the record bytes. The write must be atomic: a reader
	// never observes a partially-written record.
	Save(ctx context.Context, data []byte) error

	// Close closes the store and releases any resources.
	Close() error
}
