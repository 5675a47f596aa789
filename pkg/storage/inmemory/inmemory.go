// Package inmemory provides an in-process storage driver used by tests and
// ephemeral runs. Nothing survives process exit.
package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/hearthhq/hearth/pkg/storage"
)

// Driver implements storage.Driver using a byte slice guarded by a mutex.
type Driver struct {
	mu sync.RWMutex

	data  []byte
	saved bool
}

// NewDriver creates a new in-memory storage driver with no record.
func NewDriver() *Driver {
	return &Driver{}
}

// Load returns a copy of the record bytes.
func (d *Driver) Load(_ context.Context) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.saved {
		return nil, storage.NotFoundError{Name: "inmemory"}
	}

	out := make([]byte, len(d.data))
	copy(out, d.data)
	return out, nil
}

// Save replaces the record bytes. The stored copy is private to the driver
// so later caller mutations cannot tear a concurrent Load.
func (d *Driver) Save(_ context.Context, data []byte) error {
	if data == nil {
		return errors.New("cannot save nil record")
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.data = stored
	d.saved = true
	return nil
}

// Close is a no-op.
func (d *Driver) Close() error {
	return nil
}
