// Package file provides a file-backed storage driver. The record lives as a
// single file, typically memory.json inside the .hearth/ directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hearthhq/hearth/pkg/storage"
)

// Driver implements storage.Driver backed by one file on disk.
type Driver struct {
	path string
}

// NewDriver creates a file-backed storage driver writing to path. The parent
// directory must already exist (dotdir.Manager.Target handles creation).
func NewDriver(path string) (*Driver, error) {
	if path == "" {
		return nil, errors.New("storage file path is required")
	}

	return &Driver{path: path}, nil
}

// Path returns the absolute location of the record file.
func (d *Driver) Path() string {
	return d.path
}

// Load reads the record file.
func (d *Driver) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.NotFoundError{Name: d.path}
		}
		return nil, fmt.Errorf("reading memory record: %w", err)
	}

	return data, nil
}

// Save writes the record via a temp file and rename so a crashed write never
// leaves a half-written record behind.
func (d *Driver) Save(_ context.Context, data []byte) error {
	if data == nil {
		return errors.New("cannot save nil record")
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".memory-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp record: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing memory record: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp record: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing memory record: %w", err)
	}

	return nil
}

// Close is a no-op; the driver holds no open handles between calls.
func (d *Driver) Close() error {
	return nil
}
