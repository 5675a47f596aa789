// Package sqlite provides a SQLite-backed storage driver.
//
// The memory record is one row in a records table keyed by name. Plain
// database/sql is used rather than an ORM: there is no relational schema to
// manage for a single opaque blob.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hearthhq/hearth/pkg/storage"
)

const recordName = "memory"

const schema = `
CREATE TABLE IF NOT EXISTS records (
	name TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Driver implements storage.Driver backed by a SQLite database.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed storage driver.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite-specific pragmas
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{db: db}, nil
}

// Load reads the memory record row.
func (d *Driver) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := d.db.QueryRowContext(ctx,
		"SELECT data FROM records WHERE name = ?", recordName,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFoundError{Name: recordName}
	}
	if err != nil {
		return nil, fmt.Errorf("loading memory record: %w", err)
	}

	return data, nil
}

// Save upserts the memory record row.
func (d *Driver) Save(ctx context.Context, data []byte) error {
	if data == nil {
		return errors.New("cannot save nil record")
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO records (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		recordName, data,
	)
	if err != nil {
		return fmt.Errorf("saving memory record: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	return d.db.Close()
}
