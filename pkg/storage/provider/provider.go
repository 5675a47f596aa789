// Package provider constructs a storage driver from configuration. Shared by
// every command that opens the memory store.
package provider

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/dotdir"
	"github.com/hearthhq/hearth/pkg/storage"
	"github.com/hearthhq/hearth/pkg/storage/file"
	"github.com/hearthhq/hearth/pkg/storage/inmemory"
	"github.com/hearthhq/hearth/pkg/storage/postgres"
	"github.com/hearthhq/hearth/pkg/storage/sqlite"
)

const (
	recordFile = "memory.json"
	sqliteFile = "memory.db"
)

// FromConfig opens the storage driver selected by cfg.Storage. Relative
// defaults land in the resolved .hearth/ directory.
func FromConfig(ctx context.Context, cfg *config.Config, overrideDir string) (storage.Driver, error) {
	switch cfg.Storage.Provider {
	case "file", "":
		path := cfg.Storage.Path
		if path == "" {
			dir, err := dotdir.NewManager().Target(overrideDir)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, recordFile)
		}
		return file.NewDriver(path)

	case "sqlite":
		path := cfg.Storage.SQLitePath
		if path == "" {
			dir, err := dotdir.NewManager().Target(overrideDir)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, sqliteFile)
		}
		return sqlite.NewDriver(path)

	case "postgres":
		if cfg.Storage.PostgresDSN == "" {
			return nil, fmt.Errorf("storage.postgres_dsn is required for the postgres provider")
		}
		return postgres.NewDriver(ctx, cfg.Storage.PostgresDSN)

	case "memory":
		return inmemory.NewDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage provider: %q", cfg.Storage.Provider)
	}
}
