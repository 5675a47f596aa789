package servecmder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/pkg/memory"
)

// debounceWindow coalesces event bursts from atomic temp-file renames into a
// single reload.
const debounceWindow = 200 * time.Millisecond

// storeWatcher reloads the memory service when the backing file changes on
// disk. Changes written through the service itself also fire events; the
// extra reload is harmless since the on-disk and in-memory state agree.
type storeWatcher struct {
	path    string
	svc     *memory.Service
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

func newStoreWatcher(path string, svc *memory.Service, logger *zap.Logger) (*storeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating store watcher: %w", err)
	}

	// Watch the directory, not the file: atomic renames replace the inode.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching store dir: %w", err)
	}

	return &storeWatcher{
		path:    path,
		svc:     svc,
		watcher: watcher,
		logger:  logger,
	}, nil
}

func (w *storeWatcher) run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var debounce *time.Timer
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-w.watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
				reload = debounce.C
			} else {
				debounce.Reset(debounceWindow)
			}

		case <-reload:
			debounce = nil
			reload = nil

			w.logger.Info("memory file changed on disk, reloading",
				zap.String("path", w.path),
			)
			if err := w.svc.Reload(ctx); err != nil {
				w.logger.Error("reloading memory store failed", zap.Error(err))
			}

		case err := <-w.watcher.Errors:
			return fmt.Errorf("store watcher error: %w", err)
		}
	}
}
