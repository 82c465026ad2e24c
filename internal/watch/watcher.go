// Package watch bridges filesystem changes in the store directory to
// cheatsheet change notifications.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/cheatsheeter/cheatsheeter/internal/models"
	"github.com/cheatsheeter/cheatsheeter/internal/storage"
)

// EventCallback is called for each cheatsheet change observed on disk.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, name string)

// Watch starts an fsnotify watcher on the store root and processes file
// change events until ctx is cancelled. The store is flat, so only the root
// itself is watched. The API's own writes surface here as well: the
// filesystem is the single source of truth, and an edit made by hand produces
// the same notification as one made over HTTP.
//
// Atomic replacement publishes files by renaming over the destination, which
// arrives as a Create event. A set of known names, seeded from the store at
// startup, distinguishes those updates from genuine creates.
func Watch(ctx context.Context, store storage.Provider, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	known := make(map[string]struct{})
	if names, listErr := store.List(); listErr == nil {
		for _, n := range names {
			known[n] = struct{}{}
		}
	} else {
		logger.Warn("watcher: initial list failed", slog.String("error", listErr.Error()))
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			name, ok := sheetName(ev.Name)
			if !ok {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				kind := "updated"
				if _, seen := known[name]; !seen {
					kind = "created"
					known[name] = struct{}{}
				}
				logger.Debug("watcher: changed", slog.String("name", name), slog.String("op", kind))
				if cb != nil {
					cb(kind, name)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// Rename fires on the old path; if the file comes back
				// under a new name, that arrives as a separate Create.
				if _, seen := known[name]; !seen {
					continue
				}
				delete(known, name)
				logger.Debug("watcher: deleted", slog.String("name", name))
				if cb != nil {
					cb("deleted", name)
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// sheetName extracts a valid cheatsheet name from an event path. Temp files,
// foreign files, and invalidly-named files report false.
func sheetName(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, storage.FileExt) {
		return "", false
	}
	stem := strings.TrimSuffix(base, storage.FileExt)
	if models.ValidateName(stem) != nil {
		return "", false
	}
	return stem, true
}
