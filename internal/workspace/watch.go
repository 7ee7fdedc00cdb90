package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/envcheck/internal/logging"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Watcher implements ports.Watchable for a set of workspace files.
// It watches their directories, not the files, to catch editors that
// save by renaming.
type Watcher struct {
	root   string
	files  map[string]bool
	dirs   []string
	logger *slog.Logger
}

// NewWatcher tracks files (absolute paths) plus the root config file and
// any .env* file created in root.
func NewWatcher(root string, files []string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}

	w := &Watcher{
		root:   filepath.Clean(root),
		files:  make(map[string]bool, len(files)),
		logger: logger,
	}

	seenDirs := map[string]bool{w.root: true}
	w.dirs = append(w.dirs, w.root)
	for _, f := range files {
		f = filepath.Clean(f)
		w.files[f] = true
		if dir := filepath.Dir(f); !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// Watch starts watching. Bursts of events collapse into one pending signal.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", "path", dir)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
					continue
				}
				if !w.Relevant(event.Name) {
					continue
				}
				w.logger.Debug("workspace file changed", "file", event.Name, "op", event.Op.String())
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Error("workspace watcher error", "error", err)
			}
		}
	}()

	return out, nil
}

// Relevant reports whether a change to path should trigger a re-check.
func (w *Watcher) Relevant(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	if filepath.Dir(path) != w.root {
		return false
	}
	base := filepath.Base(path)
	return base == domain.ConfigFileName || strings.HasPrefix(base, ".env")
}
