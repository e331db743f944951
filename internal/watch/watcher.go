// Package watch monitors a descriptor directory and reloads the
// registry when descriptor files change.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/apimeta-io/apimeta/internal/loader"
	"github.com/apimeta-io/apimeta/internal/resource"
)

// Watcher monitors descriptor files and rebuilds the registry on change.
// A failed reload keeps the previous registry; the swap only happens
// when every descriptor file hydrates cleanly.
type Watcher struct {
	dir       string
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	onReload  func(*resource.Registry)
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// New creates a watcher over a descriptor directory. onReload receives
// the freshly built registry after each successful reload.
func New(dir string, logger *zap.Logger, onReload func(*resource.Registry)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		dir:       dir,
		watcher:   fsWatcher,
		debouncer: newDebouncer(100 * time.Millisecond),
		onReload:  onReload,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}

	w.debouncer.setCallback(func(files []string) {
		w.reload(files)
	})

	return w, nil
}

// Start begins watching the descriptor directory tree
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
			w.logger.Debug("watching directory", zap.String("dir", path))
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.watch()

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	select {
	case <-w.stopChan:
		return nil
	default:
		close(w.stopChan)
	}

	w.wg.Wait()
	w.debouncer.stop()
	return w.watcher.Close()
}

// watch is the main event loop
func (w *Watcher) watch() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New subdirectories join the watch set
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			if !isDescriptorPath(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.logger.Info("descriptor file changed", zap.String("file", event.Name))
				w.debouncer.add(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-w.stopChan:
			return
		}
	}
}

// reload rebuilds the registry from disk and hands it to the callback
func (w *Watcher) reload(files []string) {
	registry, err := loader.LoadDir(w.dir)
	if err != nil {
		w.logger.Error("descriptor reload failed, keeping previous registry",
			zap.Strings("changed", files), zap.Error(err))
		return
	}

	w.logger.Info("descriptors reloaded",
		zap.Int("resources", registry.Count()), zap.Strings("changed", files))
	w.onReload(registry)
}

// isDescriptorPath matches the loader's file extensions
func isDescriptorPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
