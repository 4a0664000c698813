package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when markdown files in the content directory
// change. Events are debounced because editors typically emit several
// write events per save.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewWatcher starts watching dir and reloading store on changes.
// Subdirectories are watched too, matching the recursive walk the
// store performs at load time.
func NewWatcher(dir string, store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addRecursive(fw, dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// addRecursive registers dir and every subdirectory under it.
func addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				// A directory moved in may already contain chapters.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(ev.Name); err != nil {
						slog.Warn("watch new directory", "dir", ev.Name, "error", err)
					}
					w.scheduleReload()
					continue
				}
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("content watcher error", "error", err)
		}
	}
}

// scheduleReload resets the debounce timer; the reload fires once the
// events settle.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.store.Load(ctx); err != nil {
			// Keep serving the previous snapshot on a bad edit.
			slog.Error("content reload failed", "error", err)
			return
		}
		slog.Info("content reloaded", "chapters", w.store.Len())
	})
}

// Close stops the watcher. Pending debounced reloads may still fire.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
