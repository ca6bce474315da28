package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDefault = 300 * time.Millisecond

// Watcher reloads a config file when it changes and hands the result to a
// callback. It watches the parent directory so editors that replace the file
// by rename are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	apply    func(*Config)
	debounce time.Duration
	errOut   io.Writer
}

// NewWatcher creates a file watcher for path.
func NewWatcher(path string, apply func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  watcher,
		path:     abs,
		apply:    apply,
		debounce: debounceDefault,
		errOut:   os.Stderr,
	}, nil
}

// Run watches for changes and reloads. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(w.debounce, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.errOut, "rassert: config watcher error: %v\n", err)
		}
	}
}

func (w *Watcher) reload() {
	if _, err := os.Stat(w.path); err != nil {
		// Mid-rename; the Create that follows triggers another reload.
		return
	}
	cfg, err := Load(w.path)
	if err != nil {
		fmt.Fprintf(w.errOut, "rassert: config reload failed: %v\n", err)
		return
	}
	w.apply(cfg)
}
