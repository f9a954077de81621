// FILE: lixenwraith/dlog/watch.go
package dlog

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig reloads the configuration file at path whenever it changes, until ctx is done.
// The file's directory is watched so editors that replace the file atomically are seen.
// Reload failures are printed at LevelIntWarn and the previous settings stay in effect.
func (l *Logger) WatchConfig(ctx context.Context, path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmtErrorf("failed to resolve config path '%s': %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmtErrorf("failed to create config watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmtErrorf("failed to watch config directory for '%s': %w", target, err)
	}

	go func() {
		defer func() {
			if err := watcher.Close(); err != nil {
				l.internalLog("failed to close config watcher: %v\n", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					l.reloadConfig(target)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.internalLog("config watcher error: %v\n", err)
			}
		}
	}()

	return nil
}

func (l *Logger) reloadConfig(path string) {
	// Renamed away and not replaced
	if _, err := os.Stat(path); err != nil {
		return
	}

	cfg, err := NewConfigFromFile(path)
	if err == nil {
		err = l.ApplyConfig(cfg)
	}
	if err != nil {
		l.Print(LevelIntWarn, "Config reload of %s failed: %v\n", path, err)
	}
}
