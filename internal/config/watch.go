package config

import (
	"context"
	"fmt"
	"path/filepath"

	"DiceScene/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the file at path whenever it is written and hands the new
// configuration to onChange. The parent directory is watched rather than the
// file itself because editors often replace files by rename. onChange runs on
// the watcher goroutine; invalid files are logged and skipped.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					logger.Log.Warn("Ignoring invalid config reload", zap.String("path", abs), zap.Error(err))
					continue
				}
				logger.Log.Info("Config reloaded", zap.String("path", abs))
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log.Warn("Config watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
