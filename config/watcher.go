package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// HotConfig wraps Config with hot-reload support.
type HotConfig struct {
	mu     sync.RWMutex
	cfg    *Config
	path   string
	subs   []func(*Config)
	logger *slog.Logger
}

// NewHotConfig loads path. A nil logger uses slog.Default().
func NewHotConfig(path string, logger *slog.Logger) (*HotConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HotConfig{cfg: cfg, path: path, logger: logger}, nil
}

// Get returns the current config. The value must not be modified.
func (hc *HotConfig) Get() *Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return hc.cfg
}

// OnReload registers a callback for config changes.
func (hc *HotConfig) OnReload(fn func(*Config)) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.subs = append(hc.subs, fn)
}

// Reload reads the file again. On error the previous config stays active.
func (hc *HotConfig) Reload() error {
	cfg, err := Load(hc.path)
	if err != nil {
		hc.logger.Error("config reload failed", "path", hc.path, "err", err)
		return err
	}

	hc.mu.Lock()
	hc.cfg = cfg
	subs := append([]func(*Config){}, hc.subs...)
	hc.mu.Unlock()

	hc.logger.Info("config reloaded", "path", hc.path)

	for _, fn := range subs {
		fn(cfg)
	}

	return nil
}

// Watch reloads the config whenever the file is written or replaced, until
// ctx is done. The parent directory is watched so editors that save by
// rename are picked up too.
func (hc *HotConfig) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(hc.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	target := filepath.Clean(hc.path)

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

				if filepath.Clean(event.Name) != target {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					_ = hc.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				hc.logger.Error("config watcher error", "err", err)
			}
		}
	}()

	return nil
}
