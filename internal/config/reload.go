package config

import (
	"context"

	"github.com/dshills/reflow/internal/config/loader"
	"github.com/dshills/reflow/internal/config/watcher"
	"github.com/dshills/reflow/internal/logging"
)

// Reloader re-reads a configuration file whenever it changes and delivers
// each valid result on Updates. Invalid files are logged and skipped so the
// previous configuration stays in effect.
type Reloader struct {
	path    string
	fs      loader.FileSystem
	watcher *watcher.Watcher
	logger  *logging.Logger
	updates chan *Config
}

// NewReloader starts watching path.
func NewReloader(path string, logger *logging.Logger, opts ...watcher.Option) (*Reloader, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Close()
		return nil, err
	}

	return &Reloader{
		path:    path,
		fs:      loader.DefaultFS(),
		watcher: w,
		logger:  logger.WithComponent("config"),
		updates: make(chan *Config, 1),
	}, nil
}

// Updates returns the channel of reloaded configurations. It is closed when
// Run returns.
func (r *Reloader) Updates() <-chan *Config {
	return r.updates
}

// Run delivers reloads until ctx is cancelled or the watcher is closed.
func (r *Reloader) Run(ctx context.Context) error {
	defer close(r.updates)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-r.watcher.Events():
			if !ok {
				return nil
			}
			if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
				r.logger.Debug("config file %s: %s, keeping current settings", ev.Op, ev.Path)
				continue
			}

			cfg, err := LoadWithFS(r.fs, r.path)
			if err != nil {
				r.logger.Warn("reload %s: %v", r.path, err)
				continue
			}
			r.logger.Info("reloaded %s", r.path)

			select {
			case r.updates <- cfg:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-r.watcher.Errors():
			if !ok {
				return nil
			}
			r.logger.Error("watching %s: %v", r.path, err)
		}
	}
}

// Close stops the underlying watcher.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}
