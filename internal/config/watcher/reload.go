package watcher

import (
	"log/slog"
	"sync"

	"github.com/dshills/indentree/internal/config"
)

// ReloadFunc receives each successfully reloaded configuration.
type ReloadFunc func(cfg *config.Config)

// Reloader reloads a configuration file whenever it changes. A reload that
// fails validation is logged and the previous configuration stays current.
type Reloader struct {
	mu      sync.RWMutex
	path    string
	opts    []config.Option
	current *config.Config
	watcher *Watcher
	logger  *slog.Logger
	onLoad  []ReloadFunc
}

// NewReloader loads path once and starts watching it.
func NewReloader(path string, loadOpts []config.Option, opts ...Option) (*Reloader, error) {
	cfg, err := config.Load(path, loadOpts...)
	if err != nil {
		return nil, err
	}

	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}

	r := &Reloader{
		path:    path,
		opts:    loadOpts,
		current: cfg,
		watcher: w,
		logger:  w.logger,
	}
	w.OnChange(r.handle)
	w.Start()
	return r, nil
}

// OnReload registers fn to run after each successful reload.
func (r *Reloader) OnReload(fn ReloadFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onLoad = append(r.onLoad, fn)
}

// Current returns the most recently loaded configuration.
func (r *Reloader) Current() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Close stops watching.
func (r *Reloader) Close() {
	r.watcher.Stop()
}

func (r *Reloader) handle(event Event) {
	if event.Op == OpRename {
		// The replacement shows up as a create.
		return
	}

	cfg, err := config.Load(r.path, r.opts...)
	if err != nil {
		r.logger.Warn("config reload failed; keeping previous settings", "path", r.path, "error", err)
		return
	}

	r.mu.Lock()
	r.current = cfg
	fns := make([]ReloadFunc, len(r.onLoad))
	copy(fns, r.onLoad)
	r.mu.Unlock()

	r.logger.Info("config reloaded", "path", r.path, "op", event.Op.String(), "indent.width", cfg.Indent.Width)
	if len(cfg.UnknownSections) > 0 {
		r.logger.Warn("ignoring unknown configuration sections", "path", r.path, "sections", cfg.UnknownSections)
	}
	for _, fn := range fns {
		fn(cfg)
	}
}
