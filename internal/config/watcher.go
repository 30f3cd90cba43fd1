package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/caret/internal/event"
)

// DefaultReloadDelay coalesces the burst of events a single save makes.
const DefaultReloadDelay = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file so that editors
// that save by renaming a temporary file are still seen.
type Watcher struct {
	mu sync.Mutex

	path     string
	watcher  *fsnotify.Watcher
	reload   *event.Debouncer
	onChange func(Options)
	onError  func(error)

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherConfig)

type watcherConfig struct {
	delay   time.Duration
	onError func(error)
}

// WithReloadDelay sets how long the watcher waits for a burst of events
// to settle.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(c *watcherConfig) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithErrorHandler receives load and watch errors. Reload errors keep the
// previous options in force.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(c *watcherConfig) {
		c.onError = fn
	}
}

// NewWatcher starts watching path and calls onChange with the freshly
// loaded options after each change. Callbacks run on the watcher's
// goroutines.
func NewWatcher(path string, onChange func(Options), opts ...WatcherOption) (*Watcher, error) {
	cfg := watcherConfig{delay: DefaultReloadDelay, onError: func(error) {}}
	for _, opt := range opts {
		opt(&cfg)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := FormatFor(abs); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		watcher:  fsw,
		onChange: onChange,
		onError:  cfg.onError,
		closeCh:  make(chan struct{}),
	}
	w.reload = event.NewDebouncer(cfg.delay, w.load)

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Reload loads the file now, skipping any pending delay.
func (w *Watcher) Reload() error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatcherClosed
	}
	w.reload.Cancel()
	w.load()
	return nil
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.closedWg.Wait()
	w.reload.Cancel()
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.reload.Delay()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) load() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	opts, err := Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	w.onChange(opts)
}
