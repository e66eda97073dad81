package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the write bursts editors produce when
// saving a file.
const reloadDebounce = 250 * time.Millisecond

// ReloadHandler is called with the freshly loaded configuration after
// the watched file changes. It runs on the watcher goroutine.
type ReloadHandler func(*Config)

// ErrorHandler is called when a changed file fails to load. The
// previous configuration stays in effect.
type ErrorHandler func(error)

// Watcher reloads the configuration file when it changes on disk.
//
// The parent directory is watched rather than the file itself, so
// rename-over saves and recreated files keep working.
type Watcher struct {
	path     string
	fw       *fsnotify.Watcher
	onReload ReloadHandler
	onError  ErrorHandler

	mu     sync.Mutex
	timer  *time.Timer
	done   chan struct{}
	closed bool
}

// Watch starts watching path and delivers reloads to the handlers.
func Watch(path string, onReload ReloadHandler, onError ErrorHandler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fw:       fw,
		onReload: onReload,
		onError:  onError,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case <-w.done:
			return
		}
	}
}

// schedule arms the debounce timer, restarting it if a change is
// already pending.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
