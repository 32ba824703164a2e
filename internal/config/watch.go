package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zaidlab/folio/internal/logger"
)

// DefaultReloadDelay coalesces editor save bursts into a single reload.
const DefaultReloadDelay = 200 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback run after the delay.
type Debouncer struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer; a zero delay uses DefaultReloadDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any callback still pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		// A stale timer may fire after Stop lost the race; only the latest runs.
		if current {
			fn()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Watcher reloads a content file whenever it changes on disk.
type Watcher struct {
	path     string
	notify   *fsnotify.Watcher
	debounce *Debouncer
	cancel   context.CancelFunc
	done     chan struct{}
}

// Watch starts watching path. onChange receives the reparsed content, or the parse error
// when the new file is invalid, from the watcher goroutine.
func Watch(ctx context.Context, path string, delay time.Duration, log *logger.Logger, onChange func(*Content, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve content path: %w", err)
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory rather than the file.
	if err := notify.Add(filepath.Dir(abs)); err != nil {
		_ = notify.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     abs,
		notify:   notify,
		debounce: NewDebouncer(delay),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	log = log.WithFields(map[string]any{"component": "content-watcher", "path": abs})

	go w.run(ctx, log, onChange)
	return w, nil
}

func (w *Watcher) run(ctx context.Context, log *logger.Logger, onChange func(*Content, error)) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			w.debounce.Trigger(func() {
				content, err := ParseContent(w.path)
				if err != nil {
					log.Warn(err, "content reload rejected")
				} else {
					log.Info("content reloaded")
				}
				onChange(content, err)
			})
		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			log.Warn(err, "file watcher error")
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.cancel()
	w.debounce.Cancel()
	err := w.notify.Close()
	<-w.done
	return err
}
