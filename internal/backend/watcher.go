// Package backend watches the on-disk state the keyboard depends on and
// publishes it as events for the UI loop to apply.
package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDictionary Kind = iota
)

// DictionaryFile is the content of the watched word list at the time it was
// read.
type DictionaryFile struct {
	Path    string
	Content []byte
}

// Event conveys updated data or an error from the watcher.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher reads a dictionary file once at start and again whenever it is
// written or replaced, with reloads spaced at least interval apart.
type Watcher struct {
	path     string
	interval time.Duration
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The file's directory is watched so that
// editors replacing the file by rename are noticed.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dictionary path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.watch()

	go func() {
		w.wg.Wait()
		fsw.Close()
		close(w.events)
	}()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) read() Event {
	content, err := os.ReadFile(w.path)
	if err != nil {
		return Event{Kind: KindDictionary, Err: fmt.Errorf("read dictionary: %w", err)}
	}
	return Event{Kind: KindDictionary, Data: DictionaryFile{Path: w.path, Content: content}}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	return filepath.Clean(evt.Name) == w.path && evt.Op&(fsnotify.Write|fsnotify.Create) != 0
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	throttle := newThrottle(w.interval)

	throttle.wait()
	if !w.emit(w.read()) {
		return
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			throttle.wait()
			w.drain()
			if !w.emit(w.read()) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindDictionary, Err: err}) {
				return
			}
		}
	}
}

// drain discards notifications that queued up while throttled; the next
// read picks up their changes.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
