// Package watch reports changes to individual files, coalescing bursts of
// writes into a single event. It backs the CLI's --watch modes.
//
// Files are watched through their parent directory so that editors which
// save by renaming a temporary file over the original keep being tracked.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/wysiwyg/internal/logging"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher closed")
	ErrPathNotExist  = errors.New("path does not exist")
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Op is a set of file operations.
type Op uint8

// Operations.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether o includes op.
func (o Op) Has(op Op) bool {
	return o&op != 0
}

// String returns the operations joined by "|".
func (o Op) String() string {
	var parts []string
	for _, p := range []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if o.Has(p.op) {
			parts = append(parts, p.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is a coalesced change to one watched file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before an event is delivered.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

type pending struct {
	op    Op
	timer *time.Timer
}

// Watcher watches a set of files.
type Watcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	delay  time.Duration
	logger *slog.Logger

	files   map[string]bool
	dirs    map[string]int
	pending map[string]*pending

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		delay:   DefaultDebounce,
		logger:  logging.Nop(),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		pending: make(map[string]*pending),
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add starts watching a file.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPathNotExist, path)
		}
		return err
	}
	if w.files[abs] {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	w.logger.Debug("watching file", slog.String("path", abs))
	return nil
}

// Events returns the debounced event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", slog.Any("error", err))
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[abs] {
		return
	}
	if p, ok := w.pending[abs]; ok {
		p.op |= op
		p.timer.Reset(w.delay)
		return
	}
	w.pending[abs] = &pending{
		op:    op,
		timer: time.AfterFunc(w.delay, func() { w.fire(abs) }),
	}
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	ev := Event{Path: path, Op: p.op, Timestamp: time.Now()}

	// Sends happen under the lock so Close cannot close the channel mid-send.
	select {
	case w.events <- ev:
		w.logger.Debug("file changed", slog.String("path", path), slog.String("op", ev.Op.String()))
	default:
		w.logger.Warn("event channel full, dropping event", slog.String("path", path))
	}
	w.mu.Unlock()
}

// convertOp converts fsnotify.Op to Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

// Run watches paths and calls fn for every change until ctx is done.
func Run(ctx context.Context, paths []string, fn func(Event), opts ...Option) error {
	w, err := New(opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events():
			if !ok {
				return ErrWatcherClosed
			}
			fn(ev)
		case err, ok := <-w.Errors():
			if !ok {
				return ErrWatcherClosed
			}
			return fmt.Errorf("watching: %w", err)
		}
	}
}
