// Package watch reports changes to a set of files.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by renaming a temporary file keep being observed.
// Events arriving within the debounce delay are coalesced into a single
// Change.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is the debounce delay used when none is given.
const DefaultDelay = 150 * time.Millisecond

// Watcher errors.
var (
	ErrClosed       = errors.New("watch: watcher closed")
	ErrPathNotExist = errors.New("watch: path does not exist")
)

// Op describes what happened to a path. Values combine as a bit set.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// String returns the operations joined by "|".
func (op Op) String() string {
	var parts []string
	for _, o := range []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if op&o.op != 0 {
			parts = append(parts, o.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Change is a batch of coalesced events.
type Change struct {
	// Paths are the absolute paths that changed, sorted.
	Paths []string
	// Op is the union of the operations seen.
	Op   Op
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Watcher watches files and whole directories.
type Watcher struct {
	fsw   *fsnotify.Watcher
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool // directories tracked in full
	watched map[string]bool // directories registered with fsnotify
	pending map[string]Op
	ops     Op
	closed  bool

	changes chan Change
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		delay:   DefaultDelay,
		log:     zerolog.Nop(),
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		watched: make(map[string]bool),
		pending: make(map[string]Op),
		changes: make(chan Change, 1),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Add tracks path. A file is tracked on its own; a directory tracks every
// non-hidden entry directly inside it.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	dir := filepath.Dir(abs)
	if info.IsDir() {
		dir = abs
	}
	if !w.watched[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.watched[dir] = true
	}
	if info.IsDir() {
		w.dirs[abs] = true
	} else {
		w.files[abs] = true
	}
	w.log.Debug().Str("path", abs).Msg("watching")
	return nil
}

// Changes returns the channel of coalesced changes. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the channel of watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Pending events are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.changes)
	close(w.errors)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.track(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
			select {
			case w.errors <- err:
			default:
			}

		case <-fire:
			fire = nil
			w.flush()
		}
	}
}

// track records ev if it concerns a tracked path.
func (w *Watcher) track(ev fsnotify.Event) bool {
	op := convertOp(ev.Op)
	if op == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	name := filepath.Clean(ev.Name)
	if !w.files[name] && !w.inDir(name) {
		return false
	}
	w.pending[name] |= op
	w.ops |= op
	return true
}

func (w *Watcher) inDir(name string) bool {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	return w.dirs[filepath.Dir(name)]
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	c := Change{Op: w.ops, Time: time.Now()}
	for p := range w.pending {
		c.Paths = append(c.Paths, p)
	}
	sort.Strings(c.Paths)
	w.pending = make(map[string]Op)
	w.ops = 0
	w.mu.Unlock()

	w.log.Debug().Strs("paths", c.Paths).Stringer("op", c.Op).Msg("change")
	select {
	case w.changes <- c:
	case <-w.closeCh:
	}
}

// convertOp maps fsnotify operations. Chmod alone is not a change.
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
