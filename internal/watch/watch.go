// Package watch reports changes to individual source files. It watches the
// containing directories so that editors which replace a file on save are
// still observed, and coalesces bursts of events into one per file.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op indicates a change operation on a watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

func (op Op) String() string {
	var parts []string
	for _, n := range opNames {
		if op&n.op != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Has reports whether op includes every bit of other.
func (op Op) Has(other Op) bool {
	return op&other == other
}

// Event describes a change to a watched file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// DefaultDebounce is the quiet period used when New is given zero.
const DefaultDebounce = 100 * time.Millisecond

// Watcher delivers debounced change events for a set of files.
type Watcher struct {
	w        *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int

	evC       chan Event
	erC       chan error
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Watcher. Events for the same file arriving within debounce
// of each other are merged; a negative debounce disables merging.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		w:        fw,
		debounce: debounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		evC:      make(chan Event, 128),
		erC:      make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events returns the channel of debounced events. It is closed after Close.
func (w *Watcher) Events() <-chan Event { return w.evC }

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error { return w.erC }

// Add starts watching the file at path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; ok {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	return nil
}

// Remove stops watching the file at path.
func (w *Watcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		return fmt.Errorf("%s is not watched", path)
	}
	delete(w.files, abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.w.Remove(dir)
	}
	return nil
}

// Close stops the watcher and closes the Events channel.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.w.Close()
	})
	return err
}

func (w *Watcher) watched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	return ok
}

func translate(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= OpCreate
	}
	if op&fsnotify.Write != 0 {
		out |= OpWrite
	}
	if op&fsnotify.Remove != 0 {
		out |= OpRemove
	}
	if op&fsnotify.Rename != 0 {
		out |= OpRename
	}
	if op&fsnotify.Chmod != 0 {
		out |= OpChmod
	}
	return out
}

func (w *Watcher) loop() {
	defer close(w.evC)

	pending := make(map[string]Event)
	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			w.send(pending[p])
			delete(pending, p)
		}
	}

	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			op := translate(ev.Op)
			if op == 0 || !w.watched(path) {
				continue
			}

			if w.debounce < 0 {
				w.send(Event{Path: path, Op: op, Time: time.Now()})
				continue
			}

			e := pending[path]
			e.Path = path
			e.Op |= op
			e.Time = time.Now()
			pending[path] = e

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			flush()

		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			select {
			case w.erC <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) send(e Event) {
	select {
	case w.evC <- e:
	case <-w.done:
	}
}
