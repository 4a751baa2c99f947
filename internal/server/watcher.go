package server

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceTime collapses the burst of events editors emit on save
const DefaultDebounceTime = 100 * time.Millisecond

// Watcher reports debounced writes to a single file on Update.
// A nil value on Update means the file changed; a non-nil value is a watch error.
type Watcher struct {
	watcher      *fsnotify.Watcher
	filename     string
	debounceTime time.Duration

	mu    sync.Mutex
	timer *time.Timer

	onUpdate chan<- error
	Update   <-chan error
}

// WatchFile starts watching filename. The parent directory is watched so
// that saves which replace the file keep reporting.
func WatchFile(filename string, debounceTime time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounceTime <= 0 {
		debounceTime = DefaultDebounceTime
	}

	updateCh := make(chan error, 1)
	out := &Watcher{
		watcher:      watcher,
		filename:     abs,
		debounceTime: debounceTime,
		onUpdate:     updateCh,
		Update:       updateCh,
	}

	go out.process()

	return out, nil
}

// Close stops watching. Pending debounced updates are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) debounceUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceTime, func() {
		w.send(nil)
	})
}

// send never blocks: an update already queued covers this one
func (w *Watcher) send(err error) {
	select {
	case w.onUpdate <- err:
	default:
	}
}

func (w *Watcher) process() {
	for {
		select {
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.filename {
				continue
			}
			// A rename onto filename arrives as Create
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.debounceUpdate()
			}
		}
	}
}
