package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dndbridge/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that a watched file was written or replaced
type Change struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors individual files, such as trace or config files, using
// fsnotify. The parent directory is watched so that editors which save by
// renaming a temporary file are still noticed.
type Watcher struct {
	// Absolute paths of the files of interest
	files map[string]bool

	// Channel to receive changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the files set
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool

	// Set once Stop has run; a stopped watcher cannot be restarted
	stopped bool
}

// New creates a new file watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		files:     make(map[string]bool),
		changes:   make(chan Change, 1),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// AddFile starts watching path
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("error accessing file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w.mutex.Lock()
	w.files[abs] = true
	w.mutex.Unlock()

	log.LogWithFields(log.F("file", abs)).Debug("Watching file")
	return nil
}

// Changes returns the channel that delivers file changes. Bursts of writes
// are coalesced while the receiver is busy.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		w.mutex.Unlock()
		return fmt.Errorf("watcher was stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mutex.Unlock()

	go w.loop(stop)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}) {
	// Only the loop sends on changes, so it owns closing it
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !w.watches(event.Name) {
				continue
			}

			change := Change{Path: event.Name, Timestamp: time.Now(), Op: event.Op}
			select {
			case w.changes <- change:
			default:
				// A change is already pending for the receiver
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogError(err, "fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) watches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.files[abs]
}

// Stop halts the watcher and releases its fsnotify handle, also when it was
// never started. The changes channel is closed once the event loop has
// exited.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped {
		return
	}

	if w.running {
		close(w.stopChan)
	} else {
		// No loop will ever close it
		close(w.changes)
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogError(err, "Error closing fsnotify watcher")
	}
	w.running = false
	w.stopped = true
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Files returns the files being watched
func (w *Watcher) Files() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

// Run calls onChange once for path and again after every change, until ctx
// is done.
func Run(ctx context.Context, path string, onChange func(path string)) error {
	w, err := New()
	if err != nil {
		return err
	}
	if err := w.AddFile(path); err != nil {
		w.Stop()
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	log.Infof("Watching %s", path)
	onChange(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-w.Changes():
			if !ok {
				return nil
			}
			log.Default().WithContext(ctx).With(log.F("file", change.Path), log.F("op", change.Op.String())).Info("File changed")
			onChange(path)
		}
	}
}
