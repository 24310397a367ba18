package watcher

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Notification is the interface to be notified of watched item changes.
type Notification interface {
	WatcherItemDidChange(string)
}

// IFileWatcher is the interface to watch files for changes.
type IFileWatcher interface {
	Start(Notification)
	Add(string) error
	Shutdown()
}

// FileWatcher notifies when watched files change on disk.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	shutdown chan struct{}
	once     sync.Once
}

// NewFile creates a FileWatcher.
func NewFile() (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		watcher:  watcher,
		shutdown: make(chan struct{}),
	}, nil
}

// Add takes a path to watch.
func (w *FileWatcher) Add(path string) error {
	return w.watcher.Add(path)
}

// Shutdown stops the watcher. Safe to call more than once.
func (w *FileWatcher) Shutdown() {
	w.once.Do(func() {
		close(w.shutdown)
	})
}

// Start blocks dispatching change notifications until Shutdown is called.
// Editors often replace files instead of writing them in place, so create
// events count as changes too.
func (w *FileWatcher) Start(notifier Notification) {
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				notifier.WatcherItemDidChange(event.Name)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.shutdown:
			return
		}
	}
}

var _ IFileWatcher = (*FileWatcher)(nil)
