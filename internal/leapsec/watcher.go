package leapsec

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload outcome notifications emitted by a Watcher.
type ReloadEvent struct {
	Path string
	Err  error // nil when the file was adopted
}

// Watcher monitors a timing directory and reloads the table when the
// leap-second file changes.
type Watcher struct {
	Dir     string
	Name    string
	Reloads <-chan ReloadEvent // read-only external channel

	table   *Table
	reloads chan ReloadEvent // internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher that keeps table in sync with dir/name.
// An empty name defaults to FileName.
func NewWatcher(table *Table, dir, name string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = FileName
	}

	ch := make(chan ReloadEvent, 4)
	w := &Watcher{
		Dir:     dir,
		Name:    name,
		Reloads: ch,
		table:   table,
		reloads: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: external tools rewrite the file in several writes.
	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.reload()
				}
				return
			}

			if filepath.Base(event.Name) != w.Name {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.reload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the table stays valid.
		}
	}
}

func (w *Watcher) reload() {
	path := filepath.Join(w.Dir, w.Name)
	err := w.table.ReloadFromFile(path)
	select {
	case w.reloads <- ReloadEvent{Path: path, Err: err}:
	default:
		// Nobody listening; reloading the table is the point, dropping
		// the notification is fine.
	}
}
