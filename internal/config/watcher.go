package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports when configuration documents change on disk. It only
// notifies; callers decide when to re-Load, which keeps the single-writer
// discipline on the Store intact.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	done   chan struct{}
}

// WatchDir watches the configuration directory for document changes.
func WatchDir(dir string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		fs:     fw,
		events: make(chan string, 8),
		done:   make(chan struct{}),
	}
	go w.loop(logger)
	return w, nil
}

// Events emits the name of each changed document (settings.yaml, ...).
func (w *Watcher) Events() <-chan string { return w.events }

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop(logger *slog.Logger) {
	defer close(w.events)

	documents := map[string]bool{
		settingsDoc: true,
		modelsDoc:   true,
		toolsDoc:    true,
		securityDoc: true,
	}

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			doc := filepath.Base(ev.Name)
			if !documents[doc] {
				continue
			}
			select {
			case w.events <- doc:
			default:
				// Slow consumer; drop rather than block the loop.
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}
