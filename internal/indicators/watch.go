package indicators

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"flrdash/internal/logging"
)

// DefaultDebounce coalesces the burst of events a single snapshot write produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a snapshot file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Snapshot, error)
	log      *slog.Logger
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching path and calls onChange with each reloaded snapshot,
// or with the load error. The parent directory is watched so that the file
// being created for the first time or replaced by rename is seen too.
// onChange runs on the watcher's goroutine.
func Watch(path string, onChange func(Snapshot, error), log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.Discard()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		log:      log,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	// Removal keeps the last snapshot on screen; the next write replaces it.
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) loop() {
	defer close(w.done)
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
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("snapshot watcher", "err", err)
		case <-fire:
			fire = nil
			s, err := Load(w.path)
			if err != nil {
				w.log.Warn("reload snapshot", "path", w.path, "err", err)
			} else {
				w.log.Info("snapshot reloaded", "path", w.path, "generated_at", s.Meta.GeneratedAt)
			}
			w.onChange(s, err)
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
