package track

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"potato-racer/internal/logger"
)

// ChangeHandler receives the freshly loaded snapshot after the file changed.
type ChangeHandler func(t *Track)

// Watcher reloads a track file whenever it is written. Bursts of events are
// debounced so an editor save triggers a single reload. The parent directory
// is watched so saves that replace the file by rename are seen too.
type Watcher struct {
	path     string
	dir      string
	watcher  *fsnotify.Watcher
	handlers []ChangeHandler
	debounce time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
}

func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	clean := filepath.Clean(path)
	return &Watcher{
		path:     clean,
		dir:      filepath.Dir(clean),
		watcher:  w,
		debounce: 200 * time.Millisecond,
		stopChan: make(chan struct{}),
	}, nil
}

func (w *Watcher) OnChange(h ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.watchLoop()
	logger.Log.Printf("[Track] watching %s", w.path)
	return nil
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) watchLoop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.stopChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Printf("[Track] watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err != nil {
		// keep serving the previous snapshot
		logger.Log.Printf("[Track] reload of %s failed: %v", w.path, err)
		return
	}

	w.mu.Lock()
	handlers := make([]ChangeHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(t)
	}
	logger.Log.Printf("[Track] reloaded %s (target %s)", w.path, t.Target)
}
