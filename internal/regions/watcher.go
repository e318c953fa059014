package regions

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// defaultDebounce absorbs the editor write-then-rename bursts that would
// otherwise trigger several reloads per save.
const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a Directory whenever its config file changes on disk.
// A failed reload keeps the prior set, so a half-written file never takes
// the pipeline down.
type Watcher struct {
	dir      *Directory
	logger   log.Logger
	debounce time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	debounceT *time.Timer
}

// NewWatcher creates a watcher for the directory's config path.
func NewWatcher(dir *Directory, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{dir: dir, logger: logger, debounce: defaultDebounce}
}

// Start begins watching. It returns immediately; watching continues until
// Stop is called or the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the containing directory: editors replace files by rename,
	// which drops a watch placed on the file itself.
	cfgPath := w.dir.Path()
	if err := fsw.Add(filepath.Dir(cfgPath)); err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer fsw.Close()
		w.loop(ctx, fsw, filepath.Base(cfgPath))
	}()

	w.logger.Info("watching region config", log.String("path", cfgPath))
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, name string) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("region config watch error", log.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceT != nil {
		w.debounceT.Stop()
	}
	w.debounceT = time.AfterFunc(w.debounce, func() {
		if err := w.dir.Reload(); err != nil {
			w.logger.Warn("region config reload failed, keeping prior set", log.Err(err))
		}
	})
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	if w.debounceT != nil {
		w.debounceT.Stop()
	}
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
