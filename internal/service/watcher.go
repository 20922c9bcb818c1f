package service

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// Reloader is what the watcher drives on a settled change.
type Reloader interface {
	Load(ctx context.Context, src Source) (IngestReport, error)
}

// KnowledgeWatcher reloads the knowledge base when the sheet on disk changes.
// The parent directory is watched so editors that replace the file on save
// are still picked up.
type KnowledgeWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	target   Reloader
	path     string
	debounce time.Duration
	pending  time.Time
	reloads  int
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	logger   *zap.Logger
}

func NewKnowledgeWatcher(path string, target Reloader, logger *zap.Logger) (*KnowledgeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	return &KnowledgeWatcher{
		watcher:  w,
		target:   target,
		path:     abs,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger,
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call before Start.
func (kw *KnowledgeWatcher) SetDebounce(d time.Duration) {
	if d > 0 {
		kw.debounce = d
	}
}

// Start begins watching. It does not block.
func (kw *KnowledgeWatcher) Start(ctx context.Context) error {
	kw.mu.Lock()
	if kw.running {
		kw.mu.Unlock()
		return nil
	}
	kw.running = true
	kw.mu.Unlock()

	dir := filepath.Dir(kw.path)
	if err := kw.watcher.Add(dir); err != nil {
		kw.mu.Lock()
		kw.running = false
		kw.mu.Unlock()
		return err
	}
	kw.logger.Info("Watching knowledge source", zap.String("path", kw.path))

	go kw.run(ctx)
	return nil
}

// Stop ends the loop and releases the fsnotify handle.
func (kw *KnowledgeWatcher) Stop() {
	kw.mu.Lock()
	if !kw.running {
		kw.mu.Unlock()
		kw.watcher.Close()
		return
	}
	kw.running = false
	kw.mu.Unlock()

	close(kw.stopCh)
	<-kw.doneCh

	if err := kw.watcher.Close(); err != nil {
		kw.logger.Error("Failed to close knowledge watcher", zap.Error(err))
	}
	kw.logger.Info("Knowledge watcher stopped")
}

// Reloads reports how many reloads the watcher has triggered.
func (kw *KnowledgeWatcher) Reloads() int {
	kw.mu.Lock()
	defer kw.mu.Unlock()
	return kw.reloads
}

func (kw *KnowledgeWatcher) run(ctx context.Context) {
	defer close(kw.doneCh)

	ticker := time.NewTicker(kw.debounce / 5)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-kw.stopCh:
			return
		case event, ok := <-kw.watcher.Events:
			if !ok {
				return
			}
			kw.handleEvent(event)
		case err, ok := <-kw.watcher.Errors:
			if !ok {
				return
			}
			kw.logger.Error("Knowledge watcher error", zap.Error(err))
		case <-ticker.C:
			kw.flush(ctx)
		}
	}
}

func (kw *KnowledgeWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != kw.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	kw.logger.Debug("Knowledge source changed", zap.String("op", event.Op.String()))

	kw.mu.Lock()
	kw.pending = time.Now()
	kw.mu.Unlock()
}

func (kw *KnowledgeWatcher) flush(ctx context.Context) {
	kw.mu.Lock()
	if kw.pending.IsZero() || time.Since(kw.pending) < kw.debounce {
		kw.mu.Unlock()
		return
	}
	kw.pending = time.Time{}
	kw.reloads++
	kw.mu.Unlock()

	if _, err := kw.target.Load(ctx, &FileSource{Path: kw.path}); err != nil {
		kw.logger.Warn("Knowledge reload from watcher failed", zap.Error(err))
	}
}
