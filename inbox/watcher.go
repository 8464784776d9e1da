// Package inbox summarizes guides dropped into a watched directory.
package inbox

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"guidedigest-backend/logger"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one newly created file
type Handler func(ctx context.Context, path string) error

// Watcher monitors a directory for new guide files
type Watcher struct {
	dir           string
	handler       Handler
	log           logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settle        time.Duration
	wg            sync.WaitGroup
}

// WatcherOption is a functional option for Watcher
type WatcherOption func(*Watcher)

// WatcherWithSettleDelay sets how long to wait after a create event before
// reading the file.
func WatcherWithSettleDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.settle = d
	}
}

// NewWatcher creates a watcher on dir running at most maxConcurrent handlers
func NewWatcher(dir string, handler Handler, log logger.Logger, maxConcurrent int, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	w := &Watcher{
		dir:           dir,
		handler:       handler,
		log:           log,
		watcher:       fw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settle:        500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start blocks until ctx is cancelled, dispatching every new guide file to
// the handler. In-flight handlers are awaited before returning.
func (w *Watcher) Start(ctx context.Context) error {
	w.log.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.dir)

	for {
		select {
		case <-ctx.Done():
			w.log.Info(ctx, "Waiting for ongoing summaries to complete...")
			w.wg.Wait()
			w.log.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !IsGuideFile(event.Name) {
				w.log.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}
			w.log.Info(ctx, "New guide detected: %s", event.Name)

			if w.settle > 0 {
				select {
				case <-time.After(w.settle):
				case <-ctx.Done():
					w.wg.Wait()
					return ctx.Err()
				}
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, path); err != nil {
						w.log.Error(ctx, "Failed to summarize %s: %v", path, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// IsGuideFile reports whether path is a .txt or .md file that is not itself
// a generated summary.
func IsGuideFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, SummarySuffix) {
		return false
	}
	switch filepath.Ext(name) {
	case ".txt", ".md":
		return true
	}
	return false
}
