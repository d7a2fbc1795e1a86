// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce is how long a file must stay quiet before it uploads.
// Editors and downloads write in bursts; uploading mid-write truncates.
const watchDebounce = 500 * time.Millisecond

// defaultExtensions are the file types the watcher picks up.
var defaultExtensions = []string{".pdf", ".txt", ".md", ".docx"}

// UploadEvent reports one watch-folder upload attempt.
type UploadEvent struct {
	Path     string
	Document Document
	Err      error
}

// Watcher monitors a local folder and uploads files created or modified
// there. It runs in its own goroutine and reports through the emit callback
// only, so the UI event loop stays the single writer of program state.
type Watcher struct {
	dir        string
	client     *Client
	extensions []string
	log        *zap.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher for dir that uploads through client.
func NewWatcher(dir string, client *Client, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		dir:        dir,
		client:     client,
		extensions: defaultExtensions,
		log:        log,
		fsw:        fsw,
		pending:    make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. emit is called once per settled upload attempt,
// from the watcher goroutine. Start returns immediately; the watcher stops
// when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, emit func(UploadEvent)) error {
	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching folder", zap.String("dir", w.dir))

	go func() {
		defer w.fsw.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}
				w.schedule(ctx, event.Name, emit)

			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.log.Warn("watch error", zap.Error(err))
			}
		}
	}()
	return nil
}

// schedule arms (or re-arms) the debounce timer for one path.
func (w *Watcher) schedule(ctx context.Context, path string, emit func(UploadEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		uploadCtx, cancel := context.WithTimeout(ctx, UploadTimeout)
		defer cancel()

		doc, err := w.client.Upload(uploadCtx, path)
		emit(UploadEvent{Path: path, Document: doc, Err: err})
	})
}

func (w *Watcher) isWatchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
