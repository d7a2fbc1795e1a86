// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherUploadsNewFile(t *testing.T) {
	var uploads atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads.Add(1)
		w.Write([]byte(`{"name": "dropped.md", "size": 5}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	watcher, err := NewWatcher(dir, newTestClient(server.URL, &recordingNotifier{}), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan UploadEvent, 4)
	require.NoError(t, watcher.Start(ctx, func(ev UploadEvent) { events <- ev }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dropped.md"), []byte("hello"), 0o600))

	select {
	case ev := <-events:
		require.NoError(t, ev.Err)
		assert.Equal(t, "dropped.md", ev.Document.Name)
		assert.Equal(t, int32(1), uploads.Load(), "one settled file, one upload")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch upload")
	}
}

func TestWatcherIgnoresUnwatchedExtensions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upload expected for .tmp files")
	}))
	defer server.Close()

	dir := t.TempDir()
	watcher, err := NewWatcher(dir, newTestClient(server.URL, &recordingNotifier{}), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan UploadEvent, 1)
	require.NoError(t, watcher.Start(ctx, func(ev UploadEvent) { events <- ev }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.tmp"), []byte("x"), 0o600))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(2 * watchDebounce):
		// Quiet: correct.
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "absent"), newTestClient("http://unused", nil), nil)
	require.NoError(t, err)

	err = watcher.Start(context.Background(), func(UploadEvent) {})
	assert.Error(t, err)
}
