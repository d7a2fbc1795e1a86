// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	uploads []Document
	deletes []string
}

func (n *recordingNotifier) OnUploadSuccess(doc Document)    { n.uploads = append(n.uploads, doc) }
func (n *recordingNotifier) OnDeleteSuccess(fileName string) { n.deletes = append(n.deletes, fileName) }

func newTestClient(url string, n Notifier) *Client {
	c := NewClient(url, "kb-test", "sk-test", nil).WithHTTPClient(&http.Client{})
	if n != nil {
		c.WithNotifier(n)
	}
	return c
}

func TestUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handbook.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/knowledge-bases/kb-test/documents", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "handbook.pdf", header.Filename)

		w.Write([]byte(`{"name": "handbook.pdf", "size": 9, "pages": 1}`))
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	doc, err := newTestClient(server.URL, notifier).Upload(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "handbook.pdf", doc.Name)
	assert.Equal(t, int64(9), doc.Size)
	require.Len(t, notifier.uploads, 1, "upload notification fires exactly once")
	assert.Equal(t, "handbook.pdf", notifier.uploads[0].Name)
}

func TestUploadFailureDoesNotNotify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	_, err := newTestClient(server.URL, notifier).Upload(context.Background(), path)

	assert.Error(t, err)
	assert.Empty(t, notifier.uploads)
}

func TestUploadMissingFile(t *testing.T) {
	_, err := newTestClient("http://unused", nil).Upload(context.Background(), "/no/such/file.pdf")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"documents": [
			{"name": "a.pdf", "size": 10},
			{"name": "b.md", "size": 20}
		]}`))
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, "b.md", docs[1].Name)
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/v1/knowledge-bases/kb-test/documents/old.pdf", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	err := newTestClient(server.URL, notifier).Delete(context.Background(), "old.pdf")

	require.NoError(t, err)
	assert.Equal(t, []string{"old.pdf"}, notifier.deletes)
}

func TestDeleteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	err := newTestClient(server.URL, notifier).Delete(context.Background(), "ghost.pdf")

	assert.True(t, errors.Is(err, ErrDocumentNotFound))
	assert.Empty(t, notifier.deletes)
}
