// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Configuration constants for the document store API.
const (
	// DefaultTimeout bounds list/delete calls. Uploads get UploadTimeout.
	DefaultTimeout = 30 * time.Second

	// UploadTimeout bounds a single document upload.
	UploadTimeout = 5 * time.Minute

	// MaxResponseSize caps the response body read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// ErrDocumentNotFound indicates the named document does not exist in the
// knowledge base.
var ErrDocumentNotFound = errors.New("document not found")

// sharedHTTPClient pools connections across document store requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: UploadTimeout,
}

// =============================================================================
// TYPES
// =============================================================================

// Document is the store's record of one uploaded file.
type Document struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Pages      int       `json:"pages,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Notifier receives fire-and-forget notifications about document outcomes.
// The core consumes no return values from either method.
type Notifier interface {
	OnUploadSuccess(doc Document)
	OnDeleteSuccess(fileName string)
}

// LogNotifier is the default Notifier: it logs outcomes and nothing else.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) OnUploadSuccess(doc Document) {
	n.Log.Info("document uploaded",
		zap.String("name", doc.Name),
		zap.Int64("size", doc.Size))
}

func (n LogNotifier) OnDeleteSuccess(fileName string) {
	n.Log.Info("document deleted", zap.String("name", fileName))
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the remote document store, scoped to one knowledge base.
type Client struct {
	baseURL    string
	kbID       string
	apiKey     string
	httpClient *http.Client
	notifier   Notifier
	log        *zap.Logger
}

// NewClient creates a document store client for the given knowledge base.
func NewClient(baseURL, kbID, apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		kbID:       kbID,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: sharedHTTPClient,
		notifier:   LogNotifier{Log: log},
		log:        log,
	}
}

// WithNotifier replaces the default logging notifier.
func (c *Client) WithNotifier(n Notifier) *Client {
	if n != nil {
		c.notifier = n
	}
	return c
}

// WithHTTPClient sets a custom HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// KnowledgeBaseID returns the knowledge base this client is scoped to.
func (c *Client) KnowledgeBaseID() string {
	return c.kbID
}

func (c *Client) documentsURL() string {
	return c.baseURL + "/api/v1/knowledge-bases/" + url.PathEscape(c.kbID) + "/documents"
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Upload sends one local file to the knowledge base as a multipart form.
// On success the notifier fires with the stored document record.
func (c *Client) Upload(ctx context.Context, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.documentsURL(), pr)
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Document{}, fmt.Errorf("upload %s: store returned HTTP %d", filepath.Base(path), resp.StatusCode)
	}

	var doc Document
	if err := decodeBody(resp.Body, &doc); err != nil {
		return Document{}, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}

	c.notifier.OnUploadSuccess(doc)
	return doc, nil
}

// List returns the documents stored in the knowledge base.
func (c *Client) List(ctx context.Context) ([]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentsURL(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("list documents: store returned HTTP %d", resp.StatusCode)
	}

	var out struct {
		Documents []Document `json:"documents"`
	}
	if err := decodeBody(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out.Documents, nil
}

// Delete removes one document by name. On success the notifier fires with
// the file name.
func (c *Client) Delete(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.documentsURL()+"/"+url.PathEscape(name), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("delete %s: %w", name, ErrDocumentNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("delete %s: store returned HTTP %d", name, resp.StatusCode)
	}

	c.notifier.OnDeleteSuccess(name)
	return nil
}

func decodeBody(r io.Reader, v any) error {
	raw, err := io.ReadAll(io.LimitReader(r, MaxResponseSize))
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
