// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/morganforge/docchat-tui/internal/docs"
	"github.com/morganforge/docchat-tui/internal/ui/styles"
)

func TestSidebarNoteUpload(t *testing.T) {
	s := NewSidebar("kb-main", styles.NewTheme())
	s.SetDocuments(nil, nil)

	s.NoteUpload(docs.Document{Name: "a.pdf", Size: 100})
	s.NoteUpload(docs.Document{Name: "b.pdf", Size: 200})
	assert.Equal(t, 2, s.Count())

	// Re-uploading replaces in place instead of duplicating.
	s.NoteUpload(docs.Document{Name: "a.pdf", Size: 150})
	assert.Equal(t, 2, s.Count())
}

func TestSidebarNoteDelete(t *testing.T) {
	s := NewSidebar("kb-main", styles.NewTheme())
	s.SetDocuments([]docs.Document{{Name: "a.pdf"}, {Name: "b.pdf"}}, nil)

	s.NoteDelete("a.pdf")
	assert.Equal(t, 1, s.Count())

	s.NoteDelete("missing.pdf")
	assert.Equal(t, 1, s.Count())
}

func TestSidebarOverlayBreakpoint(t *testing.T) {
	s := NewSidebar("kb-main", styles.NewTheme())

	s.SetSize(79, 24)
	assert.True(t, s.IsOverlay())

	s.SetSize(120, 40)
	assert.False(t, s.IsOverlay())
}

func TestSidebarViewStates(t *testing.T) {
	s := NewSidebar("kb-main", styles.NewTheme())
	s.SetSize(120, 40)

	assert.Contains(t, s.View(), "loading...")

	s.SetDocuments(nil, nil)
	assert.Contains(t, s.View(), "No documents yet.")

	s.SetDocuments([]docs.Document{{Name: "handbook.pdf", Size: 2048, Pages: 10}}, nil)
	out := s.View()
	assert.Contains(t, out, "handbook.pdf")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "10 pages")
	assert.Contains(t, out, "kb-main")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "2.0 MB", formatSize(2<<20))
}
