// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/morganforge/docchat-tui/internal/docs"
	"github.com/morganforge/docchat-tui/internal/ui/styles"
)

// sidebarWidth is the panel width when docked beside the conversation.
const sidebarWidth = 32

// overlayBreakpoint: below this terminal width the sidebar renders as a
// full-screen overlay instead of a docked panel.
const overlayBreakpoint = 80

// Sidebar lists the documents in the active knowledge base. The chat model
// toggles it and feeds it document updates; the sidebar only renders.
type Sidebar struct {
	Open   bool
	Width  int
	Height int

	kbID      string
	documents []docs.Document
	loadErr   error
	loaded    bool
	selected  int

	theme *styles.Theme
}

// NewSidebar creates a sidebar scoped to one knowledge base.
func NewSidebar(kbID string, theme *styles.Theme) Sidebar {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return Sidebar{kbID: kbID, theme: theme}
}

// SetSize updates the available render area.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// Toggle flips the open state and reports the new value.
func (s *Sidebar) Toggle() bool {
	s.Open = !s.Open
	return s.Open
}

// SetDocuments replaces the list after a load settles.
func (s *Sidebar) SetDocuments(list []docs.Document, err error) {
	s.documents = list
	s.loadErr = err
	s.loaded = true
	s.clampSelection()
}

// MoveUp moves the selection toward the top of the list.
func (s *Sidebar) MoveUp() {
	if s.selected > 0 {
		s.selected--
	}
}

// MoveDown moves the selection toward the bottom of the list.
func (s *Sidebar) MoveDown() {
	if s.selected < len(s.documents)-1 {
		s.selected++
	}
}

// Selected returns the currently selected document, if any.
func (s Sidebar) Selected() (docs.Document, bool) {
	if len(s.documents) == 0 {
		return docs.Document{}, false
	}
	return s.documents[s.selected], true
}

func (s *Sidebar) clampSelection() {
	if s.selected >= len(s.documents) {
		s.selected = len(s.documents) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// NoteUpload adds or refreshes a document after a successful upload.
func (s *Sidebar) NoteUpload(doc docs.Document) {
	for i, existing := range s.documents {
		if existing.Name == doc.Name {
			s.documents[i] = doc
			return
		}
	}
	s.documents = append(s.documents, doc)
}

// NoteDelete removes a document after a successful delete.
func (s *Sidebar) NoteDelete(name string) {
	for i, existing := range s.documents {
		if existing.Name == name {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			s.clampSelection()
			return
		}
	}
}

// Count returns the number of listed documents.
func (s Sidebar) Count() int {
	return len(s.documents)
}

// IsOverlay reports whether the sidebar should cover the conversation
// instead of docking beside it.
func (s Sidebar) IsOverlay() bool {
	return s.Width < overlayBreakpoint
}

// PanelWidth returns the docked panel width, bounded by the terminal.
func (s Sidebar) PanelWidth() int {
	if s.Width > 0 && sidebarWidth > s.Width/2 {
		return s.Width / 2
	}
	return sidebarWidth
}

// ClosedHint is the status-bar reminder shown while the sidebar is closed.
func (s Sidebar) ClosedHint() string {
	return s.theme.SidebarClosed.Render("ctrl+d docs")
}

// View renders the document panel.
func (s Sidebar) View() string {
	var body strings.Builder

	body.WriteString(s.theme.SidebarTitle.Render("Documents"))
	body.WriteString("\n")
	body.WriteString(s.theme.SidebarMeta.Render("kb: " + s.kbID))
	body.WriteString("\n\n")

	switch {
	case s.loadErr != nil:
		body.WriteString(s.theme.SidebarMeta.Render(styles.StatusIndicators.Warning + " could not load documents"))
	case !s.loaded:
		body.WriteString(s.theme.SidebarMeta.Render("loading..."))
	case len(s.documents) == 0:
		body.WriteString(s.theme.SidebarMeta.Render("No documents yet."))
		body.WriteString("\n")
		body.WriteString(s.theme.SidebarHint.Render("Drop files in the watch folder to add them."))
	default:
		for i, doc := range s.documents {
			marker := "  "
			style := s.theme.SidebarItem
			if i == s.selected {
				marker = "> "
				style = s.theme.SidebarSelected
			}
			body.WriteString(style.Render(marker + doc.Name))
			body.WriteString("\n")
			body.WriteString(s.theme.SidebarMeta.Render("    " + describeDocument(doc)))
			body.WriteString("\n")
		}
	}

	body.WriteString("\n")
	body.WriteString(s.theme.SidebarHint.Render("up/down select  x delete  ctrl+d close"))

	panel := s.theme.SidebarPanel.Width(s.PanelWidth() - 4).Render(body.String())
	if s.IsOverlay() {
		return s.theme.SidebarOverlay.Render(panel)
	}
	return panel
}

// describeDocument formats the size/pages metadata line.
func describeDocument(doc docs.Document) string {
	size := formatSize(doc.Size)
	if doc.Pages > 0 {
		noun := "pages"
		if doc.Pages == 1 {
			noun = "page"
		}
		return fmt.Sprintf("%s, %d %s", size, doc.Pages, noun)
	}
	return size
}

// formatSize renders a byte count with a human unit.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
