// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps glamour for answer text. Rendering failures fall
// back to plain text so a bad document can never blank a message.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer wrapped at the given width.
// A nil renderer (glamour init failure) is valid and renders plain text.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return &MarkdownRenderer{width: width}
	}
	return &MarkdownRenderer{renderer: r, width: width}
}

// Width returns the wrap width this renderer was built for.
func (m *MarkdownRenderer) Width() int {
	return m.width
}

// Render converts markdown to styled terminal output. Any failure returns
// the input text unchanged.
func (m *MarkdownRenderer) Render(text string) string {
	if m == nil || m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	// Glamour pads with leading/trailing blank lines; bubbles add their own.
	return strings.Trim(out, "\n")
}
