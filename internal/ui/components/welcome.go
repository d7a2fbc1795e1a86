// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/docchat-tui/internal/ui/styles"
)

// DefaultSuggestions is the fixed set of starter queries shown on the
// welcome screen. Order matters: the number keys map to these positions.
var DefaultSuggestions = []string{
	"What topics are covered in the knowledge base?",
	"Summarize the most recently added document.",
	"What does the documentation say about getting started?",
	"List the key terms I should know.",
}

const logo = `     _                 _           _
  __| | ___   ___  ___| |__   __ _| |_
 / _' |/ _ \ / __|/ __| '_ \ / _' | __|
| (_| | (_) | (__| (__| | | | (_| | |_
 \__,_|\___/ \___|\___|_| |_|\__,_|\__|`

// Welcome renders the empty-state screen shown before the first message.
type Welcome struct {
	Width  int
	Height int

	theme *styles.Theme
}

// NewWelcome creates the welcome screen component.
func NewWelcome(theme *styles.Theme) Welcome {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return Welcome{theme: theme}
}

// SetSize updates the render area.
func (w *Welcome) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// SuggestionCount returns how many starter queries are offered.
func (w Welcome) SuggestionCount() int {
	return len(DefaultSuggestions)
}

// Suggestion returns the starter query for a 1-based selection, or an empty
// string when the index is out of range.
func (w Welcome) Suggestion(n int) string {
	if n < 1 || n > len(DefaultSuggestions) {
		return ""
	}
	return DefaultSuggestions[n-1]
}

// View renders the centered welcome box with numbered suggestions.
func (w Welcome) View() string {
	var body strings.Builder

	// Narrow layouts get the word mark; the banner needs the columns.
	if w.theme.GetLayoutMode() == styles.LayoutNarrow {
		body.WriteString(w.theme.WelcomeLogo.Render("docchat"))
	} else {
		body.WriteString(w.theme.WelcomeLogo.Render(logo))
	}
	body.WriteString("\n\n")

	body.WriteString(w.theme.WelcomeInfo.Render("Ask questions about your documents."))
	body.WriteString("\n")
	body.WriteString(w.theme.WelcomeInfo.Render("Answers cite their sources."))
	body.WriteString("\n\n")

	for i, s := range DefaultSuggestions {
		body.WriteString(w.theme.SuggestionNumber.Render(fmt.Sprintf("[%d]", i+1)))
		body.WriteString(" ")
		body.WriteString(w.theme.SuggestionText.Render(s))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(w.theme.SidebarHint.Render("Press a number to ask, or type your own question."))

	box := w.theme.WelcomeBox.Render(body.String())
	if w.Width == 0 || w.Height == 0 {
		return box
	}
	return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center, box)
}
