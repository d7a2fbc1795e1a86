// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/docchat-tui/internal/ui/components"
	"github.com/morganforge/docchat-tui/internal/ui/styles"
)

// inputAreaHeight is the rows reserved below the conversation: the input
// line with its border plus the status bar.
const inputAreaHeight = 4

// contentWidth is the conversation column width, shrunk while the sidebar
// is docked beside it.
func (m Model) contentWidth() int {
	w := m.width
	if m.sidebar.Open && !m.sidebar.IsOverlay() {
		w -= m.sidebar.PanelWidth()
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the full chat screen.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var conversation string
	if m.conversation.IsEmpty() && m.state == StateIdle {
		m.welcome.SetSize(m.contentWidth(), m.height-inputAreaHeight)
		conversation = m.welcome.View()
	} else {
		conversation = m.viewport.View()
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		conversation,
		m.statusLine(),
		m.inputLine(),
	)

	if !m.sidebar.Open {
		return main
	}
	if m.sidebar.IsOverlay() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.sidebar.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, m.sidebar.View())
}

// refreshViewport re-renders the transcript into the viewport buffer.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.contentWidth()
	var blocks []string
	for _, msg := range m.conversation.History() {
		bubble := components.NewMessageBubble(msg, width, m.theme)
		bubble.ShowSources = m.expandedSources[msg.ID]
		bubble.ShowInterpretation = m.expandedInterp[msg.ID]
		bubble.Copied = m.copied[msg.ID]
		if msg.HasAnswer() {
			bubble.Markdown = m.markdown
		}
		blocks = append(blocks, bubble.View())
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

// statusLine renders the row between the transcript and the input.
func (m Model) statusLine() string {
	var left string
	if m.state == StateAwaiting {
		left = m.spinner.View() + m.theme.ThinkingText.Render(" thinking...")
	} else {
		left = m.shortcutHints()
	}
	return m.theme.StatusBar.Width(m.contentWidth()).Render(left)
}

// shortcutHints lists the bindings relevant to the current state. Narrow
// layouts keep only the essentials; answer actions need the columns.
func (m Model) shortcutHints() string {
	hints := []string{m.hint(m.keys.Submit)}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		if answer := m.latestAnswer(); answer != nil {
			if answer.Answer.HasSources() {
				hints = append(hints, m.hint(m.keys.ToggleSources))
			}
			hints = append(hints, m.hint(m.keys.CopyAnswer))
		}
	}
	if !m.sidebar.Open {
		hints = append(hints, m.sidebar.ClosedHint())
	}
	hints = append(hints, m.hint(m.keys.Quit))
	return strings.Join(hints, "  ")
}

func (m Model) hint(b key.Binding) string {
	h := b.Help()
	return m.theme.ShortcutKey.Render(h.Key) + " " + m.theme.ShortcutDesc.Render(h.Desc)
}

// inputLine renders the bordered input row.
func (m Model) inputLine() string {
	return m.theme.InputContainer.Width(m.contentWidth()).Render(m.input.View())
}
