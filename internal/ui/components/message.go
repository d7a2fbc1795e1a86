// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/morganforge/docchat-tui/internal/model"
	"github.com/morganforge/docchat-tui/internal/ui/styles"
)

// MessageBubble renders a single conversation turn. The struct is rebuilt
// each frame from the chat model's state; it holds no state of its own.
type MessageBubble struct {
	Message *model.ChatMessage
	Width   int

	// ShowSources expands the citation list under an answer.
	ShowSources bool

	// ShowInterpretation expands the query interpretation line.
	ShowInterpretation bool

	// Copied flips the copy hint to a confirmation for a short interval.
	Copied bool

	// Markdown, when non-nil, renders answer text through glamour.
	Markdown *MarkdownRenderer

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for one message at the given width.
func NewMessageBubble(msg *model.ChatMessage, width int, theme *styles.Theme) MessageBubble {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return MessageBubble{Message: msg, Width: width, theme: theme}
}

// View renders the bubble. Dispatch follows the message invariant: error
// turns, answer turns, then plain turns.
func (b MessageBubble) View() string {
	if b.Message == nil {
		return ""
	}
	switch {
	case b.Message.IsError:
		return b.renderErrorBubble()
	case b.Message.Role == model.RoleUser:
		return b.renderUserBubble()
	default:
		return b.renderAnswerBubble()
	}
}

// maxBubbleWidth leaves breathing room so bubbles never span the full row.
func (b MessageBubble) maxBubbleWidth() int {
	w := b.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// headerLine renders the role label with the turn's timestamp.
func (b MessageBubble) headerLine() string {
	return b.theme.RoleLabel.Render(b.Message.Role.DisplayName()) + " " +
		b.theme.Timestamp.Render(b.Message.CreatedAt.Format("15:04"))
}

// renderUserBubble renders the user's query, right-aligned, text verbatim.
func (b MessageBubble) renderUserBubble() string {
	content := wordWrap(b.Message.Text, b.maxBubbleWidth())
	bubble := b.theme.UserBubble.Render(content)

	block := lipgloss.JoinVertical(lipgloss.Right, b.headerLine(), bubble)
	return lipgloss.NewStyle().Width(b.Width).Align(lipgloss.Right).Render(block)
}

// renderErrorBubble renders a failed turn with alert styling. It stays in
// the scrollback like any other message.
func (b MessageBubble) renderErrorBubble() string {
	text := styles.StatusIndicators.Error + " " + b.Message.Text
	content := wordWrap(text, b.maxBubbleWidth())
	return b.theme.ErrorBubble.Render(content)
}

// renderAnswerBubble renders an assistant turn: the answer text, then the
// metadata row, then the optional source and interpretation disclosures.
func (b MessageBubble) renderAnswerBubble() string {
	width := b.maxBubbleWidth()

	var text string
	if b.Markdown != nil {
		text = b.Markdown.Render(b.Message.Text)
	} else {
		text = wordWrap(b.Message.Text, width)
	}

	sections := []string{b.headerLine()}
	sections = append(sections, b.theme.AssistantBubble.Render(text))

	if answer := b.Message.Answer; answer != nil {
		if meta := b.renderMetaRow(answer); meta != "" {
			sections = append(sections, meta)
		}
		if answer.HasSources() {
			sections = append(sections, b.renderSources(answer, width))
		}
		if answer.Interpretation != "" {
			sections = append(sections, b.renderInterpretation(answer, width))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMetaRow renders the confidence badge, retrieval count, and copy hint.
func (b MessageBubble) renderMetaRow(answer *model.AgentAnswer) string {
	var parts []string

	badge := fmt.Sprintf("%.0f%% confidence", answer.Confidence*100)
	if answer.IsHighConfidence() {
		parts = append(parts, b.theme.ConfidenceHigh.Render(badge))
	} else {
		parts = append(parts, b.theme.ConfidenceLow.Render(badge))
	}

	if answer.RetrievedCount > 0 {
		noun := "passages"
		if answer.RetrievedCount == 1 {
			noun = "passage"
		}
		parts = append(parts, b.theme.RetrievedCount.Render(
			fmt.Sprintf("%d %s retrieved", answer.RetrievedCount, noun)))
	}

	if b.Copied {
		parts = append(parts, b.theme.CopyConfirmed.Render(styles.StatusIndicators.Success+" copied"))
	} else {
		parts = append(parts, b.theme.CopyHint.Render("(c) copy"))
	}

	return strings.Join(parts, "  ")
}

// renderSources renders the citation disclosure. Collapsed it is a one-line
// toggle; expanded it lists every source in backend order, 1-indexed.
func (b MessageBubble) renderSources(answer *model.AgentAnswer, width int) string {
	n := len(answer.Sources)
	noun := "Sources"
	if n == 1 {
		noun = "Source"
	}

	if !b.ShowSources {
		return b.theme.SourceToggle.Render(fmt.Sprintf("[+] %d %s", n, noun)) +
			b.theme.CopyHint.Render("  (s) expand")
	}

	lines := []string{b.theme.SourceToggle.Render(fmt.Sprintf("[-] %d %s", n, noun))}
	for i, src := range answer.Sources {
		lines = append(lines, b.renderSource(i+1, src, width))
	}
	return strings.Join(lines, "\n")
}

// renderSource renders one citation: index badge, document name, page line
// when the backend supplied one, and the quoted excerpt.
func (b MessageBubble) renderSource(index int, src model.SourceReference, width int) string {
	header := b.theme.SourceIndex.Render(fmt.Sprintf("%d", index)) + " " +
		b.theme.SourceDocument.Render(src.Document)

	lines := []string{header}
	if src.HasPage() {
		lines = append(lines, "  "+b.theme.SourcePage.Render("Page: "+src.Page))
	}
	if src.Excerpt != "" {
		quoted := wordWrap("\""+src.Excerpt+"\"", width-4)
		lines = append(lines, "  "+b.theme.SourceExcerpt.Render(quoted))
	}
	return strings.Join(lines, "\n")
}

// renderInterpretation renders the secondary disclosure for how the backend
// understood the query.
func (b MessageBubble) renderInterpretation(answer *model.AgentAnswer, width int) string {
	if !b.ShowInterpretation {
		return b.theme.CopyHint.Render("[+] Interpreted query  (i) expand")
	}
	body := wordWrap(answer.Interpretation, width-2)
	return b.theme.CopyHint.Render("[-] Interpreted query") + "\n" +
		"  " + b.theme.Interpretation.Render(body)
}

// =============================================================================
// TEXT WRAPPING
// =============================================================================

// wordWrap wraps text at word boundaries using display width, so wide
// characters count for the cells they actually occupy. Words longer than
// the limit are hard-broken.
func wordWrap(text string, limit int) string {
	if limit < 1 {
		return text
	}

	var out strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(wrapLine(paragraph, limit))
	}
	return out.String()
}

func wrapLine(line string, limit int) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var out strings.Builder
	lineWidth := 0
	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case lineWidth == 0:
			// First word on the line always lands, hard-broken if needed.
			for w > limit {
				head := runewidth.Truncate(word, limit, "")
				out.WriteString(head + "\n")
				word = strings.TrimPrefix(word, head)
				w = runewidth.StringWidth(word)
			}
			out.WriteString(word)
			lineWidth = w
		case lineWidth+1+w <= limit:
			out.WriteString(" " + word)
			lineWidth += 1 + w
		default:
			out.WriteString("\n")
			for w > limit {
				head := runewidth.Truncate(word, limit, "")
				out.WriteString(head + "\n")
				word = strings.TrimPrefix(word, head)
				w = runewidth.StringWidth(word)
			}
			out.WriteString(word)
			lineWidth = w
		}
	}
	return out.String()
}
