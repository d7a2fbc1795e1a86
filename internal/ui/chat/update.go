// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/morganforge/docchat-tui/internal/agent"
	"github.com/morganforge/docchat-tui/internal/ui/components"
)

// Update is the single writer of all chat state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AgentResponseMsg:
		return m.handleAgentResponse(msg)

	case CopyResultMsg:
		if msg.Err != nil {
			m.log.Warn("clipboard copy failed", zap.Error(msg.Err))
			return m, nil
		}
		m.copied[msg.MessageID] = true
		m.refreshViewport()
		return m, copyExpireCmd(msg.MessageID)

	case CopyExpiredMsg:
		delete(m.copied, msg.MessageID)
		m.refreshViewport()
		return m, nil

	case DocumentsLoadedMsg:
		m.sidebar.SetDocuments(msg.Documents, msg.Err)
		if msg.Err != nil {
			m.log.Warn("document listing failed", zap.Error(msg.Err))
		}
		return m, nil

	case DocumentUploadedMsg:
		if msg.Err != nil {
			m.log.Warn("document upload failed",
				zap.String("path", msg.Path), zap.Error(msg.Err))
			return m, nil
		}
		m.sidebar.NoteUpload(msg.Document)
		return m, nil

	case DocumentDeletedMsg:
		if msg.Err != nil {
			m.log.Warn("document delete failed",
				zap.String("name", msg.Name), zap.Error(msg.Err))
			return m, nil
		}
		m.sidebar.NoteDelete(msg.Name)
		return m, nil

	case spinner.TickMsg:
		if m.state != StateAwaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateChildren(msg)
}

// handleResize lays out the viewport, sidebar, and welcome screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.sidebar.SetSize(msg.Width, msg.Height)
	m.welcome.SetSize(msg.Width, msg.Height-inputAreaHeight)

	contentWidth := m.contentWidth()
	viewHeight := msg.Height - inputAreaHeight
	if viewHeight < 3 {
		viewHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, viewHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = viewHeight
	}
	m.input.Width = contentWidth - 4

	if m.useMarkdown {
		m.markdown = components.NewMarkdownRenderer(contentWidth - 12)
	}

	m.refreshViewport()
	return m
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleSidebar):
		if m.sidebar.Toggle() {
			return m, loadDocumentsCmd(m.docsClient)
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit(m.input.Value())
	}

	if m.sidebar.Open {
		if handled, next, cmd := m.handleSidebarKey(msg); handled {
			return next, cmd
		}
	}

	// Single-letter answer actions and welcome digits fire only while the
	// input buffer is empty; otherwise every rune belongs to the input.
	if m.input.Value() == "" {
		if handled, next, cmd := m.handleBareKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateChildren(msg)
}

// handleSidebarKey routes keys to the open sidebar: selection movement,
// deletion of the selected document, and dismissal.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CloseSidebar):
		m.sidebar.Open = false
		return true, m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.sidebar.MoveUp()
		return true, m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.sidebar.MoveDown()
		return true, m, nil

	case key.Matches(msg, m.keys.DeleteDoc) && m.input.Value() == "":
		if doc, ok := m.sidebar.Selected(); ok {
			return true, m, deleteDocumentCmd(m.docsClient, doc.Name)
		}
		return true, m, nil
	}
	return false, m, nil
}

// handleBareKey handles keys that double as typed characters.
func (m Model) handleBareKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	// Welcome-screen digit shortcuts submit a suggested query.
	if m.conversation.IsEmpty() {
		if n, err := strconv.Atoi(msg.String()); err == nil {
			if query := m.welcome.Suggestion(n); query != "" {
				next, cmd := m.submit(query)
				return true, next, cmd
			}
		}
	}

	target := m.latestAnswer()
	if target == nil {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleSources):
		if target.Answer.HasSources() {
			m.expandedSources[target.ID] = !m.expandedSources[target.ID]
			m.refreshViewport()
		}
		return true, m, nil

	case key.Matches(msg, m.keys.ToggleInterp):
		if target.Answer.Interpretation != "" {
			m.expandedInterp[target.ID] = !m.expandedInterp[target.ID]
			m.refreshViewport()
		}
		return true, m, nil

	case key.Matches(msg, m.keys.CopyAnswer):
		return true, m, copyAnswerCmd(target.ID, target.Text)
	}

	return false, m, nil
}

// submit starts one query. Whitespace-only input is a no-op, and a query
// already in flight makes further submissions no-ops rather than a queue.
func (m Model) submit(raw string) (Model, tea.Cmd) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return m, nil
	}
	if m.state == StateAwaiting {
		return m, nil
	}

	userMsg := m.conversation.AppendUser(query)
	m.state = StateAwaiting
	m.pendingMsgID = userMsg.ID
	m.input.Reset()
	m.refreshViewport()
	m.viewport.GotoBottom()

	m.log.Info("query submitted",
		zap.String("message_id", userMsg.ID),
		zap.String("preview", userMsg.Preview(48)))
	return m, tea.Batch(
		askAgentCmd(m.agentClient, userMsg.ID, query),
		m.spinner.Tick,
	)
}

// handleAgentResponse settles the in-flight query. Every outcome appends
// exactly one assistant turn and returns the controller to Idle.
func (m Model) handleAgentResponse(msg AgentResponseMsg) (Model, tea.Cmd) {
	if msg.MessageID != m.pendingMsgID {
		// A stale settlement (already superseded) changes nothing.
		return m, nil
	}

	switch msg.Result.Outcome {
	case agent.OutcomeOK:
		m.conversation.AppendAnswer(msg.Result.Payload)
	case agent.OutcomeAgentError, agent.OutcomeTransportError:
		m.conversation.AppendError(msg.Result.Message)
	}

	m.state = StateIdle
	m.pendingMsgID = ""
	m.input.Focus()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// updateChildren forwards a message to the focused child components.
func (m Model) updateChildren(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
