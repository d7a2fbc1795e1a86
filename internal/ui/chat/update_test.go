// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/docchat-tui/internal/agent"
	"github.com/morganforge/docchat-tui/internal/config"
	"github.com/morganforge/docchat-tui/internal/docs"
	"github.com/morganforge/docchat-tui/internal/model"
	"github.com/morganforge/docchat-tui/internal/ui/components"
)

// newTestModel builds a chat model sized and ready. No command returned by
// Update is executed, so the clients never see the network.
func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Markdown = false

	m := New(cfg,
		agent.NewClient("http://unused", "agent-test", "", nil),
		docs.NewClient("http://unused", "kb-test", "", nil),
		nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// submitQuery drives one submission through the model.
func submitQuery(m Model, text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

// settle feeds the in-flight query's settlement back into the model.
func settle(m Model, result agent.Result) (Model, tea.Cmd) {
	return m.Update(AgentResponseMsg{MessageID: m.pendingMsgID, Result: result})
}

func TestNewNilConfigUsesGlobal(t *testing.T) {
	m := New(nil,
		agent.NewClient("http://unused", "agent-test", "", nil),
		docs.NewClient("http://unused", "kb-test", "", nil),
		nil)

	assert.Equal(t, StateIdle, m.State())
	assert.True(t, m.useMarkdown, "global defaults enable markdown")
}

func TestSubmitAppendsUserTurn(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submitQuery(m, "what is the policy?")

	require.NotNil(t, cmd, "submission dispatches the query")
	assert.Equal(t, StateAwaiting, m.State())
	assert.Equal(t, 1, m.Conversation().Len())
	assert.Equal(t, model.RoleUser, m.Conversation().Last().Role)
	assert.Empty(t, m.input.Value(), "input clears on submit")
}

func TestSubmitWhitespaceIsNoOp(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submitQuery(m, "   \t  ")

	assert.Nil(t, cmd)
	assert.Equal(t, StateIdle, m.State())
	assert.True(t, m.Conversation().IsEmpty())
}

func TestSubmitWhileAwaitingIsIgnoredNotQueued(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "first question")
	pending := m.pendingMsgID

	m, cmd := submitQuery(m, "second question")

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Conversation().Len(), "no turn appended, nothing queued")
	assert.Equal(t, pending, m.pendingMsgID)
}

func TestAnswerSettlementAppendsExactlyOneTurn(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")

	m, _ = settle(m, agent.Result{
		Outcome: agent.OutcomeOK,
		Payload: &model.AgentAnswer{Text: "the answer", Confidence: 0.9},
	})

	assert.Equal(t, StateIdle, m.State())
	require.Equal(t, 2, m.Conversation().Len())
	last := m.Conversation().Last()
	assert.Equal(t, model.RoleAssistant, last.Role)
	assert.Equal(t, "the answer", last.Text)
	assert.False(t, last.IsError)
	assert.Empty(t, m.pendingMsgID)
}

func TestAgentErrorSettlesToIdle(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")

	m, _ = settle(m, agent.Result{
		Outcome: agent.OutcomeAgentError,
		Message: "No relevant documents found.",
	})

	assert.Equal(t, StateIdle, m.State(), "errors never strand the Awaiting state")
	require.Equal(t, 2, m.Conversation().Len())
	last := m.Conversation().Last()
	assert.True(t, last.IsError)
	assert.Equal(t, "No relevant documents found.", last.Text)
}

func TestTransportErrorSettlesToIdle(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")

	m, _ = settle(m, agent.Result{
		Outcome: agent.OutcomeTransportError,
		Message: agent.TransportErrorText,
	})

	assert.Equal(t, StateIdle, m.State())
	assert.True(t, m.Conversation().Last().IsError)

	// The controller accepts new input immediately after the failure.
	m, cmd := submitQuery(m, "retry question")
	assert.NotNil(t, cmd)
	assert.Equal(t, StateAwaiting, m.State())
}

func TestStaleSettlementIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")

	m, _ = m.Update(AgentResponseMsg{
		MessageID: "msg_not_pending",
		Result:    agent.Result{Outcome: agent.OutcomeOK, Payload: &model.AgentAnswer{Text: "x"}},
	})

	assert.Equal(t, StateAwaiting, m.State())
	assert.Equal(t, 1, m.Conversation().Len())
}

func TestSuggestionDigitSubmits(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})

	require.NotNil(t, cmd)
	assert.Equal(t, StateAwaiting, m.State())
	require.Equal(t, 1, m.Conversation().Len())
	assert.Equal(t, components.DefaultSuggestions[0], m.Conversation().Last().Text)
}

func TestDigitTypesNormallyOnceConversationStarted(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")
	m, _ = settle(m, agent.Result{Outcome: agent.OutcomeOK, Payload: &model.AgentAnswer{Text: "a"}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})

	assert.Equal(t, "1", m.input.Value())
	assert.Equal(t, 2, m.Conversation().Len())
}

func TestSourceToggleOnLatestAnswer(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")
	m, _ = settle(m, agent.Result{
		Outcome: agent.OutcomeOK,
		Payload: &model.AgentAnswer{
			Text:    "a",
			Sources: []model.SourceReference{{Document: "doc.pdf"}},
		},
	})
	answerID := m.Conversation().LastAnswer().ID

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.True(t, m.expandedSources[answerID])

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.False(t, m.expandedSources[answerID])
}

func TestCopyConfirmationLifecycle(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")
	m, _ = settle(m, agent.Result{Outcome: agent.OutcomeOK, Payload: &model.AgentAnswer{Text: "a"}})
	answerID := m.Conversation().LastAnswer().ID

	m, cmd := m.Update(CopyResultMsg{MessageID: answerID})
	require.NotNil(t, cmd, "confirmation schedules its own expiry")
	assert.True(t, m.copied[answerID])

	m, _ = m.Update(CopyExpiredMsg{MessageID: answerID})
	assert.False(t, m.copied[answerID])
}

func TestCopyFailureShowsNoConfirmation(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")
	m, _ = settle(m, agent.Result{Outcome: agent.OutcomeOK, Payload: &model.AgentAnswer{Text: "a"}})
	answerID := m.Conversation().LastAnswer().ID

	m, cmd := m.Update(CopyResultMsg{MessageID: answerID, Err: assert.AnError})

	assert.Nil(t, cmd)
	assert.False(t, m.copied[answerID])
}

func TestSidebarDocumentLifecycle(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(DocumentsLoadedMsg{Documents: []docs.Document{{Name: "a.pdf"}}})
	assert.Equal(t, 1, m.sidebar.Count())

	m, _ = m.Update(DocumentUploadedMsg{Document: docs.Document{Name: "b.pdf"}})
	assert.Equal(t, 2, m.sidebar.Count())

	m, _ = m.Update(DocumentDeletedMsg{Name: "a.pdf"})
	assert.Equal(t, 1, m.sidebar.Count())

	// Failed operations leave the listing untouched.
	m, _ = m.Update(DocumentUploadedMsg{Path: "/tmp/c.pdf", Err: assert.AnError})
	assert.Equal(t, 1, m.sidebar.Count())
}

func TestSidebarSelectionAndDelete(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m, _ = m.Update(DocumentsLoadedMsg{Documents: []docs.Document{
		{Name: "a.pdf"}, {Name: "b.pdf"},
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	require.NotNil(t, cmd, "delete dispatches for the selected document")
	doc, ok := m.sidebar.Selected()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", doc.Name)

	// The listing shrinks only once the deletion settles.
	m, _ = m.Update(DocumentDeletedMsg{Name: "b.pdf"})
	assert.Equal(t, 1, m.sidebar.Count())
}

func TestStatusLineShowsSidebarHintWhileClosed(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitQuery(m, "question")
	m, _ = settle(m, agent.Result{Outcome: agent.OutcomeOK, Payload: &model.AgentAnswer{Text: "a"}})

	assert.Contains(t, m.View(), "ctrl+d docs")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	view := m.View()
	assert.NotContains(t, view, "ctrl+d docs")
	assert.Contains(t, view, "ctrl+d close")
}

func TestSidebarEscCloses(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.True(t, m.sidebar.Open)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.sidebar.Open)
}

func TestViewShowsWelcomeOnlyWhenEmpty(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "[1]", "empty history renders the welcome screen")

	m, _ = submitQuery(m, "question")
	assert.NotContains(t, m.View(), "[1]")
}
