// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/docchat-tui/internal/agent"
	"github.com/morganforge/docchat-tui/internal/docs"
)

// copyConfirmDuration is how long the copy confirmation stays visible.
const copyConfirmDuration = 2 * time.Second

// askAgentCmd sends one query. The command runs off the event loop; the
// settlement comes back as an AgentResponseMsg. The context carries the
// client timeout, so a hung backend cannot wedge the Awaiting state.
func askAgentCmd(client *agent.Client, messageID, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agent.DefaultTimeout)
		defer cancel()
		return AgentResponseMsg{
			MessageID: messageID,
			Result:    client.Ask(ctx, query),
		}
	}
}

// copyAnswerCmd copies answer text to the system clipboard.
func copyAnswerCmd(messageID, text string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{MessageID: messageID, Err: clipboard.WriteAll(text)}
	}
}

// copyExpireCmd schedules the confirmation reset.
func copyExpireCmd(messageID string) tea.Cmd {
	return tea.Tick(copyConfirmDuration, func(time.Time) tea.Msg {
		return CopyExpiredMsg{MessageID: messageID}
	})
}

// loadDocumentsCmd fetches the knowledge base listing for the sidebar.
func loadDocumentsCmd(client *docs.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), docs.DefaultTimeout)
		defer cancel()
		list, err := client.List(ctx)
		return DocumentsLoadedMsg{Documents: list, Err: err}
	}
}

// deleteDocumentCmd removes a document from the knowledge base.
func deleteDocumentCmd(client *docs.Client, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), docs.DefaultTimeout)
		defer cancel()
		return DocumentDeletedMsg{Name: name, Err: client.Delete(ctx, name)}
	}
}
