// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/morganforge/docchat-tui/internal/agent"
	"github.com/morganforge/docchat-tui/internal/docs"
)

// AgentResponseMsg carries the settlement of one in-flight query back into
// the event loop. MessageID is the user turn that initiated the query.
type AgentResponseMsg struct {
	MessageID string
	Result    agent.Result
}

// CopyResultMsg reports a clipboard copy attempt for one answer.
type CopyResultMsg struct {
	MessageID string
	Err       error
}

// CopyExpiredMsg clears the copy confirmation after its display interval.
type CopyExpiredMsg struct {
	MessageID string
}

// DocumentsLoadedMsg carries the sidebar's document listing.
type DocumentsLoadedMsg struct {
	Documents []docs.Document
	Err       error
}

// DocumentUploadedMsg reports a completed upload, manual or watch-folder.
type DocumentUploadedMsg struct {
	Document docs.Document
	Path     string
	Err      error
}

// DocumentDeletedMsg reports a completed document deletion.
type DocumentDeletedMsg struct {
	Name string
	Err  error
}
