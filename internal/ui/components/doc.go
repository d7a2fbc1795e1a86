// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable view components for the chat UI:
// message bubbles, the welcome screen, the document sidebar, and markdown
// rendering. Components are pure renderers; state transitions live in the
// chat model that owns them.
package components
