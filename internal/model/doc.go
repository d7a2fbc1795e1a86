// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat history.
//
// A Conversation is an append-only sequence of ChatMessage values. Messages
// are never mutated or removed once appended; everything that changes after
// creation (expanded source lists, copy confirmations) is view state owned
// by the UI layer and keyed by message ID.
package model
