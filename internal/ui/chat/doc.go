// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation controller: the Bubble Tea model
// that owns the message history, drives queries against the agent, and
// renders the chat view.
//
// The controller has exactly two states. Idle accepts input; Awaiting has
// one query in flight and queues nothing behind it. Every query settles
// back to Idle by appending exactly one assistant turn, whether the agent
// answered, reported a failure, or could not be reached.
package chat
