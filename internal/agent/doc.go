// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent provides the client for the remote question-answering agent.
//
// The agent performs retrieval, ranking, and answer synthesis against a
// knowledge base; this client sends one query and normalizes whatever comes
// back into a three-way Result value. Nothing in this package raises errors
// past its boundary: transport failures, backend-reported failures, and
// successes are all values, so the caller needs a three-way match and no
// recover logic.
package agent
