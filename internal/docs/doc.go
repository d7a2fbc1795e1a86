// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docs provides the client for the remote document store.
//
// All document storage lives in the remote service; this package uploads,
// lists, and deletes documents within one fixed knowledge base, and reports
// outcomes through a narrow Notifier capability. An optional watch folder
// turns locally dropped files into uploads.
package docs
