// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the chat view key bindings.
type KeyMap struct {
	Submit        key.Binding
	Quit          key.Binding
	ToggleSidebar key.Binding
	CloseSidebar  key.Binding
	DeleteDoc     key.Binding
	ToggleSources key.Binding
	ToggleInterp  key.Binding
	CopyAnswer    key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "docs"),
		),
		CloseSidebar: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close docs"),
		),
		DeleteDoc: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete document"),
		),
		// Single-letter bindings act on the latest answer, and only fire
		// while the input buffer is empty; otherwise they type normally.
		ToggleSources: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sources"),
		),
		ToggleInterp: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "interpretation"),
		),
		CopyAnswer: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy answer"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("up", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}
