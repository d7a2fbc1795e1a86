// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import tea "github.com/charmbracelet/bubbletea"

// App adapts Model to the tea.Model interface. Model.Update returns the
// concrete type so tests can inspect state without assertions; App is the
// thin wrapper the program runs.
type App struct {
	Model
}

// NewApp wraps a chat model for tea.NewProgram.
func NewApp(m Model) App {
	return App{Model: m}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.Model.Update(msg)
	return App{Model: m}, cmd
}
