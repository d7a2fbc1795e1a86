// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// ANSWER DETAIL STYLES
	// ==========================================================================

	ConfidenceHigh lipgloss.Style
	ConfidenceLow  lipgloss.Style
	RetrievedCount lipgloss.Style
	SourceToggle   lipgloss.Style
	SourceIndex    lipgloss.Style
	SourceDocument lipgloss.Style
	SourcePage     lipgloss.Style
	SourceExcerpt  lipgloss.Style
	Interpretation lipgloss.Style
	CopyHint       lipgloss.Style
	CopyConfirmed  lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	SidebarPanel    lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style
	SidebarMeta     lipgloss.Style
	SidebarHint     lipgloss.Style
	SidebarOverlay  lipgloss.Style
	SidebarClosed   lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox       lipgloss.Style
	WelcomeLogo      lipgloss.Style
	WelcomeInfo      lipgloss.Style
	SuggestionNumber lipgloss.Style
	SuggestionText   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		BorderLeft(true).
		PaddingLeft(2).
		MarginRight(4)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Answer details
	t.ConfidenceHigh = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(ConfidenceHigh).
		Bold(true).
		Padding(0, 1)

	t.ConfidenceLow = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(ConfidenceLow).
		Bold(true).
		Padding(0, 1)

	t.RetrievedCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SourceToggle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.SourceIndex = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.SourceDocument = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.SourcePage = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SourceExcerpt = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		BorderLeft(true).
		PaddingLeft(1)

	t.Interpretation = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.CopyHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CopyConfirmed = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Sidebar
	t.SidebarPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SidebarSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SidebarHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SidebarOverlay = lipgloss.NewStyle().
		Background(SurfaceDim)

	t.SidebarClosed = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Purple).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SuggestionNumber = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.SuggestionText = lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}
