// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/morganforge/docchat-tui/internal/agent"
	"github.com/morganforge/docchat-tui/internal/config"
	"github.com/morganforge/docchat-tui/internal/docs"
	"github.com/morganforge/docchat-tui/internal/model"
	"github.com/morganforge/docchat-tui/internal/ui/components"
	"github.com/morganforge/docchat-tui/internal/ui/styles"
)

// State is the controller's lifecycle state.
type State int

const (
	// StateIdle accepts input.
	StateIdle State = iota
	// StateAwaiting has exactly one query in flight. Submissions are
	// ignored, not queued, until the query settles.
	StateAwaiting
)

// Model is the chat view: conversation history, input line, spinner,
// welcome screen, and document sidebar.
type Model struct {
	state        State
	conversation *model.Conversation

	agentClient *agent.Client
	docsClient  *docs.Client

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	keys     KeyMap

	welcome  components.Welcome
	sidebar  components.Sidebar
	markdown *components.MarkdownRenderer

	theme *styles.Theme
	log   *zap.Logger

	width  int
	height int
	ready  bool

	// pendingMsgID is the user turn whose query is in flight. Empty in Idle.
	pendingMsgID string

	// Per-message view state, keyed by message ID.
	expandedSources map[string]bool
	expandedInterp  map[string]bool
	copied          map[string]bool

	useMarkdown bool
}

// New creates the chat model. cfg controls presentation options; a nil cfg
// falls back to the process-wide configuration. Clients are ready to use.
func New(cfg *config.Config, agentClient *agent.Client, docsClient *docs.Client, log *zap.Logger) Model {
	if cfg == nil {
		cfg = config.Global()
	}
	if log == nil {
		log = zap.NewNop()
	}
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.PromptStyle = theme.InputPrompt
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	sb := components.NewSidebar(docsClient.KnowledgeBaseID(), theme)
	sb.Open = cfg.UI.SidebarOpen

	return Model{
		state:           StateIdle,
		conversation:    model.NewConversation(),
		agentClient:     agentClient,
		docsClient:      docsClient,
		input:           ti,
		spinner:         sp,
		keys:            DefaultKeyMap(),
		welcome:         components.NewWelcome(theme),
		sidebar:         sb,
		theme:           theme,
		log:             log,
		expandedSources: make(map[string]bool),
		expandedInterp:  make(map[string]bool),
		copied:          make(map[string]bool),
		useMarkdown:     cfg.UI.Markdown,
	}
}

// Conversation exposes the history for tests and the root program.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// State returns the controller state.
func (m Model) State() State {
	return m.state
}

// Init starts the input cursor blink and the initial document load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		loadDocumentsCmd(m.docsClient),
	)
}

// latestAnswer returns the most recent structured answer turn, the target
// of the single-letter answer actions.
func (m Model) latestAnswer() *model.ChatMessage {
	return m.conversation.LastAnswer()
}
