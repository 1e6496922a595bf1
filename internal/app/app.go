package app

import (
	"github.com/nepalflora/sap/internal/backend"
	"github.com/nepalflora/sap/internal/config"
	"github.com/nepalflora/sap/internal/conversation"
	"github.com/nepalflora/sap/internal/logger"
	"github.com/nepalflora/sap/internal/ui"

	tea "charm.land/bubbletea/v2"
)

// AppState represents the current state of the application.
// Using an explicit state machine prevents invalid state combinations
// and makes state transitions clear and traceable.
type AppState int

const (
	StateIdle     AppState = iota // Ready for user input
	StateThinking                 // A query is in flight at the backend
)

// String returns a human-readable name for the state
func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateThinking:
		return "Thinking"
	default:
		return "Unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	chat    *ui.Chat
	modal   *ui.Modal

	convo  *conversation.Store
	client *backend.Client

	width  int
	height int

	// State machine
	state AppState

	// Whether the terminal window currently has focus. Drives desktop
	// notifications: an answer arriving while unfocused gets one.
	windowFocused bool
}

// StartupModalMsg is sent on app start to trigger the welcome modal
type StartupModalMsg struct{}

// QueryResultMsg is sent when a backend query completes, successfully or not
type QueryResultMsg struct {
	Resp *backend.QueryResponse
	Err  error
}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:        cfg,
		version:       version,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		convo:         conversation.NewStore(),
		client:        backend.NewClient(cfg.GetBackendURL()),
		state:         StateIdle,
		windowFocused: true,
	}

	m.header.SetSession(cfg.GetSessionID())
	m.chat.SetFocused(true)

	return m
}

// State helper methods

// IsIdle returns true if the app is ready for user input
func (m *Model) IsIdle() bool {
	return m.state == StateIdle
}

// CanSendMessage returns true if the user can send a new message.
// Only one query may be in flight at a time; sends while thinking are ignored.
func (m *Model) CanSendMessage() bool {
	return m.state == StateIdle
}

// setState transitions to a new state with logging
func (m *Model) setState(newState AppState) {
	if m.state != newState {
		logger.Debug("App: State transition %s -> %s", m.state, newState)
		m.state = newState
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	// Trigger startup modal check (first-run welcome)
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}
