package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nepalflora/sap/internal/keys"
	"github.com/nepalflora/sap/internal/logger"
	"github.com/nepalflora/sap/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.FocusMsg:
		m.windowFocused = true
		logger.Debug("App: Window focused")

	case tea.BlurMsg:
		m.windowFocused = false
		logger.Debug("App: Window blurred")

	case tea.PasteStartMsg:
		return m.handlePasteStart()

	case tea.PasteMsg:
		return m.handlePaste(msg)

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled here, let it fall through to the chat panel

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case StartupModalMsg:
		return m.handleStartupModals()
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
	}

	// The stopwatch keeps ticking regardless of focus while a query is in flight
	if _, ok := msg.(ui.StopwatchTickMsg); ok {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Everything else goes to the chat panel
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handlePasteStart handles paste events - check for images in clipboard when paste starts.
// Terminals intercept Ctrl+V and send paste events instead of key presses.
func (m *Model) handlePasteStart() (tea.Model, tea.Cmd) {
	logger.Debug("App: PasteStartMsg received, modalVisible=%v", m.modal.IsVisible())
	if m.modal.IsVisible() {
		return m, nil
	}
	model, cmd := m.handleImagePaste()
	if m.chat.HasPendingAttachment() {
		// Image was attached, don't process text paste
		return model, cmd
	}
	// No image found, let text paste proceed normally
	return m, nil
}

// handlePaste logs paste content for debugging
func (m *Model) handlePaste(msg tea.PasteMsg) (tea.Model, tea.Cmd) {
	content := msg.Content
	preview := content
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	logger.Debug("App: PasteMsg received: len=%d, preview=%q", len(content), preview)
	return m, nil
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the chat panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case keys.CtrlC:
		return m, tea.Quit

	case keys.CtrlV:
		// Fallback for terminals that send raw key presses instead of
		// paste events.
		return m.handlePasteFallback()

	case keys.CtrlO:
		m.modal.Show(ui.NewAttachFileState())
		return m, nil

	case keys.CtrlX:
		if m.chat.HasPendingAttachment() {
			m.chat.RemoveAttachment()
		}
		return m, nil

	case keys.CtrlT:
		m.modal.Show(ui.NewThemeState(ui.CurrentThemeName()))
		return m, nil

	case keys.CtrlS:
		m.modal.Show(ui.NewSettingsState(m.config.GetBackendURL(), m.config.GetNotificationsEnabled()))
		return m, nil

	case keys.Enter:
		return m.sendMessage()
	}

	// Not handled, fall through to the chat panel
	return nil, nil
}
