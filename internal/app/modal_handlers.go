package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nepalflora/sap/internal/attachment"
	"github.com/nepalflora/sap/internal/errors"
	"github.com/nepalflora/sap/internal/keys"
	"github.com/nepalflora/sap/internal/logger"
	"github.com/nepalflora/sap/internal/ui"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.WelcomeState:
		return m.handleWelcomeModal(key)
	case *ui.AttachFileState:
		return m.handleAttachFileModal(key, msg, s)
	case *ui.ThemeState:
		return m.handleThemeModal(key, msg, s)
	case *ui.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	}

	// Default: update modal input (for text-based modals)
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleWelcomeModal dismisses the first-run welcome on any confirm/cancel key.
func (m *Model) handleWelcomeModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape:
		m.modal.Hide()
		m.config.MarkWelcomeShown()
		if err := m.config.Save(); err != nil {
			logger.Warn("App: Failed to persist welcome flag: %v", err)
		}
	}
	return m, nil
}

// handleAttachFileModal handles key events for the Attach Image modal.
func (m *Model) handleAttachFileModal(key string, msg tea.KeyPressMsg, state *ui.AttachFileState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		path := state.GetPath()
		if path == "" {
			m.modal.SetError("Enter a file path")
			return m, nil
		}
		att, err := attachment.FromFile(path)
		if err != nil {
			logger.Warn("App: Failed to attach file %q: %v", path, err)
			if errors.Is(err, errors.KindImage) {
				m.modal.SetError("Not an image file")
			} else {
				m.modal.SetError("Could not read file: " + err.Error())
			}
			return m, nil
		}
		m.chat.AttachImage(att)
		m.modal.Hide()
		return m, nil
	}
	// Forward other keys to modal for text input handling
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleThemeModal handles key events for the theme picker. Navigation applies
// the highlighted theme immediately so the user sees a live preview; Escape
// reverts to whatever was active before the modal opened.
func (m *Model) handleThemeModal(key string, msg tea.KeyPressMsg, state *ui.ThemeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		state.Revert()
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		selected := state.Selected()
		ui.SetTheme(selected)
		m.config.SetTheme(string(selected))
		if err := m.config.Save(); err != nil {
			logger.Warn("App: Failed to save theme: %v", err)
		}
		m.modal.Hide()
		return m, nil
	}
	// Up/down navigation (with live preview) happens inside the state
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *ui.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		backendURL, notifications := state.GetValues()
		previousURL := m.config.GetBackendURL()
		m.config.SetBackendURL(backendURL)
		if err := m.config.Validate(); err != nil {
			m.config.SetBackendURL(previousURL)
			m.modal.SetError(err.Error())
			return m, nil
		}
		m.config.SetNotificationsEnabled(notifications)
		if err := m.config.Save(); err != nil {
			logger.Error("App: Failed to save settings: %v", err)
			m.modal.SetError("Failed to save: " + err.Error())
			return m, nil
		}
		// A new base URL takes effect on the next query
		m.client = m.newBackendClient()
		m.modal.Hide()
		return m, nil
	}
	// Forward other keys to the huh form
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
