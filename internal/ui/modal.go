package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nepalflora/sap/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// AttachFileState - State for the Attach Image File modal
// =============================================================================

type AttachFileState struct {
	Input textinput.Model
}

func (*AttachFileState) modalState() {}

func (s *AttachFileState) Title() string { return "Attach Image" }

func (s *AttachFileState) Help() string {
	return "Enter the path to an image file, Esc to cancel"
}

func (s *AttachFileState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *AttachFileState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// GetPath returns the entered file path
func (s *AttachFileState) GetPath() string {
	return strings.TrimSpace(s.Input.Value())
}

// NewAttachFileState creates a new AttachFileState with a focused input
func NewAttachFileState() *AttachFileState {
	ti := textinput.New()
	ti.Placeholder = "/path/to/photo.jpg"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()

	return &AttachFileState{Input: ti}
}

// =============================================================================
// ThemeState - State for the theme picker modal
// =============================================================================

type ThemeState struct {
	Themes        []ThemeName
	SelectedIndex int
	original      ThemeName
}

func (*ThemeState) modalState() {}

func (s *ThemeState) Title() string { return "Theme" }

func (s *ThemeState) Help() string {
	return "up/down preview  Enter: apply  Esc: cancel"
}

func (s *ThemeState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var content strings.Builder
	for i, name := range s.Themes {
		style := ListItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}
		content.WriteString(style.Render(prefix+GetTheme(name).Name) + "\n")
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, content.String(), help)
}

func (s *ThemeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
				SetTheme(s.Themes[s.SelectedIndex])
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Themes)-1 {
				s.SelectedIndex++
				SetTheme(s.Themes[s.SelectedIndex])
			}
		}
	}
	return s, nil
}

// Selected returns the currently highlighted theme name
func (s *ThemeState) Selected() ThemeName {
	return s.Themes[s.SelectedIndex]
}

// Revert restores the theme that was active when the picker opened
func (s *ThemeState) Revert() {
	SetTheme(s.original)
}

// NewThemeState creates a theme picker with the current theme preselected
func NewThemeState(current ThemeName) *ThemeState {
	names := ThemeNames()
	selected := 0
	for i, n := range names {
		if n == current {
			selected = i
			break
		}
	}
	return &ThemeState{
		Themes:        names,
		SelectedIndex: selected,
		original:      current,
	}
}
