package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/nepalflora/sap/internal/keys"
)

func keyPress(key string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 0, Text: key}
}

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Error("new modal should not be visible")
	}

	m.Show(NewAttachFileState())
	if !m.IsVisible() {
		t.Error("modal not visible after Show")
	}

	m.SetError("bad path")
	if m.GetError() != "bad path" {
		t.Errorf("GetError() = %q", m.GetError())
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("modal still visible after Hide")
	}
	if m.GetError() != "" {
		t.Error("error not cleared on Hide")
	}
}

func TestModal_View_Empty(t *testing.T) {
	m := NewModal()
	if got := m.View(80, 24); got != "" {
		t.Errorf("View() on hidden modal = %q, want empty", got)
	}
}

func TestAttachFileState_GetPath(t *testing.T) {
	s := NewAttachFileState()
	s.Input.SetValue("  /tmp/leaf.png  ")
	if got := s.GetPath(); got != "/tmp/leaf.png" {
		t.Errorf("GetPath() = %q", got)
	}
}

func TestThemeState_Navigation(t *testing.T) {
	defer SetTheme(DefaultTheme)

	s := NewThemeState(DefaultTheme)
	if s.SelectedIndex != 0 {
		t.Fatalf("SelectedIndex = %d, want 0", s.SelectedIndex)
	}

	s.Update(keyPress(keys.Down))
	if s.SelectedIndex != 1 {
		t.Errorf("SelectedIndex after down = %d, want 1", s.SelectedIndex)
	}
	if s.Selected() != ThemeNames()[1] {
		t.Errorf("Selected() = %q, want %q", s.Selected(), ThemeNames()[1])
	}

	s.Update(keyPress(keys.Up))
	if s.SelectedIndex != 0 {
		t.Errorf("SelectedIndex after up = %d, want 0", s.SelectedIndex)
	}

	// Up at the top stays put
	s.Update(keyPress(keys.Up))
	if s.SelectedIndex != 0 {
		t.Errorf("SelectedIndex clamped = %d, want 0", s.SelectedIndex)
	}
}

func TestThemeState_Revert(t *testing.T) {
	defer SetTheme(DefaultTheme)

	s := NewThemeState(DefaultTheme)
	s.Update(keyPress(keys.Down))
	if CurrentThemeName() == DefaultTheme {
		t.Fatal("theme not previewed on navigation")
	}

	s.Revert()
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("CurrentThemeName() after Revert = %q, want %q", CurrentThemeName(), DefaultTheme)
	}
}

func TestThemeState_Render(t *testing.T) {
	defer SetTheme(DefaultTheme)

	s := NewThemeState(DefaultTheme)
	out := ansi.Strip(s.Render())
	for _, name := range ThemeNames() {
		if !strings.Contains(out, GetTheme(name).Name) {
			t.Errorf("theme picker missing %q", GetTheme(name).Name)
		}
	}
}

func TestSettingsState_GetValues(t *testing.T) {
	s := NewSettingsState("http://localhost:8000", true)
	url, notif := s.GetValues()
	if url != "http://localhost:8000" {
		t.Errorf("backendURL = %q", url)
	}
	if !notif {
		t.Error("notifications = false, want true")
	}
}
