package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width         int
	thinking      bool // Whether a query is in flight
	hasAttachment bool // Whether an image is attached to the composer
	modalVisible  bool // Whether a modal is open
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(thinking, hasAttachment, modalVisible bool) {
	f.thinking = thinking
	f.hasAttachment = hasAttachment
	f.modalVisible = modalVisible
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// bindings returns the keybindings for the current context
func (f *Footer) bindings() []KeyBinding {
	if f.modalVisible {
		return []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	}

	if f.thinking {
		// A query is in flight: input is locked until the answer lands
		return []KeyBinding{
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	bindings := []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "ctrl+v", Desc: "paste image"},
		{Key: "ctrl+o", Desc: "attach file"},
	}
	if f.hasAttachment {
		bindings = append(bindings, KeyBinding{Key: "ctrl+x", Desc: "remove image"})
	}
	bindings = append(bindings,
		KeyBinding{Key: "ctrl+t", Desc: "theme"},
		KeyBinding{Key: "ctrl+s", Desc: "settings"},
		KeyBinding{Key: "pgup/dn", Desc: "scroll"},
		KeyBinding{Key: "ctrl+c", Desc: "quit"},
	)
	return bindings
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	// Drop trailing bindings rather than wrapping on narrow terminals
	if f.width > 0 && ansi.StringWidth(content) > f.width-InputPaddingWidth {
		content = ansi.Truncate(content, f.width-InputPaddingWidth, "…")
	}

	return FooterStyle.Width(f.width).Render(content)
}
