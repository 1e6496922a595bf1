package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Header represents the top header bar
type Header struct {
	width   int
	mode    string
	session string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetMode sets the last answer mode to display (e.g. "text", "multimodal")
func (h *Header) SetMode(mode string) {
	h.mode = mode
}

// SetSession sets the session identifier to display. Only a short prefix is
// shown to keep the bar readable.
func (h *Header) SetSession(id string) {
	if len(id) > 8 {
		id = id[:8]
	}
	h.session = id
}

// View renders the header
func (h *Header) View() string {
	titleText := " sap"
	var rightText string
	if h.session != "" {
		rightText = h.session
		if h.mode != "" {
			rightText += " (" + h.mode + ")"
		}
		rightText += " "
	}

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, h.mode)
}

// parseHexColor parses a hex color string (e.g., "#34D399") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// mode is used to identify and mute the mode portion of the text.
func (h *Header) renderGradient(content string, mode string) string {
	if len(content) == 0 {
		return ""
	}

	// Get colors from current theme
	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	// Find where the mode portion starts (if present)
	modeStart := -1
	if mode != "" {
		modeMarker := "(" + mode + ")"
		modeStart = strings.Index(content, modeMarker)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		inMode := modeStart >= 0 && i >= modeStart

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 4) // Bold for the "sap" title

		if inMode {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
