package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHeader_View_ContainsTitle(t *testing.T) {
	h := NewHeader()
	h.SetWidth(80)

	view := ansi.Strip(h.View())
	if !strings.Contains(view, "sap") {
		t.Errorf("header view missing title, got %q", view)
	}
}

func TestHeader_SetSession_Truncates(t *testing.T) {
	h := NewHeader()
	h.SetWidth(80)
	h.SetSession("0123456789abcdef-long-session-id")

	view := ansi.Strip(h.View())
	if !strings.Contains(view, "01234567") {
		t.Errorf("header view missing session prefix, got %q", view)
	}
	if strings.Contains(view, "0123456789") {
		t.Errorf("session id not truncated to 8 chars, got %q", view)
	}
}

func TestHeader_View_ShowsMode(t *testing.T) {
	h := NewHeader()
	h.SetWidth(80)
	h.SetSession("abc12345")
	h.SetMode("multimodal")

	view := ansi.Strip(h.View())
	if !strings.Contains(view, "(multimodal)") {
		t.Errorf("header view missing mode, got %q", view)
	}
}

func TestHeader_View_NoSessionHidesRightSide(t *testing.T) {
	h := NewHeader()
	h.SetWidth(40)
	h.SetMode("text")

	view := ansi.Strip(h.View())
	if strings.Contains(view, "(text)") {
		t.Errorf("mode shown without a session, got %q", view)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#34D399", 0x34, 0xD3, 0x99},
		{"#000000", 0, 0, 0},
		{"#FFFFFF", 255, 255, 255},
		{"bogus", 0, 0, 0},
		{"", 0, 0, 0},
	}

	for _, tt := range tests {
		r, g, b := parseHexColor(tt.hex)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.hex, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
