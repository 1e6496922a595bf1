package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/nepalflora/sap/internal/conversation"
)

func TestRenderTurn_ErrorStyling(t *testing.T) {
	turn := conversation.NewErrorTurn("Error contacting backend.")
	out := ansi.Strip(renderTurn(turn, 80))

	if !strings.Contains(out, "Sap:") {
		t.Errorf("error turn missing assistant label, got %q", out)
	}
	if !strings.Contains(out, "Error contacting backend.") {
		t.Errorf("error turn missing error text, got %q", out)
	}
}

func TestRenderTurn_EmptyAnswerPlaceholder(t *testing.T) {
	turn := conversation.NewAssistantTurn("")
	out := ansi.Strip(renderTurn(turn, 80))

	if !strings.Contains(out, "(no answer)") {
		t.Errorf("empty answer missing placeholder, got %q", out)
	}
}

func TestRenderTurn_CaptionAndSources(t *testing.T) {
	turn := conversation.NewAssistantTurn("Looks like a rhododendron.")
	turn.Caption = "red flowers on a tree"
	turn.Sources = []conversation.Source{
		{ID: "doc-1", Origin: "text", Score: 0.91},
		{ID: "doc-2", Origin: "image"},
	}

	out := ansi.Strip(renderTurn(turn, 80))
	if !strings.Contains(out, "Caption: red flowers on a tree") {
		t.Errorf("missing caption line, got %q", out)
	}
	if !strings.Contains(out, "Sources:") {
		t.Errorf("missing sources header, got %q", out)
	}
	if !strings.Contains(out, "doc-1 (text) 0.91") {
		t.Errorf("missing scored source line, got %q", out)
	}
	if !strings.Contains(out, "doc-2 (image)") {
		t.Errorf("missing unscored source line, got %q", out)
	}
}

func TestRenderMarkdown_Headers(t *testing.T) {
	out := ansi.Strip(renderMarkdown("# Title\nbody text", 80))
	if !strings.Contains(out, "Title") {
		t.Errorf("missing header text, got %q", out)
	}
	if strings.Contains(out, "# Title") {
		t.Errorf("header marker not stripped, got %q", out)
	}
}

func TestRenderMarkdown_CodeBlock(t *testing.T) {
	content := "before\n```python\nprint('hi')\n```\nafter"
	out := ansi.Strip(renderMarkdown(content, 80))

	if !strings.Contains(out, "print('hi')") {
		t.Errorf("missing code content, got %q", out)
	}
	if strings.Contains(out, "```") {
		t.Errorf("code fence not stripped, got %q", out)
	}
}

func TestRenderMarkdown_UnclosedCodeBlock(t *testing.T) {
	out := ansi.Strip(renderMarkdown("```\nincomplete", 80))
	if !strings.Contains(out, "incomplete") {
		t.Errorf("unclosed code block content lost, got %q", out)
	}
}

func TestRenderMarkdown_Lists(t *testing.T) {
	out := ansi.Strip(renderMarkdown("- first\n- second\n1. third", 80))
	if !strings.Contains(out, "• first") {
		t.Errorf("missing bullet item, got %q", out)
	}
	if !strings.Contains(out, "1. third") {
		t.Errorf("missing numbered item, got %q", out)
	}
}

func TestWrapText(t *testing.T) {
	long := strings.Repeat("word ", 30)
	wrapped := wrapText(long, 20)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds wrap width", line)
		}
	}

	// Zero width leaves text untouched
	if got := wrapText("abc", 0); got != "abc" {
		t.Errorf("wrapText(abc, 0) = %q", got)
	}
}

func TestRenderInlineMarkdown_CodeProtected(t *testing.T) {
	out := ansi.Strip(renderInlineMarkdown("use `**not bold**` here"))
	if !strings.Contains(out, "**not bold**") {
		t.Errorf("formatting applied inside code span, got %q", out)
	}
}
