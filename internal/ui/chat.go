package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nepalflora/sap/internal/attachment"
	"github.com/nepalflora/sap/internal/conversation"
	"github.com/nepalflora/sap/internal/logger"
)

// StopwatchTickMsg is sent to update the stopwatch display
type StopwatchTickMsg time.Time

// thinkingVerbs are playful status messages that cycle while waiting for the backend
var thinkingVerbs = []string{
	"Thinking",
	"Pondering",
	"Germinating",
	"Photosynthesizing",
	"Sprouting",
	"Rooting around",
	"Branching out",
	"Leafing through",
	"Cross-pollinating",
	"Blossoming",
	"Budding",
	"Taking root",
	"Consulting the herbarium",
	"Pressing specimens",
	"Keying out",
}

// randomThinkingVerb returns a random verb from the list
func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// Chat is the conversation panel: the transcript viewport plus the composer
// textarea and its at-most-one pending image attachment.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	turns   []conversation.Turn
	pending *attachment.Attachment

	waiting       bool      // Waiting for the backend's answer
	waitStartTime time.Time // When waiting started (for stopwatch)
	waitingVerb   string    // Random verb to display while waiting
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask about a plant, or paste a photo..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	// Chat panel height (excluding input area which is separate)
	chatPanelHeight := height - c.inputAreaHeight()

	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)

	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	inputInnerWidth := ctx.InnerWidth(width) - InputPaddingWidth
	c.input.SetWidth(inputInnerWidth)

	// Re-wrap the transcript for the new width
	c.updateContent()
}

// inputAreaHeight returns the total height of the composer area, which grows
// by one line when an image is attached.
func (c *Chat) inputAreaHeight() int {
	h := InputTotalHeight
	if c.pending != nil {
		h += AttachmentLineHeight
	}
	return h
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetTurns replaces the rendered transcript
func (c *Chat) SetTurns(turns []conversation.Turn) {
	c.turns = turns
	c.updateContent()
}

// GetInput returns the current input text, trimmed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertText inserts text at the cursor position in the composer
func (c *Chat) InsertText(text string) {
	c.input.InsertString(text)
}

// AttachImage sets the pending attachment, replacing any previous one
func (c *Chat) AttachImage(att *attachment.Attachment) {
	if att == nil {
		return
	}
	if c.pending != nil {
		logger.Debug("Chat: replacing pending attachment %q with %q", c.pending.Name(), att.Name())
	}
	c.pending = att
	c.refreshViewportHeight()
}

// HasPendingAttachment returns whether an image is attached
func (c *Chat) HasPendingAttachment() bool {
	return c.pending != nil
}

// PendingAttachment returns the pending attachment, or nil
func (c *Chat) PendingAttachment() *attachment.Attachment {
	return c.pending
}

// RemoveAttachment discards the pending attachment
func (c *Chat) RemoveAttachment() {
	c.pending = nil
	c.refreshViewportHeight()
}

// refreshViewportHeight recalculates sizes after the composer area grew or
// shrank by the attachment line.
func (c *Chat) refreshViewportHeight() {
	if c.width > 0 && c.height > 0 {
		c.SetSize(c.width, c.height)
	}
}

// SetWaiting sets the waiting state
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomThinkingVerb()
	}
	c.updateContent()
}

// IsWaiting returns whether we're waiting for an answer
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if len(c.turns) == 0 && !c.waiting {
		sb.WriteString(renderWelcomeMessage())
	} else {
		for i, turn := range c.turns {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderTurn(turn, wrapWidth))
		}

		// Waiting indicator with stopwatch
		if c.waiting {
			if len(c.turns) > 0 {
				sb.WriteString("\n\n")
			}
			elapsed := time.Since(c.waitStartTime)
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(ChatAssistantStyle.Render("Sap:"))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render(c.waitingVerb + "... "))
			sb.WriteString(stopwatchStyle.Render(formatElapsed(elapsed)))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case StopwatchTickMsg:
		if c.waiting {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused {
		// Check if this is a scroll key before sending to input
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			key := keyMsg.String()
			switch key {
			case "pgup", "pgdown", "ctrl+up", "ctrl+down", "home", "end",
				"page up", "page down", "ctrl+u", "ctrl+d":
				// Pass to viewport for scrolling
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Don't pass other key events to viewport when input is focused.
		// This prevents spacebar/arrows from scrolling while typing.
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	// Update viewport for scrolling (non-key events, or when not focused)
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel with the composer below it
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - c.inputAreaHeight()
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	sections := []string{chatPanel}

	// Attachment line between transcript and input
	if c.pending != nil {
		line := ChatAttachmentStyle.Render("📎 " + c.pending.Preview())
		hint := FooterDescStyle.Render("  ctrl+x to remove")
		sections = append(sections, lipgloss.NewStyle().PaddingLeft(1).Render(line+hint))
	}

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	sections = append(sections, inputStyle.Width(c.width).Render(c.input.View()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
