package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/nepalflora/sap/internal/attachment"
	"github.com/nepalflora/sap/internal/backend"
	"github.com/nepalflora/sap/internal/clipboard"
	"github.com/nepalflora/sap/internal/conversation"
	"github.com/nepalflora/sap/internal/logger"
	"github.com/nepalflora/sap/internal/notification"
	"github.com/nepalflora/sap/internal/ui"
)

// newBackendClient builds a client from the current config.
func (m *Model) newBackendClient() *backend.Client {
	return backend.NewClient(m.config.GetBackendURL())
}

// =============================================================================
// Image Handling
// =============================================================================

// handleImagePaste attempts to read an image from the clipboard and attach it
func (m *Model) handleImagePaste() (tea.Model, tea.Cmd) {
	logger.Debug("App: Handling image paste")

	img, err := clipboard.ReadImage()
	if err != nil {
		logger.Debug("App: Failed to read image from clipboard: %v", err)
		// Don't show error to user - might just be text paste
		return m, nil
	}

	if img == nil {
		logger.Debug("App: No image in clipboard")
		// No image, let text paste happen normally
		return m, nil
	}

	att := attachment.FromClipboard(img.Data, img.Width, img.Height)
	logger.Info("App: Attaching pasted image: %dKB, %dx%d", att.SizeKB(), img.Width, img.Height)
	m.chat.AttachImage(att)

	return m, nil
}

// handlePasteFallback serves terminals that deliver a raw ctrl+v key press
// instead of paste events. Try an image first; with no image in the clipboard,
// insert clipboard text into the draft.
func (m *Model) handlePasteFallback() (tea.Model, tea.Cmd) {
	before := m.chat.PendingAttachment()
	model, cmd := m.handleImagePaste()
	if m.chat.PendingAttachment() != before {
		return model, cmd
	}

	text, err := clipboard.ReadText()
	if err != nil {
		logger.Debug("App: Failed to read text from clipboard: %v", err)
		return m, nil
	}
	if text != "" {
		m.chat.InsertText(text)
	}
	return m, nil
}

// =============================================================================
// Message Sending
// =============================================================================

func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	input := m.chat.GetInput()
	hasImage := m.chat.HasPendingAttachment()
	logger.Debug("App: sendMessage called, len=%d, hasImage=%v, canSend=%v", len(input), hasImage, m.CanSendMessage())

	// Need either text or image
	if input == "" && !hasImage {
		return m, nil
	}
	// One query at a time; a send while an answer is pending is dropped
	if !m.CanSendMessage() {
		return m, nil
	}

	image := m.chat.PendingAttachment()
	req := buildQueryRequest(input, image, m.config.GetSessionID())

	m.convo.Append(conversation.NewUserTurn(input, image))
	m.chat.ClearInput()
	m.chat.RemoveAttachment()
	m.chat.SetTurns(m.convo.Turns())

	m.setState(StateThinking)
	m.chat.SetWaiting(true)

	return m, tea.Batch(m.queryCmd(req), ui.StopwatchTick())
}

// buildQueryRequest maps the composer's draft to the wire request. Empty text
// and a missing image both serialize as JSON null.
func buildQueryRequest(input string, image *attachment.Attachment, sessionID string) backend.QueryRequest {
	req := backend.QueryRequest{SessionID: sessionID}
	if input != "" {
		text := input
		req.Text = &text
	}
	if image != nil {
		encoded := image.Base64()
		req.ImageBase64 = &encoded
	}
	return req
}

// queryCmd runs the query in the background and delivers the outcome as a
// single QueryResultMsg.
func (m *Model) queryCmd(req backend.QueryRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), req)
		return QueryResultMsg{Resp: resp, Err: err}
	}
}

// handleQueryResult folds a completed query back into the transcript.
func (m *Model) handleQueryResult(msg QueryResultMsg) (tea.Model, tea.Cmd) {
	m.setState(StateIdle)
	m.chat.SetWaiting(false)

	if msg.Err != nil {
		logger.Error("App: Query failed: %v", msg.Err)
		m.convo.Append(conversation.NewErrorTurn("Error contacting backend."))
		m.chat.SetTurns(m.convo.Turns())
		return m, nil
	}

	turn := conversation.NewAssistantTurn(msg.Resp.Answer)
	if msg.Resp.Caption != nil {
		turn.Caption = *msg.Resp.Caption
	}
	for _, item := range msg.Resp.Retrieved {
		score := 0.0
		if item.RRFScore != nil {
			score = *item.RRFScore
		} else if item.Score != nil {
			score = *item.Score
		}
		turn.Sources = append(turn.Sources, conversation.Source{
			ID:     item.ID,
			Origin: item.Source,
			Score:  score,
		})
	}
	m.convo.Append(turn)
	m.chat.SetTurns(m.convo.Turns())

	if msg.Resp.Mode != "" {
		m.header.SetMode(msg.Resp.Mode)
	}

	// Notify when the answer lands while the terminal is in the background
	if !m.windowFocused && m.config.GetNotificationsEnabled() {
		go notification.AnswerReady()
	}

	return m, nil
}

// =============================================================================
// Startup
// =============================================================================

// handleStartupModals shows the welcome modal for first-time users.
func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	if !m.config.GetWelcomeShown() {
		logger.Debug("App: Showing welcome modal (first-time user)")
		m.modal.Show(ui.NewWelcomeState())
	}
	return m, nil
}
