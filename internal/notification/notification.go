// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/nepalflora/sap/internal/logger"
)

// notifyFunc matches beeep.Notify so tests can swap it out.
type notifyFunc func(title, message, icon string) error

// beeepNotify adapts beeep.Notify (whose icon parameter is `any`) to notifyFunc.
func beeepNotify(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

var notifier notifyFunc = beeepNotify

// SetNotifier replaces the notification backend. Tests only.
func SetNotifier(fn func(title, message, icon string) error) {
	notifier = fn
}

// ResetNotifier restores the default beeep backend.
func ResetNotifier() {
	notifier = beeepNotify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("Notification: sending - title=%q, message=%q", title, message)
	// Empty icon string - beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		logger.Error("Notification: failed to send: %v", err)
	}
	return err
}

// AnswerReady notifies that the backend answered while the terminal
// was not focused.
func AnswerReady() error {
	return Send("Sap", "Answer ready")
}
