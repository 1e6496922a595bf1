// Package conversation holds the ordered transcript of a chat session.
// The transcript is append-only and lives only as long as the process.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/nepalflora/sap/internal/attachment"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation. Immutable once appended.
type Turn struct {
	ID      string
	Role    Role
	Text    string // possibly empty for image-only user turns
	Image   *attachment.Attachment
	IsError bool // assistant turn carrying the fixed backend-error text

	// Assistant-only extras from the backend response
	Caption string
	Sources []Source

	Time time.Time
}

// Source is one retrieved document reference shown under an answer.
type Source struct {
	ID     string
	Origin string // which retrieval arm produced it (text, caption, image)
	Score  float64
}

// NewUserTurn creates a user turn from the composer's draft and pending image.
func NewUserTurn(text string, image *attachment.Attachment) Turn {
	return Turn{
		ID:    uuid.NewString(),
		Role:  RoleUser,
		Text:  text,
		Image: image,
		Time:  time.Now(),
	}
}

// NewAssistantTurn creates an assistant turn from a backend answer.
func NewAssistantTurn(text string) Turn {
	return Turn{
		ID:   uuid.NewString(),
		Role: RoleAssistant,
		Text: text,
		Time: time.Now(),
	}
}

// NewErrorTurn creates the assistant turn shown when a request fails.
func NewErrorTurn(text string) Turn {
	t := NewAssistantTurn(text)
	t.IsError = true
	return t
}

// Store maintains the ordered transcript. Append order is display order.
// All access happens on the UI event loop, so there is no locking.
type Store struct {
	turns []Turn
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{}
}

// Append inserts a turn at the end of the transcript.
func (s *Store) Append(t Turn) {
	s.turns = append(s.turns, t)
}

// Turns returns a copy of the transcript in display order.
func (s *Store) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s *Store) Len() int {
	return len(s.turns)
}

// Last returns the most recent turn, or nil when the transcript is empty.
func (s *Store) Last() *Turn {
	if len(s.turns) == 0 {
		return nil
	}
	t := s.turns[len(s.turns)-1]
	return &t
}
