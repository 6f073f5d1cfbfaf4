package model

import (
	"time"

	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/google/uuid"
)

// MessageID is a UUID-based identifier for Message
type MessageID string

// NewMessageID generates a new UUID v7 MessageID. v7 keeps IDs roughly
// time-ordered, matching the append-only nature of the transcript.
func NewMessageID() MessageID {
	return MessageID(uuid.Must(uuid.NewV7()).String())
}

// Message is one turn in a patient conversation. Messages are immutable
// once written; ordering is by CreatedAt ascending.
type Message struct {
	ID        MessageID
	PatientID types.PatientID
	Role      types.Role
	Content   string `masq:"secret"`
	CreatedAt time.Time
}
