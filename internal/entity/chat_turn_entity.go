package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"

	// MaxTranscriptTurns caps the stored transcript; oldest turns go first.
	MaxTranscriptTurns = 50
)

type ChatTurn struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      ChatRole
	Content   string
	Timestamp time.Time
}

// CapTranscript keeps only the most recent MaxTranscriptTurns entries.
func CapTranscript(turns []ChatTurn) []ChatTurn {
	if len(turns) <= MaxTranscriptTurns {
		return turns
	}
	return turns[len(turns)-MaxTranscriptTurns:]
}
