package contract

import (
	"ai-deckgen-be/pkg/store"
)

// SessionRepository holds the conversation state every deck operation
// reads and mutates.
type SessionRepository interface {
	GetOrCreate(sessionID string) *store.Session
	Get(sessionID string) (*store.Session, bool)
	Save(session *store.Session)
	Delete(sessionID string)
	AppendMessage(sessionID, role, content string)
}
