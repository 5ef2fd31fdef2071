package memory

import (
	"time"

	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the single source of truth for conversation state.
// Sessions are created lazily on first access and never expire; they live
// for the process lifetime only.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() contract.SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

// GetOrCreate returns the session for the given id, creating a fresh one in
// the INPUT stage when the id is seen for the first time.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}

	session := &store.Session{
		ID:               sessionID,
		Stage:            store.StageInput,
		Images:           []*store.GeneratedImage{},
		SupportDocsFiles: []store.SupportDocFile{},
		PageMaterials:    map[string][]store.PageMaterial{},
		DesignPrinciples: constant.DefaultDesignPrinciples,
		Messages:         []store.Message{},
	}
	r.cache.Set(sessionID, session, cache.NoExpiration)
	return session
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.NoExpiration)
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// AppendMessage adds one entry to the session's conversation log.
func (r *SessionRepository) AppendMessage(sessionID, role, content string) {
	session := r.GetOrCreate(sessionID)
	session.Messages = append(session.Messages, store.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}
