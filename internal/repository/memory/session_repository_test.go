package memory

import (
	"testing"

	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreate(t *testing.T) {
	repo := NewSessionRepository()

	session := repo.GetOrCreate("s1")
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, store.StageInput, session.Stage)
	assert.Equal(t, constant.DefaultDesignPrinciples, session.DesignPrinciples)
	assert.NotNil(t, session.PageMaterials)
	assert.Empty(t, session.Messages)

	// Same id returns the same record, not a fresh one.
	session.Stage = store.StageOutlineRefine
	again := repo.GetOrCreate("s1")
	assert.Same(t, session, again)
	assert.Equal(t, store.StageOutlineRefine, again.Stage)
}

func TestGetMissing(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get("nope")
	assert.False(t, found)

	repo.GetOrCreate("exists")
	got, found := repo.Get("exists")
	assert.True(t, found)
	assert.Equal(t, "exists", got.ID)
}

func TestDeleteResetsState(t *testing.T) {
	repo := NewSessionRepository()

	s := repo.GetOrCreate("s1")
	s.Stage = store.StageComplete
	repo.Save(s)

	repo.Delete("s1")

	fresh := repo.GetOrCreate("s1")
	assert.Equal(t, store.StageInput, fresh.Stage)
	assert.NotSame(t, s, fresh)
}

func TestAppendMessage(t *testing.T) {
	repo := NewSessionRepository()

	repo.AppendMessage("s1", constant.ChatMessageRoleUser, "hello")
	repo.AppendMessage("s1", constant.ChatMessageRoleAssistant, "outline ready")

	session, found := repo.Get("s1")
	assert.True(t, found)
	assert.Len(t, session.Messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, session.Messages[0].Role)
	assert.Equal(t, "hello", session.Messages[0].Content)
	assert.False(t, session.Messages[0].Timestamp.IsZero())
}
