package contract

import (
	"context"

	"ai-deckgen-be/internal/entity"
)

type GenerationRecordRepository interface {
	Create(ctx context.Context, record *entity.GenerationRecord) error
	FindBySession(ctx context.Context, sessionID string) ([]*entity.GenerationRecord, error)
}
