package contract

import (
	"context"

	"ai-deckgen-be/internal/entity"
)

type LoginRecordRepository interface {
	Create(ctx context.Context, record *entity.LoginRecord) error
	FindAll(ctx context.Context, limit int) ([]*entity.LoginRecord, error)
	Count(ctx context.Context) (int64, error)
}
