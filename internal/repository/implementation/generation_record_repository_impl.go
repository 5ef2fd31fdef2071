package implementation

import (
	"context"

	"ai-deckgen-be/internal/entity"
	"ai-deckgen-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerationRecordRepositoryImpl struct {
	db *gorm.DB
}

func NewGenerationRecordRepository(db *gorm.DB) contract.GenerationRecordRepository {
	return &GenerationRecordRepositoryImpl{db: db}
}

func (r *GenerationRecordRepositoryImpl) Create(ctx context.Context, record *entity.GenerationRecord) error {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GenerationRecordRepositoryImpl) FindBySession(ctx context.Context, sessionID string) ([]*entity.GenerationRecord, error) {
	var records []*entity.GenerationRecord
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
