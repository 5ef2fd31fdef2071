package implementation

import (
	"context"

	"ai-deckgen-be/internal/entity"
	"ai-deckgen-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginRecordRepositoryImpl struct {
	db *gorm.DB
}

func NewLoginRecordRepository(db *gorm.DB) contract.LoginRecordRepository {
	return &LoginRecordRepositoryImpl{db: db}
}

func (r *LoginRecordRepositoryImpl) Create(ctx context.Context, record *entity.LoginRecord) error {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *LoginRecordRepositoryImpl) FindAll(ctx context.Context, limit int) ([]*entity.LoginRecord, error) {
	var records []*entity.LoginRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *LoginRecordRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.LoginRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
