package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GenerationStatus string

const (
	GenerationStatusSucceeded GenerationStatus = "succeeded"
	GenerationStatusFailed    GenerationStatus = "failed"
	GenerationStatusPartial   GenerationStatus = "partial"
)

// GenerationRecord is the audit row written after each image batch. The
// Pages payload keeps per-page outcomes so failures can be inspected later.
type GenerationRecord struct {
	Id         uuid.UUID `gorm:"primaryKey"`
	SessionID  string    `gorm:"index"`
	InviteCode string
	Status     GenerationStatus
	PageCount  int
	Pages      datatypes.JSON
	CreatedAt  time.Time
}
