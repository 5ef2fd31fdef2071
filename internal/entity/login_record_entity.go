package entity

import (
	"time"

	"github.com/google/uuid"
)

type LoginRecord struct {
	Id         uuid.UUID `gorm:"primaryKey"`
	InviteCode string    `gorm:"index"`
	ClientIP   string
	UserAgent  string
	CreatedAt  time.Time
}
