package types

import (
	"time"

	"github.com/google/uuid"
)

// CompletedMeditation is the append-only completion log. Every completion is
// logged here, even when it does not advance the training-path cursor.
type CompletedMeditation struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MeditationID    uuid.UUID `gorm:"type:uuid;not null;index" json:"meditation_id"`
	MeditationTitle string    `gorm:"column:meditation_title" json:"meditation_title"`
	CompletedAt     time.Time `gorm:"not null;column:completed_at" json:"completed_at"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CompletedMeditation) TableName() string { return "completed_meditation" }
