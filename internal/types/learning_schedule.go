package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecurrenceNone   = "none"
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

type LearningSchedule struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title              string         `gorm:"not null;column:title" json:"title"`
	SourceBookID       *uuid.UUID     `gorm:"type:uuid;column:source_book_id" json:"source_book_id,omitempty"`
	SourceBookTitle    string         `gorm:"column:source_book_title" json:"source_book_title"`
	ScheduledAt        time.Time      `gorm:"not null;index;column:scheduled_at" json:"scheduled_at"`
	Recurrence         string         `gorm:"not null;default:'none';column:recurrence" json:"recurrence"`
	IsCompleted        bool           `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	AIInteractionLevel int            `gorm:"not null;default:1;column:ai_interaction_level" json:"ai_interaction_level"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningSchedule) TableName() string { return "learning_schedule" }
