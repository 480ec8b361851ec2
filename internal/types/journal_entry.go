package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JournalKindPersonal = "personal"
	JournalKindDream    = "dream"
)

// JournalEntry holds both the personal journal and the dream journal,
// distinguished by kind. Dream entries cache their AI interpretation.
type JournalEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Kind       string         `gorm:"not null;index;column:kind" json:"kind"`
	Title      string         `gorm:"column:title" json:"title"`
	Content    string         `gorm:"type:text;column:content" json:"content"`
	AIAnalysis string         `gorm:"type:text;column:ai_analysis" json:"ai_analysis,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (JournalEntry) TableName() string { return "journal_entry" }
