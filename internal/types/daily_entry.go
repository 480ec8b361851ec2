package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyEntry records one day of task ratings. At most one entry per user per
// calendar day, enforced by the unique index on (user_id, entry_date).
type DailyEntry struct {
	ID          uuid.UUID                          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID                          `gorm:"type:uuid;not null;index:idx_user_entry_date,unique" json:"user_id"`
	User        *User                              `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	StageNumber int                                `gorm:"not null;column:stage_number" json:"stage_number"`
	EntryDate   time.Time                          `gorm:"type:date;not null;index:idx_user_entry_date,unique;column:entry_date" json:"date"`
	TaskRatings datatypes.JSONType[map[string]int] `gorm:"type:jsonb;column:task_ratings" json:"task_ratings"`
	DailyRating int                                `gorm:"not null;column:daily_rating" json:"daily_rating"`
	Notes       string                             `gorm:"column:notes" json:"notes"`
	CreatedAt   time.Time                          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time                          `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyEntry) TableName() string { return "daily_entry" }
