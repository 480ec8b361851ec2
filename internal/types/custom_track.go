package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CustomTrack is an AI-generated curriculum owned by a single user. The
// generated_stages prefix up to the user's current stage is immutable once
// passed; updates may only splice stages after it.
type CustomTrack struct {
	ID              uuid.UUID                      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User                          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TrackName       string                         `gorm:"not null;column:track_name" json:"track_name"`
	Summary         string                         `gorm:"column:summary" json:"summary"`
	GeneratedStages datatypes.JSONSlice[StageSpec] `gorm:"type:jsonb;column:generated_stages" json:"generated_stages"`
	IsActive        bool                           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt       time.Time                      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time                      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt                 `gorm:"index" json:"deleted_at,omitempty"`
}

func (CustomTrack) TableName() string { return "custom_track" }
