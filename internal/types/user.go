package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// TrackCustom marks a user journeying on an AI-generated curriculum
	// rather than one of the fixed ones.
	TrackCustom = "מותאם אישית"
)

type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email               string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password            string         `gorm:"not null;column:password" json:"-"`
	FullName            string         `gorm:"not null;column:full_name" json:"full_name"`
	Role                string         `gorm:"not null;default:'user';column:role" json:"role"`
	Track               string         `gorm:"column:track" json:"track"`
	CurrentStage        int            `gorm:"not null;default:1;column:current_stage" json:"current_stage"`
	OnboardingCompleted bool           `gorm:"not null;default:false;column:onboarding_completed" json:"onboarding_completed"`
	CustomTrackID       *uuid.UUID     `gorm:"type:uuid;column:custom_track_id" json:"custom_track_id,omitempty"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
