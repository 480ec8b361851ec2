package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserTrainingPath is the user's ordered meditation plan with an unlock
// cursor. last_completed_index -1 means nothing completed yet; the item at
// last_completed_index+1 is the next unlockable one.
type UserTrainingPath struct {
	ID                 uuid.UUID                      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User               *User                          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MeditationIDs      datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb;not null;column:meditation_ids" json:"meditation_ids"`
	LastCompletedIndex int                            `gorm:"not null;default:-1;column:last_completed_index" json:"last_completed_index"`
	CreatedAt          time.Time                      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time                      `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserTrainingPath) TableName() string { return "user_training_path" }
