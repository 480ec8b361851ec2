package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Submission is one completed soul-compass questionnaire. History is
// append-only; retaking the questionnaire creates a new row.
type Submission struct {
	ID        uuid.UUID                              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID                              `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User                                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Answers   datatypes.JSONSlice[int]               `gorm:"type:jsonb;not null;column:answers" json:"answers"`
	Scores    datatypes.JSONType[map[string]float64] `gorm:"type:jsonb;not null;column:scores" json:"scores"`
	Archetype string                                 `gorm:"not null;column:archetype" json:"archetype"`
	CreatedAt time.Time                              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time                              `gorm:"not null;default:now()" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }
