package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MeditationLevelBeginner     = "מתחיל"
	MeditationLevelIntermediate = "בינוני"
	MeditationLevelAdvanced     = "מתקדם"
)

type Meditation struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string         `gorm:"not null;column:title" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	Instructions string         `gorm:"column:instructions" json:"instructions"`
	Level        string         `gorm:"column:level" json:"level"`
	Duration     string         `gorm:"column:duration" json:"duration"`
	IsCustom     bool           `gorm:"not null;default:false;column:is_custom" json:"is_custom"`
	CreatedBy    *uuid.UUID     `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Meditation) TableName() string { return "meditation" }
