package types

import (
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	RemindAt  time.Time `gorm:"not null;column:remind_at" json:"remind_at"`
	Message   string    `gorm:"not null;column:message" json:"message"`
	Sent      bool      `gorm:"not null;default:false;column:sent" json:"sent"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Reminder) TableName() string { return "reminder" }
