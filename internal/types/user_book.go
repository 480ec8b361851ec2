package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookStatusPlanning = "בתכנון"
	BookStatusStudying = "בלימוד"
	BookStatusDone     = "הסתיים"
)

// UserBook is one shelf item in the user's beit-midrash library.
type UserBook struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	BookTitle string         `gorm:"not null;column:book_title" json:"book_title"`
	Author    string         `gorm:"column:author" json:"author"`
	Status    string         `gorm:"not null;default:'בתכנון';column:status" json:"status"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserBook) TableName() string { return "user_book" }
