package types

import (
	"time"

	"github.com/google/uuid"
)

// PracticeSession is the saved outcome of a meditation practice: the debrief
// transcript plus the AI-generated summary and engagement score.
type PracticeSession struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MeditationID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"meditation_id"`
	Meditation     *Meditation `gorm:"constraint:OnDelete:CASCADE;foreignKey:MeditationID;references:ID" json:"meditation,omitempty"`
	SessionDate    time.Time   `gorm:"not null;column:session_date" json:"session_date"`
	ChatTranscript string      `gorm:"type:text;column:chat_transcript" json:"chat_transcript"`
	AISummary      string      `gorm:"type:text;column:ai_summary" json:"ai_summary"`
	AIScore        float64     `gorm:"column:ai_score" json:"ai_score"`
	CreatedAt      time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (PracticeSession) TableName() string { return "practice_session" }
