package types

import (
	"time"

	"github.com/google/uuid"
)

// LearningSession is the record of one chavruta study session attached to a
// schedule slot.
type LearningSession struct {
	ID                 uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ScheduleID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"schedule_id"`
	Schedule           *LearningSchedule `gorm:"constraint:OnDelete:CASCADE;foreignKey:ScheduleID;references:ID" json:"-"`
	UserID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	ChatTranscript     string            `gorm:"type:text;column:chat_transcript" json:"chat_transcript"`
	UserSummary        string            `gorm:"type:text;column:user_summary" json:"user_summary"`
	AIInteractionLevel int               `gorm:"not null;default:1;column:ai_interaction_level" json:"ai_interaction_level"`
	CreatedAt          time.Time         `gorm:"not null;default:now()" json:"created_at"`
}

func (LearningSession) TableName() string { return "learning_session" }
