package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Persona names for the conversational session driver. Each persona has its
// own system prompt and, for the generator personas, a JSON payload contract.
const (
	PersonaReflection      = "reflection"
	PersonaDream           = "dream"
	PersonaChavrutaSupport = "chavruta_supportive"
	PersonaChavrutaScholar = "chavruta_scholar"
	PersonaTrackBuilder    = "track_builder"
	PersonaTrackUpdate     = "track_update"
	PersonaPracticeDebrief = "practice_debrief"
)

// Macro states of a chat session. Generator personas move collecting →
// generated → finalized; plain conversational personas stay collecting until
// finalized.
const (
	ChatStateCollecting = "collecting"
	ChatStateGenerated  = "generated"
	ChatStateFinalized  = "finalized"
)

const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSession is the server-side home of a single-persona conversation: a
// linear transcript, the persona's serialized context, and the macro state.
type ChatSession struct {
	ID         uuid.UUID                     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID                     `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User                         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Persona    string                        `gorm:"not null;column:persona" json:"persona"`
	State      string                        `gorm:"not null;default:'collecting';column:state" json:"state"`
	Context    datatypes.JSON                `gorm:"type:jsonb;column:context" json:"context,omitempty"`
	Transcript datatypes.JSONSlice[ChatTurn] `gorm:"type:jsonb;column:transcript" json:"transcript"`
	Generated  datatypes.JSON                `gorm:"type:jsonb;column:generated" json:"generated,omitempty"`
	CreatedAt  time.Time                     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time                     `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt                `gorm:"index" json:"deleted_at,omitempty"`
}

func (ChatSession) TableName() string { return "chat_session" }
