package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Stage is one unit of the fixed curriculum. Rows are seeded at startup and
// never modified by user action.
type Stage struct {
	ID               uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StageNumber      int                         `gorm:"uniqueIndex;not null;column:stage_number" json:"stage_number"`
	StageName        string                      `gorm:"not null;column:stage_name" json:"stage_name"`
	Description      string                      `gorm:"column:description" json:"description"`
	LearningMaterial string                      `gorm:"column:learning_material" json:"learning_material"`
	DailyTasks       datatypes.JSONSlice[string] `gorm:"type:jsonb;column:daily_tasks" json:"daily_tasks"`
	SuccessMetrics   string                      `gorm:"column:success_metrics" json:"success_metrics"`
	CreatedAt        time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Stage) TableName() string { return "stage" }

// StageSpec is the stage shape shared by the fixed curriculum and AI-generated
// tracks. Custom tracks store a jsonb array of these.
type StageSpec struct {
	StageNumber      int      `json:"stage_number"`
	StageName        string   `json:"stage_name"`
	Description      string   `json:"description"`
	LearningMaterial string   `json:"learning_material"`
	DailyTasks       []string `json:"daily_tasks"`
	SuccessMetrics   string   `json:"success_metrics"`
}

func (s *Stage) Spec() StageSpec {
	return StageSpec{
		StageNumber:      s.StageNumber,
		StageName:        s.StageName,
		Description:      s.Description,
		LearningMaterial: s.LearningMaterial,
		DailyTasks:       []string(s.DailyTasks),
		SuccessMetrics:   s.SuccessMetrics,
	}
}
