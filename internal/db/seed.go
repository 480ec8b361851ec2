package db

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type stageSeed struct {
	StageNumber      int      `yaml:"stage_number"`
	StageName        string   `yaml:"stage_name"`
	Description      string   `yaml:"description"`
	LearningMaterial string   `yaml:"learning_material"`
	DailyTasks       []string `yaml:"daily_tasks"`
	SuccessMetrics   string   `yaml:"success_metrics"`
}

type stagesFile struct {
	Stages []stageSeed `yaml:"stages"`
}

// SeedStages loads the fixed curriculum from a YAML file and inserts any
// stage numbers not already present. Existing rows are left untouched; the
// fixed curriculum is immutable content.
func (s *PostgresService) SeedStages(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read stages file: %w", err)
	}
	var parsed stagesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse stages file: %w", err)
	}
	if len(parsed.Stages) == 0 {
		return fmt.Errorf("stages file %s contains no stages", path)
	}

	var existing []int
	if err := s.db.Model(&types.Stage{}).Pluck("stage_number", &existing).Error; err != nil {
		return fmt.Errorf("list existing stages: %w", err)
	}
	have := make(map[int]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}

	inserted := 0
	for _, seed := range parsed.Stages {
		if have[seed.StageNumber] {
			continue
		}
		stage := types.Stage{
			StageNumber:      seed.StageNumber,
			StageName:        seed.StageName,
			Description:      seed.Description,
			LearningMaterial: seed.LearningMaterial,
			DailyTasks:       datatypes.NewJSONSlice(seed.DailyTasks),
			SuccessMetrics:   seed.SuccessMetrics,
		}
		if err := s.db.Create(&stage).Error; err != nil {
			return fmt.Errorf("seed stage %d: %w", seed.StageNumber, err)
		}
		inserted++
	}
	s.log.Info("Curriculum stages seeded", "inserted", inserted, "existing", len(existing))
	return nil
}
