package services

import (
	"testing"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func stagesNamed(names ...string) []types.StageSpec {
	out := make([]types.StageSpec, len(names))
	for i, n := range names {
		out[i] = types.StageSpec{StageNumber: i + 1, StageName: n}
	}
	return out
}

func TestSpliceStages_KeepsPassedPrefix(t *testing.T) {
	existing := stagesNamed("א", "ב", "ג", "ד")
	updated := stagesNamed("חדש1", "חדש2")

	out := spliceStages(existing, 2, updated)
	if len(out) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(out))
	}
	if out[0].StageName != "א" || out[1].StageName != "ב" {
		t.Fatalf("expected passed prefix preserved, got %q %q", out[0].StageName, out[1].StageName)
	}
	if out[2].StageName != "חדש1" || out[3].StageName != "חדש2" {
		t.Fatalf("expected replacement suffix, got %q %q", out[2].StageName, out[3].StageName)
	}
}

func TestSpliceStages_DoesNotMutateExisting(t *testing.T) {
	existing := stagesNamed("א", "ב", "ג")
	_ = spliceStages(existing, 1, stagesNamed("חדש"))

	if existing[1].StageName != "ב" || existing[2].StageName != "ג" {
		t.Fatalf("existing slice was mutated: %+v", existing)
	}
}

func TestSpliceStages_ClampsCurrentStageToBounds(t *testing.T) {
	existing := stagesNamed("א", "ב")

	out := spliceStages(existing, 10, stagesNamed("חדש"))
	if len(out) != 3 || out[2].StageName != "חדש" {
		t.Fatalf("expected full prefix plus update, got %+v", out)
	}

	out = spliceStages(existing, -1, stagesNamed("חדש"))
	if len(out) != 1 || out[0].StageName != "חדש" {
		t.Fatalf("expected full replacement for negative stage, got %+v", out)
	}
}
