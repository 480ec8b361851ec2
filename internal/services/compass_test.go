package services

import (
	"math"
	"testing"
)

func uniformAnswers(v int) []int {
	answers := make([]int, compassQuestionCount)
	for i := range answers {
		answers[i] = v
	}
	return answers
}

func TestScoreAnswers_UniformAnswersScoreEveryCategory(t *testing.T) {
	scores := scoreAnswers(uniformAnswers(5))

	for _, key := range []string{
		"creator_connection",
		"character_work",
		"social_impact",
		"spiritual_abilities",
		"torah_mitzvot",
		"overall",
	} {
		got, ok := scores[key]
		if !ok {
			t.Fatalf("missing category %q", key)
		}
		if got != 5.0 {
			t.Fatalf("category %q: expected 5.0, got %v", key, got)
		}
	}
}

func TestScoreAnswers_CategorySlicesAreIndependent(t *testing.T) {
	answers := uniformAnswers(1)
	// Raise only the social_impact slice [11:14).
	answers[11], answers[12], answers[13] = 10, 10, 10

	scores := scoreAnswers(answers)
	if scores["social_impact"] != 10.0 {
		t.Fatalf("expected social_impact=10.0, got %v", scores["social_impact"])
	}
	if scores["creator_connection"] != 1.0 {
		t.Fatalf("expected creator_connection=1.0, got %v", scores["creator_connection"])
	}
	want := (20.0*1 + 3*10) / 23.0
	if math.Abs(scores["overall"]-want) > 1e-9 {
		t.Fatalf("expected overall=%v, got %v", want, scores["overall"])
	}
}

func TestArchetypeFor_BandsAreInclusiveAtTheTop(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{1.0, "המגשש"},
		{3.5, "המגשש"},
		{3.51, "הצועד בדרך"},
		{6.0, "הצועד בדרך"},
		{6.01, "המתבונן"},
		{8.0, "המתבונן"},
		{8.01, "המשפיע"},
		{10.0, "המשפיע"},
	}
	for _, c := range cases {
		if got := archetypeFor(c.overall); got != c.want {
			t.Fatalf("archetypeFor(%v): expected %q, got %q", c.overall, c.want, got)
		}
	}
}

func TestCompassQuestions_CountMatchesInstrument(t *testing.T) {
	if len(compassQuestions) != compassQuestionCount {
		t.Fatalf("expected %d questions, got %d", compassQuestionCount, len(compassQuestions))
	}
}
