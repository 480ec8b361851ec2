package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func TestExtractJSONObject_StripsSurroundingProse(t *testing.T) {
	raw, ok := extractJSONObject("הנה המסלול שלך:\n{\"track_name\": \"דרך\"}\nבהצלחה!")
	if !ok {
		t.Fatalf("expected an object to be found")
	}
	if raw != `{"track_name": "דרך"}` {
		t.Fatalf("unexpected extraction: %q", raw)
	}
}

func TestExtractJSONObject_SpansNestedBraces(t *testing.T) {
	text := `intro {"a": {"b": 1}} trailing`
	raw, ok := extractJSONObject(text)
	if !ok {
		t.Fatalf("expected an object to be found")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("extracted slice is not valid JSON: %v", err)
	}
}

func TestExtractJSONObject_FailsWithoutBraces(t *testing.T) {
	if _, ok := extractJSONObject("no payload here"); ok {
		t.Fatalf("expected no object")
	}
	if _, ok := extractJSONObject("} reversed {"); ok {
		t.Fatalf("expected no object for reversed braces")
	}
}

func builderReply(t *testing.T, track GeneratedTrack) string {
	t.Helper()
	raw, err := json.Marshal(track)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return "הנה ההצעה שלי:\n" + string(raw)
}

func TestTryParseGenerated_AcceptsCompleteTrackPayload(t *testing.T) {
	s := &chatService{}
	reply := builderReply(t, GeneratedTrack{
		TrackName: "דרך הלב",
		Summary:   "מסלול שנבנה סביב עבודת המידות שלך.",
		Stages: []types.StageSpec{
			{StageNumber: 1, StageName: "התחלה"},
		},
	})

	payload, ok := s.tryParseGenerated(types.PersonaTrackBuilder, reply)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	var track GeneratedTrack
	if err := json.Unmarshal(payload, &track); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if track.TrackName != "דרך הלב" {
		t.Fatalf("unexpected track name %q", track.TrackName)
	}
}

func TestTryParseGenerated_RejectsMissingRequiredFields(t *testing.T) {
	s := &chatService{}

	reply := builderReply(t, GeneratedTrack{Summary: "בלי שם", Stages: []types.StageSpec{{StageNumber: 1}}})
	if _, ok := s.tryParseGenerated(types.PersonaTrackBuilder, reply); ok {
		t.Fatalf("expected rejection without track_name")
	}

	reply = builderReply(t, GeneratedTrack{TrackName: "שם", Summary: "תקציר"})
	if _, ok := s.tryParseGenerated(types.PersonaTrackBuilder, reply); ok {
		t.Fatalf("expected rejection without stages")
	}
}

func TestTryParseGenerated_RejectsMalformedJSON(t *testing.T) {
	s := &chatService{}
	if _, ok := s.tryParseGenerated(types.PersonaTrackBuilder, `{"track_name": "x",`); ok {
		t.Fatalf("expected rejection for truncated JSON")
	}
}

func TestTryParseGenerated_UpdatePersonaRequiresUpdatedStages(t *testing.T) {
	s := &chatService{}
	raw, _ := json.Marshal(GeneratedTrackUpdate{TrackName: "דרך", UpdateSummary: "שינוי"})
	if _, ok := s.tryParseGenerated(types.PersonaTrackUpdate, string(raw)); ok {
		t.Fatalf("expected rejection without updated_stages")
	}

	raw, _ = json.Marshal(GeneratedTrackUpdate{
		TrackName:     "דרך",
		UpdatedStages: []types.StageSpec{{StageNumber: 2}},
		UpdateSummary: "שינוי",
	})
	if _, ok := s.tryParseGenerated(types.PersonaTrackUpdate, string(raw)); !ok {
		t.Fatalf("expected acceptance of complete update payload")
	}
}

func TestGeneratedConfirmation_NamesTheTrack(t *testing.T) {
	raw, _ := json.Marshal(GeneratedTrack{TrackName: "דרך הלב", Summary: "תקציר"})
	msg := generatedConfirmation(types.PersonaTrackBuilder, raw)
	if !strings.Contains(msg, "דרך הלב") {
		t.Fatalf("expected confirmation to contain the track name, got %q", msg)
	}
}
