package services

import (
	"strings"
	"testing"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func testPrompts(t *testing.T) PromptService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewPromptService(log)
}

func TestOpeningTurn_BuilderAndUpdateAreStatic(t *testing.T) {
	p := testPrompts(t)

	content, static := p.OpeningTurn(types.PersonaTrackBuilder, PersonaContext{})
	if !static || content == "" {
		t.Fatalf("expected static builder opening")
	}

	content, static = p.OpeningTurn(types.PersonaTrackUpdate, PersonaContext{})
	if !static || content == "" {
		t.Fatalf("expected static update opening")
	}
}

func TestSystemPrompt_ReflectionAndDreamHaveOwnPersonas(t *testing.T) {
	p := testPrompts(t)

	reflection := p.SystemPrompt(types.PersonaReflection, PersonaContext{})
	if reflection == trackBuilderSystem {
		t.Fatalf("reflection persona got the track-builder system prompt")
	}
	if !strings.Contains(reflection, "התבוננות") {
		t.Fatalf("reflection system prompt missing its framing: %q", reflection)
	}

	dream := p.SystemPrompt(types.PersonaDream, PersonaContext{})
	if dream == trackBuilderSystem {
		t.Fatalf("dream persona got the track-builder system prompt")
	}
	if !strings.Contains(dream, "מפרש חלומות") {
		t.Fatalf("dream system prompt missing the interpreter framing: %q", dream)
	}
}

func TestOpeningTurn_ReflectionAndDreamAreStaticAndDistinct(t *testing.T) {
	p := testPrompts(t)

	reflection, static := p.OpeningTurn(types.PersonaReflection, PersonaContext{})
	if !static || reflection == trackBuilderOpening {
		t.Fatalf("expected a dedicated static reflection opening, got %q", reflection)
	}

	dream, static := p.OpeningTurn(types.PersonaDream, PersonaContext{})
	if !static || dream == trackBuilderOpening {
		t.Fatalf("expected a dedicated static dream opening, got %q", dream)
	}
	if !strings.Contains(dream, "חלום") {
		t.Fatalf("dream opening does not ask about a dream: %q", dream)
	}
}

func TestOpeningTurn_ChavrutaOpeningsAreGenerated(t *testing.T) {
	p := testPrompts(t)

	for _, persona := range []string{types.PersonaChavrutaSupport, types.PersonaChavrutaScholar} {
		_, static := p.OpeningTurn(persona, PersonaContext{})
		if static {
			t.Fatalf("expected %s opening to be model-generated", persona)
		}
	}
}

func TestOpeningTurn_DebriefGreetingDependsOnFinishKind(t *testing.T) {
	p := testPrompts(t)
	pc := PersonaContext{MeditationTitle: "נשימה מודעת", MeditationInstructions: "שב בנוח ונשום."}

	pc.NaturalFinish = true
	natural, static := p.OpeningTurn(types.PersonaPracticeDebrief, pc)
	if !static {
		t.Fatalf("expected static debrief opening")
	}
	if !strings.Contains(natural, "הטיימר סיים את זמנו") {
		t.Fatalf("natural finish greeting missing timer text: %q", natural)
	}

	pc.NaturalFinish = false
	early, _ := p.OpeningTurn(types.PersonaPracticeDebrief, pc)
	if !strings.Contains(early, "בחרת לסיים את התרגול מוקדם") {
		t.Fatalf("early finish greeting missing early text: %q", early)
	}
	if !strings.Contains(early, "נשימה מודעת") {
		t.Fatalf("greeting should name the meditation: %q", early)
	}
}

func TestGeneratorInstruction_UpdatePersonaStartsAfterCurrentStage(t *testing.T) {
	p := testPrompts(t)
	instr := p.GeneratorInstruction(types.PersonaTrackUpdate, PersonaContext{CurrentStage: 3})

	if !strings.Contains(instr, `"stage_number": 4`) {
		t.Fatalf("expected updated stages to start at 4: %q", instr)
	}
	if !strings.Contains(instr, "updated_stages") {
		t.Fatalf("expected updated_stages key in instruction")
	}
}

func TestGeneratorInstruction_BuilderAsksForSixStages(t *testing.T) {
	p := testPrompts(t)
	instr := p.GeneratorInstruction(types.PersonaTrackBuilder, PersonaContext{})

	if strings.Count(instr, `"stage_number"`) != 6 {
		t.Fatalf("expected six stage rows, got %d", strings.Count(instr, `"stage_number"`))
	}
}

func TestFallbackAndApologyMessages_AreNonEmpty(t *testing.T) {
	p := testPrompts(t)
	for _, persona := range []string{
		types.PersonaTrackBuilder,
		types.PersonaTrackUpdate,
		types.PersonaChavrutaSupport,
		types.PersonaPracticeDebrief,
	} {
		if p.FallbackMessage(persona) == "" {
			t.Fatalf("empty fallback for %s", persona)
		}
		if p.ApologyMessage(persona) == "" {
			t.Fatalf("empty apology for %s", persona)
		}
	}
}
