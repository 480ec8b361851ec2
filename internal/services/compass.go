package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// The soul-compass instrument: 23 statements rated 1-10, grouped into five
// categories by fixed index ranges.
var compassQuestions = []string{
	// קשר עם הבורא
	"באיזו מידה אתה מרגיש בדרך כלל שהתפילה שלך היא שיחה אישית עם הבורא?",
	"כשאתה מתפלל, באיזו מידה אתה מצליח להרגיש שאתה עומד בפני נוכחות אלוקית?",
	"באיזו תדירות אתה פונה לבורא במילים משלך, מחוץ למסגרת התפילה הרשמית?",
	"כשאתה לומד תורה, באיזו מידה אתה מרגיש שהלימוד נותן לך כוח ועצה מעשית לחיים?",
	"כשאתה נתקל באתגר, באיזו מידה אתה מרגיש שיש מי שמשגיח עליך והכל מכוון לטובה?",
	"באיזו מידה אתה מצליח להכיר תודה לבורא על הדברים הטובים בחייך, גם הקטנים ביותר?",
	"האם אתה מרגיש נוכחות אלוקית ברגעים פשוטים של החיים?",
	// עבודת המידות
	"כשעולה בך רגש שלילי, באיזו מידה אתה מצליח לזהות אותו ולא לתת לו לנהל אותך?",
	"באיזו מידה אתה נוהג בסבלנות כלפי עצמך וכלפי אחרים בחיי היום-יום?",
	"באיזו מידה אתה מצליח לשפוט אנשים או מצבים לכף זכות?",
	"באיזו מידה אתה חווה שמחה פנימית שאינה תלויה בהכרח בנסיבות חיצוניות?",
	// בין אדם לחברו
	"האם אתה מחפש באופן פעיל הזדמנויות לעזור לאחרים במעשה או במילה טובה?",
	"כשאתה עושה חסד, באיזו מידה אתה מרגיש שאתה שותף של הבורא בתיקון העולם?",
	"באיזו מידה אתה מקפיד על דיבור נקי, ללא רכילות או לשון הרע?",
	// יכולות רוחניות
	"באיזו מידה אתה שם לב ל\"צירופי מקרים\" או סימנים קטנים בחייך שמרגישים מכוונים מלמעלה?",
	"באיזו מידה אתה סומך על ה\"אינטואיציה\" שלך בקבלת החלטות?",
	"האם אתה חווה רגעים של השראה או בהירות, שבהם אתה מבין משהו עמוק על עצמך?",
	"באיזו מידה אתה מצליח לראות את הטוב הפנימי והניצוץ האלוקי באנשים אחרים?",
	// תורה ומצוות
	"באיזו תדירות אתה קובע עתים לתורה (מפנה זמן מסודר וקבוע ללימוד)?",
	"איך היית מדרג את רמת הידע הכללי שלך בנושאי יסוד ביהדות?",
	"באיזו מידה אתה מקפיד על שלוש התפילות ביום (שחרית, מנחה, ערבית)?",
	"איך היית מתאר את רמת שמירת השבת שלך?",
	"איך היית מתאר את רמת שמירת הכשרות שלך?",
}

const compassQuestionCount = 23

// CompassService scores the soul-compass questionnaire and keeps the
// append-only submission history.
type CompassService interface {
	Questions() []string
	SubmitQuestionnaire(ctx context.Context, userID uuid.UUID, answers []int) (*types.Submission, error)
	ListSubmissions(ctx context.Context, userID uuid.UUID) ([]*types.Submission, error)
}

type compassService struct {
	log         *logger.Logger
	submissions repos.SubmissionRepo
}

func NewCompassService(baseLog *logger.Logger, submissionRepo repos.SubmissionRepo) CompassService {
	return &compassService{
		log:         baseLog.With("service", "CompassService"),
		submissions: submissionRepo,
	}
}

func (s *compassService) Questions() []string {
	out := make([]string, len(compassQuestions))
	copy(out, compassQuestions)
	return out
}

func (s *compassService) SubmitQuestionnaire(ctx context.Context, userID uuid.UUID, answers []int) (*types.Submission, error) {
	if len(answers) != compassQuestionCount {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrValidation, compassQuestionCount, len(answers))
	}
	for i, a := range answers {
		if a < 1 || a > 10 {
			return nil, fmt.Errorf("%w: answer %d out of range", ErrValidation, i+1)
		}
	}

	scores := scoreAnswers(answers)
	submission := &types.Submission{
		UserID:    userID,
		Answers:   datatypes.NewJSONSlice(answers),
		Scores:    datatypes.NewJSONType(scores),
		Archetype: archetypeFor(scores["overall"]),
	}
	return s.submissions.Create(ctx, nil, submission)
}

func (s *compassService) ListSubmissions(ctx context.Context, userID uuid.UUID) ([]*types.Submission, error) {
	return s.submissions.ListByUser(ctx, nil, userID)
}

func mean(answers []int) float64 {
	if len(answers) == 0 {
		return 0
	}
	sum := 0
	for _, a := range answers {
		sum += a
	}
	return float64(sum) / float64(len(answers))
}

// scoreAnswers maps the 23 answers onto the five category means plus the
// overall mean. The index ranges are fixed by the instrument.
func scoreAnswers(answers []int) map[string]float64 {
	return map[string]float64{
		"creator_connection":  mean(answers[0:7]),
		"character_work":      mean(answers[7:11]),
		"social_impact":       mean(answers[11:14]),
		"spiritual_abilities": mean(answers[14:18]),
		"torah_mitzvot":       mean(answers[18:23]),
		"overall":             mean(answers),
	}
}

// archetypeFor bands the overall score with inclusive upper bounds.
func archetypeFor(overall float64) string {
	switch {
	case overall <= 3.5:
		return "המגשש"
	case overall <= 6.0:
		return "הצועד בדרך"
	case overall <= 8.0:
		return "המתבונן"
	default:
		return "המשפיע"
	}
}
