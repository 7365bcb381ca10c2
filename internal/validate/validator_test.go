package validate

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"preetenglish/internal/models"
	"preetenglish/internal/rubric"
	"preetenglish/internal/stoplist"
)

type fakeSource struct {
	lessons       []models.Lesson
	vocabulary    []models.VocabularyItem
	conversations []models.ConversationLine
}

func (f *fakeSource) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	return f.lessons, nil
}

func (f *fakeSource) ListVocabulary(ctx context.Context) ([]models.VocabularyItem, error) {
	return f.vocabulary, nil
}

func (f *fakeSource) ListConversations(ctx context.Context) ([]models.ConversationLine, error) {
	return f.conversations, nil
}

func newTestValidator(t *testing.T, source *fakeSource) *Validator {
	t.Helper()
	sl, err := stoplist.Default()
	if err != nil {
		t.Fatalf("failed to load stoplist: %v", err)
	}
	return New(source, rubric.New(), sl, zap.NewNop())
}

func goodLesson() models.Lesson {
	return models.Lesson{
		ID:         1,
		Title:      "Basic Greetings",
		Content:    "Learn basic greetings used every day. Namaste is the most common way to say hello. This lesson covers polite greetings for morning and evening conversations.",
		Category:   "greetings",
		Difficulty: models.DifficultyBeginner,
		HindiTitle: "बुनियादी अभिवादन",
		Vocabulary: []models.VocabularyItem{
			{ID: 1, Word: "welcome", Definition: "a polite word said to a guest", Example: "Welcome to our home, please come in.", HindiTranslation: "स्वागत", Pronunciation: "swa-gat"},
			{ID: 2, Word: "goodbye", Definition: "said when someone leaves", Example: "Goodbye, see you tomorrow morning.", HindiTranslation: "अलविदा", Pronunciation: "al-vi-da"},
			{ID: 3, Word: "please", Definition: "used to make a polite request", Example: "Please sit down and have some tea.", HindiTranslation: "कृपया", Pronunciation: "kri-pa-ya"},
			{ID: 4, Word: "morning", Definition: "the early part of the day", Example: "Good morning, did you sleep well?", HindiTranslation: "सुबह", Pronunciation: "su-bah"},
			{ID: 5, Word: "evening", Definition: "the late part of the day", Example: "Good evening, how was your day?", HindiTranslation: "शाम", Pronunciation: "shaam"},
		},
		Conversations: []models.ConversationLine{
			{ID: 1, Speaker: "A", EnglishText: "Hello, how are you?", HindiText: "नमस्ते, आप कैसे हैं?"},
			{ID: 2, Speaker: "B", EnglishText: "I am fine, thank you.", HindiText: "मैं ठीक हूँ, धन्यवाद।"},
		},
	}
}

func TestValidateLessonValid(t *testing.T) {
	v := newTestValidator(t, &fakeSource{})
	result := v.ValidateLesson(goodLesson(), DefaultOptions())

	if !result.IsValid {
		t.Errorf("expected valid lesson, issues: %v", result.Issues)
	}
	if result.Validator != validatorName {
		t.Errorf("validator = %q, want %q", result.Validator, validatorName)
	}
	if result.Score == nil {
		t.Error("expected a recorded score with quality scoring enabled")
	}
}

func TestValidateLessonORSemantics(t *testing.T) {
	v := newTestValidator(t, &fakeSource{})

	// A high-scoring lesson with a single cultural violation must still be
	// invalid: checks are ORed, not weighted against the score.
	lesson := goodLesson()
	lesson.Vocabulary[0].HindiTranslation = "swagat"

	result := v.ValidateLesson(lesson, DefaultOptions())
	if result.IsValid {
		t.Fatal("expected invalid lesson despite a passing score")
	}
	if result.Score == nil || *result.Score < 7.0 {
		t.Errorf("expected a passing score alongside invalidity, got %v", result.Score)
	}
}

func TestValidateLessonDisabledChecks(t *testing.T) {
	v := newTestValidator(t, &fakeSource{})

	lesson := goodLesson()
	lesson.Vocabulary[0].HindiTranslation = "swagat"

	opts := DefaultOptions()
	opts.CulturalCheck = false

	result := v.ValidateLesson(lesson, opts)
	if !result.IsValid {
		t.Errorf("cultural check disabled, expected valid, issues: %v", result.Issues)
	}
}

func TestValidateAgainstStandards(t *testing.T) {
	r := rubric.New()

	tests := []struct {
		name    string
		content models.ContentToScore
		want    models.StandardsBand
	}{
		{"complete lesson scores high", models.LessonToContent(goodLesson()), models.BandHigh},
		{"empty content fails", models.ContentToScore{}, models.BandFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, score := ValidateAgainstStandards(r, tt.content)
			if band != tt.want {
				t.Errorf("band = %s (score %.1f), want %s", band, score.Overall, tt.want)
			}
		})
	}
}

func TestRunComplianceReport(t *testing.T) {
	bad := goodLesson()
	bad.ID = 2
	bad.Title = ""

	source := &fakeSource{lessons: []models.Lesson{goodLesson(), bad}}
	v := newTestValidator(t, source)

	summary, err := v.Run(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Total != 2 {
		t.Fatalf("total = %d, want 2", summary.Total)
	}
	if summary.Valid != 1 || summary.Invalid != 1 {
		t.Errorf("valid/invalid = %d/%d, want 1/1", summary.Valid, summary.Invalid)
	}

	// The empty title issue contains "missing", so one of two items carries
	// a technical issue: 50% technical compliance.
	if summary.Compliance.TechnicalCompliance != 50 {
		t.Errorf("technical compliance = %v, want 50", summary.Compliance.TechnicalCompliance)
	}
	if summary.Compliance.StoplistCompliance != 100 {
		t.Errorf("stoplist compliance = %v, want 100", summary.Compliance.StoplistCompliance)
	}
}

func TestComplianceClassificationIsSubstringBased(t *testing.T) {
	results := []models.ValidationResult{
		{ID: "lesson-1", IsValid: false, Issues: []string{"Missing/empty title"}},
	}

	report := complianceFromResults(results)

	// "Missing/empty title" is counted as technical purely because the
	// message contains "missing"; no other category matches it.
	if report.TechnicalCompliance != 0 {
		t.Errorf("technical compliance = %v, want 0", report.TechnicalCompliance)
	}
	if report.CulturalCompliance != 100 {
		t.Errorf("cultural compliance = %v, want 100", report.CulturalCompliance)
	}
}

func TestComplianceEmptyResults(t *testing.T) {
	report := complianceFromResults(nil)
	if report.StoplistCompliance != 100 || report.TechnicalCompliance != 100 {
		t.Errorf("empty run should report full compliance, got %+v", report)
	}
}

func TestValidationIssueMessagesStable(t *testing.T) {
	// The compliance report pattern-matches issue text, so the message
	// vocabulary is load-bearing. Guard the substrings it depends on.
	v := newTestValidator(t, &fakeSource{})

	lesson := goodLesson()
	lesson.Vocabulary = append(lesson.Vocabulary, models.VocabularyItem{
		ID: 9, Word: "the", Definition: "article", Example: "The tea is hot today.",
		HindiTranslation: "वह", Pronunciation: "tha",
	})
	result := v.ValidateLesson(lesson, DefaultOptions())

	foundStoplist := false
	for _, issue := range result.Issues {
		if strings.Contains(strings.ToLower(issue), "stoplist") {
			foundStoplist = true
		}
	}
	if !foundStoplist {
		t.Errorf("stoplist issue message must contain 'stoplist', got %v", result.Issues)
	}
}
