package audit

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"preetenglish/internal/models"
	"preetenglish/internal/rubric"
	"preetenglish/internal/stoplist"
)

// fakeSource serves canned rows without a database
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

func newTestAuditor(t *testing.T, source Source, profile Profile) *Auditor {
	t.Helper()
	sl, err := stoplist.Default()
	if err != nil {
		t.Fatalf("failed to load stoplist: %v", err)
	}
	return New(source, rubric.New(), sl, profile, zap.NewNop())
}

func completeLesson() models.Lesson {
	return models.Lesson{
		ID:         1,
		Title:      "Basic Greetings",
		Slug:       "basic-greetings",
		Content:    "Learn basic greetings used every day. Namaste is the most common way to say hello. This lesson covers polite greetings for morning and evening conversations.",
		Category:   "greetings",
		Difficulty: models.DifficultyBeginner,
		HindiTitle: "बुनियादी अभिवादन",
		Vocabulary: []models.VocabularyItem{
			{ID: 1, LessonID: 1, Word: "welcome", Definition: "a polite word said to a guest", Example: "Welcome to our home, please come in.", HindiTranslation: "स्वागत", Pronunciation: "swa-gat"},
			{ID: 2, LessonID: 1, Word: "goodbye", Definition: "said when someone leaves", Example: "Goodbye, see you tomorrow morning.", HindiTranslation: "अलविदा", Pronunciation: "al-vi-da"},
			{ID: 3, LessonID: 1, Word: "please", Definition: "used to make a polite request", Example: "Please sit down and have some tea.", HindiTranslation: "कृपया", Pronunciation: "kri-pa-ya"},
			{ID: 4, LessonID: 1, Word: "morning", Definition: "the early part of the day", Example: "Good morning, did you sleep well?", HindiTranslation: "सुबह", Pronunciation: "su-bah"},
			{ID: 5, LessonID: 1, Word: "evening", Definition: "the late part of the day", Example: "Good evening, how was your day?", HindiTranslation: "शाम", Pronunciation: "shaam"},
		},
		Conversations: []models.ConversationLine{
			{ID: 1, LessonID: 1, Speaker: "A", EnglishText: "Hello, how are you?", HindiText: "नमस्ते, आप कैसे हैं?"},
			{ID: 2, LessonID: 1, Speaker: "B", EnglishText: "I am fine, thank you.", HindiText: "मैं ठीक हूँ, धन्यवाद।"},
		},
	}
}

func TestAuditLessonEmptyTitleFails(t *testing.T) {
	a := newTestAuditor(t, &fakeSource{}, StandardProfile)

	lesson := models.Lesson{
		ID:         7,
		Title:      "",
		Content:    "valid text",
		Category:   "daily_life",
		Difficulty: models.DifficultyBeginner,
	}

	result := a.AuditLesson(lesson)

	if result.Status != models.StatusFail {
		t.Errorf("status = %s, want fail", result.Status)
	}

	wantIssues := []string{
		"Missing/empty title",
		"Lesson has no vocabulary items",
		"Lesson has no conversation lines",
	}
	for _, want := range wantIssues {
		found := false
		for _, issue := range result.Issues {
			if issue == want {
				found = true
			}
		}
		if !found {
			t.Errorf("issues missing %q, got %v", want, result.Issues)
		}
	}
}

func TestAuditStatusMonotonic(t *testing.T) {
	a := newTestAuditor(t, &fakeSource{}, StandardProfile)

	// Empty title fails first; later warning-level checks (no vocabulary,
	// no conversations, no Hindi title) must not downgrade the status.
	lesson := models.Lesson{Title: "", Content: "valid text", Category: "daily_life", Difficulty: models.DifficultyBeginner}
	result := a.AuditLesson(lesson)

	if result.Status != models.StatusFail {
		t.Errorf("status = %s, want fail to survive later warning checks", result.Status)
	}
	if len(result.Issues) < 4 {
		t.Errorf("expected issues from later checks to be recorded, got %v", result.Issues)
	}
}

func TestAuditLessonStoplistWarning(t *testing.T) {
	lesson := completeLesson()
	lesson.Vocabulary = append(lesson.Vocabulary, models.VocabularyItem{
		ID: 6, LessonID: 1, Word: "the",
		Definition:       "the definite article",
		Example:          "The tea is on the table.",
		HindiTranslation: "वह", Pronunciation: "tha",
	})

	a := newTestAuditor(t, &fakeSource{}, StandardProfile)
	result := a.AuditLesson(lesson)

	// Stoplist violations are never fail on their own
	if result.Status == models.StatusFail {
		t.Fatalf("stoplist violation escalated to fail: %v", result.Issues)
	}
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "Stoplist violation") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected stoplist violation issue, got %v", result.Issues)
	}
}

func TestComprehensiveProfileSkipsStoplist(t *testing.T) {
	lesson := completeLesson()
	lesson.Vocabulary = append(lesson.Vocabulary, models.VocabularyItem{
		ID: 6, LessonID: 1, Word: "the",
		Definition:       "the definite article",
		Example:          "The tea is on the table.",
		HindiTranslation: "वह", Pronunciation: "tha",
	})

	a := newTestAuditor(t, &fakeSource{}, ComprehensiveProfile)
	result := a.AuditLesson(lesson)

	for _, issue := range result.Issues {
		if strings.Contains(issue, "Stoplist violation") {
			t.Errorf("comprehensive profile should not record stoplist issues, got %v", result.Issues)
		}
	}
}

func TestAuditConversationSpeaker(t *testing.T) {
	a := newTestAuditor(t, &fakeSource{}, StandardProfile)

	tests := []struct {
		name    string
		speaker string
		want    models.AuditStatus
	}{
		{"speaker A", "A", models.StatusPass},
		{"speaker D", "D", models.StatusPass},
		{"speaker E", "E", models.StatusFail},
		{"empty speaker", "", models.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := models.ConversationLine{
				ID: 1, Speaker: tt.speaker,
				EnglishText: "Hello there.",
				HindiText:   "नमस्ते।",
			}
			result := a.AuditConversationLine(line)
			if result.Status != tt.want {
				t.Errorf("status = %s, want %s", result.Status, tt.want)
			}
		})
	}
}

func TestAuditVocabularyStructure(t *testing.T) {
	a := newTestAuditor(t, &fakeSource{}, StandardProfile)

	missingWord := a.AuditVocabularyItem(models.VocabularyItem{ID: 1, Definition: "x", Example: "a b c d e"})
	if missingWord.Status != models.StatusFail {
		t.Errorf("missing word: status = %s, want fail", missingWord.Status)
	}

	missingHindi := a.AuditVocabularyItem(models.VocabularyItem{
		ID: 2, Word: "tea", Definition: "a hot drink",
		Example: "I drink tea daily.", Pronunciation: "tee",
	})
	if missingHindi.Status != models.StatusWarning {
		t.Errorf("missing hindi translation: status = %s, want warning", missingHindi.Status)
	}
}

func TestRunSummary(t *testing.T) {
	good := completeLesson()
	bad := models.Lesson{ID: 2, Title: "", Content: "valid text", Category: "daily_life", Difficulty: models.DifficultyBeginner}

	source := &fakeSource{
		lessons: []models.Lesson{good, bad},
		vocabulary: []models.VocabularyItem{
			{ID: 10, LessonID: 1, Word: "tea", Definition: "a hot drink", Example: "I drink tea daily.", HindiTranslation: "चाय", Pronunciation: "chai"},
		},
		conversations: []models.ConversationLine{
			{ID: 20, LessonID: 1, Speaker: "Z", EnglishText: "Hi.", HindiText: "नमस्ते।"},
		},
	}

	a := newTestAuditor(t, source, StandardProfile)
	summary, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Total != 4 {
		t.Errorf("total = %d, want 4", summary.Total)
	}
	if summary.Failed < 2 {
		t.Errorf("failed = %d, want at least 2 (empty-title lesson and bad speaker)", summary.Failed)
	}

	// Only lessons carry scores; the average must be over scored items only
	scored := 0
	for _, r := range summary.Results {
		if r.Score != nil {
			scored++
		}
	}
	if scored != 2 {
		t.Errorf("scored results = %d, want 2 (lessons only)", scored)
	}
	if summary.AverageScore <= 0 || summary.AverageScore > 10 {
		t.Errorf("average score = %v, want within (0,10]", summary.AverageScore)
	}
}
