package rubric

import (
	"math"
	"strings"
	"testing"

	"preetenglish/internal/models"
)

func basicGreetingsContent() models.ContentToScore {
	return models.ContentToScore{
		Title:      "Basic Greetings",
		Content:    "Learn basic greetings used every day. Namaste is the most common way to say hello in Hindi. This lesson covers polite greetings for morning and evening.",
		Category:   "greetings",
		Difficulty: models.DifficultyBeginner,
		Vocabulary: []models.VocabularyItem{
			{
				Word:             "hello",
				Definition:       "a greeting used when meeting someone",
				Example:          "Hello, how are you today?",
				HindiTranslation: "नमस्ते",
				Pronunciation:    "na-mas-te",
			},
		},
		Conversations: []models.ConversationLine{
			{Speaker: "A", EnglishText: "Hello, how are you?", HindiText: "नमस्ते, आप कैसे हैं?"},
		},
	}
}

func TestScoreAccuracyVacuousPass(t *testing.T) {
	r := New()
	content := models.ContentToScore{
		Title:      "Empty Lesson",
		Content:    "Some lesson body without any children.",
		Category:   "daily_life",
		Difficulty: models.DifficultyBeginner,
	}

	score := r.Score(content)
	if score.Criteria.Accuracy != 1.0 {
		t.Errorf("accuracy with no children = %v, want exactly 1.0", score.Criteria.Accuracy)
	}
}

func TestScoreBasicGreetings(t *testing.T) {
	r := New()
	score := r.Score(basicGreetingsContent())

	if score.Criteria.Accuracy != 1.0 {
		t.Errorf("accuracy = %v, want 1.0 (all fields filled)", score.Criteria.Accuracy)
	}
	if score.Criteria.CulturalSensitivity != 1.0 {
		t.Errorf("cultural sensitivity = %v, want 1.0 (Devanagari in both Hindi fields)", score.Criteria.CulturalSensitivity)
	}
	if score.Criteria.Completeness != 1.0 {
		t.Errorf("completeness = %v, want 1.0", score.Criteria.Completeness)
	}
}

func TestScoreOverallRange(t *testing.T) {
	r := New()
	tests := []struct {
		name    string
		content models.ContentToScore
	}{
		{"complete lesson", basicGreetingsContent()},
		{"empty lesson", models.ContentToScore{}},
		{"title only", models.ContentToScore{Title: "Shopping Words", Category: "shopping", Difficulty: models.DifficultyIntermediate}},
		{
			"duplicated vocabulary",
			models.ContentToScore{
				Title:      "Food Words",
				Content:    "Food words repeated.",
				Category:   "food",
				Difficulty: models.DifficultyAdvanced,
				Vocabulary: []models.VocabularyItem{
					{Word: "rice"}, {Word: "rice"}, {Word: "Rice"}, {Word: "tea"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := r.Score(tt.content)
			if score.Overall < 0 || score.Overall > 10 {
				t.Errorf("overall = %v, want within [0,10]", score.Overall)
			}
			// One decimal place: multiplying by 10 must give an integer
			scaled := score.Overall * 10
			if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
				t.Errorf("overall = %v, want one decimal place", score.Overall)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	r := New()
	content := basicGreetingsContent()

	first := r.Score(content)
	second := r.Score(content)

	if first.Overall != second.Overall {
		t.Errorf("repeated scoring differs: %v vs %v", first.Overall, second.Overall)
	}
	if first.Criteria != second.Criteria {
		t.Errorf("repeated criteria differ: %+v vs %+v", first.Criteria, second.Criteria)
	}
}

func TestScoreFeedback(t *testing.T) {
	r := New()

	empty := r.Score(models.ContentToScore{Category: "daily_life"})
	if len(empty.Feedback) == 0 {
		t.Fatal("expected feedback warnings for empty content")
	}
	for _, f := range empty.Feedback {
		if f == "Content meets quality standards" {
			t.Errorf("empty content should not meet quality standards")
		}
	}

	foundCompleteness := false
	for _, f := range empty.Feedback {
		if strings.Contains(f, "completeness") {
			foundCompleteness = true
		}
	}
	if !foundCompleteness {
		t.Errorf("expected completeness warning in feedback, got %v", empty.Feedback)
	}
}

func TestScoreCulturalSensitivityRejectsLatinHindi(t *testing.T) {
	r := New()
	content := basicGreetingsContent()
	// Transliterated Hindi without Devanagari must not count
	content.Vocabulary[0].HindiTranslation = "namaste"
	content.Conversations[0].HindiText = "namaste, aap kaise hain?"

	score := r.Score(content)
	if score.Criteria.CulturalSensitivity != 0 {
		t.Errorf("cultural sensitivity = %v, want 0 for Latin-only Hindi fields", score.Criteria.CulturalSensitivity)
	}
}

func TestExampleIsClear(t *testing.T) {
	tests := []struct {
		name    string
		example string
		want    bool
	}{
		{"normal sentence", "I drink tea every morning.", true},
		{"too short", "Tea.", false},
		{"single word", "morningtea", false},
		{"ellipsis placeholder", "I drink ... every morning.", false},
		{"blank placeholder", "I drink ___ every morning.", false},
		{"too long", strings.Repeat("tea and biscuits ", 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exampleIsClear(tt.example); got != tt.want {
				t.Errorf("exampleIsClear(%q) = %v, want %v", tt.example, got, tt.want)
			}
		})
	}
}
