package compose

import (
	"strings"
	"testing"

	"preetenglish/internal/models"
)

func TestScaffoldDeterministic(t *testing.T) {
	templates := DefaultTemplates()
	tpl := templates.For("greetings", models.DifficultyBeginner)

	first := tpl.Scaffold("meeting people")
	second := tpl.Scaffold("meeting people")

	if first.Title != second.Title {
		t.Errorf("titles differ: %q vs %q", first.Title, second.Title)
	}
	if first.Content != second.Content {
		t.Error("content differs between identical scaffold calls")
	}
	if len(first.Vocabulary) != len(second.Vocabulary) {
		t.Error("vocabulary differs between identical scaffold calls")
	}
}

func TestScaffoldGreetings(t *testing.T) {
	templates := DefaultTemplates()
	tpl := templates.For("greetings", models.DifficultyBeginner)
	content := tpl.Scaffold("meeting people")

	if content.Title != "Meeting People: First Words" {
		t.Errorf("unexpected title %q", content.Title)
	}
	if content.Category != "greetings" || content.Difficulty != models.DifficultyBeginner {
		t.Errorf("category/difficulty not carried: %s/%s", content.Category, content.Difficulty)
	}
	if len(content.Vocabulary) < 5 {
		t.Errorf("expected at least 5 seed words, got %d", len(content.Vocabulary))
	}
	for _, v := range content.Vocabulary {
		if v.HindiTranslation == "" {
			t.Errorf("seed word %q missing Hindi translation", v.Word)
		}
	}
	if content.Metadata.Generator != "template" {
		t.Errorf("expected template generator metadata, got %q", content.Metadata.Generator)
	}
}

func TestScaffoldFallsBackToGeneric(t *testing.T) {
	templates := DefaultTemplates()
	tpl := templates.For("health", models.DifficultyAdvanced)
	content := tpl.Scaffold("visiting a doctor")

	if content.Category != "health" {
		t.Errorf("generic template should adopt requested category, got %q", content.Category)
	}
	if content.Difficulty != models.DifficultyAdvanced {
		t.Errorf("generic template should adopt requested difficulty, got %q", content.Difficulty)
	}
	if len(content.Vocabulary) == 0 || len(content.Conversations) == 0 {
		t.Error("generic template should still seed vocabulary and conversation")
	}
}

func TestMarkdownFull(t *testing.T) {
	tpl := DefaultTemplates().For("greetings", models.DifficultyBeginner)
	content := tpl.Scaffold("meeting people")

	md := Markdown(content, FormatFull)

	for _, want := range []string{
		"# Meeting People: First Words",
		"## Vocabulary",
		"| namaste | नमस्ते |",
		"## Conversation",
		"**A:** Hello, how are you?",
		"> नमस्ते, आप कैसे हैं?",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("full markdown missing %q", want)
		}
	}
}

func TestMarkdownSummary(t *testing.T) {
	tpl := DefaultTemplates().For("greetings", models.DifficultyBeginner)
	content := tpl.Scaffold("meeting people")

	md := Markdown(content, FormatSummary)

	if !strings.Contains(md, "5 vocabulary words") {
		t.Errorf("summary missing vocabulary count:\n%s", md)
	}
	if !strings.Contains(md, "namaste, welcome, goodbye") {
		t.Errorf("summary missing word list:\n%s", md)
	}
	if strings.Contains(md, "## Conversation") {
		t.Error("summary should not include the conversation transcript")
	}
}

func TestMarkdownStudySheet(t *testing.T) {
	tpl := DefaultTemplates().For("greetings", models.DifficultyBeginner)
	content := tpl.Scaffold("meeting people")

	md := Markdown(content, FormatStudySheet)

	if !strings.Contains(md, "# Study Sheet:") {
		t.Error("study sheet missing header")
	}
	if !strings.Contains(md, "Write your own sentence:") {
		t.Error("study sheet missing practice prompt")
	}
	if !strings.Contains(md, "Cover the English column") {
		t.Error("study sheet missing dialogue practice instructions")
	}
}

func TestValidFormat(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatFull, true},
		{FormatSummary, true},
		{FormatStudySheet, true},
		{Format("pdf"), false},
		{Format(""), false},
	}
	for _, tt := range tests {
		if got := ValidFormat(tt.format); got != tt.want {
			t.Errorf("ValidFormat(%q) = %v, want %v", tt.format, got, tt.want)
		}
	}
}
