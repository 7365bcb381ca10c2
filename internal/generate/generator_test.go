package generate

import (
	"context"
	"testing"

	"preetenglish/internal/models"
)

func TestTemplateGeneratorDeterministic(t *testing.T) {
	gen := NewTemplateGenerator()
	req := Request{Topic: "ordering food", Category: "food", Difficulty: models.DifficultyBeginner}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if first.Title != second.Title || first.Content != second.Content {
		t.Error("template generation should be deterministic for identical requests")
	}
	if first.Category != "food" || first.Difficulty != models.DifficultyBeginner {
		t.Errorf("request category/difficulty not carried: %s/%s", first.Category, first.Difficulty)
	}
	if len(first.Vocabulary) == 0 {
		t.Error("generated content should include vocabulary")
	}
}

func TestTemplateGeneratorValidatesRequest(t *testing.T) {
	gen := NewTemplateGenerator()
	tests := []struct {
		name string
		req  Request
	}{
		{"missing topic", Request{Category: "food", Difficulty: models.DifficultyBeginner}},
		{"missing category", Request{Topic: "ordering food", Difficulty: models.DifficultyBeginner}},
		{"bad difficulty", Request{Topic: "ordering food", Category: "food", Difficulty: "expert"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gen.Generate(context.Background(), tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTemplateGeneratorHonorsContext(t *testing.T) {
	gen := NewTemplateGenerator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, Request{Topic: "ordering food", Category: "food", Difficulty: models.DifficultyBeginner})
	if err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestNewLLMGeneratorRequiresKey(t *testing.T) {
	if _, err := NewLLMGenerator("", "", 0, 0); err == nil {
		t.Error("expected error for empty API key")
	}
	gen, err := NewLLMGenerator("test-key", "", 0, 0)
	if err != nil {
		t.Fatalf("NewLLMGenerator: %v", err)
	}
	if gen.model == "" || gen.maxTokens <= 0 {
		t.Error("defaults not applied for model and max tokens")
	}
}
