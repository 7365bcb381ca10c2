package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"

	"preetenglish/internal/models"
)

// Enricher fills in definition, example, Hindi translation, and
// pronunciation for an extracted word.
type Enricher interface {
	Enrich(ctx context.Context, word string) (models.VocabularyItem, error)
}

// IdentityEnricher passes words through unchanged. Used when no enrichment
// backend is configured; downstream validation will flag the missing fields.
type IdentityEnricher struct{}

// Enrich returns a vocabulary item carrying only the word itself
func (IdentityEnricher) Enrich(_ context.Context, word string) (models.VocabularyItem, error) {
	return models.VocabularyItem{Word: word}, nil
}

const enrichSchema = `{
  "name": "vocabulary_entry",
  "description": "Learner-facing details for one English word",
  "strict": true,
  "schema": {
    "type": "object",
    "properties": {
      "definition": {"type": "string"},
      "example": {"type": "string"},
      "hindi_translation": {"type": "string"},
      "pronunciation": {"type": "string"}
    },
    "required": ["definition", "example", "hindi_translation", "pronunciation"],
    "additionalProperties": false
  }
}`

const enrichSystemPrompt = `You are a lexicographer writing vocabulary entries for
Hindi-speaking English learners. For the given word provide a simple one-sentence
definition, one short example sentence a beginner can read, the Hindi translation in
Devanagari script, and a syllable-level pronunciation guide like "na-mas-te".`

// LLMEnricher enriches words through the Anthropic API
type LLMEnricher struct {
	apiKey    string
	model     string
	maxTokens int
}

// NewLLMEnricher builds an enricher for the given API key
func NewLLMEnricher(apiKey, model string) (*LLMEnricher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &LLMEnricher{apiKey: apiKey, model: model, maxTokens: 1024}, nil
}

// Enrich requests entry details for one word
func (e *LLMEnricher) Enrich(ctx context.Context, word string) (models.VocabularyItem, error) {
	if err := ctx.Err(); err != nil {
		return models.VocabularyItem{}, err
	}
	deadline, ok := ctx.Deadline()
	if ok && time.Until(deadline) <= 0 {
		return models.VocabularyItem{}, context.DeadlineExceeded
	}

	settings := types.RequestSettings{Model: e.model, MaxTokens: e.maxTokens}
	response, err := anthropic.PromptWithSettings(enrichSystemPrompt,
		fmt.Sprintf("Write the vocabulary entry for the word: %s", word),
		enrichSchema, e.apiKey, settings)
	if err != nil {
		return models.VocabularyItem{}, fmt.Errorf("enrichment request for %q: %w", word, err)
	}
	if len(response.Content) == 0 {
		return models.VocabularyItem{}, fmt.Errorf("no content in enrichment response for %q", word)
	}

	var entry struct {
		Definition       string `json:"definition"`
		Example          string `json:"example"`
		HindiTranslation string `json:"hindi_translation"`
		Pronunciation    string `json:"pronunciation"`
	}
	if err := json.Unmarshal([]byte(response.Content[0].Text), &entry); err != nil {
		return models.VocabularyItem{}, fmt.Errorf("parsing enrichment for %q: %w", word, err)
	}
	return models.VocabularyItem{
		Word:             word,
		Definition:       entry.Definition,
		Example:          entry.Example,
		HindiTranslation: entry.HindiTranslation,
		Pronunciation:    entry.Pronunciation,
	}, nil
}
