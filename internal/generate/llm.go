package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"

	"preetenglish/internal/models"
)

const lessonSchema = `{
  "name": "lesson_content",
  "description": "A complete English lesson for Hindi speakers",
  "strict": true,
  "schema": {
    "type": "object",
    "properties": {
      "title": {"type": "string"},
      "content": {"type": "string"},
      "hindi_title": {"type": "string"},
      "vocabulary": {
        "type": "array",
        "items": {
          "type": "object",
          "properties": {
            "word": {"type": "string"},
            "definition": {"type": "string"},
            "example": {"type": "string"},
            "hindi_translation": {"type": "string"},
            "pronunciation": {"type": "string"}
          },
          "required": ["word", "definition", "example", "hindi_translation", "pronunciation"],
          "additionalProperties": false
        }
      },
      "conversations": {
        "type": "array",
        "items": {
          "type": "object",
          "properties": {
            "speaker": {"type": "string"},
            "english_text": {"type": "string"},
            "hindi_text": {"type": "string"}
          },
          "required": ["speaker", "english_text", "hindi_text"],
          "additionalProperties": false
        }
      }
    },
    "required": ["title", "content", "hindi_title", "vocabulary", "conversations"],
    "additionalProperties": false
  }
}`

const lessonSystemPrompt = `You are an English teacher writing lessons for Hindi-speaking
learners. Every lesson must include the target vocabulary with Hindi translations in
Devanagari script, simple example sentences, and a short practice conversation with
speakers labeled A and B. English text in conversations must have a Hindi translation.
Match the requested difficulty: beginner lessons use short sentences and common words,
advanced lessons use richer vocabulary and longer explanations.`

// LLMGenerator authors lesson content through the Anthropic API using
// structured output.
type LLMGenerator struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

// NewLLMGenerator builds a generator for the given API key. Model defaults
// to claude-sonnet-4-20250514 when empty.
func NewLLMGenerator(apiKey, model string, maxTokens int, temperature float64) (*LLMGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &LLMGenerator{
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Generate requests one lesson from the API and parses the structured response
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (models.GeneratedContent, error) {
	if err := req.Validate(); err != nil {
		return models.GeneratedContent{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.GeneratedContent{}, err
	}

	userPrompt := fmt.Sprintf(
		"Write a %s-level lesson in the %q category on the topic: %s. "+
			"Include at least 5 vocabulary words and a 4-line practice conversation.",
		req.Difficulty, req.Category, req.Topic)

	settings := types.RequestSettings{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}
	response, err := anthropic.PromptWithSettings(lessonSystemPrompt, userPrompt, lessonSchema, g.apiKey, settings)
	if err != nil {
		return models.GeneratedContent{}, fmt.Errorf("lesson generation failed: %w", err)
	}
	if len(response.Content) == 0 {
		return models.GeneratedContent{}, fmt.Errorf("no content in generation response")
	}

	var content models.GeneratedContent
	if err := json.Unmarshal([]byte(response.Content[0].Text), &content); err != nil {
		return models.GeneratedContent{}, fmt.Errorf("parsing generated lesson: %w", err)
	}

	content.Category = req.Category
	content.Difficulty = req.Difficulty
	content.Metadata = models.GenerationMetadata{
		Generator:   "anthropic",
		Model:       g.model,
		Topic:       req.Topic,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return content, nil
}
