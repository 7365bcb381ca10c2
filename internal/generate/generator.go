// Package generate produces lesson content from authoring requests, either
// deterministically from the built-in templates or through the Anthropic API.
package generate

import (
	"context"
	"fmt"

	"preetenglish/internal/compose"
	"preetenglish/internal/models"
)

// Request describes one piece of content to author
type Request struct {
	Topic      string
	Category   string
	Difficulty string
}

// Validate reports the first structural problem with the request
func (r Request) Validate() error {
	if r.Topic == "" {
		return fmt.Errorf("generation request missing topic")
	}
	if r.Category == "" {
		return fmt.Errorf("generation request missing category")
	}
	if !models.ValidDifficulty(r.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", r.Difficulty)
	}
	return nil
}

// Generator produces lesson content for a request. Implementations must be
// safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, req Request) (models.GeneratedContent, error)
}

// TemplateGenerator scaffolds content from the built-in templates. Output is
// deterministic for a given request, which keeps batch runs reproducible.
type TemplateGenerator struct {
	templates *compose.Templates
}

// NewTemplateGenerator returns a generator over the default template table
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{templates: compose.DefaultTemplates()}
}

// Generate scaffolds content for the request
func (g *TemplateGenerator) Generate(ctx context.Context, req Request) (models.GeneratedContent, error) {
	if err := req.Validate(); err != nil {
		return models.GeneratedContent{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.GeneratedContent{}, err
	}
	tpl := g.templates.For(req.Category, req.Difficulty)
	return tpl.Scaffold(req.Topic), nil
}
