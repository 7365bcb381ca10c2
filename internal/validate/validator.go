// Package validate implements the strict second-pass sweep. It does not
// reuse audit results: every check is recomputed, and validity is boolean --
// an item with any failing enabled check is invalid no matter how well it
// scores.
package validate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"preetenglish/internal/audit"
	"preetenglish/internal/models"
	"preetenglish/internal/rubric"
	"preetenglish/internal/stoplist"
)

// validatorName is recorded on every result for provenance
const validatorName = "content-validator/1"

// Options toggles the individual validation checks
type Options struct {
	QualityScoring     bool
	StoplistCheck      bool
	CulturalCheck      bool
	TechnicalCheck     bool
	MinAcceptableScore float64
}

// DefaultOptions enables every check with the 7.0 score floor
func DefaultOptions() Options {
	return Options{
		QualityScoring:     true,
		StoplistCheck:      true,
		CulturalCheck:      true,
		TechnicalCheck:     true,
		MinAcceptableScore: 7.0,
	}
}

// Validator re-validates persisted content against the full check set
type Validator struct {
	source   audit.Source
	rubric   *rubric.Rubric
	stoplist *stoplist.Stoplist
	log      *zap.Logger
}

// New creates a validator
func New(source audit.Source, r *rubric.Rubric, sl *stoplist.Stoplist, log *zap.Logger) *Validator {
	return &Validator{source: source, rubric: r, stoplist: sl, log: log}
}

// Run validates every lesson, vocabulary row, and conversation line, then
// derives the compliance report from the accumulated issue messages.
func (v *Validator) Run(ctx context.Context, opts Options) (*models.ValidationSummary, error) {
	started := time.Now()
	summary := &models.ValidationSummary{StartedAt: started}

	lessons, err := v.source.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	for _, lesson := range lessons {
		summary.Add(v.ValidateLesson(lesson, opts))
	}

	vocab, err := v.source.ListVocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	for _, item := range vocab {
		summary.Add(v.ValidateVocabularyItem(item, opts))
	}

	conversations, err := v.source.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	for _, line := range conversations {
		summary.Add(v.ValidateConversationLine(line, opts))
	}

	summary.Duration = time.Since(started)
	summary.Finalize()
	summary.Compliance = complianceFromResults(summary.Results)

	v.log.Info("validation complete",
		zap.Int("total", summary.Total),
		zap.Int("valid", summary.Valid),
		zap.Int("invalid", summary.Invalid),
		zap.Float64("average_score", summary.AverageScore))

	return summary, nil
}

// ValidateLesson applies the enabled checks to one lesson. Structural and
// score checks are ORed into invalidity, never weighted together.
func (v *Validator) ValidateLesson(lesson models.Lesson, opts Options) models.ValidationResult {
	result := models.ValidationResult{
		ID:        fmt.Sprintf("lesson-%d", lesson.ID),
		Type:      models.ItemLesson,
		IsValid:   true,
		Validator: validatorName,
		Timestamp: time.Now(),
	}

	if opts.TechnicalCheck {
		for _, f := range []struct{ value, issue string }{
			{lesson.Title, "Missing/empty title"},
			{lesson.Content, "Missing/empty content"},
			{lesson.Category, "Missing/empty category"},
			{lesson.Difficulty, "Missing/empty difficulty"},
		} {
			if strings.TrimSpace(f.value) == "" {
				result.IsValid = false
				result.Issues = append(result.Issues, f.issue)
			}
		}
		if lesson.Difficulty != "" && !models.ValidDifficulty(lesson.Difficulty) {
			result.IsValid = false
			result.Issues = append(result.Issues,
				fmt.Sprintf("Invalid difficulty %q", lesson.Difficulty))
		}
	}

	if opts.QualityScoring {
		score := v.rubric.Score(models.LessonToContent(lesson))
		result.Score = &score.Overall
		if score.Overall < opts.MinAcceptableScore {
			result.IsValid = false
			result.Issues = append(result.Issues,
				fmt.Sprintf("Quality score %.1f is below the acceptable %.1f", score.Overall, opts.MinAcceptableScore))
		}
	}

	if opts.StoplistCheck {
		for _, item := range lesson.Vocabulary {
			if v.stoplist.ShouldExclude(item.Word, lesson.Category, lesson.Difficulty) {
				result.IsValid = false
				result.Issues = append(result.Issues,
					fmt.Sprintf("Stoplist violation: %q excluded for %s/%s", item.Word, lesson.Category, lesson.Difficulty))
			}
		}
	}

	if opts.CulturalCheck {
		for _, item := range lesson.Vocabulary {
			if !hasDevanagari(item.HindiTranslation) {
				result.IsValid = false
				result.Issues = append(result.Issues,
					fmt.Sprintf("Hindi translation for %q lacks Devanagari script", item.Word))
			}
		}
		for _, line := range lesson.Conversations {
			if !hasDevanagari(line.HindiText) {
				result.IsValid = false
				result.Issues = append(result.Issues,
					fmt.Sprintf("Hindi text for conversation line %d lacks Devanagari script", line.ID))
			}
		}
	}

	return result
}

// ValidateVocabularyItem checks a standalone vocabulary row
func (v *Validator) ValidateVocabularyItem(item models.VocabularyItem, opts Options) models.ValidationResult {
	result := models.ValidationResult{
		ID:        fmt.Sprintf("vocabulary-%d", item.ID),
		Type:      models.ItemVocabulary,
		IsValid:   true,
		Validator: validatorName,
		Timestamp: time.Now(),
	}

	if opts.TechnicalCheck {
		for _, f := range []struct{ value, issue string }{
			{item.Word, "Missing/empty word"},
			{item.Definition, "Missing/empty definition"},
			{item.Example, "Missing/empty example sentence"},
		} {
			if strings.TrimSpace(f.value) == "" {
				result.IsValid = false
				result.Issues = append(result.Issues, f.issue)
			}
		}
	}

	if opts.CulturalCheck && !hasDevanagari(item.HindiTranslation) {
		result.IsValid = false
		result.Issues = append(result.Issues,
			fmt.Sprintf("Hindi translation for %q lacks Devanagari script", item.Word))
	}

	return result
}

// ValidateConversationLine checks a standalone conversation row
func (v *Validator) ValidateConversationLine(line models.ConversationLine, opts Options) models.ValidationResult {
	result := models.ValidationResult{
		ID:        fmt.Sprintf("conversation-%d", line.ID),
		Type:      models.ItemConversation,
		IsValid:   true,
		Validator: validatorName,
		Timestamp: time.Now(),
	}

	if opts.TechnicalCheck {
		if !models.ValidSpeaker(line.Speaker) {
			result.IsValid = false
			result.Issues = append(result.Issues,
				fmt.Sprintf("Invalid speaker %q", line.Speaker))
		}
		if strings.TrimSpace(line.EnglishText) == "" {
			result.IsValid = false
			result.Issues = append(result.Issues, "Missing/empty English text")
		}
	}

	if opts.CulturalCheck && !hasDevanagari(line.HindiText) {
		result.IsValid = false
		result.Issues = append(result.Issues, "Hindi text lacks Devanagari script")
	}

	return result
}

// ValidateAgainstStandards classifies a single content item's rubric score
// into the fixed launch bands, independent of the batch pipeline.
func ValidateAgainstStandards(r *rubric.Rubric, content models.ContentToScore) (models.StandardsBand, models.QualityScore) {
	score := r.Score(content)
	switch {
	case score.Overall >= 9.0:
		return models.BandHigh, score
	case score.Overall >= 8.0:
		return models.BandGood, score
	case score.Overall >= 7.0:
		return models.BandMinimum, score
	default:
		return models.BandFail, score
	}
}

// hasDevanagari reports whether s contains at least one character in the
// Devanagari block and more than one character overall
func hasDevanagari(s string) bool {
	if len([]rune(s)) <= 1 {
		return false
	}
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
