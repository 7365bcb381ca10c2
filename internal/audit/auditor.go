// Package audit implements the read-only quality sweep over persisted
// lesson content. One check engine serves two named profiles that differ in
// their launch-readiness target and whether stoplist violations are checked
// at lesson granularity.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"preetenglish/internal/models"
	"preetenglish/internal/rubric"
	"preetenglish/internal/stoplist"
)

// minAcceptableScore is the floor below which a lesson fails outright,
// regardless of profile target
const minAcceptableScore = 7.0

// Profile parameterizes an audit run. Both profiles share the same engine;
// they intentionally disagree on target score and lesson-level stoplist
// checking and must stay independently invokable.
type Profile struct {
	Name          string
	TargetScore   float64
	StoplistCheck bool
}

// StandardProfile is the day-to-day audit: 8.0 target with stoplist checking
var StandardProfile = Profile{Name: "standard", TargetScore: 8.0, StoplistCheck: true}

// ComprehensiveProfile is the stricter launch audit: 9.0 target, no
// lesson-level stoplist check
var ComprehensiveProfile = Profile{Name: "comprehensive", TargetScore: 9.0, StoplistCheck: false}

// ProfileByName resolves a profile from its CLI name
func ProfileByName(name string) (Profile, error) {
	switch name {
	case StandardProfile.Name, "":
		return StandardProfile, nil
	case ComprehensiveProfile.Name:
		return ComprehensiveProfile, nil
	}
	return Profile{}, fmt.Errorf("unknown audit profile: %s", name)
}

// Source provides the persisted content an audit sweeps over. Lessons are
// expected to arrive with their children loaded; vocabulary and conversation
// listings are global table scans.
type Source interface {
	ListLessons(ctx context.Context) ([]models.Lesson, error)
	ListVocabulary(ctx context.Context) ([]models.VocabularyItem, error)
	ListConversations(ctx context.Context) ([]models.ConversationLine, error)
}

// Auditor runs one audit profile over a content source
type Auditor struct {
	source   Source
	rubric   *rubric.Rubric
	stoplist *stoplist.Stoplist
	profile  Profile
	log      *zap.Logger
}

// New creates an auditor for the given profile
func New(source Source, r *rubric.Rubric, sl *stoplist.Stoplist, profile Profile, log *zap.Logger) *Auditor {
	return &Auditor{
		source:   source,
		rubric:   r,
		stoplist: sl,
		profile:  profile,
		log:      log,
	}
}

// Run performs a full audit pass: every lesson with its children, then
// global scans of the vocabulary and conversation tables. Per-item failures
// are isolated; one bad lesson never aborts the run.
func (a *Auditor) Run(ctx context.Context) (*models.AuditSummary, error) {
	started := time.Now()
	summary := &models.AuditSummary{Profile: a.profile.Name, StartedAt: started}

	lessons, err := a.source.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	for _, lesson := range lessons {
		result := a.AuditLesson(lesson)
		summary.Add(result)
		if result.Status == models.StatusFail {
			a.log.Warn("lesson failed audit",
				zap.String("id", result.ID),
				zap.Strings("issues", result.Issues))
		}
	}

	vocab, err := a.source.ListVocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	for _, v := range vocab {
		summary.Add(a.AuditVocabularyItem(v))
	}

	conversations, err := a.source.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	for _, c := range conversations {
		summary.Add(a.AuditConversationLine(c))
	}

	summary.Duration = time.Since(started)
	summary.Finalize()

	a.log.Info("audit complete",
		zap.String("profile", a.profile.Name),
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int("warnings", summary.Warnings),
		zap.Int("failed", summary.Failed),
		zap.Float64("average_score", summary.AverageScore))

	return summary, nil
}

// AuditLesson applies the structural, rubric, and (per profile) stoplist
// checks to a single lesson. Check order matters: status escalation is
// monotonic, so a fail set early can never be downgraded later.
func (a *Auditor) AuditLesson(lesson models.Lesson) models.AuditResult {
	result := models.AuditResult{
		ID:        fmt.Sprintf("lesson-%d", lesson.ID),
		Type:      models.ItemLesson,
		Status:    models.StatusPass,
		Timestamp: time.Now(),
	}

	// Required fields
	required := []struct {
		value string
		issue string
	}{
		{lesson.Title, "Missing/empty title"},
		{lesson.Content, "Missing/empty content"},
		{lesson.Category, "Missing/empty category"},
		{lesson.Difficulty, "Missing/empty difficulty"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			result.Status = result.Status.Escalate(models.StatusFail)
			result.Issues = append(result.Issues, f.issue)
		}
	}

	if len(lesson.Vocabulary) == 0 {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Lesson has no vocabulary items")
	}
	if len(lesson.Conversations) == 0 {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Lesson has no conversation lines")
	}
	if strings.TrimSpace(lesson.HindiTitle) == "" {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Missing/empty Hindi title")
	}

	score := a.rubric.Score(models.LessonToContent(lesson))
	result.Score = &score.Overall
	switch {
	case score.Overall < minAcceptableScore:
		result.Status = result.Status.Escalate(models.StatusFail)
		result.Issues = append(result.Issues,
			fmt.Sprintf("Quality score %.1f is below the minimum %.1f", score.Overall, minAcceptableScore))
	case score.Overall < a.profile.TargetScore:
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("Quality score %.1f is below the %.1f target; review rubric feedback", score.Overall, a.profile.TargetScore))
	}

	// Stoplist violations are advisory: always warning, never fail
	if a.profile.StoplistCheck {
		for _, v := range lesson.Vocabulary {
			if a.stoplist.ShouldExclude(v.Word, lesson.Category, lesson.Difficulty) {
				result.Status = result.Status.Escalate(models.StatusWarning)
				result.Issues = append(result.Issues,
					fmt.Sprintf("Stoplist violation: %q should not be taught at %s/%s", v.Word, lesson.Category, lesson.Difficulty))
			}
		}
	}

	return result
}

// AuditVocabularyItem applies field-presence checks only; vocabulary rows
// are never rubric-scored on their own.
func (a *Auditor) AuditVocabularyItem(v models.VocabularyItem) models.AuditResult {
	result := models.AuditResult{
		ID:        fmt.Sprintf("vocabulary-%d", v.ID),
		Type:      models.ItemVocabulary,
		Status:    models.StatusPass,
		Timestamp: time.Now(),
	}

	if strings.TrimSpace(v.Word) == "" {
		result.Status = result.Status.Escalate(models.StatusFail)
		result.Issues = append(result.Issues, "Missing/empty word")
	}
	if strings.TrimSpace(v.Definition) == "" {
		result.Status = result.Status.Escalate(models.StatusFail)
		result.Issues = append(result.Issues, "Missing/empty definition")
	}
	if strings.TrimSpace(v.Example) == "" {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Missing/empty example sentence")
	}
	if strings.TrimSpace(v.HindiTranslation) == "" {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Missing/empty Hindi translation")
	}
	if strings.TrimSpace(v.Pronunciation) == "" {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Missing/empty pronunciation")
		result.Suggestions = append(result.Suggestions, "Add a romanized pronunciation guide")
	}

	return result
}

// AuditConversationLine applies field-presence and speaker checks
func (a *Auditor) AuditConversationLine(c models.ConversationLine) models.AuditResult {
	result := models.AuditResult{
		ID:        fmt.Sprintf("conversation-%d", c.ID),
		Type:      models.ItemConversation,
		Status:    models.StatusPass,
		Timestamp: time.Now(),
	}

	if !models.ValidSpeaker(c.Speaker) {
		result.Status = result.Status.Escalate(models.StatusFail)
		result.Issues = append(result.Issues,
			fmt.Sprintf("Invalid speaker %q: must be one of A, B, C, D", c.Speaker))
	}
	if strings.TrimSpace(c.EnglishText) == "" {
		result.Status = result.Status.Escalate(models.StatusFail)
		result.Issues = append(result.Issues, "Missing/empty English text")
	}
	if strings.TrimSpace(c.HindiText) == "" {
		result.Status = result.Status.Escalate(models.StatusWarning)
		result.Issues = append(result.Issues, "Missing/empty Hindi text")
	}

	return result
}
