package rubric

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"preetenglish/internal/models"
)

// Criterion weights. These sum to 1.0 so the weighted total stays in [0,1]
// before scaling to the 0-10 scale.
const (
	weightAccuracy            = 0.20
	weightRelevance           = 0.15
	weightClarity             = 0.15
	weightCompleteness        = 0.15
	weightCulturalSensitivity = 0.15
	weightPedagogy            = 0.10
	weightDiversity           = 0.05
	weightCoherence           = 0.05
)

// devanagariPattern matches any character in the Devanagari Unicode block
var devanagariPattern = regexp.MustCompile(`[\x{0900}-\x{097F}]`)

// Rubric scores lesson content against eight weighted criteria.
// Scoring is pure and deterministic: no I/O, no randomness.
type Rubric struct {
	keywords map[string][]string
}

// New creates a rubric with the default per-category keyword lists
func New() *Rubric {
	return &Rubric{keywords: defaultCategoryKeywords()}
}

// NewWithKeywords creates a rubric with a custom keyword table
func NewWithKeywords(keywords map[string][]string) *Rubric {
	return &Rubric{keywords: keywords}
}

// Score computes the eight sub-scores, the weighted overall score on 0-10
// rounded to one decimal, and feedback strings for criteria below threshold.
func (r *Rubric) Score(content models.ContentToScore) models.QualityScore {
	criteria := models.CriteriaScores{
		Accuracy:            r.scoreAccuracy(content),
		Relevance:           r.scoreRelevance(content),
		Clarity:             r.scoreClarity(content),
		Completeness:        r.scoreCompleteness(content),
		CulturalSensitivity: r.scoreCulturalSensitivity(content),
		Pedagogy:            r.scorePedagogy(content),
		Diversity:           r.scoreDiversity(content),
		Coherence:           r.scoreCoherence(content),
	}

	weighted := criteria.Accuracy*weightAccuracy +
		criteria.Relevance*weightRelevance +
		criteria.Clarity*weightClarity +
		criteria.Completeness*weightCompleteness +
		criteria.CulturalSensitivity*weightCulturalSensitivity +
		criteria.Pedagogy*weightPedagogy +
		criteria.Diversity*weightDiversity +
		criteria.Coherence*weightCoherence

	return models.QualityScore{
		Overall:   math.Round(weighted*10*10) / 10,
		Criteria:  criteria,
		Breakdown: breakdown(criteria),
		Feedback:  feedback(criteria),
	}
}

// scoreAccuracy is the fraction of expected vocabulary/conversation fields
// that are non-empty. With nothing to check the score is a vacuous 1.0 --
// completeness and pedagogy are the criteria that penalize empty lessons.
func (r *Rubric) scoreAccuracy(content models.ContentToScore) float64 {
	total := 0
	filled := 0

	for _, v := range content.Vocabulary {
		for _, field := range []string{v.HindiTranslation, v.Pronunciation, v.Definition, v.Example} {
			total++
			if strings.TrimSpace(field) != "" {
				filled++
			}
		}
	}
	for _, c := range content.Conversations {
		for _, field := range []string{c.HindiText, c.EnglishText} {
			total++
			if strings.TrimSpace(field) != "" {
				filled++
			}
		}
	}

	if total == 0 {
		return 1.0
	}
	return float64(filled) / float64(total)
}

// scoreRelevance is the fraction of the category's keywords found in the
// combined lesson text, capped at 1.0
func (r *Rubric) scoreRelevance(content models.ContentToScore) float64 {
	keywords := r.keywords[content.Category]
	if len(keywords) == 0 {
		return 0.5
	}

	var sb strings.Builder
	sb.WriteString(content.Title)
	sb.WriteString(" ")
	sb.WriteString(content.Content)
	for _, v := range content.Vocabulary {
		sb.WriteString(" ")
		sb.WriteString(v.Word)
		sb.WriteString(" ")
		sb.WriteString(v.Definition)
		sb.WriteString(" ")
		sb.WriteString(v.Example)
	}
	haystack := strings.ToLower(sb.String())

	found := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			found++
		}
	}

	score := float64(found) / float64(len(keywords)) * 2
	return math.Min(score, 1.0)
}

// exampleIsClear applies the length/shape heuristic to a vocabulary example
func exampleIsClear(example string) bool {
	if len(example) < 5 || len(example) > 200 {
		return false
	}
	if !strings.Contains(example, " ") {
		return false
	}
	if strings.Contains(example, "...") || strings.Contains(example, "___") {
		return false
	}
	return true
}

// scoreClarity averages the example-shape check over vocabulary with a
// content-level length check
func (r *Rubric) scoreClarity(content models.ContentToScore) float64 {
	contentClear := 0.0
	if len(content.Content) >= 50 && len(content.Content) <= 5000 {
		contentClear = 1.0
	}

	if len(content.Vocabulary) == 0 {
		return contentClear
	}

	clear := 0
	for _, v := range content.Vocabulary {
		if exampleIsClear(v.Example) {
			clear++
		}
	}
	exampleScore := float64(clear) / float64(len(content.Vocabulary))

	return (exampleScore + contentClear) / 2
}

// scoreCompleteness is the fraction of the four structural expectations met
func (r *Rubric) scoreCompleteness(content models.ContentToScore) float64 {
	met := 0
	if strings.TrimSpace(content.Title) != "" {
		met++
	}
	if strings.TrimSpace(content.Content) != "" {
		met++
	}
	if len(content.Vocabulary) > 0 {
		met++
	}
	if len(content.Conversations) > 0 {
		met++
	}
	return float64(met) / 4
}

// scoreCulturalSensitivity is the fraction of Hindi fields that actually
// contain Devanagari script and more than one character
func (r *Rubric) scoreCulturalSensitivity(content models.ContentToScore) float64 {
	total := 0
	valid := 0

	check := func(hindi string) {
		total++
		if len([]rune(hindi)) > 1 && devanagariPattern.MatchString(hindi) {
			valid++
		}
	}

	for _, v := range content.Vocabulary {
		check(v.HindiTranslation)
	}
	for _, c := range content.Conversations {
		check(c.HindiText)
	}

	if total == 0 {
		return 0.5
	}
	return float64(valid) / float64(total)
}

// difficultyTargets returns the vocab-count and example-length denominators
// used by the difficulty-appropriateness heuristic
func difficultyTargets(difficulty string) (vocabTarget float64, exampleTarget float64) {
	switch difficulty {
	case models.DifficultyBeginner:
		return 6, 40
	case models.DifficultyIntermediate:
		return 8, 70
	case models.DifficultyAdvanced:
		return 10, 100
	default:
		return 8, 70
	}
}

// scorePedagogy averages a difficulty-appropriateness heuristic with a
// vocabulary-count-target heuristic (5-10 items is the sweet spot)
func (r *Rubric) scorePedagogy(content models.ContentToScore) float64 {
	vocabTarget, exampleTarget := difficultyTargets(content.Difficulty)

	countScore := math.Min(float64(len(content.Vocabulary))/vocabTarget, 1.0)

	lengthScore := 0.0
	if len(content.Vocabulary) > 0 {
		totalLen := 0
		for _, v := range content.Vocabulary {
			totalLen += len(v.Example)
		}
		avgLen := float64(totalLen) / float64(len(content.Vocabulary))
		lengthScore = math.Min(avgLen/exampleTarget, 1.0)
	}
	appropriateness := (countScore + lengthScore) / 2

	idealCount := 0.0
	n := len(content.Vocabulary)
	switch {
	case n >= 5 && n <= 10:
		idealCount = 1.0
	case n > 0:
		idealCount = 0.5
	}

	return (appropriateness + idealCount) / 2
}

// scoreDiversity doubles the unique-word ratio, capped at 1.0, so lessons
// with no repeats are not penalized for having few words
func (r *Rubric) scoreDiversity(content models.ContentToScore) float64 {
	if len(content.Vocabulary) == 0 {
		return 0.5
	}

	seen := make(map[string]struct{}, len(content.Vocabulary))
	for _, v := range content.Vocabulary {
		seen[strings.ToLower(v.Word)] = struct{}{}
	}

	ratio := float64(len(seen)) / float64(len(content.Vocabulary))
	return math.Min(ratio*2, 1.0)
}

// scoreCoherence is the fraction of title words that appear in the body
func (r *Rubric) scoreCoherence(content models.ContentToScore) float64 {
	titleWords := strings.Fields(strings.ToLower(content.Title))
	if len(titleWords) == 0 {
		return 0
	}

	body := strings.ToLower(content.Content)
	found := 0
	for _, w := range titleWords {
		if strings.Contains(body, w) {
			found++
		}
	}
	return float64(found) / float64(len(titleWords))
}

// breakdown converts the raw criteria into display percentages
func breakdown(c models.CriteriaScores) models.CriteriaScores {
	pct := func(v float64) float64 { return math.Round(v * 100) }
	return models.CriteriaScores{
		Accuracy:            pct(c.Accuracy),
		Relevance:           pct(c.Relevance),
		Clarity:             pct(c.Clarity),
		Completeness:        pct(c.Completeness),
		CulturalSensitivity: pct(c.CulturalSensitivity),
		Pedagogy:            pct(c.Pedagogy),
		Diversity:           pct(c.Diversity),
		Coherence:           pct(c.Coherence),
	}
}

// feedback emits one warning per sub-score below its threshold, or a single
// all-clear string when nothing triggered
func feedback(c models.CriteriaScores) []string {
	var notes []string

	checks := []struct {
		name      string
		score     float64
		threshold float64
		message   string
	}{
		{"accuracy", c.Accuracy, 0.8, "Some vocabulary or conversation fields are missing translations or examples"},
		{"relevance", c.Relevance, 0.7, "Content does not cover enough of the expected topic vocabulary"},
		{"clarity", c.Clarity, 0.7, "Vocabulary examples are too short, too long, or contain placeholders"},
		{"completeness", c.Completeness, 0.8, "Lesson is missing a title, body, vocabulary, or conversation section"},
		{"cultural sensitivity", c.CulturalSensitivity, 0.8, "Hindi fields are missing Devanagari script"},
		{"pedagogy", c.Pedagogy, 0.7, "Vocabulary count or example length does not suit the difficulty level"},
		{"diversity", c.Diversity, 0.7, "Vocabulary list contains repeated words"},
		{"coherence", c.Coherence, 0.7, "Lesson body does not reflect the words in its title"},
	}

	for _, ch := range checks {
		if ch.score < ch.threshold {
			notes = append(notes, fmt.Sprintf("Improve %s: %s", ch.name, ch.message))
		}
	}

	if len(notes) == 0 {
		notes = append(notes, "Content meets quality standards")
	}
	return notes
}
