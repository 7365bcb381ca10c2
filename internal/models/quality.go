package models

// ContentToScore is the immutable input handed to the quality rubric.
// It is never persisted itself; audit builds one from a lesson row plus
// its children, and the authoring pipeline builds one from generated content.
type ContentToScore struct {
	Title         string
	Content       string
	Category      string
	Difficulty    string
	Vocabulary    []VocabularyItem
	Conversations []ConversationLine
}

// CriteriaScores holds the eight rubric sub-scores, each in [0,1]
type CriteriaScores struct {
	Accuracy            float64 `json:"accuracy"`
	Relevance           float64 `json:"relevance"`
	Clarity             float64 `json:"clarity"`
	Completeness        float64 `json:"completeness"`
	CulturalSensitivity float64 `json:"cultural_sensitivity"`
	Pedagogy            float64 `json:"pedagogy"`
	Diversity           float64 `json:"diversity"`
	Coherence           float64 `json:"coherence"`
}

// QualityScore is the rubric output: an overall 0-10 score with one decimal,
// the raw criteria, percentage breakdown, and human-readable feedback.
// Derived, never stored; recomputed on demand.
type QualityScore struct {
	Overall   float64        `json:"overall"`
	Criteria  CriteriaScores `json:"criteria"`
	Breakdown CriteriaScores `json:"breakdown"`
	Feedback  []string       `json:"feedback"`
}

// GeneratedContent is the well-formed object returned by a content generator
type GeneratedContent struct {
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Category      string             `json:"category"`
	Difficulty    string             `json:"difficulty"`
	HindiTitle    string             `json:"hindi_title"`
	Vocabulary    []VocabularyItem   `json:"vocabulary"`
	Conversations []ConversationLine `json:"conversations"`
	Metadata      GenerationMetadata `json:"metadata"`
}

// GenerationMetadata records how a piece of content was produced
type GenerationMetadata struct {
	Generator   string `json:"generator"`
	Model       string `json:"model,omitempty"`
	Topic       string `json:"topic"`
	GeneratedAt string `json:"generated_at"`
}

// ToContentToScore converts generated content into rubric input
func (g GeneratedContent) ToContentToScore() ContentToScore {
	return ContentToScore{
		Title:         g.Title,
		Content:       g.Content,
		Category:      g.Category,
		Difficulty:    g.Difficulty,
		Vocabulary:    g.Vocabulary,
		Conversations: g.Conversations,
	}
}

// LessonToContent converts a lesson row plus children into rubric input
func LessonToContent(l Lesson) ContentToScore {
	return ContentToScore{
		Title:         l.Title,
		Content:       l.Content,
		Category:      l.Category,
		Difficulty:    l.Difficulty,
		Vocabulary:    l.Vocabulary,
		Conversations: l.Conversations,
	}
}
