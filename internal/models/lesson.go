package models

import "time"

// Difficulty levels used across lessons, vocabulary and the stoplist
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Lesson represents a lesson row with its child collections
type Lesson struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	HindiTitle  string    `json:"hindi_title"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`

	// Children are populated by the repository when requested
	Vocabulary    []VocabularyItem   `json:"vocabulary,omitempty"`
	Conversations []ConversationLine `json:"conversations,omitempty"`
}

// VocabularyItem represents a vocabulary row belonging to a lesson
type VocabularyItem struct {
	ID               int64  `json:"id"`
	LessonID         int64  `json:"lesson_id"`
	Word             string `json:"word"`
	Definition       string `json:"definition"`
	Example          string `json:"example"`
	HindiTranslation string `json:"hindi_translation"`
	Pronunciation    string `json:"pronunciation"`
}

// ConversationLine represents a single line of a lesson conversation
type ConversationLine struct {
	ID          int64  `json:"id"`
	LessonID    int64  `json:"lesson_id"`
	Speaker     string `json:"speaker"`
	EnglishText string `json:"english_text"`
	HindiText   string `json:"hindi_text"`
	OrderIndex  int    `json:"order_index"`
}

// ValidDifficulty reports whether d is one of the known difficulty levels
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ValidSpeaker reports whether s is an allowed conversation speaker label
func ValidSpeaker(s string) bool {
	switch s {
	case "A", "B", "C", "D":
		return true
	}
	return false
}
