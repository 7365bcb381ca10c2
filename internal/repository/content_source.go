package repository

import (
	"context"

	"preetenglish/internal/database"
	"preetenglish/internal/models"
)

// ContentSource bundles the three repositories into the read surface the
// audit and validation passes consume
type ContentSource struct {
	lessons       *LessonRepository
	vocabulary    *VocabularyRepository
	conversations *ConversationRepository
}

// NewContentSource creates a content source over one database connection
func NewContentSource(db *database.DB) *ContentSource {
	return &ContentSource{
		lessons:       NewLessonRepository(db),
		vocabulary:    NewVocabularyRepository(db),
		conversations: NewConversationRepository(db),
	}
}

// ListLessons returns all lessons with children attached
func (s *ContentSource) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	return s.lessons.ListWithChildren(ctx)
}

// ListVocabulary returns the global vocabulary table scan
func (s *ContentSource) ListVocabulary(ctx context.Context) ([]models.VocabularyItem, error) {
	return s.vocabulary.ListAll(ctx)
}

// ListConversations returns the global conversation table scan
func (s *ContentSource) ListConversations(ctx context.Context) ([]models.ConversationLine, error) {
	return s.conversations.ListAll(ctx)
}
