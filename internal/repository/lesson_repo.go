package repository

import (
	"context"
	"database/sql"
	"fmt"

	"preetenglish/internal/database"
	"preetenglish/internal/models"
)

// LessonRepository handles lesson database operations
type LessonRepository struct {
	db *database.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *database.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

const lessonColumns = "id, title, slug, content, category, difficulty, hindi_title, description, order_index, created_at"

// scanLesson reads one lesson row
func scanLesson(scan func(dest ...interface{}) error) (models.Lesson, error) {
	var lesson models.Lesson
	var hindiTitle, description sql.NullString
	err := scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Slug,
		&lesson.Content,
		&lesson.Category,
		&lesson.Difficulty,
		&hindiTitle,
		&description,
		&lesson.OrderIndex,
		&lesson.CreatedAt,
	)
	if err != nil {
		return lesson, err
	}
	lesson.HindiTitle = hindiTitle.String
	lesson.Description = description.String
	return lesson, nil
}

// GetByID retrieves a lesson without its children
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	row := r.db.QueryRow("SELECT "+lessonColumns+" FROM lessons WHERE id = ?", id)
	lesson, err := scanLesson(row.Scan)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// List retrieves all lessons without children, in display order
func (r *LessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	rows, err := r.db.Query("SELECT " + lessonColumns + " FROM lessons ORDER BY order_index ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

// ListWithChildren retrieves all lessons with their vocabulary and
// conversation lines attached. This is the shape audit and validation
// passes consume.
func (r *LessonRepository) ListWithChildren(ctx context.Context) ([]models.Lesson, error) {
	lessons, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	vocabByLesson, err := r.vocabularyByLesson()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	linesByLesson, err := r.conversationsByLesson()
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}

	for i := range lessons {
		lessons[i].Vocabulary = vocabByLesson[lessons[i].ID]
		lessons[i].Conversations = linesByLesson[lessons[i].ID]
	}
	return lessons, nil
}

func (r *LessonRepository) vocabularyByLesson() (map[int64][]models.VocabularyItem, error) {
	rows, err := r.db.Query("SELECT " + vocabularyColumns + " FROM vocabulary ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byLesson := make(map[int64][]models.VocabularyItem)
	for rows.Next() {
		item, err := scanVocabulary(rows.Scan)
		if err != nil {
			return nil, err
		}
		byLesson[item.LessonID] = append(byLesson[item.LessonID], item)
	}
	return byLesson, rows.Err()
}

func (r *LessonRepository) conversationsByLesson() (map[int64][]models.ConversationLine, error) {
	rows, err := r.db.Query("SELECT " + conversationColumns + " FROM conversation_lines ORDER BY order_index ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byLesson := make(map[int64][]models.ConversationLine)
	for rows.Next() {
		line, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, err
		}
		byLesson[line.LessonID] = append(byLesson[line.LessonID], line)
	}
	return byLesson, rows.Err()
}

// Insert adds a lesson row using the given executor, which may be a
// transaction, and returns the new id
func (r *LessonRepository) Insert(dbtx database.DBTX, lesson models.Lesson) (int64, error) {
	return dbtx.ExecReturningID(`
		INSERT INTO lessons (title, slug, content, category, difficulty, hindi_title, description, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		lesson.Title, lesson.Slug, lesson.Content, lesson.Category, lesson.Difficulty,
		lesson.HindiTitle, lesson.Description, lesson.OrderIndex)
}

// Count returns the number of lessons
func (r *LessonRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM lessons").Scan(&count)
	return count, err
}
