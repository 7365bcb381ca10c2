package repository

import (
	"context"
	"database/sql"

	"preetenglish/internal/database"
	"preetenglish/internal/models"
)

// VocabularyRepository handles vocabulary database operations
type VocabularyRepository struct {
	db *database.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

const vocabularyColumns = "id, lesson_id, word, definition, example, hindi_translation, pronunciation"

func scanVocabulary(scan func(dest ...interface{}) error) (models.VocabularyItem, error) {
	var item models.VocabularyItem
	var definition, example, hindi, pronunciation sql.NullString
	err := scan(
		&item.ID,
		&item.LessonID,
		&item.Word,
		&definition,
		&example,
		&hindi,
		&pronunciation,
	)
	if err != nil {
		return item, err
	}
	item.Definition = definition.String
	item.Example = example.String
	item.HindiTranslation = hindi.String
	item.Pronunciation = pronunciation.String
	return item, nil
}

// ListAll retrieves every vocabulary row across all lessons
func (r *VocabularyRepository) ListAll(ctx context.Context) ([]models.VocabularyItem, error) {
	rows, err := r.db.Query("SELECT " + vocabularyColumns + " FROM vocabulary ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.VocabularyItem
	for rows.Next() {
		item, err := scanVocabulary(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListByLesson retrieves the vocabulary for one lesson
func (r *VocabularyRepository) ListByLesson(ctx context.Context, lessonID int64) ([]models.VocabularyItem, error) {
	rows, err := r.db.Query("SELECT "+vocabularyColumns+" FROM vocabulary WHERE lesson_id = ? ORDER BY id ASC", lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.VocabularyItem
	for rows.Next() {
		item, err := scanVocabulary(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Insert adds a vocabulary row using the given executor and returns the new id
func (r *VocabularyRepository) Insert(dbtx database.DBTX, item models.VocabularyItem) (int64, error) {
	return dbtx.ExecReturningID(`
		INSERT INTO vocabulary (lesson_id, word, definition, example, hindi_translation, pronunciation)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.LessonID, item.Word, item.Definition, item.Example, item.HindiTranslation, item.Pronunciation)
}
