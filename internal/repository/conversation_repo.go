package repository

import (
	"context"
	"database/sql"

	"preetenglish/internal/database"
	"preetenglish/internal/models"
)

// ConversationRepository handles conversation line database operations
type ConversationRepository struct {
	db *database.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *database.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

const conversationColumns = "id, lesson_id, speaker, english_text, hindi_text, order_index"

func scanConversation(scan func(dest ...interface{}) error) (models.ConversationLine, error) {
	var line models.ConversationLine
	var english, hindi sql.NullString
	err := scan(
		&line.ID,
		&line.LessonID,
		&line.Speaker,
		&english,
		&hindi,
		&line.OrderIndex,
	)
	if err != nil {
		return line, err
	}
	line.EnglishText = english.String
	line.HindiText = hindi.String
	return line, nil
}

// ListAll retrieves every conversation line across all lessons
func (r *ConversationRepository) ListAll(ctx context.Context) ([]models.ConversationLine, error) {
	rows, err := r.db.Query("SELECT " + conversationColumns + " FROM conversation_lines ORDER BY lesson_id ASC, order_index ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.ConversationLine
	for rows.Next() {
		line, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Insert adds a conversation line using the given executor and returns the new id
func (r *ConversationRepository) Insert(dbtx database.DBTX, line models.ConversationLine) (int64, error) {
	return dbtx.ExecReturningID(`
		INSERT INTO conversation_lines (lesson_id, speaker, english_text, hindi_text, order_index)
		VALUES (?, ?, ?, ?, ?)`,
		line.LessonID, line.Speaker, line.EnglishText, line.HindiText, line.OrderIndex)
}
