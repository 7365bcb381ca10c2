// Package service holds operational services built on the repositories:
// corpus backup and restore.
package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"preetenglish/internal/database"
	"preetenglish/internal/models"
)

// BackupData is the complete corpus backup structure. Lessons carry their
// vocabulary and conversation lines nested, so a backup file is readable
// on its own.
type BackupData struct {
	Version      string         `json:"version"`
	ExportedAt   time.Time      `json:"exported_at"`
	DatabaseType string         `json:"database_type"`
	Lessons      []LessonBackup `json:"lessons"`
}

// LessonBackup is one lesson with its children
type LessonBackup struct {
	Lesson        models.Lesson             `json:"lesson"`
	Vocabulary    []models.VocabularyItem   `json:"vocabulary"`
	Conversations []models.ConversationLine `json:"conversations"`
}

// BackupService handles corpus backup and restore operations
type BackupService struct {
	db     *database.DB
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{db: db, logger: logger}
}

// Export writes a complete backup of the lesson corpus to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	s.logger.Info("corpus exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes the backup JSON to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now().UTC(),
		DatabaseType: "universal",
	}

	if err := s.exportLessons(backup); err != nil {
		return fmt.Errorf("failed to export lessons: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("export complete", zap.Int("lessons", len(backup.Lessons)))
	return nil
}

func (s *BackupService) exportLessons(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, title, slug, content, category, difficulty,
		COALESCE(hindi_title, ''), COALESCE(description, ''), order_index, created_at
		FROM lessons ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Slug, &l.Content, &l.Category,
			&l.Difficulty, &l.HindiTitle, &l.Description, &l.OrderIndex, &l.CreatedAt); err != nil {
			return err
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lessons {
		entry := LessonBackup{Lesson: l}
		if entry.Vocabulary, err = s.exportVocabulary(l.ID); err != nil {
			return fmt.Errorf("lesson %d vocabulary: %w", l.ID, err)
		}
		if entry.Conversations, err = s.exportConversations(l.ID); err != nil {
			return fmt.Errorf("lesson %d conversations: %w", l.ID, err)
		}
		backup.Lessons = append(backup.Lessons, entry)
	}
	return nil
}

func (s *BackupService) exportVocabulary(lessonID int64) ([]models.VocabularyItem, error) {
	rows, err := s.db.Query(`SELECT id, lesson_id, word, COALESCE(definition, ''),
		COALESCE(example, ''), COALESCE(hindi_translation, ''), COALESCE(pronunciation, '')
		FROM vocabulary WHERE lesson_id = ? ORDER BY id`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.VocabularyItem
	for rows.Next() {
		var v models.VocabularyItem
		if err := rows.Scan(&v.ID, &v.LessonID, &v.Word, &v.Definition,
			&v.Example, &v.HindiTranslation, &v.Pronunciation); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *BackupService) exportConversations(lessonID int64) ([]models.ConversationLine, error) {
	rows, err := s.db.Query(`SELECT id, lesson_id, speaker, COALESCE(english_text, ''),
		COALESCE(hindi_text, ''), order_index
		FROM conversation_lines WHERE lesson_id = ? ORDER BY order_index, id`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.ConversationLine
	for rows.Next() {
		var c models.ConversationLine
		if err := rows.Scan(&c.ID, &c.LessonID, &c.Speaker, &c.EnglishText,
			&c.HindiText, &c.OrderIndex); err != nil {
			return nil, err
		}
		lines = append(lines, c)
	}
	return lines, rows.Err()
}

// Import restores the corpus from a backup file. Lessons are inserted with
// their original ids so child rows keep their references.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores the corpus from backup JSON
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	s.logger.Info("importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
		zap.Int("lessons", len(backup.Lessons)))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	for _, entry := range backup.Lessons {
		if err := s.importLesson(tx, entry); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	s.logger.Info("import complete", zap.Int("lessons", len(backup.Lessons)))
	return nil
}

func (s *BackupService) importLesson(tx *database.Tx, entry LessonBackup) error {
	l := entry.Lesson
	_, err := tx.Exec(`INSERT INTO lessons (id, title, slug, content, category, difficulty,
		hindi_title, description, order_index, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, l.Slug, l.Content, l.Category, l.Difficulty,
		nullIfEmpty(l.HindiTitle), nullIfEmpty(l.Description), l.OrderIndex, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to import lesson %d: %w", l.ID, err)
	}

	for _, v := range entry.Vocabulary {
		_, err := tx.Exec(`INSERT INTO vocabulary (id, lesson_id, word, definition, example,
			hindi_translation, pronunciation) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.ID, l.ID, v.Word, nullIfEmpty(v.Definition), nullIfEmpty(v.Example),
			nullIfEmpty(v.HindiTranslation), nullIfEmpty(v.Pronunciation))
		if err != nil {
			return fmt.Errorf("failed to import vocabulary %d for lesson %d: %w", v.ID, l.ID, err)
		}
	}

	for _, c := range entry.Conversations {
		_, err := tx.Exec(`INSERT INTO conversation_lines (id, lesson_id, speaker, english_text,
			hindi_text, order_index) VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, l.ID, c.Speaker, nullIfEmpty(c.EnglishText), nullIfEmpty(c.HindiText), c.OrderIndex)
		if err != nil {
			return fmt.Errorf("failed to import conversation %d for lesson %d: %w", c.ID, l.ID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
