// Package batch persists pipeline items in transactional chunks. Each chunk
// runs in its own database transaction so a failed item never leaves a
// half-written lesson behind.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"preetenglish/internal/database"
	"preetenglish/internal/generate"
	"preetenglish/internal/models"
	"preetenglish/internal/repository"
)

// DefaultBatchSize is used when Options.BatchSize is zero or negative
const DefaultBatchSize = 10

// ErrUnknownItemType is returned when an item's concrete type has no
// dispatch case. It aborts the run instead of being recorded per-item,
// since it indicates a programming error rather than bad data.
var ErrUnknownItemType = errors.New("unknown batch item type")

// Options controls one batch run
type Options struct {
	// BatchSize is the number of items per transaction
	BatchSize int
	// DryRun validates items and reports counts without touching the database
	DryRun bool
	// StopOnError rolls back the current batch and aborts on the first failure.
	// When false, failed items are recorded and the rest of the batch commits.
	StopOnError bool
	// ResumeFrom skips the first N items, counting them as skipped
	ResumeFrom int
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ResumeFrom < 0 {
		o.ResumeFrom = 0
	}
	return o
}

// ProgressFunc receives progress after every completed batch. It is called
// synchronously; a slow callback slows the run.
type ProgressFunc func(models.BatchProgress)

// Processor writes pipeline items to the lesson corpus
type Processor struct {
	db            *database.DB
	lessons       *repository.LessonRepository
	vocabulary    *repository.VocabularyRepository
	conversations *repository.ConversationRepository
	generator     generate.Generator
	logger        *zap.Logger
}

// NewProcessor builds a processor over the database. The generator handles
// content-request items and may be nil when none are expected.
func NewProcessor(db *database.DB, generator generate.Generator, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		db:            db,
		lessons:       repository.NewLessonRepository(db),
		vocabulary:    repository.NewVocabularyRepository(db),
		conversations: repository.NewConversationRepository(db),
		generator:     generator,
		logger:        logger,
	}
}

// ProcessBatch runs all items through the processor in transactional chunks
func (p *Processor) ProcessBatch(ctx context.Context, items []models.ProcessItem, opts Options) (*models.BatchProcessResult, error) {
	return p.ProcessWithProgress(ctx, items, opts, nil)
}

// ProcessWithProgress is ProcessBatch with a synchronous progress callback
// invoked after each batch.
func (p *Processor) ProcessWithProgress(ctx context.Context, items []models.ProcessItem, opts Options, progress ProgressFunc) (*models.BatchProcessResult, error) {
	opts = opts.withDefaults()
	result := &models.BatchProcessResult{
		RunID:     uuid.New().String(),
		Total:     len(items),
		DryRun:    opts.DryRun,
		StartedAt: time.Now().UTC(),
	}
	defer func() { result.Duration = time.Since(result.StartedAt) }()

	if opts.ResumeFrom > len(items) {
		opts.ResumeFrom = len(items)
	}
	result.Skipped = opts.ResumeFrom
	pending := items[opts.ResumeFrom:]

	totalBatches := (len(pending) + opts.BatchSize - 1) / opts.BatchSize
	p.logger.Info("batch run starting",
		zap.String("run_id", result.RunID),
		zap.Int("total", result.Total),
		zap.Int("skipped", result.Skipped),
		zap.Int("batches", totalBatches),
		zap.Bool("dry_run", opts.DryRun))

	for batchNum := 0; len(pending) > 0; batchNum++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		size := opts.BatchSize
		if size > len(pending) {
			size = len(pending)
		}
		chunk := pending[:size]
		pending = pending[size:]
		offset := opts.ResumeFrom + batchNum*opts.BatchSize

		if err := p.runChunk(ctx, chunk, offset, opts, result); err != nil {
			return result, err
		}

		if progress != nil {
			done := result.Processed + result.Errors
			progress(models.BatchProgress{
				Processed:    done,
				Total:        len(items) - result.Skipped,
				Percentage:   percentage(done, len(items)-result.Skipped),
				CurrentBatch: batchNum + 1,
				TotalBatches: totalBatches,
			})
		}
	}

	p.logger.Info("batch run finished",
		zap.String("run_id", result.RunID),
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ProcessLargeDataset consumes items from a channel, flushing a transaction
// every BatchSize items with a final partial flush. A failed batch is
// recorded and the run continues unless StopOnError is set. Total reflects
// the number of items received.
func (p *Processor) ProcessLargeDataset(ctx context.Context, items <-chan models.ProcessItem, opts Options) (*models.BatchProcessResult, error) {
	opts = opts.withDefaults()
	opts.ResumeFrom = 0 // resume offsets are meaningless for a stream
	result := &models.BatchProcessResult{
		RunID:     uuid.New().String(),
		DryRun:    opts.DryRun,
		StartedAt: time.Now().UTC(),
	}
	defer func() { result.Duration = time.Since(result.StartedAt) }()

	buffer := make([]models.ProcessItem, 0, opts.BatchSize)
	offset := 0
	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		err := p.runChunk(ctx, buffer, offset, opts, result)
		offset += len(buffer)
		buffer = buffer[:0]
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case item, ok := <-items:
			if !ok {
				if err := flush(); err != nil {
					return result, err
				}
				p.logger.Info("stream run finished",
					zap.String("run_id", result.RunID),
					zap.Int("processed", result.Processed),
					zap.Int("errors", result.Errors))
				return result, nil
			}
			result.Total++
			buffer = append(buffer, item)
			if len(buffer) >= opts.BatchSize {
				if err := flush(); err != nil {
					return result, err
				}
			}
		}
	}
}

// runChunk handles one batch. In dry-run mode items are validated only.
// Otherwise the chunk runs inside a single transaction; failed items are
// recorded and the remainder commits, unless StopOnError rolls everything
// back and aborts the run.
func (p *Processor) runChunk(ctx context.Context, chunk []models.ProcessItem, offset int, opts Options, result *models.BatchProcessResult) error {
	if opts.DryRun {
		for i, item := range chunk {
			if err := p.validateItem(item); err != nil {
				if errors.Is(err, ErrUnknownItemType) {
					return err
				}
				result.Errors++
				result.ErrorDetails = append(result.ErrorDetails, models.BatchItemError{
					Index: offset + i,
					Kind:  item.Kind(),
					Error: err.Error(),
				})
				continue
			}
			result.Processed++
		}
		return nil
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}

	committed := 0
	var failed []models.BatchItemError
	for i, item := range chunk {
		if err := p.processItem(ctx, tx, item); err != nil {
			if errors.Is(err, ErrUnknownItemType) {
				tx.Rollback()
				return err
			}
			itemErr := models.BatchItemError{
				Index: offset + i,
				Kind:  item.Kind(),
				Error: err.Error(),
			}
			p.logger.Warn("batch item failed",
				zap.Int("index", itemErr.Index),
				zap.String("kind", itemErr.Kind),
				zap.Error(err))
			if opts.StopOnError {
				tx.Rollback()
				result.Errors++
				result.ErrorDetails = append(result.ErrorDetails, itemErr)
				return fmt.Errorf("item %d (%s): %s", itemErr.Index, itemErr.Kind, itemErr.Error)
			}
			failed = append(failed, itemErr)
			continue
		}
		committed++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	result.Processed += committed
	result.Errors += len(failed)
	result.ErrorDetails = append(result.ErrorDetails, failed...)
	return nil
}

// processItem dispatches one item inside the batch transaction
func (p *Processor) processItem(ctx context.Context, tx database.DBTX, item models.ProcessItem) error {
	if err := p.validateItem(item); err != nil {
		return err
	}
	switch it := item.(type) {
	case models.LessonItem:
		return p.insertLesson(tx, it.Lesson)
	case models.VocabularyBatchItem:
		_, err := p.vocabulary.Insert(tx, it.Item)
		return err
	case models.ConversationBatchItem:
		_, err := p.conversations.Insert(tx, it.Line)
		return err
	case models.ContentRequestItem:
		if p.generator == nil {
			return fmt.Errorf("no content generator configured")
		}
		content, err := p.generator.Generate(ctx, generate.Request{
			Topic:      it.Topic,
			Category:   it.Category,
			Difficulty: it.Difficulty,
		})
		if err != nil {
			return fmt.Errorf("generating content for %q: %w", it.Topic, err)
		}
		return p.insertLesson(tx, lessonFromGenerated(content))
	default:
		return fmt.Errorf("%w: %T", ErrUnknownItemType, item)
	}
}

// validateItem checks an item's structure without touching the database
func (p *Processor) validateItem(item models.ProcessItem) error {
	switch it := item.(type) {
	case models.LessonItem:
		l := it.Lesson
		if l.Title == "" {
			return fmt.Errorf("lesson missing title")
		}
		if l.Content == "" {
			return fmt.Errorf("lesson %q missing content", l.Title)
		}
		if l.Category == "" {
			return fmt.Errorf("lesson %q missing category", l.Title)
		}
		if !models.ValidDifficulty(l.Difficulty) {
			return fmt.Errorf("lesson %q has invalid difficulty %q", l.Title, l.Difficulty)
		}
		return nil
	case models.VocabularyBatchItem:
		v := it.Item
		if v.LessonID <= 0 {
			return fmt.Errorf("vocabulary %q missing lesson id", v.Word)
		}
		if v.Word == "" {
			return fmt.Errorf("vocabulary item missing word")
		}
		if v.Definition == "" {
			return fmt.Errorf("vocabulary %q missing definition", v.Word)
		}
		return nil
	case models.ConversationBatchItem:
		c := it.Line
		if c.LessonID <= 0 {
			return fmt.Errorf("conversation line missing lesson id")
		}
		if !models.ValidSpeaker(c.Speaker) {
			return fmt.Errorf("invalid speaker %q", c.Speaker)
		}
		if c.EnglishText == "" {
			return fmt.Errorf("conversation line missing English text")
		}
		return nil
	case models.ContentRequestItem:
		req := generate.Request{Topic: it.Topic, Category: it.Category, Difficulty: it.Difficulty}
		return req.Validate()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownItemType, item)
	}
}

// insertLesson writes a lesson and its children in the current transaction
func (p *Processor) insertLesson(tx database.DBTX, lesson models.Lesson) error {
	if lesson.Slug == "" {
		lesson.Slug = Slugify(lesson.Title)
	}
	id, err := p.lessons.Insert(tx, lesson)
	if err != nil {
		return fmt.Errorf("inserting lesson %q: %w", lesson.Title, err)
	}
	for _, v := range lesson.Vocabulary {
		v.LessonID = id
		if _, err := p.vocabulary.Insert(tx, v); err != nil {
			return fmt.Errorf("inserting vocabulary %q for lesson %q: %w", v.Word, lesson.Title, err)
		}
	}
	for i, c := range lesson.Conversations {
		c.LessonID = id
		if c.OrderIndex == 0 {
			c.OrderIndex = i
		}
		if _, err := p.conversations.Insert(tx, c); err != nil {
			return fmt.Errorf("inserting conversation line %d for lesson %q: %w", i, lesson.Title, err)
		}
	}
	return nil
}

// lessonFromGenerated converts generator output into a persistable lesson
func lessonFromGenerated(content models.GeneratedContent) models.Lesson {
	return models.Lesson{
		Title:         content.Title,
		Slug:          Slugify(content.Title),
		Content:       content.Content,
		Category:      content.Category,
		Difficulty:    content.Difficulty,
		HindiTitle:    content.HindiTitle,
		Vocabulary:    content.Vocabulary,
		Conversations: content.Conversations,
	}
}

// Slugify lowercases the title and replaces non-alphanumeric runs with
// single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func percentage(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}
