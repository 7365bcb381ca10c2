package models

import "time"

// ProcessItem is the tagged union of payloads the batch processor accepts.
// The interface is sealed so the dispatch switch stays exhaustive.
type ProcessItem interface {
	Kind() string
}

// LessonItem carries a full lesson (with optional children) for insertion
type LessonItem struct {
	Lesson Lesson
}

// Kind identifies the item for dispatch and error reporting
func (LessonItem) Kind() string { return "lesson" }

// VocabularyBatchItem carries one vocabulary row for an existing lesson
type VocabularyBatchItem struct {
	Item VocabularyItem
}

func (VocabularyBatchItem) Kind() string { return "vocabulary" }

// ConversationBatchItem carries one conversation line for an existing lesson
type ConversationBatchItem struct {
	Line ConversationLine
}

func (ConversationBatchItem) Kind() string { return "conversation" }

// ContentRequestItem asks the content generator to produce a full lesson
// (title, body, vocabulary, conversations) which is then persisted.
type ContentRequestItem struct {
	Topic      string
	Category   string
	Difficulty string
}

func (ContentRequestItem) Kind() string { return "content" }

// BatchItemError records a single failed item inside a batch run
type BatchItemError struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// BatchProcessResult summarizes one batch invocation
type BatchProcessResult struct {
	RunID        string           `json:"run_id"`
	Processed    int              `json:"processed"`
	Errors       int              `json:"errors"`
	Skipped      int              `json:"skipped"`
	Total        int              `json:"total"`
	DryRun       bool             `json:"dry_run"`
	StartedAt    time.Time        `json:"started_at"`
	Duration     time.Duration    `json:"duration"`
	ErrorDetails []BatchItemError `json:"error_details,omitempty"`
}

// BatchProgress is emitted synchronously after every batch
type BatchProgress struct {
	Processed    int     `json:"processed"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
	CurrentBatch int     `json:"current_batch"`
	TotalBatches int     `json:"total_batches"`
}
