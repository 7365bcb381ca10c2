// Package trace aligns scored content with educational standards and keeps
// an append-only record of pipeline operations for later review.
package trace

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed standards.yaml
var defaultStandardsYAML []byte

// Standard is one educational standard content can align with
type Standard struct {
	Name        string  `yaml:"name" json:"name"`
	Code        string  `yaml:"code" json:"code"`
	TargetScore float64 `yaml:"target_score" json:"target_score"`
	Description string  `yaml:"description" json:"description"`
}

// Link ties a content item to a standard it meets
type Link struct {
	StandardCode string  `json:"standard_code"`
	StandardName string  `json:"standard_name"`
	Score        float64 `json:"score"`
	Margin       float64 `json:"margin"`
}

// Record is one append-only traceability entry. Records are never updated;
// corrections are appended as new records.
type Record struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	ItemID    string    `json:"item_id"`
	ItemType  string    `json:"item_type"`
	Links     []Link    `json:"links,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder stores traceability records
type Recorder interface {
	Append(ctx context.Context, record Record) error
	Query(ctx context.Context, itemID string) ([]Record, error)
}

// MemoryRecorder keeps records in memory, preserving append order. Safe for
// concurrent use.
type MemoryRecorder struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryRecorder returns an empty recorder
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Append stores a record
func (r *MemoryRecorder) Append(_ context.Context, record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

// Query returns all records for the item in append order. An empty itemID
// returns everything.
func (r *MemoryRecorder) Query(_ context.Context, itemID string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if itemID == "" {
		out := make([]Record, len(r.records))
		copy(out, r.records)
		return out, nil
	}
	var out []Record
	for _, rec := range r.records {
		if rec.ItemID == itemID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Manager aligns content scores with the standards catalogue and records
// pipeline operations.
type Manager struct {
	standards []Standard
	recorder  Recorder
}

// NewManager builds a manager over the built-in standards catalogue
func NewManager(recorder Recorder) (*Manager, error) {
	standards, err := ParseStandards(defaultStandardsYAML)
	if err != nil {
		return nil, fmt.Errorf("loading built-in standards: %w", err)
	}
	return NewManagerWithStandards(recorder, standards), nil
}

// NewManagerWithStandards builds a manager over an explicit catalogue
func NewManagerWithStandards(recorder Recorder, standards []Standard) *Manager {
	if recorder == nil {
		recorder = NewMemoryRecorder()
	}
	return &Manager{standards: standards, recorder: recorder}
}

// ParseStandards reads a standards catalogue from YAML
func ParseStandards(data []byte) ([]Standard, error) {
	var doc struct {
		Standards []Standard `yaml:"standards"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing standards: %w", err)
	}
	for _, s := range doc.Standards {
		if s.Code == "" {
			return nil, fmt.Errorf("standard %q missing code", s.Name)
		}
	}
	return doc.Standards, nil
}

// Standards returns the catalogue
func (m *Manager) Standards() []Standard {
	out := make([]Standard, len(m.standards))
	copy(out, m.standards)
	return out
}

// AlignWithStandards returns a link for every standard the score meets and
// appends an alignment record for the item.
func (m *Manager) AlignWithStandards(ctx context.Context, itemID, itemType string, score float64) ([]Link, error) {
	var links []Link
	for _, s := range m.standards {
		if score >= s.TargetScore {
			links = append(links, Link{
				StandardCode: s.Code,
				StandardName: s.Name,
				Score:        score,
				Margin:       score - s.TargetScore,
			})
		}
	}

	record := Record{
		ID:        uuid.New().String(),
		Operation: "align",
		ItemID:    itemID,
		ItemType:  itemType,
		Links:     links,
		Timestamp: time.Now().UTC(),
	}
	if err := m.recorder.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("recording alignment: %w", err)
	}
	return links, nil
}

// RecordOperation appends a free-form operation record for the item
func (m *Manager) RecordOperation(ctx context.Context, operation, itemID, itemType, details string) (string, error) {
	record := Record{
		ID:        uuid.New().String(),
		Operation: operation,
		ItemID:    itemID,
		ItemType:  itemType,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if err := m.recorder.Append(ctx, record); err != nil {
		return "", fmt.Errorf("recording operation %q: %w", operation, err)
	}
	return record.ID, nil
}

// History returns all records for the item in append order
func (m *Manager) History(ctx context.Context, itemID string) ([]Record, error) {
	return m.recorder.Query(ctx, itemID)
}
