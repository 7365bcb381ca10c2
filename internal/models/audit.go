package models

import "time"

// AuditStatus classifies a single audited item. Severity is ordered:
// fail dominates warning dominates pass.
type AuditStatus string

const (
	StatusPass    AuditStatus = "pass"
	StatusWarning AuditStatus = "warning"
	StatusFail    AuditStatus = "fail"
)

// severity maps each status to its escalation rank
func (s AuditStatus) severity() int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Escalate returns the more severe of the two statuses. Escalation is
// monotonic: once an item reaches fail it can never be downgraded.
func (s AuditStatus) Escalate(next AuditStatus) AuditStatus {
	if next.severity() > s.severity() {
		return next
	}
	return s
}

// AuditItemType identifies which kind of record an audit result covers
type AuditItemType string

const (
	ItemLesson       AuditItemType = "lesson"
	ItemVocabulary   AuditItemType = "vocabulary"
	ItemConversation AuditItemType = "conversation"
)

// AuditResult is created once per audited item and never mutated after
// the item's audit completes.
type AuditResult struct {
	ID          string        `json:"id"` // composite of type and numeric id
	Type        AuditItemType `json:"type"`
	Status      AuditStatus   `json:"status"`
	Issues      []string      `json:"issues"`
	Suggestions []string      `json:"suggestions"`
	Score       *float64      `json:"score,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

// AuditSummary aggregates one full audit pass
type AuditSummary struct {
	Profile      string        `json:"profile"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Total        int           `json:"total"`
	Passed       int           `json:"passed"`
	Warnings     int           `json:"warnings"`
	Failed       int           `json:"failed"`
	AverageScore float64       `json:"average_score"`
	Results      []AuditResult `json:"results"`
}

// Add folds a result into the summary counts
func (s *AuditSummary) Add(r AuditResult) {
	s.Results = append(s.Results, r)
	s.Total++
	switch r.Status {
	case StatusFail:
		s.Failed++
	case StatusWarning:
		s.Warnings++
	default:
		s.Passed++
	}
}

// Finalize computes the average over results that carry a score.
// Items without a score are excluded from the mean, not treated as zero.
func (s *AuditSummary) Finalize() {
	sum := 0.0
	n := 0
	for _, r := range s.Results {
		if r.Score != nil {
			sum += *r.Score
			n++
		}
	}
	if n > 0 {
		s.AverageScore = sum / float64(n)
	}
}

// FailedResults returns only the results that ended in fail status
func (s *AuditSummary) FailedResults() []AuditResult {
	var failed []AuditResult
	for _, r := range s.Results {
		if r.Status == StatusFail {
			failed = append(failed, r)
		}
	}
	return failed
}
