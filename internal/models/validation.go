package models

import "time"

// ValidationResult is produced once per item per validation run.
// Unlike audit, validity is boolean: any enabled check failing makes the
// item invalid regardless of its score.
type ValidationResult struct {
	ID        string        `json:"id"`
	Type      AuditItemType `json:"type"`
	IsValid   bool          `json:"is_valid"`
	Issues    []string      `json:"issues"`
	Score     *float64      `json:"score,omitempty"`
	Validator string        `json:"validator"`
	Timestamp time.Time     `json:"timestamp"`
}

// ComplianceReport holds the percentage of items free of each issue class.
// Classification is by substring matching over issue messages, so the
// categories are loose rather than a structured taxonomy.
type ComplianceReport struct {
	StoplistCompliance  float64 `json:"stoplist_compliance"`
	ContentCompliance   float64 `json:"content_compliance"`
	CulturalCompliance  float64 `json:"cultural_compliance"`
	TechnicalCompliance float64 `json:"technical_compliance"`
}

// ValidationSummary aggregates one full validation pass
type ValidationSummary struct {
	StartedAt    time.Time          `json:"started_at"`
	Duration     time.Duration      `json:"duration"`
	Total        int                `json:"total"`
	Valid        int                `json:"valid"`
	Invalid      int                `json:"invalid"`
	AverageScore float64            `json:"average_score"`
	Compliance   ComplianceReport   `json:"compliance"`
	Results      []ValidationResult `json:"results"`
}

// Add folds a result into the summary counts
func (s *ValidationSummary) Add(r ValidationResult) {
	s.Results = append(s.Results, r)
	s.Total++
	if r.IsValid {
		s.Valid++
	} else {
		s.Invalid++
	}
}

// Finalize computes the mean over scored results only
func (s *ValidationSummary) Finalize() {
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

// StandardsBand classifies a single score against the fixed launch bands
type StandardsBand string

const (
	BandHigh    StandardsBand = "high"    // >= 9.0
	BandGood    StandardsBand = "good"    // >= 8.0
	BandMinimum StandardsBand = "minimum" // >= 7.0
	BandFail    StandardsBand = "fail"
)
