// Package report renders audit and validation summaries as markdown and
// JSON artifacts and delivers them by email.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"preetenglish/internal/models"
)

// Writer renders summaries and writes report artifacts to a directory
type Writer struct {
	dir string
}

// NewWriter builds a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// AuditMarkdown renders an audit summary as markdown
func AuditMarkdown(summary *models.AuditSummary) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Content Audit Report\n\n")
	fmt.Fprintf(&buf, "**Profile:** %s\n", summary.Profile)
	fmt.Fprintf(&buf, "**Run at:** %s\n", summary.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&buf, "**Duration:** %s\n\n", summary.Duration.Round(time.Millisecond))

	buf.WriteString("## Results\n\n")
	fmt.Fprintf(&buf, "| Total | Passed | Warnings | Failed | Average Score |\n")
	fmt.Fprintf(&buf, "|-------|--------|----------|--------|---------------|\n")
	fmt.Fprintf(&buf, "| %d | %d | %d | %d | %.1f |\n\n",
		summary.Total, summary.Passed, summary.Warnings, summary.Failed, summary.AverageScore)

	failed := summary.FailedResults()
	if len(failed) > 0 {
		buf.WriteString("## Failed Items\n\n")
		for _, r := range failed {
			fmt.Fprintf(&buf, "### %s (%s)\n\n", r.ID, r.Type)
			for _, issue := range r.Issues {
				fmt.Fprintf(&buf, "- %s\n", issue)
			}
			for _, s := range r.Suggestions {
				fmt.Fprintf(&buf, "- Suggestion: %s\n", s)
			}
			buf.WriteString("\n")
		}
	}

	warned := 0
	for _, r := range summary.Results {
		if r.Status == models.StatusWarning {
			warned++
		}
	}
	if warned > 0 {
		fmt.Fprintf(&buf, "## Warnings\n\n%d item(s) passed with warnings. "+
			"Review the JSON artifact for details.\n", warned)
	}
	return buf.String()
}

// ValidationMarkdown renders a validation summary as markdown
func ValidationMarkdown(summary *models.ValidationSummary) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Content Validation Report\n\n")
	fmt.Fprintf(&buf, "**Run at:** %s\n", summary.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&buf, "**Duration:** %s\n\n", summary.Duration.Round(time.Millisecond))

	fmt.Fprintf(&buf, "| Total | Valid | Invalid | Average Score |\n")
	fmt.Fprintf(&buf, "|-------|-------|---------|---------------|\n")
	fmt.Fprintf(&buf, "| %d | %d | %d | %.1f |\n\n",
		summary.Total, summary.Valid, summary.Invalid, summary.AverageScore)

	buf.WriteString("## Compliance\n\n")
	fmt.Fprintf(&buf, "- Stoplist: %.1f%%\n", summary.Compliance.StoplistCompliance)
	fmt.Fprintf(&buf, "- Content: %.1f%%\n", summary.Compliance.ContentCompliance)
	fmt.Fprintf(&buf, "- Cultural: %.1f%%\n", summary.Compliance.CulturalCompliance)
	fmt.Fprintf(&buf, "- Technical: %.1f%%\n", summary.Compliance.TechnicalCompliance)

	invalid := make([]models.ValidationResult, 0)
	for _, r := range summary.Results {
		if !r.IsValid {
			invalid = append(invalid, r)
		}
	}
	if len(invalid) > 0 {
		buf.WriteString("\n## Invalid Items\n\n")
		for _, r := range invalid {
			fmt.Fprintf(&buf, "### %s (%s)\n\n", r.ID, r.Type)
			for _, issue := range r.Issues {
				fmt.Fprintf(&buf, "- %s\n", issue)
			}
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// WriteAudit writes the markdown report plus a JSON artifact of failed
// items and returns the markdown path.
func (w *Writer) WriteAudit(summary *models.AuditSummary) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}
	stamp := summary.StartedAt.Format("20060102-150405")

	mdPath := filepath.Join(w.dir, fmt.Sprintf("audit-%s.md", stamp))
	if err := os.WriteFile(mdPath, []byte(AuditMarkdown(summary)), 0644); err != nil {
		return "", fmt.Errorf("writing audit report: %w", err)
	}

	failed := summary.FailedResults()
	if len(failed) > 0 {
		data, err := json.MarshalIndent(failed, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding failed items: %w", err)
		}
		jsonPath := filepath.Join(w.dir, fmt.Sprintf("audit-%s-failed.json", stamp))
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return "", fmt.Errorf("writing failed items: %w", err)
		}
	}
	return mdPath, nil
}

// WriteValidation writes the markdown report plus a JSON artifact of the
// full summary and returns the markdown path.
func (w *Writer) WriteValidation(summary *models.ValidationSummary) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}
	stamp := summary.StartedAt.Format("20060102-150405")

	mdPath := filepath.Join(w.dir, fmt.Sprintf("validation-%s.md", stamp))
	if err := os.WriteFile(mdPath, []byte(ValidationMarkdown(summary)), 0644); err != nil {
		return "", fmt.Errorf("writing validation report: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding validation summary: %w", err)
	}
	jsonPath := filepath.Join(w.dir, fmt.Sprintf("validation-%s.json", stamp))
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing validation summary: %w", err)
	}
	return mdPath, nil
}
