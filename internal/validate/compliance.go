package validate

import (
	"strings"

	"preetenglish/internal/models"
)

// complianceFromResults derives the compliance percentages by substring
// matching over issue messages. The classification is deliberately loose:
// "Missing/empty title" counts as a technical issue because it contains
// "missing", not because of a structured taxonomy. Changing this to tagged
// issue kinds would change the observable category counts.
func complianceFromResults(results []models.ValidationResult) models.ComplianceReport {
	if len(results) == 0 {
		return models.ComplianceReport{
			StoplistCompliance:  100,
			ContentCompliance:   100,
			CulturalCompliance:  100,
			TechnicalCompliance: 100,
		}
	}

	stoplistClean := 0
	contentClean := 0
	culturalClean := 0
	technicalClean := 0

	for _, r := range results {
		hasStoplist := false
		hasContent := false
		hasCultural := false
		hasTechnical := false

		for _, issue := range r.Issues {
			lower := strings.ToLower(issue)
			if strings.Contains(lower, "stoplist") {
				hasStoplist = true
			}
			if strings.Contains(lower, "quality score") || strings.Contains(lower, "content") {
				hasContent = true
			}
			if strings.Contains(lower, "devanagari") || strings.Contains(lower, "hindi") {
				hasCultural = true
			}
			if strings.Contains(lower, "missing") || strings.Contains(lower, "invalid") {
				hasTechnical = true
			}
		}

		if !hasStoplist {
			stoplistClean++
		}
		if !hasContent {
			contentClean++
		}
		if !hasCultural {
			culturalClean++
		}
		if !hasTechnical {
			technicalClean++
		}
	}

	total := float64(len(results))
	pct := func(n int) float64 { return float64(n) / total * 100 }

	return models.ComplianceReport{
		StoplistCompliance:  pct(stoplistClean),
		ContentCompliance:   pct(contentClean),
		CulturalCompliance:  pct(culturalClean),
		TechnicalCompliance: pct(technicalClean),
	}
}
