package model

// Severity tags a validation issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is a single finding from the quality validator.
type Issue struct {
	Severity  Severity `json:"severity"`
	Dimension string   `json:"dimension"`
	Message   string   `json:"message"`
}

// DimensionScores holds the five 0-10 rubric scores.
type DimensionScores struct {
	Accuracy     float64 `json:"accuracy"`
	Completeness float64 `json:"completeness"`
	Clarity      float64 `json:"clarity"`
	Value        float64 `json:"value"`
	Safety       float64 `json:"safety"`
}

// ValidationResult is the validator verdict for one document. Passed is
// true only when Overall >= 7.0 and no issue is critical; a single critical
// issue fails the document regardless of score.
type ValidationResult struct {
	Scores  DimensionScores `json:"scores"`
	Overall float64         `json:"overall"`
	Issues  []Issue         `json:"issues"`
	Passed  bool            `json:"passed"`
}

// CriticalCount returns the number of critical issues.
func (r ValidationResult) CriticalCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// Attribution records where an article's illustration came from. Keyed by
// slug in the attribution map, overwritten on each new pick.
type Attribution struct {
	Source    string `json:"source"`
	Seed      string `json:"seed"`
	Query     string `json:"query"`
	FetchedAt string `json:"fetched_at"`
}
