package collect

import (
	"strings"

	"contentsmith/internal/kb"
	"contentsmith/internal/model"
)

// Score computes a 0-100 relevance score for an item: each matched keyword
// from the weighted list contributes its fixed point value, high-value
// phrases from the bonus list contribute theirs, and the sum is clamped.
// Matching is case-insensitive over title and summary.
func Score(it model.CollectedItem, base kb.Base) int {
	text := strings.ToLower(it.Title + " " + it.Summary)
	score := 0
	for kw, pts := range base.Keywords.Weighted {
		if strings.Contains(text, strings.ToLower(kw)) {
			score += pts
		}
	}
	for phrase, pts := range base.Keywords.Bonus {
		if strings.Contains(text, strings.ToLower(phrase)) {
			score += pts
		}
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
