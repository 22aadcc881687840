package article

import (
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a title. Repeated separators
// collapse to a single hyphen.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WordCount counts whitespace-separated words in a body.
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// ReadingTime estimates minutes to read at 200 wpm, minimum 1.
func ReadingTime(body string) int {
	mins := WordCount(body) / 200
	if mins < 1 {
		mins = 1
	}
	return mins
}
