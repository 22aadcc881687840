package kb

import (
	"strconv"
	"strings"
	"time"
)

// ExpandVars performs simple placeholder substitutions for template strings
// used in knowledge-base text fields (e.g., topic titles).
//
// Supported variables:
// - {.CurrentYear} => four-digit year (UTC)
// - {.CurrentDate} => formatted as YYYY-MM-DD (UTC)
func ExpandVars(s string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	out := strings.ReplaceAll(s, "{.CurrentYear}", strconv.Itoa(now.UTC().Year()))
	out = strings.ReplaceAll(out, "{.CurrentDate}", now.UTC().Format("2006-01-02"))
	return out
}
