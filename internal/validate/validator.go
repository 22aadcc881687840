package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"contentsmith/internal/article"
	"contentsmith/internal/kb"
	"contentsmith/internal/model"
)

// Dimension weights for the overall score.
const (
	weightAccuracy     = 0.30
	weightCompleteness = 0.20
	weightClarity      = 0.20
	weightValue        = 0.20
	weightSafety       = 0.10

	passThreshold = 7.0
)

// Validator scores article bodies against the fixed heuristic rubric. It is
// pure and deterministic: the same body always yields the same scores and
// issue list.
type Validator struct {
	base kb.Base
}

func New(base kb.Base) *Validator {
	return &Validator{base: base}
}

// Validate scores a frontmatter-stripped body for the given category.
func (v *Validator) Validate(body string, category model.Category) model.ValidationResult {
	var issues []model.Issue
	add := func(sev model.Severity, dim, msg string) {
		issues = append(issues, model.Issue{Severity: sev, Dimension: dim, Message: msg})
	}

	scores := model.DimensionScores{
		Accuracy:     v.scoreAccuracy(body, add),
		Completeness: v.scoreCompleteness(body, category, add),
		Clarity:      v.scoreClarity(body, add),
		Value:        v.scoreValue(body, add),
		Safety:       v.scoreSafety(body, add),
	}
	overall := scores.Accuracy*weightAccuracy +
		scores.Completeness*weightCompleteness +
		scores.Clarity*weightClarity +
		scores.Value*weightValue +
		scores.Safety*weightSafety
	overall = math.Round(overall*100) / 100

	res := model.ValidationResult{
		Scores:  scores,
		Overall: overall,
		Issues:  issues,
	}
	// A single critical issue is an absolute gate, independent of score.
	res.Passed = overall >= passThreshold && res.CriticalCount() == 0
	return res
}

func clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

type addFunc func(sev model.Severity, dim, msg string)

// --- accuracy ---

var hallucinationPhrases = []string{
	"i don't have access",
	"i do not have access",
	"as an ai",
	"i cannot browse",
	"knowledge cutoff",
	"[insert",
	"[placeholder",
	"lorem ipsum",
	"tbd:",
}

var (
	versionRe  = regexp.MustCompile(`\bv?\d+\.\d+(\.\d+)?\b`)
	extLinkRe  = regexp.MustCompile(`\[[^\]]+\]\(https?://[^)]+\)`)
	fenceRe    = regexp.MustCompile("(?s)```[a-z]*\n(.*?)```")
	sentenceRe = regexp.MustCompile(`[.!?](\s|$)`)
)

func (v *Validator) scoreAccuracy(body string, add addFunc) float64 {
	score := 10.0
	lower := strings.ToLower(body)

	for _, p := range hallucinationPhrases {
		if strings.Contains(lower, p) {
			score -= 3
			add(model.SeverityCritical, "accuracy", fmt.Sprintf("hallucination indicator present: %q", p))
		}
	}

	// Unverified product sub-commands inside code blocks.
	brand := strings.ToLower(v.base.Product.Name)
	cmdRe := regexp.MustCompile(`(?m)^\s*(` + regexp.QuoteMeta(brand) + `\s+\S+.*)$`)
	flagged := map[string]struct{}{}
	for _, block := range fenceRe.FindAllStringSubmatch(body, -1) {
		for _, m := range cmdRe.FindAllStringSubmatch(block[1], -1) {
			cmd := strings.TrimSpace(m[1])
			if v.base.CommandAllowed(cmd) {
				continue
			}
			if _, dup := flagged[cmd]; dup {
				continue
			}
			flagged[cmd] = struct{}{}
			score -= 2
			add(model.SeverityCritical, "accuracy", fmt.Sprintf("unverified command in code block: %q", cmd))
		}
	}

	if versionRe.MatchString(body) {
		score += 0.5
	}
	if extLinkRe.MatchString(body) {
		score += 0.5
	}
	return clamp(score)
}

// --- completeness ---

const (
	wordCountCritical = 800
	wordCountSoft     = 1200
)

func (v *Validator) scoreCompleteness(body string, category model.Category, add addFunc) float64 {
	score := 10.0

	if category == model.CategoryTutorial {
		if !strings.Contains(body, "## Prerequisites") && !strings.Contains(body, "## What You'll") {
			score -= 2
			add(model.SeverityWarning, "completeness", "Tutorial missing Prerequisites section")
		}
		if !strings.Contains(body, "## Step") {
			score -= 2
			add(model.SeverityWarning, "completeness", "Tutorial missing numbered steps")
		}
	}
	for _, sec := range v.base.SectionsFor(category) {
		sec = strings.TrimSpace(sec)
		if category == model.CategoryTutorial && (sec == "Prerequisites" || strings.HasPrefix(sec, "Step")) {
			continue // already checked above with the friendlier messages
		}
		if !strings.Contains(body, "## "+sec) {
			score -= 2
			add(model.SeverityWarning, "completeness", fmt.Sprintf("%s missing required section %q", category, sec))
		}
	}

	howTo := category == model.CategoryTutorial || category == model.CategoryGuide || category == model.CategoryAdvanced
	if howTo && !strings.Contains(body, "```") {
		score -= 2
		add(model.SeverityWarning, "completeness", "how-to content has no code blocks")
	}

	words := article.WordCount(body)
	if words < wordCountCritical {
		score -= 3
		add(model.SeverityCritical, "completeness", fmt.Sprintf("body too short: %d words (minimum %d)", words, wordCountCritical))
	} else if words < wordCountSoft {
		score -= 1
		add(model.SeverityInfo, "completeness", fmt.Sprintf("body under target length: %d words (target %d)", words, wordCountSoft))
	}
	return clamp(score)
}

// --- clarity ---

// jargonAcronyms are flagged when used without any expansion in the text.
var jargonAcronyms = []string{"CDC", "ETL", "WAL", "DDL", "OLAP", "OLTP"}

func (v *Validator) scoreClarity(body string, add addFunc) float64 {
	score := 10.0

	topLevel := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			topLevel++
		}
	}
	if topLevel > 1 {
		score -= 1
		add(model.SeverityWarning, "clarity", fmt.Sprintf("multiple top-level headings (%d)", topLevel))
	}

	if !strings.Contains(body, "\n- ") && !regexp.MustCompile(`(?m)^\d+\. `).MatchString(body) {
		score -= 1
		add(model.SeverityWarning, "clarity", "no list formatting")
	}

	if n := longSentences(body); n > 5 {
		score -= 2
		add(model.SeverityWarning, "clarity", fmt.Sprintf("%d sentences over 30 words", n))
	}

	var unexplained []string
	for _, a := range jargonAcronyms {
		if regexp.MustCompile(`\b` + a + `\b`).MatchString(body) &&
			!strings.Contains(body, a+" (") && !strings.Contains(body, "("+a+")") {
			unexplained = append(unexplained, a)
		}
	}
	if len(unexplained) > 0 {
		score -= 1
		add(model.SeverityInfo, "clarity", "unexplained acronyms: "+strings.Join(unexplained, ", "))
	}
	return clamp(score)
}

// longSentences counts prose sentences longer than 30 words, skipping code
// blocks and table rows.
func longSentences(body string) int {
	// drop fenced code so command lines don't count as sentences
	stripped := fenceRe.ReplaceAllString(body, "")
	count := 0
	for _, s := range sentenceRe.Split(stripped, -1) {
		s = strings.TrimSpace(s)
		if s == "" || strings.HasPrefix(s, "|") {
			continue
		}
		if len(strings.Fields(s)) > 30 {
			count++
		}
	}
	return count
}

// --- value ---

var imperativeWords = []string{"run ", "install ", "create ", "configure ", "add ", "set ", "edit ", "check ", "review ", "use "}

func (v *Validator) scoreValue(body string, add addFunc) float64 {
	score := 10.0
	lower := strings.ToLower(body)

	actionable := false
	for _, w := range imperativeWords {
		if strings.Contains(lower, w) {
			actionable = true
			break
		}
	}
	if !actionable {
		score -= 2
		add(model.SeverityWarning, "value", "no actionable imperative language")
	}

	if !strings.Contains(body, "```") && !strings.Contains(lower, "for example") {
		score -= 2
		add(model.SeverityWarning, "value", "no examples")
	}

	if !strings.Contains(body, "![") && !strings.Contains(body, "|---") && !strings.Contains(body, "| ---") {
		score -= 1
		add(model.SeverityInfo, "value", "no visual content markers (image or table)")
	}

	if strings.Contains(body, "> **Tip:**") || strings.Contains(body, "> **Warning:**") {
		score += 1
	}
	return clamp(score)
}

// --- safety ---

var destructivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+-[a-zA-Z]*r[a-zA-Z]*f[a-zA-Z]*\s+/(\s|$|")`),
	regexp.MustCompile(`dd\s+.*of=/dev/`),
	regexp.MustCompile(`mkfs(\.\w+)?\s+/dev/`),
	regexp.MustCompile(`(?i)drop\s+database`),
}

var cautionWords = []string{"warning", "caution", "careful", "danger", "irreversible"}

var credentialWords = []string{"password", "api key", "api_key", "secret key", "access token", "credentials"}

var credentialCautions = []string{"never commit", "environment variable", "env var", "keep it secret", "do not share", "rotate"}

func (v *Validator) scoreSafety(body string, add addFunc) float64 {
	score := 10.0
	lower := strings.ToLower(body)

	cautioned := false
	for _, w := range cautionWords {
		if strings.Contains(lower, w) {
			cautioned = true
			break
		}
	}
	for _, re := range destructivePatterns {
		if re.MatchString(body) {
			if cautioned {
				continue
			}
			score -= 5
			add(model.SeverityCritical, "safety", "destructive command shown without a warning: "+re.String())
		}
	}

	mentionsCreds := false
	for _, w := range credentialWords {
		if strings.Contains(lower, w) {
			mentionsCreds = true
			break
		}
	}
	if mentionsCreds {
		guarded := false
		for _, c := range credentialCautions {
			if strings.Contains(lower, c) {
				guarded = true
				break
			}
		}
		if !guarded {
			score -= 2
			add(model.SeverityWarning, "safety", "credential-adjacent content lacks a caution phrase")
		}
	}
	return clamp(score)
}
