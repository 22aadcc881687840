package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"contentsmith/internal/collect"
	"contentsmith/internal/imagepick"
	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"
	"contentsmith/internal/publish"
	"contentsmith/internal/rank"
	"contentsmith/internal/synth"
	"contentsmith/internal/validate"

	"github.com/google/uuid"
)

// ErrValidationFailed is returned when at least one synthesized document
// was rejected with a critical issue. Callers map it to exit code 1.
var ErrValidationFailed = errors.New("pipeline: validation failed with critical issues")

// Pipeline wires the five stages into one synchronous batch run. All
// cross-run state lives in the flat-file stores; the Pipeline itself holds
// only configuration and collaborators.
type Pipeline struct {
	Collector *collect.Collector
	Store     *knowledge.Store
	Base      kb.Base
	Publisher *publish.Publisher
	Validator *validate.Validator
	Providers []synth.Provider // generative providers, in fallback order
	MaxIdeas  int
	MinWords  int
	Delay     time.Duration
	Strict    bool // below-threshold score blocks publication
	Now       func() time.Time
}

// Report summarizes one pipeline run.
type Report struct {
	RunID     string
	Collected collect.Result
	Topics    []model.TrendingTopic
	Ideas     []model.ArticleIdea
	Published []string
	Rejected  []Rejection
}

// Rejection records a document that was synthesized but not published.
type Rejection struct {
	Slug     string
	Critical bool
	Result   model.ValidationResult
}

// Run executes collect -> rank -> synthesize -> validate -> publish.
// Source failures degrade; store and output I/O failures abort.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	now := p.now()
	rep := Report{RunID: uuid.NewString()}
	slog.Info("pipeline: run starting", "run_id", rep.RunID)

	cres, err := p.Collector.Run(ctx)
	if err != nil {
		return rep, fmt.Errorf("pipeline: collect: %w", err)
	}
	rep.Collected = cres

	items, err := p.Store.Load()
	if err != nil {
		return rep, fmt.Errorf("pipeline: load knowledge: %w", err)
	}
	rep.Topics = rank.TrendingTopics(items)

	existing, err := p.existingSlugs()
	if err != nil {
		return rep, err
	}
	rep.Ideas = rank.Ideas(rep.Topics, p.Base, existing, p.MaxIdeas, now)
	if len(rep.Ideas) == 0 {
		slog.Info("pipeline: no new ideas this run", "run_id", rep.RunID, "topics", len(rep.Topics))
		return rep, nil
	}

	syn := synth.New(p.Providers, p.Base, p.MinWords, p.Delay, p.Now)
	criticalFailures := 0
	for _, idea := range rep.Ideas {
		doc, err := syn.Synthesize(ctx, idea)
		if err != nil {
			return rep, fmt.Errorf("pipeline: synthesize %s: %w", idea.Slug, err)
		}
		res := p.Validator.Validate(doc.Body, doc.Frontmatter.Category)
		logValidation(doc.Slug, res)

		if res.CriticalCount() > 0 {
			criticalFailures++
			rep.Rejected = append(rep.Rejected, Rejection{Slug: doc.Slug, Critical: true, Result: res})
			continue
		}
		if !res.Passed && p.Strict {
			rep.Rejected = append(rep.Rejected, Rejection{Slug: doc.Slug, Result: res})
			continue
		}

		if _, err := p.Publisher.Publish(doc); err != nil {
			return rep, err
		}
		if err := p.Publisher.AppendSlug(doc.Slug); err != nil {
			return rep, fmt.Errorf("pipeline: slug log: %w", err)
		}
		if err := p.Publisher.RecordAttribution(doc.Slug, imagepick.Pick(doc.Slug, now)); err != nil {
			return rep, fmt.Errorf("pipeline: attribution: %w", err)
		}
		rep.Published = append(rep.Published, doc.Slug)
	}

	slog.Info("pipeline: run complete", "run_id", rep.RunID,
		"ideas", len(rep.Ideas), "published", len(rep.Published), "rejected", len(rep.Rejected))
	if criticalFailures > 0 {
		return rep, ErrValidationFailed
	}
	return rep, nil
}

// existingSlugs is the union of the slug log and article files already in
// the output directory.
func (p *Pipeline) existingSlugs() (map[string]struct{}, error) {
	out := map[string]struct{}{}
	slugs, err := p.Publisher.LoadSlugLog()
	if err != nil {
		return nil, fmt.Errorf("pipeline: slug log: %w", err)
	}
	for _, s := range slugs {
		out[s] = struct{}{}
	}
	entries, err := os.ReadDir(p.Publisher.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".md") {
			out[strings.TrimSuffix(name, ".md")] = struct{}{}
		}
	}
	return out, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

func logValidation(slug string, res model.ValidationResult) {
	slog.Info("pipeline: validated document", "slug", slug,
		"overall", res.Overall, "passed", res.Passed,
		"critical", res.CriticalCount(), "issues", len(res.Issues))
	for _, is := range res.Issues {
		slog.Warn("pipeline: validation issue", "slug", slug,
			"severity", string(is.Severity), "dimension", is.Dimension, "msg", is.Message)
	}
}
