package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentsmith/internal/article"
	"contentsmith/internal/kb"
	"contentsmith/internal/model"

	"gopkg.in/yaml.v3"
)

// Synthesizer turns ideas into documents by trying an ordered provider
// chain. It is built once per pipeline run: a provider that fails is
// disabled for the remainder of that run, so later ideas skip straight to
// the surviving providers.
type Synthesizer struct {
	providers []Provider // generative first; offline template is appended per idea
	base      kb.Base
	minWords  int
	delay     time.Duration // fixed pause before each generative call
	now       func() time.Time

	disabled map[string]bool
	slept    bool
}

func New(providers []Provider, base kb.Base, minWords int, delay time.Duration, now func() time.Time) *Synthesizer {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Synthesizer{
		providers: providers,
		base:      base,
		minWords:  minWords,
		delay:     delay,
		now:       now,
		disabled:  map[string]bool{},
	}
}

// Synthesize produces a document for one idea. The offline template is the
// terminal member of the chain and never fails, so the only error paths
// are context cancellation and the (unreachable in practice) render error.
func (s *Synthesizer) Synthesize(ctx context.Context, idea model.ArticleIdea) (model.ArticleDocument, error) {
	offline := NewOfflineTemplate(idea, s.base, s.minWords, s.now())
	fallbackFM, err := marshalFrontmatter(offline.Frontmatter(""))
	if err != nil {
		return model.ArticleDocument{}, err
	}
	prompt := BuildPrompt(idea, s.base, fallbackFM, s.minWords)

	chain := append(append([]Provider{}, s.providers...), offline)
	for _, p := range chain {
		if s.disabled[p.Name()] {
			continue
		}
		if _, isOffline := p.(*OfflineTemplate); !isOffline {
			if err := s.pace(ctx); err != nil {
				return model.ArticleDocument{}, err
			}
		}
		raw, err := p.Generate(ctx, prompt)
		if err != nil {
			slog.Warn("synth: provider failed, falling back", "provider", p.Name(), "err", err)
			s.disabled[p.Name()] = true
			continue
		}
		doc, err := s.finish(idea, raw, fallbackFM, p.Name())
		if err != nil {
			slog.Warn("synth: provider output rejected, falling back", "provider", p.Name(), "err", err)
			continue
		}
		return doc, nil
	}
	// Unreachable: the offline template never returns an error and its
	// output always parses. Kept as a guard.
	return model.ArticleDocument{}, fmt.Errorf("synth: no provider produced a document for %s", idea.Slug)
}

// finish normalizes raw provider output and parses it into a typed document.
func (s *Synthesizer) finish(idea model.ArticleIdea, raw, fallbackFM, provider string) (model.ArticleDocument, error) {
	norm := StripOuterFence(raw)
	norm = EnsureFrontmatter(norm, fallbackFM)
	fmRaw, body := article.Split(norm)
	if strings.TrimSpace(fmRaw) == "" {
		return model.ArticleDocument{}, fmt.Errorf("no frontmatter after normalization")
	}
	fm, err := article.Parse(fmRaw)
	if err != nil {
		return model.ArticleDocument{}, err
	}
	// The spliced fallback block was estimated before a body existed, so
	// reading time is always recomputed from the body that actually ships.
	fm.ReadingTime = article.ReadingTime(body)
	return model.ArticleDocument{
		Slug:        idea.Slug,
		Frontmatter: fm,
		Body:        body,
		Provider:    provider,
	}, nil
}

// pace enforces the fixed inter-request delay toward generative APIs. The
// first call in a run goes out immediately.
func (s *Synthesizer) pace(ctx context.Context) error {
	if !s.slept || s.delay <= 0 {
		s.slept = true
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}

func marshalFrontmatter(fm model.Frontmatter) (string, error) {
	b, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	return "---\n" + string(b) + "---", nil
}
