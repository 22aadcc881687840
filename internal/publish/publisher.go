package publish

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"contentsmith/internal/article"
	"contentsmith/internal/model"
)

// Publisher persists accepted documents and the two auxiliary indexes.
// The three writes are independent; there is no transaction across them.
// A run that dies between writes leaves a recoverable inconsistency: the
// next run simply treats the slug as new until the log catches up.
type Publisher struct {
	OutputDir       string
	SlugLogFile     string
	AttributionFile string
}

// Publish writes the document as <output_dir>/<slug>.md. An existing file
// is backed up to <slug>.md.bak before the in-place rewrite.
func (p *Publisher) Publish(doc model.ArticleDocument) (string, error) {
	content, err := article.Render(doc)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(p.OutputDir, doc.Slug+".md")
	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", prev, 0o644); err != nil {
			return "", fmt.Errorf("publish: backup %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("publish: write %s: %w", path, err)
	}
	slog.Info("publish: wrote article", "slug", doc.Slug, "path", path, "provider", doc.Provider)
	return path, nil
}

// LoadSlugLog reads the generated-slug log. Missing file is an empty log.
func (p *Publisher) LoadSlugLog() ([]string, error) {
	b, err := os.ReadFile(p.SlugLogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var slugs []string
	if err := json.Unmarshal(b, &slugs); err != nil {
		return nil, fmt.Errorf("publish: parse slug log: %w", err)
	}
	return slugs, nil
}

// AppendSlug adds a slug to the log, deduplicating, and rewrites the file.
func (p *Publisher) AppendSlug(slug string) error {
	slugs, err := p.LoadSlugLog()
	if err != nil {
		return err
	}
	for _, s := range slugs {
		if s == slug {
			return nil
		}
	}
	slugs = append(slugs, slug)
	sort.Strings(slugs)
	return writeJSON(p.SlugLogFile, slugs)
}

// RecordAttribution stores (overwrites) the attribution entry for a slug.
func (p *Publisher) RecordAttribution(slug string, attr model.Attribution) error {
	m := map[string]model.Attribution{}
	if b, err := os.ReadFile(p.AttributionFile); err == nil {
		if err := json.Unmarshal(b, &m); err != nil {
			return fmt.Errorf("publish: parse attribution map: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	m[slug] = attr
	return writeJSON(p.AttributionFile, m)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
