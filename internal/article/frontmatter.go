package article

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"contentsmith/internal/model"

	"gopkg.in/yaml.v3"
)

// Frontmatter display constraints enforced on every accepted document.
const (
	MaxTitleLen       = 60
	MinDescriptionLen = 120
	MaxDescriptionLen = 160
)

// Split separates a markdown document into its raw frontmatter block and
// body. Frontmatter is expected at the top between two lines containing
// only "---". A document without frontmatter yields an empty first return.
func Split(doc string) (fm string, body string) {
	br := bufio.NewReader(strings.NewReader(doc))
	peek, err := br.Peek(3)
	if err != nil || string(peek) != "---" {
		return "", doc
	}
	// consume the opening '---' line
	if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return "", doc
	}
	var fmBuf strings.Builder
	for {
		l, err := br.ReadString('\n')
		if strings.TrimSpace(l) == "---" {
			break
		}
		fmBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			// no closing delimiter; treat the whole input as body
			return "", doc
		}
	}
	var bodyBuf strings.Builder
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if err != nil {
			break
		}
	}
	return fmBuf.String(), bodyBuf.String()
}

// Parse decodes and validates a raw frontmatter block.
func Parse(raw string) (model.Frontmatter, error) {
	var fm model.Frontmatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return fm, fmt.Errorf("frontmatter yaml: %w", err)
	}
	if err := Validate(fm); err != nil {
		return fm, err
	}
	return fm, nil
}

// ParseFile reads a markdown article file into a typed document.
func ParseFile(path string) (model.ArticleDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.ArticleDocument{}, err
	}
	raw, body := Split(string(b))
	if strings.TrimSpace(raw) == "" {
		return model.ArticleDocument{}, fmt.Errorf("article %s: missing frontmatter", path)
	}
	fm, err := Parse(raw)
	if err != nil {
		return model.ArticleDocument{}, fmt.Errorf("article %s: %w", path, err)
	}
	slug := strings.TrimSuffix(strings.TrimSuffix(pathBase(path), ".md"), ".mdx")
	return model.ArticleDocument{Slug: slug, Frontmatter: fm, Body: body}, nil
}

// Validate checks the fixed schema constraints. Documents violating any of
// them are rejected loudly rather than repaired silently.
func Validate(fm model.Frontmatter) error {
	if strings.TrimSpace(fm.Title) == "" {
		return errors.New("frontmatter: title required")
	}
	if len([]rune(fm.Title)) > MaxTitleLen {
		return fmt.Errorf("frontmatter: title exceeds %d chars (%d)", MaxTitleLen, len([]rune(fm.Title)))
	}
	if n := len([]rune(fm.Description)); n < MinDescriptionLen || n > MaxDescriptionLen {
		return fmt.Errorf("frontmatter: description length %d outside [%d, %d]", n, MinDescriptionLen, MaxDescriptionLen)
	}
	if !fm.Category.Valid() {
		return fmt.Errorf("frontmatter: unknown category %q", fm.Category)
	}
	if fm.PubDate.IsZero() {
		return errors.New("frontmatter: pubDate required")
	}
	if fm.ReadingTime <= 0 {
		return errors.New("frontmatter: readingTime must be positive")
	}
	if strings.TrimSpace(fm.Author) == "" {
		return errors.New("frontmatter: author required")
	}
	return nil
}

// Render serializes a document back to its on-disk form.
func Render(doc model.ArticleDocument) (string, error) {
	if err := Validate(doc.Frontmatter); err != nil {
		return "", err
	}
	b, err := yaml.Marshal(doc.Frontmatter)
	if err != nil {
		return "", fmt.Errorf("frontmatter yaml: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(b)
	sb.WriteString("---\n\n")
	sb.WriteString(strings.TrimLeft(doc.Body, "\n"))
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func pathBase(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
