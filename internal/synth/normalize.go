package synth

import "strings"

// StripOuterFence removes a code fence the generator may have wrapped
// around the whole document (```markdown ... ```). Inner fences are left
// alone.
func StripOuterFence(doc string) string {
	s := strings.TrimSpace(doc)
	if !strings.HasPrefix(s, "```") {
		return doc
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return doc
	}
	inner := strings.Join(lines[1:len(lines)-1], "\n")
	// Only treat it as a wrapper when the fenced content is the document
	// itself, i.e. it starts with frontmatter or a heading.
	t := strings.TrimSpace(inner)
	if strings.HasPrefix(t, "---") || strings.HasPrefix(t, "#") {
		return inner
	}
	return doc
}

// EnsureFrontmatter splices the fallback frontmatter block in front of the
// body when the generated document lacks one, rather than discarding the
// generated body.
func EnsureFrontmatter(doc, fallbackFM string) string {
	if strings.HasPrefix(strings.TrimSpace(doc), "---") {
		return doc
	}
	fm := strings.TrimSpace(fallbackFM)
	if !strings.HasPrefix(fm, "---") {
		fm = "---\n" + fm + "\n---"
	}
	return fm + "\n\n" + strings.TrimLeft(doc, "\n")
}
