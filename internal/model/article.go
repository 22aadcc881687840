package model

import "time"

// Category classifies an article by its editorial shape. Each category has
// its own required section headings and body template.
type Category string

const (
	CategoryTutorial      Category = "Tutorial"
	CategoryGuide         Category = "Guide"
	CategoryComparison    Category = "Comparison"
	CategoryBestPractices Category = "Best Practices"
	CategoryNews          Category = "News"
	CategoryAdvanced      Category = "Advanced"
)

// Categories lists every valid category value.
func Categories() []Category {
	return []Category{
		CategoryTutorial,
		CategoryGuide,
		CategoryComparison,
		CategoryBestPractices,
		CategoryNews,
		CategoryAdvanced,
	}
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// ArticleIdea is a ranked topic turned into a concrete writing assignment.
// Ideas are consumed once by the synthesizer and never persisted; only the
// resulting document and its slug survive a run.
type ArticleIdea struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Category    Category        `json:"category"`
	Keywords    []string        `json:"keywords"`
	Angle       string          `json:"angle"`
	SourceItems []CollectedItem `json:"source_items,omitempty"`
}

// Frontmatter is the typed metadata block at the top of every article file.
type Frontmatter struct {
	Title           string    `yaml:"title"`
	Description     string    `yaml:"description"`
	PubDate         time.Time `yaml:"pubDate"`
	ModifiedDate    time.Time `yaml:"modifiedDate"`
	Category        Category  `yaml:"category"`
	Tags            []string  `yaml:"tags"`
	Keywords        []string  `yaml:"keywords"`
	ReadingTime     int       `yaml:"readingTime"`
	Featured        bool      `yaml:"featured"`
	Author          string    `yaml:"author"`
	Image           string    `yaml:"image"`
	ImageAlt        string    `yaml:"imageAlt"`
	ArticleType     string    `yaml:"articleType"`
	Difficulty      string    `yaml:"difficulty"`
	Sources         []string  `yaml:"sources,omitempty"`
	RelatedArticles []string  `yaml:"relatedArticles,omitempty"`
}

// ArticleDocument is the unit of publication: frontmatter plus a markdown
// body using the category's section-heading vocabulary.
type ArticleDocument struct {
	Slug        string
	Frontmatter Frontmatter
	Body        string
	Provider    string // which generation provider produced the body
}
