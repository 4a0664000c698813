package content

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Page is a single guide chapter: frontmatter metadata plus the markdown
// body. Rendered HTML is kept out of the model so the store can cache it
// separately.
type Page struct {
	// Slug is the URL path segment under /guide.
	Slug string
	// Title is shown in the chapter list and the page header.
	Title string
	// Weight orders chapters in the navigation chain. Lower comes first.
	Weight int
	// Summary is an optional one-line description used on the home page.
	Summary string
	// Draft pages are skipped when loading.
	Draft bool
	// Markdown is the body with frontmatter delimiters stripped.
	Markdown []byte
	// LastModified mirrors the source file's mtime.
	LastModified time.Time

	// Prev and Next are filled in by the store once all chapters are loaded.
	Prev *ChapterRef
	Next *ChapterRef
}

// ChapterRef is a lightweight reference to a chapter, used for navigation
// links and the table of contents.
type ChapterRef struct {
	Slug  string
	Title string
}

type frontMatterEnvelope struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Summary string `yaml:"summary"`
	Weight  int    `yaml:"weight"`
	Draft   bool   `yaml:"draft"`
}

// ParsePage extracts metadata and markdown body from the provided source
// bytes. The file name (without extension) is the fallback slug; the first
// H1 heading is the fallback title.
func ParsePage(name string, source []byte, modified time.Time) (*Page, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", name, err)
	}

	slug := meta.Slug
	if slug == "" {
		slug = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}

	title := meta.Title
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = slug
	}

	return &Page{
		Slug:         slug,
		Title:        title,
		Weight:       meta.Weight,
		Summary:      meta.Summary,
		Draft:        meta.Draft,
		Markdown:     body,
		LastModified: modified,
	}, nil
}

// firstHeading returns the text of the first level-1 ATX heading, or "".
func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}
