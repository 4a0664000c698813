// Package linkcheck verifies internal link integrity across the rendered
// guide: every /guide/<slug> reference must resolve to a chapter, every
// anchor to a heading ID, and every /static path to a file on disk.
package linkcheck

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"wgpuguide/internal/content"
)

// Issue describes one broken link.
type Issue struct {
	// Slug of the chapter containing the link.
	Slug string
	// Href as written in the content.
	Href string
	// Reason the link failed verification.
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Slug, i.Href, i.Reason)
}

// Checker renders every chapter and walks the resulting HTML. External
// http(s) and mailto links are not fetched; the checker is offline by
// design.
type Checker struct {
	store    *content.Store
	staticFS fs.FS
	// Concurrency bounds the number of chapters rendered in parallel.
	Concurrency int
}

// New constructs a Checker. staticFS may be nil when the site has no
// static directory; /static links are then reported as broken.
func New(store *content.Store, staticFS fs.FS) *Checker {
	return &Checker{store: store, staticFS: staticFS, Concurrency: 8}
}

type pageLinks struct {
	slug    string
	hrefs   []string
	anchors map[string]struct{}
}

// Run renders all chapters concurrently, then validates every collected
// link against the chapter set, heading anchors, and static files.
func (c *Checker) Run(ctx context.Context) ([]Issue, error) {
	chapters := c.store.Chapters()

	extracted := make([]*pageLinks, len(chapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	for i, ch := range chapters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rendered, err := c.store.HTML(ch.Slug)
			if err != nil {
				return fmt.Errorf("render %s: %w", ch.Slug, err)
			}
			links, err := extractLinks(ch.Slug, rendered)
			if err != nil {
				return fmt.Errorf("parse %s: %w", ch.Slug, err)
			}
			extracted[i] = links
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Anchor sets per slug for cross-page fragment checks.
	anchors := make(map[string]map[string]struct{}, len(extracted))
	for _, pl := range extracted {
		anchors[pl.slug] = pl.anchors
	}

	var issues []Issue
	for _, pl := range extracted {
		for _, href := range pl.hrefs {
			if reason := c.validate(pl.slug, href, anchors); reason != "" {
				issues = append(issues, Issue{Slug: pl.slug, Href: href, Reason: reason})
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Slug != issues[j].Slug {
			return issues[i].Slug < issues[j].Slug
		}
		return issues[i].Href < issues[j].Href
	})
	return issues, nil
}

// validate returns a non-empty reason when href does not resolve.
func (c *Checker) validate(slug, href string, anchors map[string]map[string]struct{}) string {
	switch {
	case href == "":
		return "empty href"
	case strings.HasPrefix(href, "http://"),
		strings.HasPrefix(href, "https://"),
		strings.HasPrefix(href, "mailto:"):
		return "" // external, not checked offline
	case strings.HasPrefix(href, "#"):
		if _, ok := anchors[slug][strings.TrimPrefix(href, "#")]; !ok {
			return "missing anchor"
		}
		return ""
	case href == "/" || href == "/guide" || href == "/donate":
		return ""
	case strings.HasPrefix(href, "/guide/"):
		target, frag, _ := strings.Cut(strings.TrimPrefix(href, "/guide/"), "#")
		pageAnchors, ok := anchors[target]
		if !ok {
			return "unknown chapter"
		}
		if frag != "" {
			if _, ok := pageAnchors[frag]; !ok {
				return "missing anchor"
			}
		}
		return ""
	case strings.HasPrefix(href, "/static/"):
		if c.staticFS == nil {
			return "no static directory"
		}
		name := strings.TrimPrefix(href, "/static/")
		if _, err := fs.Stat(c.staticFS, name); err != nil {
			return "missing static file"
		}
		return ""
	default:
		return "unresolvable link"
	}
}

// extractLinks parses rendered HTML and collects a[href], img[src], and
// every id attribute (goldmark assigns IDs to headings).
func extractLinks(slug, rendered string) (*pageLinks, error) {
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, err
	}

	pl := &pageLinks{slug: slug, anchors: map[string]struct{}{}}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch {
				case attr.Key == "id":
					pl.anchors[attr.Val] = struct{}{}
				case attr.Key == "href" && n.Data == "a":
					pl.hrefs = append(pl.hrefs, attr.Val)
				case attr.Key == "src" && n.Data == "img":
					pl.hrefs = append(pl.hrefs, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return pl, nil
}
