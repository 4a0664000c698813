package content

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// Store loads every markdown chapter under a filesystem root and serves
// parsed pages plus their rendered HTML. Rendered output is memoized per
// slug until the next Load, matching the site's original behavior of
// rendering each chapter at most once per content revision.
type Store struct {
	fsys     fs.FS
	renderer *Renderer

	mu    sync.RWMutex
	pages map[string]*Page
	order []string
	html  map[string]string
}

// NewStore constructs a Store over the given filesystem. Call Load before
// serving requests.
func NewStore(fsys fs.FS, renderer *Renderer) *Store {
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Store{
		fsys:     fsys,
		renderer: renderer,
		pages:    map[string]*Page{},
		html:     map[string]string{},
	}
}

// Load discovers every *.md file under the store root, parses frontmatter,
// sorts chapters by weight (slug as tiebreaker), and links the prev/next
// navigation chain. It replaces the previous content snapshot atomically
// and drops the render cache.
func (s *Store) Load(ctx context.Context) error {
	pages := map[string]*Page{}

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}

		data, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		page, err := ParsePage(p, data, info.ModTime())
		if err != nil {
			return err
		}
		if page.Draft {
			return nil
		}
		if prev, ok := pages[page.Slug]; ok {
			return fmt.Errorf("duplicate slug %q (%s)", page.Slug, prev.Title)
		}
		pages[page.Slug] = page
		return nil
	})
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	order := make([]string, 0, len(pages))
	for slug := range pages {
		order = append(order, slug)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := pages[order[i]], pages[order[j]]
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		return a.Slug < b.Slug
	})

	// Link the navigation chain.
	for i, slug := range order {
		page := pages[slug]
		if i > 0 {
			prev := pages[order[i-1]]
			page.Prev = &ChapterRef{Slug: prev.Slug, Title: prev.Title}
		}
		if i < len(order)-1 {
			next := pages[order[i+1]]
			page.Next = &ChapterRef{Slug: next.Slug, Title: next.Title}
		}
	}

	s.mu.Lock()
	s.pages = pages
	s.order = order
	s.html = map[string]string{}
	s.mu.Unlock()

	return nil
}

// Page returns the parsed chapter for a slug.
func (s *Store) Page(slug string) (*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[slug]
	return page, ok
}

// Chapters returns the ordered chapter list.
func (s *Store) Chapters() []ChapterRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]ChapterRef, 0, len(s.order))
	for _, slug := range s.order {
		page := s.pages[slug]
		refs = append(refs, ChapterRef{Slug: page.Slug, Title: page.Title})
	}
	return refs
}

// First returns the first chapter in navigation order.
func (s *Store) First() (ChapterRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return ChapterRef{}, false
	}
	page := s.pages[s.order[0]]
	return ChapterRef{Slug: page.Slug, Title: page.Title}, true
}

// HTML returns the rendered body for a slug, rendering and memoizing on
// first access.
func (s *Store) HTML(slug string) (string, error) {
	s.mu.RLock()
	cached, ok := s.html[slug]
	page, found := s.pages[slug]
	s.mu.RUnlock()

	if ok {
		return cached, nil
	}
	if !found {
		return "", fmt.Errorf("unknown chapter %q", slug)
	}

	out, err := s.renderer.Render(page.Markdown)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	// Another goroutine may have rendered the same slug meanwhile; last
	// write wins, the output is identical.
	s.html[slug] = string(out)
	s.mu.Unlock()

	return string(out), nil
}

// Len reports the number of loaded chapters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
