package service

import (
	"context"
	"errors"
	"html/template"

	"wgpuguide/internal/content"
)

var (
	ErrSlugRequired = errors.New("slug is required")
	ErrNotFound     = errors.New("chapter not found")
	ErrNoChapters   = errors.New("no chapters loaded")
)

// PageView is the service-level DTO handed to templates: rendered body plus
// everything the guide layout needs for navigation.
type PageView struct {
	Slug    string
	Title   string
	Summary string
	Body    template.HTML
	Prev    *content.ChapterRef
	Next    *content.ChapterRef
}

// GuideService defines the use cases for serving the guide.
type GuideService interface {
	// Chapters returns the ordered table of contents.
	Chapters(ctx context.Context) ([]content.ChapterRef, error)

	// Page returns a fully rendered chapter by slug.
	Page(ctx context.Context, slug string) (*PageView, error)

	// FirstSlug returns the slug of the first chapter, where /guide
	// redirects to.
	FirstSlug(ctx context.Context) (string, error)
}

// guideService is a concrete implementation of GuideService backed by a
// content.Store.
type guideService struct {
	store *content.Store
}

// NewGuideService constructs a new GuideService.
func NewGuideService(store *content.Store) GuideService {
	return &guideService{store: store}
}

func (s *guideService) Chapters(_ context.Context) ([]content.ChapterRef, error) {
	return s.store.Chapters(), nil
}

func (s *guideService) Page(_ context.Context, slug string) (*PageView, error) {
	if slug == "" {
		return nil, ErrSlugRequired
	}

	page, ok := s.store.Page(slug)
	if !ok {
		return nil, ErrNotFound
	}

	body, err := s.store.HTML(slug)
	if err != nil {
		return nil, err
	}

	return &PageView{
		Slug:    page.Slug,
		Title:   page.Title,
		Summary: page.Summary,
		Body:    template.HTML(body),
		Prev:    page.Prev,
		Next:    page.Next,
	}, nil
}

func (s *guideService) FirstSlug(_ context.Context) (string, error) {
	first, ok := s.store.First()
	if !ok {
		return "", ErrNoChapters
	}
	return first.Slug, nil
}
