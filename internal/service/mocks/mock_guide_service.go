package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wgpuguide/internal/content"
	"wgpuguide/internal/service"
)

type MockGuideService struct {
	mock.Mock
}

func (m *MockGuideService) Chapters(ctx context.Context) ([]content.ChapterRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.ChapterRef), args.Error(1)
}

func (m *MockGuideService) Page(ctx context.Context, slug string) (*service.PageView, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PageView), args.Error(1)
}

func (m *MockGuideService) FirstSlug(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
