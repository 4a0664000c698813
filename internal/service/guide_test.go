package service

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgpuguide/internal/content"
)

func newTestService(t *testing.T, files map[string]string) GuideService {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	store := content.NewStore(fsys, nil)
	require.NoError(t, store.Load(context.Background()))
	return NewGuideService(store)
}

func guideFixture(t *testing.T) GuideService {
	return newTestService(t, map[string]string{
		"intro.md": "---\ntitle: Introduction\nslug: introduction\nweight: 1\n---\n\n# Introduction\n\nwelcome\n",
		"init.md":  "---\ntitle: Initialization\nslug: initialization\nweight: 2\n---\n\n# Initialization\n\ninstances\n",
	})
}

func TestGuideServiceChapters(t *testing.T) {
	svc := guideFixture(t)

	chapters, err := svc.Chapters(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "introduction", chapters[0].Slug)
	assert.Equal(t, "Initialization", chapters[1].Title)
}

func TestGuideServicePage(t *testing.T) {
	svc := guideFixture(t)

	t.Run("success", func(t *testing.T) {
		page, err := svc.Page(context.Background(), "initialization")
		require.NoError(t, err)

		assert.Equal(t, "initialization", page.Slug)
		assert.Equal(t, "Initialization", page.Title)
		assert.Contains(t, string(page.Body), "instances")
		require.NotNil(t, page.Prev)
		assert.Equal(t, "introduction", page.Prev.Slug)
		assert.Nil(t, page.Next)
	})

	t.Run("empty slug", func(t *testing.T) {
		_, err := svc.Page(context.Background(), "")
		assert.ErrorIs(t, err, ErrSlugRequired)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := svc.Page(context.Background(), "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGuideServiceFirstSlug(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := guideFixture(t)

		slug, err := svc.FirstSlug(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "introduction", slug)
	})

	t.Run("no chapters", func(t *testing.T) {
		svc := newTestService(t, nil)

		_, err := svc.FirstSlug(context.Background())
		assert.ErrorIs(t, err, ErrNoChapters)
	})
}
