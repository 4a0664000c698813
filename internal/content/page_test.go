package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	now := time.Now()

	t.Run("full frontmatter", func(t *testing.T) {
		source := []byte(`---
title: Initialization
slug: initialization
summary: Creating an instance.
weight: 2
---

# Initialization

Body text.
`)
		page, err := ParsePage("initialization.md", source, now)
		require.NoError(t, err)

		assert.Equal(t, "initialization", page.Slug)
		assert.Equal(t, "Initialization", page.Title)
		assert.Equal(t, "Creating an instance.", page.Summary)
		assert.Equal(t, 2, page.Weight)
		assert.False(t, page.Draft)
		assert.Equal(t, now, page.LastModified)
		assert.Contains(t, string(page.Markdown), "Body text.")
		assert.NotContains(t, string(page.Markdown), "---")
	})

	t.Run("slug falls back to file name", func(t *testing.T) {
		source := []byte(`---
title: Buffers
weight: 4
---
body`)
		page, err := ParsePage("sub/buffer-creation.md", source, now)
		require.NoError(t, err)

		assert.Equal(t, "buffer-creation", page.Slug)
	})

	t.Run("title falls back to first heading", func(t *testing.T) {
		source := []byte(`---
weight: 1
---

intro text

# Real Title

more`)
		page, err := ParsePage("intro.md", source, now)
		require.NoError(t, err)

		assert.Equal(t, "Real Title", page.Title)
	})

	t.Run("title falls back to slug without heading", func(t *testing.T) {
		page, err := ParsePage("orphan.md", []byte("plain body, no frontmatter"), now)
		require.NoError(t, err)

		assert.Equal(t, "orphan", page.Slug)
		assert.Equal(t, "orphan", page.Title)
	})

	t.Run("draft flag", func(t *testing.T) {
		source := []byte(`---
title: WIP
draft: true
---
body`)
		page, err := ParsePage("wip.md", source, now)
		require.NoError(t, err)

		assert.True(t, page.Draft)
	})

	t.Run("malformed frontmatter", func(t *testing.T) {
		source := []byte("---\ntitle: [unclosed\n---\nbody")
		_, err := ParsePage("bad.md", source, now)

		assert.Error(t, err)
	})
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"simple", "# Hello\n\nbody", "Hello"},
		{"indented by spaces", "   # Spaced\n", "Spaced"},
		{"skips h2", "## Sub\n# Top\n", "Top"},
		{"none", "no headings here", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstHeading([]byte(tt.body)))
		})
	}
}
