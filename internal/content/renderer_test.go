package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	r := NewRenderer()

	t.Run("basic markdown", func(t *testing.T) {
		out, err := r.Render([]byte("# Title\n\nSome *emphasis* here."))
		require.NoError(t, err)

		html := string(out)
		assert.Contains(t, html, "<h1")
		assert.Contains(t, html, "<em>emphasis</em>")
	})

	t.Run("auto heading ids", func(t *testing.T) {
		out, err := r.Render([]byte("## Creating a window"))
		require.NoError(t, err)

		assert.Contains(t, string(out), `id="creating-a-window"`)
	})

	t.Run("gfm table", func(t *testing.T) {
		out, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))
		require.NoError(t, err)

		assert.Contains(t, string(out), "<table>")
	})

	t.Run("fenced code block", func(t *testing.T) {
		out, err := r.Render([]byte("```go\nfmt.Println(\"hi\")\n```"))
		require.NoError(t, err)

		html := string(out)
		assert.Contains(t, html, `<code class="language-go">`)
		assert.Contains(t, html, "fmt.Println")
	})

	t.Run("raw html passes through", func(t *testing.T) {
		out, err := r.Render([]byte(`<figure class="diagram">x</figure>`))
		require.NoError(t, err)

		assert.Contains(t, string(out), `<figure class="diagram">`)
	})

	t.Run("autolink", func(t *testing.T) {
		out, err := r.Render([]byte("see https://example.com for more"))
		require.NoError(t, err)

		assert.Contains(t, string(out), `<a href="https://example.com"`)
	})
}
