package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML using the goldmark engine. The engine
// is stateless so a single Renderer can be shared across requests without
// additional locking.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer constructs a renderer configured for the guide: GFM tables and
// strikethrough, autolinks, auto heading IDs (chapter pages cross-link to
// section anchors), and raw HTML passthrough since chapters embed inline
// HTML for figures.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts markdown source into HTML.
func (r *Renderer) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
