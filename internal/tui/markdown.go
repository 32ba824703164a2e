package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zaidlab/folio/internal/theme"
)

// markdownCache memoizes rendered card descriptions; glamour renderers are costly to
// build and the overlay is redrawn every frame.
type markdownCache struct {
	renderers map[string]*glamour.TermRenderer
	rendered  map[string]string
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{
		renderers: make(map[string]*glamour.TermRenderer),
		rendered:  make(map[string]string),
	}
}

func (c *markdownCache) reset() {
	c.rendered = make(map[string]string)
}

// render returns source as styled terminal text wrapped to width. Rendering failures fall
// back to the plain source.
func (c *markdownCache) render(source string, width int, mode theme.Mode) string {
	key := fmt.Sprintf("%s/%d/%s", mode, width, source)
	if out, ok := c.rendered[key]; ok {
		return out
	}

	out := strings.TrimSpace(source)
	if r, err := c.renderer(width, mode); err == nil {
		if styled, err := r.Render(source); err == nil {
			out = strings.Trim(styled, "\n")
		}
	}
	c.rendered[key] = out
	return out
}

func (c *markdownCache) renderer(width int, mode theme.Mode) (*glamour.TermRenderer, error) {
	key := fmt.Sprintf("%s/%d", mode, width)
	if r, ok := c.renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(mode.String()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.renderers[key] = r
	return r, nil
}
