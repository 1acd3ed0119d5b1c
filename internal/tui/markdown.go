package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. Building one per frame is
	// slow, and WithAutoStyle can block on terminal queries, so styles are
	// always explicit.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md for the terminal, wrapped to width, with no
// document margin. Render failures fall back to the raw text.
func renderMarkdown(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	key := style + ":" + strconv.Itoa(width)
	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(style)),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// markdownStyleConfig copies a built-in glamour style by name ("dark" when
// unknown) and trims its outer margin.
func markdownStyleConfig(name string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if named, ok := styles.DefaultStyles[strings.ToLower(strings.TrimSpace(name))]; ok && named != nil {
		cfg = *named
	}
	zero := uint(0)
	cfg.Document.Margin = &zero
	return cfg
}
