package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// maxCellWidth caps table columns so long descriptions don't wrap the terminal.
const maxCellWidth = 48

// Texter is implemented by payloads that have a human-readable rendering.
// Anything else falls back to indented JSON in text mode.
type Texter interface {
	Text(r *lipgloss.Renderer) string
}

// WriteText renders v for a terminal. Colors follow the writer's
// capabilities and NO_COLOR.
func WriteText(w io.Writer, v any) error {
	r := NewRenderer(w)
	var out string
	switch x := v.(type) {
	case Envelope:
		out = envelopeText(r, x)
	case *Envelope:
		out = envelopeText(r, *x)
	case Texter:
		out = x.Text(r)
	default:
		return WriteJSON(w, v, true)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(out, "\n"))
	return err
}

func NewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func envelopeText(r *lipgloss.Renderer, e Envelope) string {
	var b strings.Builder
	if t, ok := e.Data.(Texter); ok {
		b.WriteString(t.Text(r))
	} else if e.Data != nil {
		b.WriteString(fmt.Sprint(e.Data))
	}
	if len(e.Hints) > 0 {
		muted := r.NewStyle().Faint(true)
		b.WriteString("\n")
		for _, h := range e.Hints {
			b.WriteString("\n" + muted.Render("hint: "+h))
		}
	}
	return b.String()
}

// Table is a plain column layout. Cells wider than maxCellWidth are truncated
// with an ellipsis.
type Table struct {
	Headers []string
	Rows    [][]string
	// Empty is printed instead of the table when there are no rows.
	Empty string
}

func (t Table) Text(r *lipgloss.Renderer) string {
	if len(t.Rows) == 0 && t.Empty != "" {
		return r.NewStyle().Faint(true).Render(t.Empty)
	}
	cols := len(t.Headers)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, c := range row {
			widths[i] = max(widths[i], min(maxCellWidth, xansi.StringWidth(c)))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	header := r.NewStyle().Bold(true)
	var lines []string
	if len(t.Headers) > 0 {
		lines = append(lines, renderRow(t.Headers, widths, header))
	}
	for _, row := range t.Rows {
		lines = append(lines, renderRow(row, widths, r.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row []string, widths []int, style lipgloss.Style) string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		c := ""
		if i < len(row) {
			c = xansi.Truncate(strings.ReplaceAll(row[i], "\n", " "), w, "…")
		}
		if i == len(widths)-1 {
			cells[i] = style.Render(c)
			continue
		}
		cells[i] = style.Render(c + strings.Repeat(" ", w-xansi.StringWidth(c)))
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}

// KV renders aligned "key: value" lines, skipping empty values.
type KV struct {
	Pairs [][2]string
}

func (k KV) Text(r *lipgloss.Renderer) string {
	w := 0
	for _, p := range k.Pairs {
		w = max(w, xansi.StringWidth(p[0]))
	}
	key := r.NewStyle().Bold(true)
	var lines []string
	for _, p := range k.Pairs {
		if strings.TrimSpace(p[1]) == "" {
			continue
		}
		pad := strings.Repeat(" ", w-xansi.StringWidth(p[0]))
		lines = append(lines, key.Render(p[0]+":")+pad+" "+p[1])
	}
	return strings.Join(lines, "\n")
}
