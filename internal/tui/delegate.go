package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"promptdeck/internal/model"
)

type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Title }
func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return i.task.Description }

const (
	glyphFavorite   = "★"
	glyphUnfavorite = "☆"
)

// taskDelegate renders one task per line: star, title and division chips.
type taskDelegate struct{}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	contentW := m.Width()
	if !ok || contentW < 4 {
		return
	}
	fmt.Fprint(w, taskLine(it.task, contentW, index == m.Index()))
}

func taskLine(t model.Task, width int, selected bool) string {
	star := glyphUnfavorite
	if t.IsFavorite {
		star = styleFavorite().Render(glyphFavorite)
	}
	meta := strings.Join(model.SplitList(t.Division), " ")
	if cats := model.SplitList(t.Category); len(cats) > 0 {
		if meta != "" {
			meta += " · "
		}
		meta += strings.Join(cats, ", ")
	}

	line := star + " " + t.Title
	if meta != "" {
		line += "  " + styleMuted().Render(meta)
	}
	line = xansi.Truncate(line, width, "…")
	if pad := width - xansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	if selected {
		return styleSelected().Render(xansi.Strip(line))
	}
	return line
}
