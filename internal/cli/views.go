package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"promptdeck/internal/catalog"
	"promptdeck/internal/format"
	"promptdeck/internal/model"
	"promptdeck/internal/mutate"
)

// taskPage is one catalog page. Its JSON matches GET /api/tasks.
type taskPage struct {
	Filter     catalog.CatalogFilter `json:"filter"`
	Tasks      []model.Task          `json:"tasks"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
	Total      int                   `json:"total"`
	Fallback   catalog.Fallback      `json:"fallback,omitempty"`
}

func newTaskPage(pr catalog.PageResult) taskPage {
	return taskPage{
		Filter:     pr.Filter,
		Tasks:      pr.Page.Items,
		Page:       pr.Page.Page,
		TotalPages: pr.Page.TotalPages,
		Total:      pr.Page.Total,
		Fallback:   pr.Fallback,
	}
}

func (p taskPage) Text(r *lipgloss.Renderer) string {
	t := format.Table{
		Headers: []string{"ID", "", "TITLE", "DIVISION", "CATEGORY"},
		Empty:   "No templates.",
	}
	for _, task := range p.Tasks {
		star := ""
		if task.IsFavorite {
			star = "★"
		}
		t.Rows = append(t.Rows, []string{task.ID, star, task.Title, task.Division, task.Category})
	}
	muted := r.NewStyle().Faint(true)
	out := t.Text(r) + "\n\n" + muted.Render(fmt.Sprintf("page %d of %d · %d total", p.Page, p.TotalPages, p.Total))
	if n := p.Fallback.Notice(len(p.Tasks)); n != "" {
		out += "\n" + muted.Render(n)
	}
	return out
}

// taskDetail is a single template. Text mode renders its markdown fields
// with glamour.
type taskDetail struct {
	model.Task
	style string
}

func (d taskDetail) Text(r *lipgloss.Renderer) string {
	t := d.Task
	fav := ""
	if t.IsFavorite {
		fav = "yes"
	}
	head := format.KV{Pairs: [][2]string{
		{"id", t.ID},
		{"title", t.Title},
		{"division", t.Division},
		{"category", t.Category},
		{"favorite", fav},
		{"priority", t.Priority},
		{"due", t.DueDate},
		{"tags", t.Tags},
		{"owner", t.CreatedBy},
	}}.Text(r)

	var md strings.Builder
	if s := strings.TrimSpace(t.Description); s != "" {
		md.WriteString(s + "\n\n")
	}
	if s := strings.TrimSpace(t.PromptDefault); s != "" {
		md.WriteString("## Prompt\n\n```\n" + s + "\n```\n\n")
	}
	if s := strings.TrimSpace(t.AISuggestions); s != "" {
		md.WriteString("## Suggestions\n\n" + s + "\n\n")
	}
	if s := strings.TrimSpace(t.References); s != "" {
		md.WriteString("## References\n\n" + s + "\n")
	}
	if md.Len() == 0 {
		return head
	}
	return head + "\n" + renderMarkdown(md.String(), d.style, r)
}

func renderMarkdown(md, style string, r *lipgloss.Renderer) string {
	if r.ColorProfile() == termenv.Ascii || strings.TrimSpace(style) == "" || style == "auto" {
		style = "notty"
	}
	tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

type favoriteResult struct {
	ID string `json:"id"`
	mutate.ToggleResult
}

func (f favoriteResult) Text(r *lipgloss.Renderer) string {
	if f.IsFavorite {
		return "★ " + f.ID + " is a favorite"
	}
	return "☆ " + f.ID + " is not a favorite"
}

type divisionList []model.Division

func (l divisionList) Text(r *lipgloss.Renderer) string {
	t := format.Table{Headers: []string{"NAME", "TITLE"}, Empty: "No divisions."}
	for _, d := range l {
		t.Rows = append(t.Rows, []string{d.Name, d.FullTitle})
	}
	return t.Text(r)
}

type categoryList []model.Category

func (l categoryList) Text(r *lipgloss.Renderer) string {
	t := format.Table{Headers: []string{"NAME", "DIVISIONS"}, Empty: "No categories."}
	for _, c := range l {
		t.Rows = append(t.Rows, []string{c.Name, c.Divisions})
	}
	return t.Text(r)
}
