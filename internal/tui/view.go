package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"promptdeck/internal/model"
	"promptdeck/internal/nav"
)

func (m browser) View() string {
	var body string
	switch m.page {
	case nav.PageTitle:
		body = m.viewTitle()
	case nav.PageNotice:
		body = m.viewNotice()
	case nav.PageWelcome:
		body = m.viewWelcome()
	case nav.PageCatalog:
		body = m.viewCatalog()
	case nav.PageTaskDetail, nav.PageEditTask:
		body = m.detail.View()
	case nav.PageHelp:
		body = viewHelp()
	}

	header := styleHeader().Render("promptdeck") + "  " + styleMuted().Render(pageLabel(m.page))
	if actor := strings.TrimSpace(m.opts.Resolver.Actor); actor != "" {
		header += "  " + styleMuted().Render("@"+actor)
	}
	lines := []string{header, "", body, ""}
	if m.status != "" {
		lines = append(lines, styleWarn().Render(m.status))
	}
	lines = append(lines, styleMuted().Render(xansi.Truncate(m.keyHints(), max(m.width, 20), "…")))
	return strings.Join(lines, "\n")
}

func pageLabel(p nav.PageID) string {
	switch p {
	case nav.PageCatalog:
		return "Catalog"
	case nav.PageTaskDetail:
		return "Template"
	case nav.PageEditTask:
		return "Edit"
	case nav.PageHelp:
		return "Help"
	case nav.PageWelcome:
		return "Welcome"
	case nav.PageNotice:
		return "Notice"
	}
	return ""
}

func (m browser) keyHints() string {
	if m.searching {
		return "enter: apply  esc: cancel"
	}
	switch m.page {
	case nav.PageTitle:
		return "enter: continue  q: quit"
	case nav.PageNotice:
		return "enter: I understand  q: quit"
	case nav.PageWelcome:
		return "enter: browse  ?: help  q: quit"
	case nav.PageCatalog:
		return "enter: open  *: favorite  /: search  d: division  c: category  f: favorites  m: mine  x: clear  n/p: page  q: quit"
	case nav.PageTaskDetail:
		return "esc: back  *: favorite  e: edit  ↑/↓: scroll  q: quit"
	case nav.PageEditTask:
		return "esc: back  q: quit"
	case nav.PageHelp:
		return "esc: back  q: quit"
	}
	return "q: quit"
}

func (m browser) viewTitle() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle().Render("Prompt templates"),
		"Ready-made prompts for everyday work, organized by division and category.",
		"",
		styleMuted().Render("Continuing shortly…"),
	)
}

func (m browser) viewNotice() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle().Render("Before you start"),
		wrap("These templates are starting points. Review every generated result before you use it, and never paste sensitive personal information into a prompt.", m.width),
		wrap("Prompt text is static: nothing you do here sends data to an AI service.", m.width),
	)
}

func (m browser) viewWelcome() string {
	noun := "templates"
	if m.count == 1 {
		noun = "template"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle().Render("Welcome"),
		fmt.Sprintf("%d %s available.", m.count, noun),
	)
}

func viewHelp() string {
	return strings.Join([]string{
		styleTitle().Render("How it works"),
		"1. Pick a division (d) and category (c), or search (/) titles and descriptions.",
		"2. Open a template (enter) to read its prompt, then copy it into your assistant.",
		"3. Star templates you use often (*) and press f to see only those.",
		"4. Press m to see templates you created.",
	}, "\n")
}

func (m browser) viewCatalog() string {
	f := m.filter()
	chips := []string{
		"Division: " + f.Division,
		"Category: " + f.Category,
	}
	if f.SearchTerm != "" {
		chips = append(chips, fmt.Sprintf("Search: %q", f.SearchTerm))
	}
	if f.FavoritesOnly {
		chips = append(chips, styleFavorite().Render(glyphFavorite+" favorites"))
	}
	if f.OwnedOnly {
		chips = append(chips, "mine")
	}
	bar := xansi.Truncate(strings.Join(chips, "  "), max(m.width, 20), "…")

	lines := []string{bar}
	if m.searching {
		lines = append(lines, m.search.View())
	}
	if len(m.result.Page.Items) == 0 {
		lines = append(lines, "", styleMuted().Render("No templates to show."))
	} else {
		lines = append(lines, "", m.list.View())
	}

	p := m.result.Page
	noun := "templates"
	if p.Total == 1 {
		noun = "template"
	}
	lines = append(lines, "", styleMuted().Render(fmt.Sprintf("Page %d of %d · %d %s", p.Page, p.TotalPages, p.Total, noun)))
	return strings.Join(lines, "\n")
}

// renderTask builds the detail (or read-only edit) view of the current task.
func (m browser) renderTask() string {
	if !m.taskFound {
		return styleTitle().Render("Task not found") + "\n" +
			fmt.Sprintf("No template with id %q exists.", m.addr.TaskID())
	}
	t := m.task
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.IsFavorite {
		b.WriteString(glyphFavorite + " Favorite\n\n")
	}
	if divs := model.SplitList(t.Division); len(divs) > 0 {
		fmt.Fprintf(&b, "**Divisions:** %s  \n", strings.Join(divs, ", "))
	}
	if cats := model.SplitList(t.Category); len(cats) > 0 {
		fmt.Fprintf(&b, "**Categories:** %s\n", strings.Join(cats, ", "))
	}
	b.WriteString("\n")
	if d := strings.TrimSpace(t.Description); d != "" {
		b.WriteString(d + "\n\n")
	}
	if p := strings.TrimSpace(t.PromptDefault); p != "" {
		b.WriteString("## Prompt\n\n```\n" + p + "\n```\n\n")
	}
	if s := strings.TrimSpace(t.AISuggestions); s != "" {
		b.WriteString("## Suggestions\n\n" + s + "\n\n")
	}
	if r := strings.TrimSpace(t.References); r != "" {
		b.WriteString("## References\n\n" + r + "\n\n")
	}
	if tags := model.SplitList(t.Tags); len(tags) > 0 {
		fmt.Fprintf(&b, "_Tags: %s_\n", strings.Join(tags, ", "))
	}
	out := renderMarkdown(b.String(), m.width, m.opts.GlamourStyle)
	if m.page == nav.PageEditTask {
		out = styleMuted().Render("Editing is available in the web app (promptdeck serve).") + "\n\n" + out
	}
	return out
}

func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
