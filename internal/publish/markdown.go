package publish

import (
	"bytes"
	"strings"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
)

// RenderTaskMarkdown renders one template as a standalone markdown page.
func RenderTaskMarkdown(t model.Task) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(t.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + t.ID)
	if divs := model.SplitList(t.Division); len(divs) > 0 {
		writeLn("- Divisions: " + strings.Join(divs, ", "))
	}
	if cats := model.SplitList(t.Category); len(cats) > 0 {
		writeLn("- Categories: " + strings.Join(cats, ", "))
	}
	if t.IsFavorite {
		writeLn("- Favorite: true")
	}
	if s := strings.TrimSpace(t.Priority); s != "" {
		writeLn("- Priority: " + s)
	}
	if s := strings.TrimSpace(t.DueDate); s != "" {
		writeLn("- Due: " + s)
	}
	if tags := model.SplitList(t.Tags); len(tags) > 0 {
		writeLn("- Tags: " + strings.Join(tags, ", "))
	}
	if s := strings.TrimSpace(t.CreatedBy); s != "" {
		writeLn("- Owner: " + s)
	}

	section := func(title, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		writeLn("")
		writeLn("## " + title)
		writeLn("")
		writeLn(body)
	}
	section("Description", t.Description)
	if p := strings.TrimSpace(t.PromptDefault); p != "" {
		writeLn("")
		writeLn("## Prompt")
		writeLn("")
		writeLn(fence(p))
		writeLn(p)
		writeLn(fence(p))
	}
	section("Suggestions", t.AISuggestions)
	section("References", t.References)
	return buf.String()
}

// RenderIndexMarkdown lists tasks with links to their pages.
func RenderIndexMarkdown(f catalog.CatalogFilter, tasks []model.Task) string {
	var buf bytes.Buffer
	buf.WriteString("# Prompt templates\n\n")

	var scope []string
	if !model.IsAll(f.Division) {
		scope = append(scope, "division "+f.Division)
	}
	if !model.IsAll(f.Category) {
		scope = append(scope, "category "+f.Category)
	}
	if f.SearchTerm != "" {
		scope = append(scope, "matching \""+f.SearchTerm+"\"")
	}
	if f.FavoritesOnly {
		scope = append(scope, "favorites only")
	}
	if f.OwnedOnly {
		scope = append(scope, "mine only")
	}
	if len(scope) > 0 {
		buf.WriteString("Filtered by " + strings.Join(scope, ", ") + ".\n\n")
	}

	if len(tasks) == 0 {
		buf.WriteString("_No templates._\n")
		return buf.String()
	}
	for _, t := range tasks {
		line := "- [" + escapeLinkText(t.Title) + "](tasks/" + fileName(t.ID) + ")"
		if cats := model.SplitList(t.Category); len(cats) > 0 {
			line += " · " + strings.Join(cats, ", ")
		}
		buf.WriteString(line + "\n")
	}
	return buf.String()
}

// fence returns a code fence longer than any backtick run inside s.
func fence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

func escapeLinkText(s string) string {
	return strings.NewReplacer(`[`, `\[`, `]`, `\]`).Replace(strings.TrimSpace(s))
}
