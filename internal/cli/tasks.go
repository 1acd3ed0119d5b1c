package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"promptdeck/internal/catalog"
	"promptdeck/internal/format"
	"promptdeck/internal/mutate"
	"promptdeck/internal/publish"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "List, show and curate prompt templates",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksFavoriteCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksArchiveCmd(app))
	cmd.AddCommand(newTasksExportCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var div, cat, search string
	var fav, mine bool
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates with the same filters as the catalog page",
		Example: `  promptdeck tasks list --div VBA --cat Administrative
  promptdeck tasks list --search minutes --fav --format text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			q := url.Values{}
			q.Set(catalog.KeyDivision, div)
			q.Set(catalog.KeyCategory, cat)
			q.Set(catalog.KeySearch, search)
			if fav {
				q.Set(catalog.KeyFavorites, "1")
			}
			if mine {
				q.Set(catalog.KeyMine, "1")
			}
			q.Set(catalog.KeyPage, strconv.Itoa(page))

			pr := app.resolver(st).Page(cmd.Context(), q)
			var hints []string
			if pr.Page.HasNext() {
				hints = append(hints, fmt.Sprintf("promptdeck tasks list --page %d", pr.Page.Page+1))
			}
			if len(pr.Page.Items) > 0 {
				hints = append(hints, "promptdeck tasks show "+pr.Page.Items[0].ID)
			}
			return writeOut(cmd, app, format.Envelope{Data: newTaskPage(pr), Hints: hints})
		},
	}

	cmd.Flags().StringVar(&div, "div", "", "Division (default: All)")
	cmd.Flags().StringVar(&cat, "cat", "", "Category (default: All)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Search title and description")
	cmd.Flags().BoolVar(&fav, "fav", false, "Favorites only")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only templates created by --actor")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one template, including its prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := app.resolver(st).Lookup(cmd.Context(), args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  taskDetail{Task: t, style: app.cfg.TUI.GlamourStyle},
				Hints: []string{"promptdeck tasks favorite " + t.ID},
			})
		},
	}
}

func newTasksFavoriteCmd(app *App) *cobra.Command {
	var on, off bool
	cmd := &cobra.Command{
		Use:   "favorite <task-id>",
		Short: "Toggle a template's favorite flag (or set it with --on/--off)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if on && off {
				return writeErr(cmd, errFlagConflict("on", "off"))
			}
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			favs := app.favorites(st)
			id := strings.TrimSpace(args[0])

			var res mutate.ToggleResult
			if on || off {
				found, err := favs.Set(cmd.Context(), id, on)
				if err != nil {
					return writeErr(cmd, err)
				}
				res = mutate.ToggleResult{Found: found, IsFavorite: on}
			} else {
				res = favs.Toggle(cmd.Context(), id)
			}
			if !res.Found {
				return writeErr(cmd, errNotFound("task", id))
			}
			return writeOut(cmd, app, format.Envelope{Data: favoriteResult{ID: id, ToggleResult: res}})
		},
	}
	cmd.Flags().BoolVar(&on, "on", false, "Mark as favorite")
	cmd.Flags().BoolVar(&off, "off", false, "Clear the favorite mark")
	return cmd
}

// taskFlags are the editable fields shared by add and edit.
type taskFlags struct {
	title, description, priority, due, tags, refs, suggestions, prompt string
	divisions, categories                                                []string
	favorite                                                             bool
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description (markdown)")
	cmd.Flags().StringSliceVar(&f.divisions, "div", nil, "Division (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&f.categories, "cat", nil, "Category (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.refs, "references", "", "References (markdown)")
	cmd.Flags().StringVar(&f.suggestions, "suggestions", "", "Usage suggestions (markdown)")
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "Default prompt text")
	cmd.Flags().BoolVar(&f.favorite, "favorite", false, "Mark as favorite")
}

// apply overlays the flags the user actually passed onto e.
func (f *taskFlags) apply(cmd *cobra.Command, e mutate.TaskEdit) mutate.TaskEdit {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("title", &e.Title, f.title)
	set("description", &e.Description, f.description)
	set("div", &e.Division, strings.Join(f.divisions, ","))
	set("cat", &e.Category, strings.Join(f.categories, ","))
	set("priority", &e.Priority, f.priority)
	set("due", &e.DueDate, f.due)
	set("tags", &e.Tags, f.tags)
	set("references", &e.References, f.refs)
	set("suggestions", &e.AISuggestions, f.suggestions)
	set("prompt", &e.PromptDefault, f.prompt)
	if cmd.Flags().Changed("favorite") {
		e.IsFavorite = f.favorite
	}
	return e
}

func newTasksAddCmd(app *App) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a template owned by --actor",
		Example: `  promptdeck tasks add --title "Meeting Minutes" --div NCA,VBA,VHA --cat Administrative --prompt "Summarize..."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := mutate.CreateTask(cmd.Context(), st, app.Actor, f.apply(cmd, mutate.TaskEdit{}))
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.WithFields(log.Fields{"task_id": t.ID, "actor": app.Actor}).Info("task.created")
			return writeOut(cmd, app, format.Envelope{
				Data:  taskDetail{Task: t, style: app.cfg.TUI.GlamourStyle},
				Hints: []string{"promptdeck tasks show " + t.ID},
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change fields of a stored template; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, ok, err := st.GetTask(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			e := f.apply(cmd, mutate.TaskEdit{
				Title:         cur.Title,
				Description:   cur.Description,
				Division:      cur.Division,
				Category:      cur.Category,
				Priority:      cur.Priority,
				DueDate:       cur.DueDate,
				Tags:          cur.Tags,
				References:    cur.References,
				AISuggestions: cur.AISuggestions,
				PromptDefault: cur.PromptDefault,
				IsFavorite:    cur.IsFavorite,
			})
			res, err := mutate.EditTask(cmd.Context(), st, cur.ID, e)
			if errors.Is(err, mutate.ErrTitleRequired) {
				return writeErr(cmd, errors.New("--title cannot be empty"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				app.log.WithField("task_id", cur.ID).Info("task.saved")
			}
			return writeOut(cmd, app, format.Envelope{Data: res})
		},
	}
	f.register(cmd)
	return cmd
}

func newTasksArchiveCmd(app *App) *cobra.Command {
	var restore bool
	cmd := &cobra.Command{
		Use:   "archive <task-id>",
		Short: "Hide a template from every listing (or bring it back with --restore)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskArchived(cmd.Context(), st, args[0], !restore)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: res})
		},
	}
	cmd.Flags().BoolVar(&restore, "restore", false, "Restore an archived template")
	return cmd
}

func newTasksExportCmd(app *App) *cobra.Command {
	var to, div, cat, search string
	var fav, mine, overwrite bool

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Write the filtered catalog as markdown (index.md plus one page per template)",
		Example: `  promptdeck tasks export --to ./prompts --div VHA`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			q := url.Values{}
			q.Set(catalog.KeyDivision, div)
			q.Set(catalog.KeyCategory, cat)
			q.Set(catalog.KeySearch, search)
			if fav {
				q.Set(catalog.KeyFavorites, "1")
			}
			if mine {
				q.Set(catalog.KeyMine, "1")
			}

			r := app.resolver(st)
			r.NoPlaceholders = true
			res := r.Resolve(cmd.Context(), q)
			if res.Fallback == catalog.FallbackUnavailable {
				return writeErr(cmd, errors.New("export: catalog unavailable"))
			}

			out, err := publish.WriteTasks(to, res.Filter, res.Tasks, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.WithFields(log.Fields{"dir": to, "tasks": len(res.Tasks)}).Info("tasks.exported")
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().StringVar(&div, "div", "", "Division (default: All)")
	cmd.Flags().StringVar(&cat, "cat", "", "Category (default: All)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Search title and description")
	cmd.Flags().BoolVar(&fav, "fav", false, "Favorites only")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only templates created by --actor")
	return cmd
}
