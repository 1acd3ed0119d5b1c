package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
	"promptdeck/internal/mutate"
	"promptdeck/internal/nav"
)

type taskVM struct {
	baseVM
	Task       model.Task
	Found      bool
	ID         string
	Divisions  []string
	Categories []string
	BackURL    string
	EditURL    string
	ToggleURL  string
}

type editVM struct {
	baseVM
	Task      model.Task
	Found     bool
	ID        string
	Facets    catalog.FacetList
	ActionURL string
	CancelURL string
	Error     string
}

// handleTaskDetail shows one task. Unknown ids render the not-found view
// with a working back link; they are not an error.
func (s *Server) handleTaskDetail(c echo.Context, addr nav.Address) error {
	if done, err := s.toggleOnce(c, addr); done {
		return err
	}
	id := addr.TaskID()
	f := catalog.ParseFilter(addr)
	t, ok := s.resolver.Lookup(c.Request().Context(), id)

	vm := taskVM{
		baseVM:    s.baseVM("Task", nav.PageTaskDetail),
		Task:      t,
		Found:     ok,
		ID:        id,
		BackURL:   nav.BackToCatalog(addr).URL("/"),
		EditURL:   nav.EditAddress(f, id).URL("/"),
		ToggleURL: nav.TaskAddress(f, id).With(nav.KeyFavToggle, id).URL("/"),
	}
	status := http.StatusOK
	if ok {
		vm.Title = t.Title
		vm.Divisions = model.SplitList(t.Division)
		vm.Categories = model.SplitList(t.Category)
	} else {
		status = http.StatusNotFound
	}
	return s.render(c, status, "task.html", vm)
}

func (s *Server) handleEditForm(c echo.Context, addr nav.Address) error {
	id := addr.TaskID()
	t, ok, err := s.store.GetTask(c.Request().Context(), id)
	if err != nil {
		s.log.WithError(err).WithField("task_id", id).Warn("catalog.get_failed")
	}
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
	}
	return s.render(c, status, "edit.html", s.editVM(c, addr, t, ok, ""))
}

// handleEditSave stores the edit form posted to the edit page address.
func (s *Server) handleEditSave(c echo.Context) error {
	addr := nav.FromValues(c.QueryParams())
	if p, _ := addr.Page(); p != nav.PageEditTask {
		return echo.ErrMethodNotAllowed
	}
	ctx := c.Request().Context()
	id := addr.TaskID()

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	edit := mutate.TaskEdit{
		Title:         form.Get("title"),
		Description:   form.Get("description"),
		Division:      strings.Join(form["division"], ","),
		Category:      strings.Join(form["category"], ","),
		Priority:      form.Get("priority"),
		DueDate:       form.Get("due_date"),
		Tags:          form.Get("tags"),
		References:    form.Get("references"),
		AISuggestions: form.Get("ai_suggestions"),
		PromptDefault: form.Get("prompt_default"),
		IsFavorite:    form.Get("favorite") == "1",
	}

	res, err := mutate.EditTask(ctx, s.store, id, edit)
	var nf mutate.NotFoundError
	switch {
	case errors.As(err, &nf):
		return s.render(c, http.StatusNotFound, "edit.html", s.editVM(c, addr, model.Task{}, false, ""))
	case errors.Is(err, mutate.ErrTitleRequired):
		draft := model.Task{
			ID: id, Description: edit.Description, Division: edit.Division, Category: edit.Category,
			Priority: edit.Priority, DueDate: edit.DueDate, Tags: edit.Tags, References: edit.References,
			AISuggestions: edit.AISuggestions, PromptDefault: edit.PromptDefault, IsFavorite: edit.IsFavorite,
		}
		return s.render(c, http.StatusUnprocessableEntity, "edit.html", s.editVM(c, addr, draft, true, "Title is required."))
	case err != nil:
		s.log.WithError(err).WithField("task_id", id).Error("task.save_failed")
		return s.render(c, http.StatusInternalServerError, "edit.html", s.editVM(c, addr, model.Task{ID: id, Title: edit.Title}, true, "Saving failed. Try again."))
	}

	s.log.WithFields(log.Fields{"task_id": id, "changed": res.Changed}).Info("task.saved")
	return c.Redirect(http.StatusSeeOther, nav.TaskAddress(catalog.ParseFilter(addr), id).URL("/"))
}

func (s *Server) editVM(c echo.Context, addr nav.Address, t model.Task, found bool, msg string) editVM {
	id := addr.TaskID()
	f := catalog.ParseFilter(addr)
	title := "Edit task"
	if found && t.Title != "" {
		title = "Edit: " + t.Title
	}
	return editVM{
		baseVM:    s.baseVM(title, nav.PageEditTask),
		Task:      t,
		Found:     found,
		ID:        id,
		Facets:    catalog.Facets(c.Request().Context(), s.store, model.AllValue),
		ActionURL: nav.EditAddress(f, id).URL("/"),
		CancelURL: nav.TaskAddress(f, id).URL("/"),
		Error:     msg,
	}
}
