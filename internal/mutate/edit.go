package mutate

import (
	"context"
	"strings"

	"promptdeck/internal/model"
	"promptdeck/internal/store"
)

// TaskStore is the slice of the catalog store used by task edits.
type TaskStore interface {
	GetTask(ctx context.Context, id string) (model.Task, bool, error)
	UpsertTask(ctx context.Context, t model.Task) error
}

// TaskEdit carries the user-editable fields of a task.
type TaskEdit struct {
	Title         string
	Description   string
	Division      string
	Category      string
	Priority      string
	DueDate       string
	Tags          string
	References    string
	AISuggestions string
	PromptDefault string
	IsFavorite    bool
}

type EditResult struct {
	Task    model.Task `json:"task"`
	Changed bool       `json:"changed"`
}

// EditTask applies e to the active task id and saves it.
func EditTask(ctx context.Context, s TaskStore, id string, e TaskEdit) (EditResult, error) {
	id = strings.TrimSpace(id)
	if s == nil || id == "" {
		return EditResult{}, NotFoundError{Kind: "task", ID: id}
	}
	cur, ok, err := s.GetTask(ctx, id)
	if err != nil {
		return EditResult{}, err
	}
	if !ok {
		return EditResult{}, NotFoundError{Kind: "task", ID: id}
	}
	next, err := applyEdit(cur, e)
	if err != nil {
		return EditResult{}, err
	}
	if next == cur {
		return EditResult{Task: cur, Changed: false}, nil
	}
	if err := s.UpsertTask(ctx, next); err != nil {
		return EditResult{}, err
	}
	return EditResult{Task: next, Changed: true}, nil
}

// CreateTask stores a new active task owned by actor under a fresh id.
func CreateTask(ctx context.Context, s TaskStore, actor string, e TaskEdit) (model.Task, error) {
	id, err := store.NewTaskID()
	if err != nil {
		return model.Task{}, err
	}
	t, err := applyEdit(model.Task{ID: id, IsActive: true, CreatedBy: strings.TrimSpace(actor)}, e)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.UpsertTask(ctx, t); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func applyEdit(t model.Task, e TaskEdit) (model.Task, error) {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}
	t.Title = title
	t.Description = strings.TrimSpace(e.Description)
	t.Division = joinList(e.Division)
	t.Category = joinList(e.Category)
	t.Priority = strings.TrimSpace(e.Priority)
	t.DueDate = strings.TrimSpace(e.DueDate)
	t.Tags = joinList(e.Tags)
	t.References = strings.TrimSpace(e.References)
	t.AISuggestions = strings.TrimSpace(e.AISuggestions)
	t.PromptDefault = strings.TrimSpace(e.PromptDefault)
	t.IsFavorite = e.IsFavorite
	return t, nil
}

// joinList normalizes a comma list ("VHA, VBA,," -> "VHA,VBA").
func joinList(s string) string {
	return strings.Join(model.SplitList(s), ",")
}
