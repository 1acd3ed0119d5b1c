package catalog

import (
	"context"
	"strings"

	"promptdeck/internal/model"
)

// TaskGetter is implemented by sources that can fetch a single task by id.
type TaskGetter interface {
	GetTask(ctx context.Context, id string) (model.Task, bool, error)
}

// Lookup finds a task by id the same way the catalog shows it: straight from
// the store when possible, otherwise in the unfiltered result, which also
// covers placeholder tasks and synthesized ids.
func (r Resolver) Lookup(ctx context.Context, id string) (model.Task, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Task{}, false
	}
	if g, ok := r.Source.(TaskGetter); ok {
		t, found, err := g.GetTask(ctx, id)
		if err != nil {
			r.logger().WithError(err).WithField("task_id", id).Warn("catalog.lookup.failed")
		}
		if found {
			return t, true
		}
	}
	all := r
	all.Actor = ""
	for _, t := range all.Resolve(ctx, nil).Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
