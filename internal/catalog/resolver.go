package catalog

import (
	"context"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"promptdeck/internal/model"
	"promptdeck/internal/store"
)

// Source is the part of the catalog store the resolver reads.
type Source interface {
	ListTasks(ctx context.Context, q store.TaskQuery) ([]model.Task, error)
}

type Resolver struct {
	Source Source
	// Actor identifies the current user for the owned-only filter. Empty
	// disables that filter.
	Actor    string
	PageSize int
	// NoPlaceholders returns an empty result instead of the sample tasks when
	// the store yields nothing.
	NoPlaceholders bool
	Log            *log.Logger
}

type Result struct {
	Filter   CatalogFilter `json:"filter"`
	Tasks    []model.Task  `json:"tasks"`
	Fallback Fallback      `json:"fallback,omitempty"`
}

type PageResult struct {
	Result
	Page Page[model.Task] `json:"page"`
}

// Resolve turns raw address parameters into a filtered, ordered task list.
// It never returns an error: an unreachable store is logged and treated as an
// empty one.
func (r Resolver) Resolve(ctx context.Context, raw RawQuery) Result {
	f := ParseFilter(raw)
	res := Result{Filter: f}

	var rows []model.Task
	var err error
	if r.Source != nil {
		rows, err = r.Source.ListTasks(ctx, f.Query(r.Actor))
	}
	if err != nil {
		r.logger().WithError(err).WithField("filter", f).Warn("catalog.store.unavailable")
		rows = nil
	}

	tasks := Apply(rows, Predicates(f, r.Actor))
	SortTasks(tasks)

	switch {
	case err != nil:
		res.Fallback = FallbackUnavailable
	case len(tasks) == 0:
		res.Fallback = FallbackEmpty
	}
	if len(tasks) == 0 && !r.NoPlaceholders {
		tasks = placeholderTasks()
	}

	res.Tasks = ensureIDs(tasks)
	return res
}

// Page resolves and slices the result to the requested page.
func (r Resolver) Page(ctx context.Context, raw RawQuery) PageResult {
	res := r.Resolve(ctx, raw)
	return PageResult{
		Result: res,
		Page:   Paginate(res.Tasks, r.pageSize(), res.Filter.Page),
	}
}

func (r Resolver) pageSize() int {
	if r.PageSize > 0 {
		return r.PageSize
	}
	return DefaultPageSize
}

func (r Resolver) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.StandardLogger()
}

// SortTasks orders by title (case-insensitive), then id, so identical inputs
// always produce identical pages.
func SortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := strings.ToLower(tasks[i].Title), strings.ToLower(tasks[j].Title)
		if a != b {
			return a < b
		}
		return tasks[i].ID < tasks[j].ID
	})
}
