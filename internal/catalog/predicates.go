package catalog

import (
	"strings"

	"promptdeck/internal/model"
)

// Predicate keeps a task when it returns true. Predicates are pure, so any
// order of application yields the same set.
type Predicate func(model.Task) bool

// Predicates returns the active predicates for f. An empty actor turns the
// owned-only predicate into a no-op.
func Predicates(f CatalogFilter, actor string) []Predicate {
	var ps []Predicate
	if !model.IsAll(f.Division) {
		div := f.Division
		ps = append(ps, func(t model.Task) bool { return model.InList(t.Division, div) })
	}
	if !model.IsAll(f.Category) {
		cat := f.Category
		ps = append(ps, func(t model.Task) bool { return model.InList(t.Category, cat) })
	}
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		ps = append(ps, func(t model.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), term) ||
				strings.Contains(strings.ToLower(t.Description), term)
		})
	}
	if f.FavoritesOnly {
		ps = append(ps, func(t model.Task) bool { return t.IsFavorite })
	}
	if actor = strings.TrimSpace(actor); f.OwnedOnly && actor != "" {
		ps = append(ps, func(t model.Task) bool { return t.CreatedBy == actor })
	}
	return ps
}

// Apply returns the tasks accepted by every predicate, preserving input order.
func Apply(tasks []model.Task, ps []Predicate) []model.Task {
	out := make([]model.Task, 0, len(tasks))
next:
	for _, t := range tasks {
		for _, p := range ps {
			if !p(t) {
				continue next
			}
		}
		out = append(out, t)
	}
	return out
}
