package catalog

// DefaultPageSize is the catalog grid size (three rows of three cards).
const DefaultPageSize = 9

// Page is one slice of a result set. Page is always within [1, TotalPages],
// but Items are taken from the requested page: asking past the last page
// deliberately yields no items rather than repeating the last page, so
// callers (and API clients) can tell a stale page number from real rows and
// move to Page themselves.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// Paginate slices items into fixed-size pages. The reported Page is clamped
// into [1, TotalPages]; a request past the last page yields no items rather
// than an error, so callers can redirect to the clamped page. A non-positive
// pageSize uses DefaultPageSize.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	n := len(items)
	totalPages := max(1, (n+pageSize-1)/pageSize)
	requested := max(1, page)

	out := []T{}
	if requested <= totalPages {
		start := (requested - 1) * pageSize
		end := min(requested*pageSize, n)
		out = make([]T, end-start)
		copy(out, items[start:end])
	}
	return Page[T]{
		Items:      out,
		Page:       min(requested, totalPages),
		TotalPages: totalPages,
		Total:      n,
	}
}

// Clamped reports whether the requested page had to be moved to fit.
func (p Page[T]) Clamped(requested int) bool { return max(1, requested) != p.Page }

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
