package catalog

import (
	"strconv"
	"strings"

	"promptdeck/internal/model"
	"promptdeck/internal/store"
)

// Address keys read by the resolver.
const (
	KeyDivision  = "div"
	KeyCategory  = "cat"
	KeySearch    = "q"
	KeyFavorites = "fav"
	KeyMine      = "mine"
	KeyPage      = "p"
)

// RawQuery is any key/value source of address parameters (url.Values, nav.Address).
type RawQuery interface {
	Get(key string) string
}

// CatalogFilter is rebuilt from the address on every resolution and never mutated.
type CatalogFilter struct {
	Division      string `json:"division"`
	Category      string `json:"category"`
	SearchTerm    string `json:"searchTerm"`
	FavoritesOnly bool   `json:"favoritesOnly"`
	OwnedOnly     bool   `json:"ownedOnly"`
	Page          int    `json:"page"`
}

func DefaultFilter() CatalogFilter {
	return CatalogFilter{Division: model.AllValue, Category: model.AllValue, Page: 1}
}

// ParseFilter normalizes raw address parameters. It never fails: missing or
// malformed values fall back to the defaults.
func ParseFilter(raw RawQuery) CatalogFilter {
	f := DefaultFilter()
	if raw == nil {
		return f
	}
	if v := strings.TrimSpace(raw.Get(KeyDivision)); !model.IsAll(v) {
		f.Division = v
	}
	if v := strings.TrimSpace(raw.Get(KeyCategory)); !model.IsAll(v) {
		f.Category = v
	}
	f.SearchTerm = strings.TrimSpace(raw.Get(KeySearch))
	f.FavoritesOnly = parseFlag(raw.Get(KeyFavorites))
	f.OwnedOnly = parseFlag(raw.Get(KeyMine))
	f.Page = parsePage(raw.Get(KeyPage))
	return f
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func parsePage(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Values renders the filter back into address parameters, always including
// every key so links built from it are canonical.
func (f CatalogFilter) Values() map[string]string {
	return map[string]string{
		KeyDivision:  nonEmpty(f.Division, model.AllValue),
		KeyCategory:  nonEmpty(f.Category, model.AllValue),
		KeySearch:    f.SearchTerm,
		KeyFavorites: flagValue(f.FavoritesOnly),
		KeyMine:      flagValue(f.OwnedOnly),
		KeyPage:      strconv.Itoa(max(1, f.Page)),
	}
}

func (f CatalogFilter) WithPage(p int) CatalogFilter {
	f.Page = max(1, p)
	return f
}

// Query converts the filter into the predicate set pushed down to the store.
// The owner predicate is only sent when an actor is known.
func (f CatalogFilter) Query(actor string) store.TaskQuery {
	q := store.TaskQuery{
		Division:      f.Division,
		Category:      f.Category,
		Search:        f.SearchTerm,
		FavoritesOnly: f.FavoritesOnly,
	}
	if f.OwnedOnly {
		q.CreatedBy = strings.TrimSpace(actor)
	}
	return q
}

func flagValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func nonEmpty(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}
