package catalog

import (
	"context"
	"strings"

	"promptdeck/internal/model"
)

var (
	defaultDivisions  = []string{"VHA", "VBA", "NCA"}
	defaultCategories = []string{
		"Administrative", "Education", "Finance", "Human Resources", "IT",
		"Management", "Medical", "Public Affairs", "Quality & Patient Safety", "Service Recovery",
	}
)

type FacetSource interface {
	ListDivisions(ctx context.Context) ([]model.Division, error)
	ListCategories(ctx context.Context, division string) ([]model.Category, error)
}

// FacetList holds the filter rail options, each starting with "All".
type FacetList struct {
	Divisions  []string `json:"divisions"`
	Categories []string `json:"categories"`
}

// Facets loads division and category names for the filter rail. Categories
// are narrowed to the selected division. Store errors or empty tables fall
// back to the built-in lists.
func Facets(ctx context.Context, src FacetSource, division string) FacetList {
	var divs, cats []string
	if src != nil {
		if ds, err := src.ListDivisions(ctx); err == nil {
			for _, d := range ds {
				divs = append(divs, d.Name)
			}
		}
		if cs, err := src.ListCategories(ctx, division); err == nil {
			for _, c := range cs {
				cats = append(cats, c.Name)
			}
		}
	}
	divs = uniqueNames(divs)
	cats = uniqueNames(cats)
	if len(divs) == 0 {
		divs = defaultDivisions
	}
	if len(cats) == 0 {
		cats = defaultCategories
	}
	return FacetList{
		Divisions:  append([]string{model.AllValue}, divs...),
		Categories: append([]string{model.AllValue}, cats...),
	}
}

func uniqueNames(xs []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" || model.IsAll(x) || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}
