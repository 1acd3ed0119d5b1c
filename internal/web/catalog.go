package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
	"promptdeck/internal/nav"
)

type cardVM struct {
	Task       model.Task
	Divisions  []string
	Categories []string
	DetailURL  string
	EditURL    string
	ToggleURL  string
}

type catalogVM struct {
	baseVM
	Filter     catalog.CatalogFilter
	Facets     catalog.FacetList
	Cards      []cardVM
	Page       int
	TotalPages int
	Total      int
	PrevURL    string
	NextURL    string
	ClearURL   string
	Notice     string
}

func (s *Server) handleCatalog(c echo.Context, addr nav.Address) error {
	if done, err := s.toggleOnce(c, addr); done {
		return err
	}
	ctx := c.Request().Context()

	pr := s.resolver.Page(ctx, addr)
	f := pr.Filter
	if pr.Page.Clamped(f.Page) {
		return c.Redirect(http.StatusSeeOther, nav.CatalogAddress(f.WithPage(pr.Page.Page)).URL("/"))
	}

	// Links out of this page carry the canonical filter, not the raw address.
	here := nav.CatalogAddress(f)
	vm := catalogVM{
		baseVM:     s.baseVM("Catalog", nav.PageCatalog),
		Filter:     f,
		Facets:     catalog.Facets(ctx, s.store, f.Division),
		Page:       pr.Page.Page,
		TotalPages: pr.Page.TotalPages,
		Total:      pr.Page.Total,
		ClearURL:   nav.CatalogAddress(catalog.DefaultFilter()).URL("/"),
		Notice:     pr.Fallback.Notice(len(pr.Tasks)),
	}
	if pr.Page.HasPrev() {
		vm.PrevURL = nav.CatalogAddress(f.WithPage(pr.Page.Page - 1)).URL("/")
	}
	if pr.Page.HasNext() {
		vm.NextURL = nav.CatalogAddress(f.WithPage(pr.Page.Page + 1)).URL("/")
	}
	for _, t := range pr.Page.Items {
		vm.Cards = append(vm.Cards, cardVM{
			Task:       t,
			Divisions:  model.SplitList(t.Division),
			Categories: model.SplitList(t.Category),
			DetailURL:  nav.TaskAddress(f, t.ID).URL("/"),
			EditURL:    nav.EditAddress(f, t.ID).URL("/"),
			ToggleURL:  here.With(nav.KeyFavToggle, t.ID).URL("/"),
		})
	}
	return s.render(c, http.StatusOK, "catalog.html", vm)
}
