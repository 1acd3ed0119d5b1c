package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
)

type tasksResponse struct {
	Filter     catalog.CatalogFilter `json:"filter"`
	Tasks      []model.Task          `json:"tasks"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
	Total      int                   `json:"total"`
	Fallback   catalog.Fallback      `json:"fallback,omitempty"`
}

// handleAPITasks resolves the same catalog query keys as the catalog page.
// Pages past the end are reported clamped with no tasks.
func (s *Server) handleAPITasks(c echo.Context) error {
	pr := s.resolver.Page(c.Request().Context(), c.QueryParams())
	return c.JSON(http.StatusOK, tasksResponse{
		Filter:     pr.Filter,
		Tasks:      pr.Page.Items,
		Page:       pr.Page.Page,
		TotalPages: pr.Page.TotalPages,
		Total:      pr.Page.Total,
		Fallback:   pr.Fallback,
	})
}
