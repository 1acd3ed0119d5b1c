package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/nav"
)

// requestLogger emits one http.request entry per request.
func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			fields := log.Fields{
				"method":      req.Method,
				"path":        req.URL.Path,
				"page":        req.URL.Query().Get(nav.KeyPage),
				"status":      c.Response().Status,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			entry := logger.WithFields(fields)
			if err != nil {
				entry = entry.WithError(err)
			}
			entry.Info("http.request")
			return nil
		}
	}
}

// sideChannel answers api=favt with a bare OK, toggling the favorite of
// task=<id> when one is given. It never reaches navigation, so the session and
// page state are untouched.
func (s *Server) sideChannel(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.QueryParam(nav.KeyAPI) != "favt" {
			return next(c)
		}
		id := strings.TrimSpace(c.QueryParam(nav.KeyTask))
		if id == "" {
			return c.String(http.StatusOK, "OK")
		}
		res := s.favs.Toggle(c.Request().Context(), id)
		s.log.WithFields(log.Fields{
			"task_id":     id,
			"found":       res.Found,
			"is_favorite": res.IsFavorite,
		}).Debug("favorite.side_channel")
		return c.String(http.StatusOK, "OK")
	}
}
