package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"promptdeck/internal/nav"
	"promptdeck/internal/session"
)

const sessionCookie = "promptdeck_session"

// loadSession returns the session id for the request and its stored state.
// Requests without a usable cookie get a fresh id and a zero state.
func (s *Server) loadSession(c echo.Context) (string, nav.PageState) {
	if ck, err := c.Cookie(sessionCookie); err == nil && session.ValidID(ck.Value) {
		st, ok, err := s.sessions.Load(c.Request().Context(), ck.Value)
		if err != nil {
			s.log.WithError(err).Warn("session.load_failed")
		}
		if ok {
			return ck.Value, st
		}
		return ck.Value, nav.PageState{}
	}

	id := session.NewID()
	ck := &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if s.cfg.SessionTTL > 0 {
		ck.MaxAge = int(s.cfg.SessionTTL.Seconds())
	}
	c.SetCookie(ck)
	return id, nav.PageState{}
}

func (s *Server) saveSession(c echo.Context, id string, st nav.PageState) {
	if err := s.sessions.Save(c.Request().Context(), id, st); err != nil {
		s.log.WithError(err).Warn("session.save_failed")
	}
}
