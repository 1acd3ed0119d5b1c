package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/catalog"
	"promptdeck/internal/nav"
)

type baseVM struct {
	Title      string
	Actor      string
	Active     nav.PageID
	WelcomeURL string
	CatalogURL string
	HelpURL    string
}

func (s *Server) baseVM(title string, active nav.PageID) baseVM {
	return baseVM{
		Title:      title,
		Actor:      s.cfg.Actor,
		Active:     active,
		WelcomeURL: nav.PageAddress(nav.PageWelcome).URL("/"),
		CatalogURL: nav.CatalogAddress(catalog.DefaultFilter()).URL("/"),
		HelpURL:    nav.PageAddress(nav.PageHelp).URL("/"),
	}
}

type titleVM struct {
	baseVM
	NextURL      string
	DelaySeconds string
}

type noticeVM struct {
	baseVM
	AckURL       string
	Acknowledged bool
}

type welcomeVM struct {
	baseVM
	TemplateCount int
}

// handleApp is the address-driven entry point for every page.
func (s *Server) handleApp(c echo.Context) error {
	addr := nav.FromValues(c.QueryParams())
	sid, prior := s.loadSession(c)

	tr := s.ctrl.Navigate(addr, prior)
	s.saveSession(c, sid, tr.State)
	if tr.FirstAcknowledgment {
		s.log.WithField("session", sid).Info("notice.acknowledged")
	}
	if tr.State.ActivePage != prior.ActivePage {
		s.log.WithFields(log.Fields{
			"session": sid,
			"from":    prior.ActivePage,
			"to":      tr.State.ActivePage,
		}).Debug("nav.transition")
	}

	if tr.Immediate() {
		return c.Redirect(http.StatusSeeOther, tr.Redirect.URL("/"))
	}
	if tr.Redirect != nil {
		c.Response().Header().Set("Refresh", refreshHeader(tr.Delay, tr.Redirect.URL("/")))
	}

	switch tr.Render {
	case nav.PageNotice:
		return s.render(c, http.StatusOK, "notice.html", noticeVM{
			baseVM:       s.baseVM("Notice", nav.PageNotice),
			AckURL:       addr.WithPage(nav.PageNotice).With(nav.KeyAck, "1").URL("/"),
			Acknowledged: tr.State.Acknowledged,
		})
	case nav.PageWelcome:
		n, err := s.store.CountTasks(c.Request().Context())
		if err != nil {
			s.log.WithError(err).Warn("catalog.count_failed")
			n = 0
		}
		return s.render(c, http.StatusOK, "welcome.html", welcomeVM{
			baseVM:        s.baseVM("Welcome", nav.PageWelcome),
			TemplateCount: n,
		})
	case nav.PageCatalog:
		return s.handleCatalog(c, addr)
	case nav.PageTaskDetail:
		return s.handleTaskDetail(c, addr)
	case nav.PageEditTask:
		return s.handleEditForm(c, addr)
	case nav.PageHelp:
		return s.render(c, http.StatusOK, "help.html", s.baseVM("Help", nav.PageHelp))
	default:
		next := nav.PageAddress(nav.PageNotice)
		if tr.Redirect != nil {
			next = *tr.Redirect
		}
		return s.render(c, http.StatusOK, "title.html", titleVM{
			baseVM:       s.baseVM("Prompt templates", nav.PageTitle),
			NextURL:      next.URL("/"),
			DelaySeconds: seconds(tr.Delay),
		})
	}
}

// toggleOnce applies a favt=<id> toggle carried by the address and returns
// the same address without it, so a reload does not flip the task back.
func (s *Server) toggleOnce(c echo.Context, addr nav.Address) (bool, error) {
	if !addr.Has(nav.KeyFavToggle) {
		return false, nil
	}
	s.favs.Toggle(c.Request().Context(), addr.Get(nav.KeyFavToggle))
	return true, c.Redirect(http.StatusSeeOther, addr.Without(nav.KeyFavToggle).URL("/"))
}

func refreshHeader(d time.Duration, url string) string {
	return seconds(d) + "; url=" + url
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
