package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
	"promptdeck/internal/mutate"
	"promptdeck/internal/nav"
	"promptdeck/internal/session"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

// Store is everything the web front end needs from the catalog store.
type Store interface {
	catalog.Source
	catalog.FacetSource
	mutate.FavoriteStore
	GetTask(ctx context.Context, id string) (model.Task, bool, error)
	UpsertTask(ctx context.Context, t model.Task) error
	CountTasks(ctx context.Context) (int, error)
}

type ServerConfig struct {
	Addr             string
	Actor            string
	PageSize         int
	NoPlaceholders   bool
	AutoAdvanceDelay time.Duration
	SessionTTL       time.Duration
	// SecureCookie marks the session cookie Secure (serve behind TLS only).
	SecureCookie bool
}

type Server struct {
	cfg      ServerConfig
	store    Store
	sessions session.Store
	log      *log.Logger
	tmpl     *template.Template

	ctrl     nav.Controller
	resolver catalog.Resolver
	favs     mutate.Favorites

	e *echo.Echo
}

func NewServer(cfg ServerConfig, st Store, sessions session.Store, logger *log.Logger) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Actor = strings.TrimSpace(cfg.Actor)
	if st == nil {
		return nil, errors.New("web: store is nil")
	}
	if sessions == nil {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"markdown": renderMarkdownHTML,
		"split":    model.SplitList,
		"inList":   listHas,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		log:      logger,
		tmpl:     tmpl,
		ctrl:     nav.Controller{AutoAdvanceDelay: cfg.AutoAdvanceDelay},
		resolver: catalog.Resolver{
			Source:         st,
			Actor:          cfg.Actor,
			PageSize:       cfg.PageSize,
			NoPlaceholders: cfg.NoPlaceholders,
			Log:            logger,
		},
		favs: mutate.Favorites{Store: st, Log: logger},
	}
	s.e = s.routes()
	return s, nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(s.log))

	e.GET("/", s.handleApp, s.sideChannel)
	e.POST("/", s.handleEditSave)
	e.GET("/api/tasks", s.handleAPITasks)
	e.GET("/healthz", s.handleHealth)
	e.GET("/static/app.css", s.handleAppCSS)
	return e
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler { return s.e }

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	if s.cfg.Addr == "" {
		return errors.New("web: addr is empty")
	}
	err := s.e.Start(s.cfg.Addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok\n")
}

func (s *Server) handleAppCSS(c echo.Context) error {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", b)
}

func (s *Server) render(c echo.Context, status int, name string, data any) error {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		s.log.WithError(err).WithField("template", name).Error("web.render")
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	return c.HTML(status, b.String())
}

// listHas reports exact (case-insensitive) membership in a comma list.
func listHas(list, name string) bool {
	for _, x := range model.SplitList(list) {
		if strings.EqualFold(x, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
