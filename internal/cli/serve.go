package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"promptdeck/internal/format"
	"promptdeck/internal/session"
	"promptdeck/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var secure bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web catalog",
		Long: strings.TrimSpace(`
Serve the catalog as server-rendered HTML.

Every page is addressed by its query string (page, div, cat, q, fav, mine, p,
task), so any view can be bookmarked or shared. Sessions live in memory unless
redis.url (or PROMPTDECK_REDIS_URL) is set.
`),
		Example: strings.TrimSpace(`
promptdeck serve --addr 127.0.0.1:8501
PROMPTDECK_REDIS_URL=redis://localhost:6379/0 promptdeck serve --addr :8501
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = app.cfg.Server.Addr
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}

			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Init(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sessions, closeSessions, err := app.sessionStore(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeSessions()

			srv, err := web.NewServer(web.ServerConfig{
				Addr:             listenAddr,
				Actor:            app.Actor,
				PageSize:         app.cfg.Catalog.PageSize,
				NoPlaceholders:   app.cfg.Catalog.NoPlaceholders,
				AutoAdvanceDelay: app.cfg.Server.AutoAdvanceDelay,
				SessionTTL:       app.cfg.Server.SessionTTL,
				SecureCookie:     secure,
			}, st, sessions, app.log)
			if err != nil {
				return writeErr(cmd, err)
			}

			url := "http://" + listenAddr + "/"
			_ = writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"addr": listenAddr,
					"url":  url,
					"db":   st.Path,
				},
				Hints: []string{"open " + url, "press Ctrl-C to stop"},
			})

			app.log.WithFields(log.Fields{"addr": listenAddr, "db": st.Path}).Info("server.start")
			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)
			g.Go(func() error {
				<-gctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(sctx)
			})
			if err := g.Wait(); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("server.stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config: 127.0.0.1:8501)")
	cmd.Flags().BoolVar(&secure, "secure-cookie", false, "Mark the session cookie Secure (when served behind TLS)")
	return cmd
}

// sessionStore returns the Redis store when configured, else an in-memory one.
func (app *App) sessionStore(ctx context.Context) (session.Store, func(), error) {
	ttl := app.cfg.Server.SessionTTL
	url := strings.TrimSpace(app.cfg.Redis.URL)
	if url == "" {
		return session.NewMemoryStore(ttl), func() {}, nil
	}
	client, err := session.Dial(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	app.log.WithField("redis", client.Options().Addr).Info("session.redis")
	return session.NewRedisStore(client, ttl), func() { _ = client.Close() }, nil
}
