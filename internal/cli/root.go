package cli

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"promptdeck/internal/catalog"
	"promptdeck/internal/config"
	"promptdeck/internal/format"
	"promptdeck/internal/mutate"
	"promptdeck/internal/store"
)

type App struct {
	DB         string
	ConfigPath string
	Actor      string
	PrettyJSON bool
	Format     string
	LogLevel   string

	cfg *config.Config
	log *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "promptdeck",
		Short:        "Browse, search and curate prompt templates",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive browser
  promptdeck

  # Serve the web catalog
  promptdeck serve --addr 127.0.0.1:8501

  # Scriptable listing
  promptdeck tasks list --div VHA --search notes
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand opens the browser.
			if len(args) == 0 {
				return runBrowse(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.DB, "db", "", "Path to the catalog database (default: ~/.promptdeck/catalog.sqlite)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("PROMPTDECK_CONFIG", ""), "Path to config.yaml (default: ~/.promptdeck/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Actor, "actor", "", "Current user id, used for --mine and as the owner of new tasks")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newDivisionsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))

	return cmd
}

// load resolves configuration once per invocation: defaults, then the config
// file and environment, then flags.
func (app *App) load(cmd *cobra.Command) error {
	path := strings.TrimSpace(app.ConfigPath)
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return writeErr(cmd, err)
		}
		path = p
	}
	app.ConfigPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(app.DB); v != "" {
		cfg.DB = v
	}
	if v := strings.TrimSpace(app.Actor); v != "" {
		cfg.Actor = v
	}
	if v := strings.ToLower(strings.TrimSpace(app.Format)); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(app.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	app.Format = cfg.Format
	app.Actor = strings.TrimSpace(cfg.Actor)
	app.cfg = cfg
	app.log = cfg.Logging.NewLogger(cmd.ErrOrStderr())
	return nil
}

func (app *App) store() (store.Store, error) {
	path, err := app.cfg.DBPath()
	if err != nil {
		return store.Store{}, err
	}
	return store.Store{Path: path}, nil
}

func (app *App) resolver(st store.Store) catalog.Resolver {
	return catalog.Resolver{
		Source:         st,
		Actor:          app.Actor,
		PageSize:       app.cfg.Catalog.PageSize,
		NoPlaceholders: app.cfg.Catalog.NoPlaceholders,
		Log:            app.log,
	}
}

func (app *App) favorites(st store.Store) mutate.Favorites {
	return mutate.Favorites{Store: st, Log: app.log}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
