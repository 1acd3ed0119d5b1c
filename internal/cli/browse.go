package cli

import (
	"io"

	"github.com/spf13/cobra"

	"promptdeck/internal/nav"
	"promptdeck/internal/tui"
)

func newBrowseCmd(app *App) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser",
		Example: `  promptdeck browse
  promptdeck browse --at "page=main&div=VHA&q=notes"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app, at)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Open at an address (query string, as in the web app)")
	return cmd
}

func runBrowse(cmd *cobra.Command, app *App, at string) error {
	st, err := app.store()
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := st.Init(cmd.Context()); err != nil {
		return writeErr(cmd, err)
	}

	// Log lines would tear the alternate screen.
	app.log.SetOutput(io.Discard)

	return tui.Run(cmd.Context(), tui.Options{
		Resolver:         app.resolver(st),
		Facets:           st,
		Favorites:        app.favorites(st),
		Counter:          st,
		AutoAdvanceDelay: app.cfg.Server.AutoAdvanceDelay,
		GlamourStyle:     app.cfg.TUI.GlamourStyle,
		Start:            nav.ParseAddress(at),
		Log:              app.log,
	})
}
