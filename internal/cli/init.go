package cli

import (
	"os"

	"github.com/spf13/cobra"

	"promptdeck/internal/format"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog database and a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Init(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			// Never overwrite an existing config.
			created := false
			if _, err := os.Stat(app.ConfigPath); os.IsNotExist(err) {
				if err := app.cfg.Save(app.ConfigPath); err != nil {
					return writeErr(cmd, err)
				}
				created = true
			}
			app.log.WithField("db", st.Path).Debug("store.init")

			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"db":            st.Path,
					"config":        app.ConfigPath,
					"configCreated": created,
				},
				Hints: []string{
					`promptdeck tasks add --title "..." --div VHA --cat Medical`,
					"promptdeck serve",
				},
			})
		},
	}
}
