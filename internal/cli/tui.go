package cli

import (
	"lunchpad-cli/internal/tui"

	"github.com/spf13/cobra"
)

// runTUI logs to the configured file since the grid owns the terminal.
func runTUI(cmd *cobra.Command, app *App) error {
	e, err := newEnv(app, nil)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer e.Close()

	if err := e.hydrate(cmd.Context()); err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), tui.Options{
		Layout:     e.layout,
		Engine:     e.engine,
		Opener:     e.launcher,
		Discoverer: e.scanner,
		AppDirs:    e.cfg.AppDirs,
		ItemWidth:  e.cfg.ItemWidth,
		Log:        e.log,
	})
}
