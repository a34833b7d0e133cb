package cli

import (
	"lunchpad-cli/internal/model"

	"github.com/spf13/cobra"
)

func newScanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the applications discovery finds, without touching the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(app, cmd.ErrOrStderr())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			apps, err := e.scanner.Scan(cmd.Context(), e.cfg.AppDirs)
			if err != nil {
				return writeErr(cmd, err)
			}
			if apps == nil {
				apps = []model.Application{}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dirs":  e.cfg.AppDirs,
				"count": len(apps),
				"apps":  apps,
			}})
		},
	}
	return cmd
}
