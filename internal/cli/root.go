package cli

import (
	"fmt"
	"os"
	"strings"

	"lunchpad-cli/internal/config"
	"lunchpad-cli/internal/format"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type App struct {
	ConfigFile string
	PrettyJSON bool
	Format     string

	v *viper.Viper
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "lunchpad",
		Short:        "Lunchpad: a terminal application launcher grid",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive grid
  lunchpad

  # Scriptable commands
  lunchpad list --filter term
  lunchpad drop <dragged-id> <target-id>
  lunchpad nav --from 4 --dir up --width 54

  # Back up and restore the layout
  lunchpad export --format yaml > layout.yaml
  lunchpad import layout.yaml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive grid.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.Format = strings.ToLower(strings.TrimSpace(app.Format))
		switch app.Format {
		case "json", "yaml", "yml":
		default:
			return writeErr(cmd, fmt.Errorf("unsupported format: %s (expected json|yaml)", app.Format))
		}
		v, err := config.New(app.ConfigFile)
		if err != nil {
			return writeErr(cmd, err)
		}
		flags := cmd.Root().PersistentFlags()
		for key, name := range map[string]string{
			config.KeyDataDir:    "data-dir",
			config.KeyStorage:    "storage",
			config.KeyAppDirs:    "app-dirs",
			config.KeyItemWidth:  "item-width",
			config.KeyFolderName: "folder-name",
			config.KeyLogLevel:   "log-level",
		} {
			if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
				return err
			}
		}
		app.v = v
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", envOr("LUNCHPAD_CONFIG", ""), "Path to config file (default: $LUNCHPAD_CONFIG_DIR/config.yaml or ~/.config/lunchpad/config.yaml)")
	cmd.PersistentFlags().String("data-dir", "", "Directory holding the saved layout (overrides data_dir)")
	cmd.PersistentFlags().String("storage", "", "Layout storage backend (json|sqlite)")
	cmd.PersistentFlags().StringSlice("app-dirs", nil, "Application directories to scan (overrides app_dirs)")
	cmd.PersistentFlags().Int("item-width", 0, "Grid cell width in terminal columns (overrides item_width)")
	cmd.PersistentFlags().String("folder-name", "", "Name given to folders created by a drop (overrides folder_name)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LUNCHPAD_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newScanCmd(app))
	cmd.AddCommand(newDropCmd(app))
	cmd.AddCommand(newExtractCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newNavCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
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
