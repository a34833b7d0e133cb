package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lunchpad-cli/internal/format"
	"lunchpad-cli/internal/model"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the layout as tagged records (no envelope), suitable for import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			items := e.layout.Items()
			switch app.Format {
			case "yaml", "yml":
				return format.WriteYAML(cmd.OutOrStdout(), items)
			default:
				b, err := model.EncodeLayout(items, app.PrettyJSON)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
		},
	}
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the layout with tagged records read from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := decodeLayoutFile(args[0], b)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("import %s: %w", args[0], err))
			}
			items, _ = model.NormalizeLayout(items)
			if err := model.ValidateLayout(items); err != nil {
				return writeErr(cmd, fmt.Errorf("import %s: %w", args[0], err))
			}

			e, err := newEnv(app, cmd.ErrOrStderr())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			e.layout.SetItems(items)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"imported": len(items),
				"version":  e.layout.Version(),
			}})
		},
	}
	return cmd
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// decodeLayoutFile accepts JSON, or YAML when the file says so by extension
// or does not start like a JSON array.
func decodeLayoutFile(name string, b []byte) ([]model.Item, error) {
	ext := strings.ToLower(filepath.Ext(name))
	isYAML := ext == ".yaml" || ext == ".yml" || !bytes.HasPrefix(bytes.TrimSpace(b), []byte("["))
	if isYAML {
		j, err := format.YAMLToJSON(b)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		b = j
	}
	return model.DecodeLayout(b)
}
