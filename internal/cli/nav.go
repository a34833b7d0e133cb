package cli

import (
	"errors"

	"lunchpad-cli/internal/nav"

	"github.com/spf13/cobra"
)

func newNavCmd(app *App) *cobra.Command {
	var (
		from    int
		dir     string
		width   int
		columns int
		filter  string
	)

	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Take one arrow-key step through the grid and report where the selection lands",
		Example: `  # 5 items in 3 columns: up from index 4 lands on index 1
  lunchpad nav --from 4 --dir up --columns 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := nav.ParseDirection(dir)
			if err != nil {
				return writeErr(cmd, err)
			}

			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if columns <= 0 {
				columns = nav.Columns(width, e.cfg.ItemWidth)
			}

			s := nav.NewSession(e.layout, nav.WithLogger(e.log))
			defer s.Close()
			s.SetFilter(filter)
			if from >= 0 {
				s.Select(from)
			}
			start, hasStart := s.Selection()

			next, ok := s.Move(d, columns)
			if !ok {
				return writeErr(cmd, errors.New("nothing to navigate: the view is empty"))
			}
			it, _, _ := s.Selected()

			data := map[string]any{
				"direction": d.String(),
				"columns":   columns,
				"count":     len(s.View()),
				"index":     next,
				"item":      viewItem(next, it),
			}
			if hasStart {
				data["from"] = start
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().IntVar(&from, "from", -1, "Selected index before the step (default: nothing selected)")
	cmd.Flags().StringVar(&dir, "dir", "", "Direction: left|right|up|down")
	cmd.Flags().IntVar(&width, "width", 80, "Grid width in terminal cells; with item_width this gives the column count")
	cmd.Flags().IntVar(&columns, "columns", 0, "Column count (overrides --width)")
	cmd.Flags().StringVar(&filter, "filter", "", "Navigate the view filtered by this text")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
