package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lunchpad-cli/internal/model"
	"lunchpad-cli/internal/nav"

	"github.com/spf13/cobra"
)

type itemView struct {
	Index int                 `json:"index"`
	Kind  model.Kind          `json:"kind"`
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Path  string              `json:"path,omitempty"`
	Apps  []model.Application `json:"apps,omitempty"`
}

func viewItem(index int, it model.Item) itemView {
	v := itemView{Index: index, Kind: it.Kind(), ID: it.ID(), Name: it.DisplayName()}
	if app, ok := it.AsApplication(); ok {
		v.Path = app.Path
	}
	if f, ok := it.AsFolder(); ok {
		v.Apps = f.Apps
	}
	return v
}

func viewItems(items []model.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for i, it := range items {
		out = append(out, viewItem(i, it))
	}
	return out
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the layout in grid order (indices are positions in the filtered view)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			view := nav.Filter(e.layout.Items(), filter)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"version": e.layout.Version(),
				"filter":  filter,
				"count":   len(view),
				"items":   viewItems(view),
			}})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only items whose name contains this text (case-insensitive)")
	return cmd
}

func newDropCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <dragged-id> <target-id>",
		Short: "Drop one item onto another (creates a folder or appends to the target folder)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			draggedID, targetID := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			res, err := e.engine.Drop(draggedID, targetID)
			if err != nil {
				return writeErr(cmd, explainDrop(err, draggedID, targetID))
			}
			data := map[string]any{
				"outcome":  res.Outcome,
				"folderId": res.FolderID,
				"index":    res.Index,
			}
			if f, ok := e.layout.FindFolder(res.FolderID); ok {
				data["folder"] = viewItem(res.Index, model.FolderItem(f))
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	return cmd
}

func newExtractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <app-id> <folder-id>",
		Short: "Take an application out of a folder and put it first in the grid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			appID, folderID := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			if err := e.engine.ExtractByID(appID, folderID); err != nil {
				return writeErr(cmd, err)
			}
			_, stillThere := e.layout.FindFolder(folderID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"appId":     appID,
				"folderId":  folderID,
				"dissolved": !stillThere,
				"items":     viewItems(e.layout.Items()),
			}})
		},
	}
	return cmd
}

func newRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <folder-id> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, name := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			if name == "" {
				return writeErr(cmd, errors.New("folder name must not be empty"))
			}

			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if !e.engine.Rename(folderID, name) {
				return writeErr(cmd, errNotFound("folder", folderID))
			}
			f, _ := e.layout.FindFolder(folderID)
			_, idx, _ := e.layout.Find(folderID)
			return writeOut(cmd, app, map[string]any{"data": viewItem(idx, model.FolderItem(f))})
		},
	}
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget folders and order, then rebuild the layout from a fresh scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(app, cmd.ErrOrStderr())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if err := e.layout.Reset(cmd.Context(), e.scanner, e.cfg.AppDirs); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"version": e.layout.Version(),
				"count":   e.layout.Len(),
				"items":   viewItems(e.layout.Items()),
			}})
		},
	}
	return cmd
}

func newOpenCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "open <id|index>",
		Short: "Activate an item: launch an application or list a folder's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			s := nav.NewSession(e.layout, nav.WithOpener(e.launcher), nav.WithLogger(e.log))
			defer s.Close()

			ref := strings.TrimSpace(args[0])
			idx, err := resolveRef(s, ref, filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.Select(idx)

			act, err := s.Activate(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"kind": act.Kind,
				"item": viewItem(act.Index, act.Item),
			}})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Resolve a numeric index against this filtered view")
	return cmd
}

// resolveRef maps an index into the filtered view, or an id into the
// unfiltered one, and leaves the session showing that view.
func resolveRef(s *nav.Session, ref, filter string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		s.SetFilter(filter)
		if count := len(s.View()); n < 0 || n >= count {
			return 0, fmt.Errorf("index %d out of range (view has %d items)", n, count)
		}
		return n, nil
	}
	s.SetFilter("")
	if i := model.IndexOf(s.View(), ref); i >= 0 {
		return i, nil
	}
	return 0, errNotFound("item", ref)
}
