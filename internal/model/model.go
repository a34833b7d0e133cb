package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Application is an installed application discovered on disk.
// Name and Path never change after creation; a re-scan yields new ids.
type Application struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type Folder struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Apps []Application `json:"apps"`
}

func newID() string {
	return uuid.NewString()
}

func NewApplication(name, path string) Application {
	return Application{ID: newID(), Name: name, Path: path}
}

func NewFolder(name string, apps ...Application) Folder {
	return Folder{ID: newID(), Name: name, Apps: append([]Application{}, apps...)}
}

// Clone returns a folder whose app slice does not alias f.Apps.
func (f Folder) Clone() Folder {
	out := f
	out.Apps = append([]Application{}, f.Apps...)
	return out
}

// IndexOf returns the position of the app with the given id, or -1.
func (f Folder) IndexOf(appID string) int {
	for i, a := range f.Apps {
		if a.ID == appID {
			return i
		}
	}
	return -1
}

type Kind string

const (
	KindApplication Kind = "application"
	KindFolder      Kind = "folder"
)

// Item is one top-level cell of the launcher grid: either a bare application
// or a folder. The zero Item carries neither and is not valid.
type Item struct {
	kind   Kind
	app    Application
	folder Folder
}

func AppItem(app Application) Item {
	return Item{kind: KindApplication, app: app}
}

func FolderItem(f Folder) Item {
	return Item{kind: KindFolder, folder: f.Clone()}
}

func (it Item) Kind() Kind { return it.kind }

func (it Item) Valid() bool {
	switch it.kind {
	case KindApplication:
		return strings.TrimSpace(it.app.ID) != ""
	case KindFolder:
		return strings.TrimSpace(it.folder.ID) != ""
	default:
		return false
	}
}

// ID is the id of the wrapped application or folder.
func (it Item) ID() string {
	switch it.kind {
	case KindApplication:
		return it.app.ID
	case KindFolder:
		return it.folder.ID
	default:
		return ""
	}
}

func (it Item) IsFolder() bool { return it.kind == KindFolder }

func (it Item) AsApplication() (Application, bool) {
	if it.kind != KindApplication {
		return Application{}, false
	}
	return it.app, true
}

// AsFolder returns a copy of the folder payload; mutating it does not affect it.
func (it Item) AsFolder() (Folder, bool) {
	if it.kind != KindFolder {
		return Folder{}, false
	}
	return it.folder.Clone(), true
}

// DisplayName is the label shown in the grid and matched by the search filter.
func (it Item) DisplayName() string {
	switch it.kind {
	case KindApplication:
		return it.app.Name
	case KindFolder:
		return it.folder.Name
	default:
		return ""
	}
}

// Clone returns an item that shares no mutable state with it.
func (it Item) Clone() Item {
	if it.kind == KindFolder {
		it.folder = it.folder.Clone()
	}
	return it
}

// CloneItems deep-copies a layout.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// IndexOf returns the position of the top-level item with the given id, or -1.
func IndexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID() == id {
			return i
		}
	}
	return -1
}

// ValidateLayout checks that every id, top-level or inside a folder, is used
// exactly once across the layout.
func ValidateLayout(items []Item) error {
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if !it.Valid() {
			return &DecodeError{Index: i, Err: ErrUnrecognizedVariant}
		}
		if seen[it.ID()] {
			return fmt.Errorf("duplicate item id: %s", it.ID())
		}
		seen[it.ID()] = true
	}
	for _, it := range items {
		f, ok := it.AsFolder()
		if !ok {
			continue
		}
		for _, a := range f.Apps {
			if seen[a.ID] {
				return fmt.Errorf("duplicate app id %s in folder %s", a.ID, f.ID)
			}
			seen[a.ID] = true
		}
	}
	return nil
}

// NormalizeLayout removes folders that hold no apps and replaces a folder
// holding a single app with that app at the same position. changed reports
// whether anything was rewritten; items itself is never modified.
func NormalizeLayout(items []Item) (out []Item, changed bool) {
	out = make([]Item, 0, len(items))
	for _, it := range items {
		f, ok := it.AsFolder()
		switch {
		case !ok || len(f.Apps) > 1:
			out = append(out, it.Clone())
		case len(f.Apps) == 1:
			out = append(out, AppItem(f.Apps[0]))
			changed = true
		default:
			changed = true
		}
	}
	return out, changed
}
