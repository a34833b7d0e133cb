package mutate

import (
	"io"
	"slices"
	"strings"

	"lunchpad-cli/internal/model"
	"lunchpad-cli/internal/store"

	"github.com/sirupsen/logrus"
)

// DefaultFolderName is the name given to folders formed by dropping one app on another.
const DefaultFolderName = "New Folder"

type Outcome string

const (
	OutcomeReject       Outcome = "reject"
	OutcomeCreateFolder Outcome = "create-folder"
	OutcomeAppend       Outcome = "append"
)

type Reason string

const (
	ReasonNone          Reason = ""
	ReasonSameItem      Reason = "same-item"
	ReasonDraggedFolder Reason = "dragged-folder"
	ReasonInvalidItem   Reason = "invalid-item"
	ReasonAlreadyInside Reason = "already-in-folder"
)

type Decision struct {
	Outcome Outcome
	Reason  Reason
}

// Decide classifies a drop without touching any state.
//
// Folders are never dragged as a unit, so a dragged folder is refused whatever
// the target is (this includes folder onto folder). An app whose id the target
// folder already holds is refused so ids stay unique across the layout.
func Decide(dragged, target model.Item) Decision {
	if !dragged.Valid() || !target.Valid() {
		return Decision{Outcome: OutcomeReject, Reason: ReasonInvalidItem}
	}
	if dragged.ID() == target.ID() {
		return Decision{Outcome: OutcomeReject, Reason: ReasonSameItem}
	}
	if dragged.IsFolder() {
		return Decision{Outcome: OutcomeReject, Reason: ReasonDraggedFolder}
	}
	if f, ok := target.AsFolder(); ok {
		if f.IndexOf(dragged.ID()) >= 0 {
			return Decision{Outcome: OutcomeReject, Reason: ReasonAlreadyInside}
		}
		return Decision{Outcome: OutcomeAppend}
	}
	return Decision{Outcome: OutcomeCreateFolder}
}

type Result struct {
	Outcome Outcome
	// FolderID is the folder that was created or appended to.
	FolderID string
	// Index is the folder's top-level position after the drop.
	Index int
}

// Engine applies drag-and-drop gestures to a layout.
type Engine struct {
	layout     *store.Layout
	folderName string
	log        logrus.FieldLogger
}

type Option func(*Engine)

func WithFolderName(name string) Option {
	return func(e *Engine) {
		if strings.TrimSpace(name) != "" {
			e.folderName = name
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.WithField("component", "mutate")
		}
	}
}

func NewEngine(layout *store.Layout, opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	e := &Engine{layout: layout, folderName: DefaultFolderName, log: discard}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Drop drops the top-level item draggedID onto the top-level item targetID.
//
// The dragged item is removed before the insertion point is computed, and the
// target is looked up again by id afterwards, so its index always refers to
// the post-removal sequence. A rejected or unresolvable drop leaves the layout
// untouched and returns a RejectedError or NotFoundError.
func (e *Engine) Drop(draggedID, targetID string) (Result, error) {
	var (
		res    Result
		errOut error
	)
	e.layout.Update(func(items []model.Item) ([]model.Item, bool) {
		di := model.IndexOf(items, draggedID)
		if di < 0 {
			errOut = NotFoundError{Kind: "item", ID: draggedID}
			return items, false
		}
		ti := model.IndexOf(items, targetID)
		if ti < 0 {
			errOut = NotFoundError{Kind: "item", ID: targetID}
			return items, false
		}
		dragged, target := items[di], items[ti]

		dec := Decide(dragged, target)
		if dec.Outcome == OutcomeReject {
			errOut = RejectedError{Reason: dec.Reason}
			return items, false
		}
		draggedApp, _ := dragged.AsApplication()

		items = slices.Delete(items, di, di+1)
		ti = model.IndexOf(items, targetID)

		switch dec.Outcome {
		case OutcomeCreateFolder:
			targetApp, _ := target.AsApplication()
			items = slices.Delete(items, ti, ti+1)
			folder := model.NewFolder(e.folderName, draggedApp, targetApp)
			items = slices.Insert(items, ti, model.FolderItem(folder))
			res = Result{Outcome: dec.Outcome, FolderID: folder.ID, Index: ti}
		case OutcomeAppend:
			folder, _ := items[ti].AsFolder()
			folder.Apps = append(folder.Apps, draggedApp)
			items[ti] = model.FolderItem(folder)
			res = Result{Outcome: dec.Outcome, FolderID: folder.ID, Index: ti}
		}
		return items, true
	})
	if errOut != nil {
		e.log.WithError(errOut).WithField("dragged", draggedID).WithField("target", targetID).Debug("drop refused")
		return Result{Outcome: OutcomeReject}, errOut
	}
	e.log.WithField("outcome", res.Outcome).WithField("folder", res.FolderID).Debug("drop committed")
	return res, nil
}

// Extract moves app out of the folder; see store.Layout.RemoveAppFromFolder.
func (e *Engine) Extract(app model.Application, folderID string) bool {
	return e.layout.RemoveAppFromFolder(app, folderID)
}

// ExtractByID resolves the app inside the folder before extracting it.
func (e *Engine) ExtractByID(appID, folderID string) error {
	f, ok := e.layout.FindFolder(folderID)
	if !ok {
		return NotFoundError{Kind: "folder", ID: folderID}
	}
	i := f.IndexOf(appID)
	if i < 0 {
		return NotFoundError{Kind: "app", ID: appID}
	}
	e.layout.RemoveAppFromFolder(f.Apps[i], folderID)
	return nil
}

func (e *Engine) Rename(folderID, name string) bool {
	return e.layout.RenameFolder(folderID, name)
}
