package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"lunchpad-cli/internal/model"

	"github.com/sirupsen/logrus"
)

// Discoverer finds installed applications. Each scan yields fresh ids.
type Discoverer interface {
	Scan(ctx context.Context, dirs []string) ([]model.Application, error)
}

// Source tells where Hydrate took the layout from.
type Source string

const (
	SourcePersisted  Source = "persisted"
	SourceDiscovered Source = "discovered"
)

// Layout owns the ordered top-level items of the launcher grid.
//
// All operations are serialised by one mutex, so a mutation always runs to
// completion before the next one starts. Every committed mutation bumps the
// version, is written through the Persister and is then published to
// subscribers. Operations addressed to an unknown id are no-ops.
type Layout struct {
	mu      sync.Mutex
	items   []model.Item
	version uint64
	persist Persister
	log     logrus.FieldLogger

	subsMu  sync.Mutex
	subs    map[int]func([]model.Item)
	nextSub int
}

// NewLayout returns an empty layout. persist may be nil (nothing is written).
func NewLayout(persist Persister, log logrus.FieldLogger) *Layout {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Layout{
		persist: persist,
		log:     log.WithField("component", "layout"),
		subs:    map[int]func([]model.Item){},
	}
}

// Items returns a deep copy of the current layout.
func (l *Layout) Items() []model.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := model.CloneItems(l.items)
	if out == nil {
		out = []model.Item{}
	}
	return out
}

func (l *Layout) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Version increases by one for every committed mutation.
func (l *Layout) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Find looks up a top-level item by id.
func (l *Layout) Find(id string) (model.Item, int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := model.IndexOf(l.items, id)
	if idx < 0 {
		return model.Item{}, -1, false
	}
	return l.items[idx].Clone(), idx, true
}

// FindFolder looks up a top-level folder by id.
func (l *Layout) FindFolder(id string) (model.Folder, bool) {
	it, _, ok := l.Find(id)
	if !ok {
		return model.Folder{}, false
	}
	return it.AsFolder()
}

// Subscribe registers fn to receive a snapshot after every committed
// mutation. The returned func removes the subscription.
func (l *Layout) Subscribe(fn func(items []model.Item)) (cancel func()) {
	l.subsMu.Lock()
	defer l.subsMu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.subsMu.Lock()
		defer l.subsMu.Unlock()
		delete(l.subs, id)
	}
}

// Update runs fn on a working copy of the items. When fn reports a change the
// returned slice becomes the layout, is persisted and published; otherwise
// nothing happens. fn runs with the layout locked and must not call back into l.
func (l *Layout) Update(fn func(items []model.Item) ([]model.Item, bool)) bool {
	l.mu.Lock()
	next, changed := fn(model.CloneItems(l.items))
	if !changed {
		l.mu.Unlock()
		return false
	}
	snapshot := l.commitLocked(next)
	l.mu.Unlock()

	l.publish(snapshot)
	return true
}

// SetItems replaces the whole layout in one assignment.
func (l *Layout) SetItems(items []model.Item) {
	l.Update(func([]model.Item) ([]model.Item, bool) {
		return model.CloneItems(items), true
	})
}

func (l *Layout) commitLocked(next []model.Item) []model.Item {
	if next == nil {
		next = []model.Item{}
	}
	l.items = next
	l.version++
	l.saveLocked(context.Background())
	return model.CloneItems(l.items)
}

// saveLocked is best effort: a failed write is logged and the in-memory
// layout stays authoritative until the next successful save.
func (l *Layout) saveLocked(ctx context.Context) {
	if l.persist == nil {
		return
	}
	if err := l.persist.Save(ctx, l.items); err != nil {
		l.log.WithError(err).WithField("items", len(l.items)).Warn("failed to save layout")
	}
}

func (l *Layout) publish(items []model.Item) {
	l.subsMu.Lock()
	fns := make([]func([]model.Item), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subsMu.Unlock()
	for _, fn := range fns {
		fn(model.CloneItems(items))
	}
}

// Replace swaps the item with the given id for item.
func (l *Layout) Replace(id string, item model.Item) bool {
	if !item.Valid() {
		return false
	}
	return l.Update(func(items []model.Item) ([]model.Item, bool) {
		idx := model.IndexOf(items, id)
		if idx < 0 {
			return items, false
		}
		items[idx] = item.Clone()
		return items, true
	})
}

// Insert places item at index, clamped to [0, len].
func (l *Layout) Insert(index int, item model.Item) bool {
	if !item.Valid() {
		return false
	}
	return l.Update(func(items []model.Item) ([]model.Item, bool) {
		if model.IndexOf(items, item.ID()) >= 0 {
			return items, false
		}
		return insertAt(items, index, item.Clone()), true
	})
}

func (l *Layout) Remove(id string) (model.Item, bool) {
	var removed model.Item
	ok := l.Update(func(items []model.Item) ([]model.Item, bool) {
		idx := model.IndexOf(items, id)
		if idx < 0 {
			return items, false
		}
		removed = items[idx]
		return removeAt(items, idx), true
	})
	return removed, ok
}

// AppendToFolder adds app to the end of the folder's apps.
func (l *Layout) AppendToFolder(app model.Application, folderID string) bool {
	return l.Update(func(items []model.Item) ([]model.Item, bool) {
		idx := folderIndex(items, folderID)
		if idx < 0 {
			return items, false
		}
		f, _ := items[idx].AsFolder()
		if f.IndexOf(app.ID) >= 0 {
			return items, false
		}
		f.Apps = append(f.Apps, app)
		items[idx] = model.FolderItem(f)
		return items, true
	})
}

// RemoveAppFromFolder takes app out of the folder and puts it at index 0.
//
// A folder left with one app collapses in place into that bare app; a folder
// left with none is removed. If app already sits at the top level it is moved
// to the front instead of duplicated.
func (l *Layout) RemoveAppFromFolder(app model.Application, folderID string) bool {
	return l.Update(func(items []model.Item) ([]model.Item, bool) {
		idx := folderIndex(items, folderID)
		if idx < 0 {
			return items, false
		}
		f, _ := items[idx].AsFolder()
		if i := f.IndexOf(app.ID); i >= 0 {
			f.Apps = append(f.Apps[:i], f.Apps[i+1:]...)
		}

		switch len(f.Apps) {
		case 0:
			items = removeAt(items, idx)
		case 1:
			items[idx] = model.AppItem(f.Apps[0])
		default:
			items[idx] = model.FolderItem(f)
		}

		if j := model.IndexOf(items, app.ID); j >= 0 {
			items = removeAt(items, j)
		}
		return insertAt(items, 0, model.AppItem(app)), true
	})
}

// RenameFolder changes only the folder's name.
func (l *Layout) RenameFolder(folderID, name string) bool {
	return l.Update(func(items []model.Item) ([]model.Item, bool) {
		idx := folderIndex(items, folderID)
		if idx < 0 {
			return items, false
		}
		f, _ := items[idx].AsFolder()
		if f.Name == name {
			return items, false
		}
		f.Name = name
		items[idx] = model.FolderItem(f)
		return items, true
	})
}

// Hydrate fills an empty layout at startup. A persisted, non-empty layout
// wins; otherwise (missing, unreadable or undecodable) the layout is seeded
// from discovery and saved. Persisted folders with fewer than two apps are
// collapsed and the repaired layout is written back.
func (l *Layout) Hydrate(ctx context.Context, d Discoverer, dirs []string) (Source, error) {
	if l.persist != nil {
		items, err := l.persist.Load(ctx)
		var repaired bool
		if err == nil {
			items, repaired = model.NormalizeLayout(items)
		}
		switch {
		case err == nil && len(items) > 0:
			if verr := model.ValidateLayout(items); verr != nil {
				l.log.WithError(verr).Warn("persisted layout is inconsistent; rediscovering applications")
				break
			}
			l.mu.Lock()
			l.items = items
			l.version++
			if repaired {
				l.log.Info("collapsed persisted folders holding fewer than two apps")
				l.saveLocked(ctx)
			}
			snapshot := model.CloneItems(l.items)
			l.mu.Unlock()
			l.publish(snapshot)
			return SourcePersisted, nil
		case err == nil, errors.Is(err, ErrNotFound):
			l.log.Debug("no persisted layout; discovering applications")
		default:
			l.log.WithError(err).Warn("failed to load layout; discovering applications")
		}
	}
	if err := l.seed(ctx, d, dirs, false); err != nil {
		return "", err
	}
	return SourceDiscovered, nil
}

// Reset reseeds the layout from a fresh scan and replaces the persisted
// layout. When the scan fails both the saved and the in-memory layout are
// left as they were.
func (l *Layout) Reset(ctx context.Context, d Discoverer, dirs []string) error {
	return l.seed(ctx, d, dirs, true)
}

func (l *Layout) seed(ctx context.Context, d Discoverer, dirs []string, replace bool) error {
	if d == nil {
		return errors.New("no application discoverer configured")
	}
	apps, err := d.Scan(ctx, dirs)
	if err != nil {
		return fmt.Errorf("discover applications: %w", err)
	}
	if replace && l.persist != nil {
		if err := l.persist.Clear(ctx); err != nil {
			l.log.WithError(err).Warn("failed to clear persisted layout")
		}
	}
	l.SetItems(ItemsFromApps(apps))
	l.log.WithField("apps", len(apps)).Info("seeded layout from discovery")
	return nil
}

// ItemsFromApps wraps each application as a bare top-level item.
func ItemsFromApps(apps []model.Application) []model.Item {
	items := make([]model.Item, 0, len(apps))
	for _, a := range apps {
		items = append(items, model.AppItem(a))
	}
	return items
}

func folderIndex(items []model.Item, folderID string) int {
	idx := model.IndexOf(items, folderID)
	if idx < 0 || !items[idx].IsFolder() {
		return -1
	}
	return idx
}

func insertAt(items []model.Item, index int, it model.Item) []model.Item {
	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}
	items = append(items, model.Item{})
	copy(items[index+1:], items[index:])
	items[index] = it
	return items
}

func removeAt(items []model.Item, index int) []model.Item {
	return append(items[:index], items[index+1:]...)
}
