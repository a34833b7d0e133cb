package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"lunchpad-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	items   []model.Item
	loadErr error
	saveErr error
	saves   int
	cleared int
}

func (m *memPersister) Load(context.Context) ([]model.Item, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.items == nil {
		return nil, ErrNotFound
	}
	return model.CloneItems(m.items), nil
}

func (m *memPersister) Save(_ context.Context, items []model.Item) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = model.CloneItems(items)
	return nil
}

func (m *memPersister) Clear(context.Context) error {
	m.cleared++
	m.items = nil
	return nil
}

type fakeDiscoverer struct {
	apps  []model.Application
	err   error
	calls int
}

func (f *fakeDiscoverer) Scan(context.Context, []string) ([]model.Application, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Application, 0, len(f.apps))
	for _, a := range f.apps {
		out = append(out, model.NewApplication(a.Name, a.Path))
	}
	return out, nil
}

func app(id, name string) model.Application {
	return model.Application{ID: id, Name: name, Path: "/Applications/" + name + ".app"}
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func newTestLayout(t *testing.T, items ...model.Item) (*Layout, *memPersister) {
	t.Helper()
	p := &memPersister{}
	l := NewLayout(p, nil)
	l.SetItems(items)
	p.saves = 0
	return l, p
}

func TestReplace_UnknownIDIsNoop(t *testing.T) {
	l, p := newTestLayout(t, model.AppItem(app("a", "A")))
	v := l.Version()

	assert.False(t, l.Replace("missing", model.AppItem(app("b", "B"))))
	assert.Equal(t, v, l.Version())
	assert.Equal(t, 0, p.saves)

	require.True(t, l.Replace("a", model.AppItem(app("b", "B"))))
	assert.Equal(t, []string{"b"}, ids(l.Items()))
	assert.Equal(t, 1, p.saves)
}

func TestRemoveAppFromFolder_CollapsesSingleRemainingApp(t *testing.T) {
	a, b := app("a", "A"), app("b", "B")
	c := app("c", "C")
	folder := model.Folder{ID: "f", Name: "Work", Apps: []model.Application{a, b}}
	l, p := newTestLayout(t, model.AppItem(c), model.FolderItem(folder))

	require.True(t, l.RemoveAppFromFolder(a, "f"))

	items := l.Items()
	assert.Equal(t, []string{"a", "c", "b"}, ids(items))
	got, ok := items[2].AsApplication()
	require.True(t, ok, "folder should collapse into a bare app")
	assert.Equal(t, b, got)
	assert.Equal(t, 1, p.saves)
	assert.Equal(t, ids(items), ids(p.items))
}

func TestRemoveAppFromFolder_KeepsLargerFolder(t *testing.T) {
	a, b, c := app("a", "A"), app("b", "B"), app("c", "C")
	folder := model.Folder{ID: "f", Name: "New Folder", Apps: []model.Application{a, b, c}}
	l, _ := newTestLayout(t, model.FolderItem(folder))

	require.True(t, l.RemoveAppFromFolder(a, "f"))

	items := l.Items()
	assert.Equal(t, []string{"a", "f"}, ids(items))
	f, ok := items[1].AsFolder()
	require.True(t, ok)
	assert.Equal(t, "New Folder", f.Name)
	assert.Equal(t, []model.Application{b, c}, f.Apps)
}

func TestRemoveAppFromFolder_EmptyFolderIsRemoved(t *testing.T) {
	a := app("a", "A")
	folder := model.Folder{ID: "f", Name: "Solo", Apps: []model.Application{a}}
	l, _ := newTestLayout(t, model.AppItem(app("x", "X")), model.FolderItem(folder))

	require.True(t, l.RemoveAppFromFolder(a, "f"))
	assert.Equal(t, []string{"a", "x"}, ids(l.Items()))
}

func TestRemoveAppFromFolder_UnknownFolderIsNoop(t *testing.T) {
	l, p := newTestLayout(t, model.AppItem(app("a", "A")))
	assert.False(t, l.RemoveAppFromFolder(app("z", "Z"), "nope"))
	assert.False(t, l.RemoveAppFromFolder(app("z", "Z"), "a"), "an app id is not a folder")
	assert.Equal(t, []string{"a"}, ids(l.Items()))
	assert.Equal(t, 0, p.saves)
}

func TestRemoveAppFromFolder_DoesNotDuplicateTopLevelApp(t *testing.T) {
	a, b, c := app("a", "A"), app("b", "B"), app("c", "C")
	folder := model.Folder{ID: "f", Name: "F", Apps: []model.Application{b, c}}
	l, _ := newTestLayout(t, model.FolderItem(folder), model.AppItem(a))

	// a is not in the folder; it still surfaces at the front, once.
	require.True(t, l.RemoveAppFromFolder(a, "f"))
	assert.Equal(t, []string{"a", "f"}, ids(l.Items()))
	require.NoError(t, model.ValidateLayout(l.Items()))
}

func TestRenameFolder(t *testing.T) {
	folder := model.Folder{ID: "f", Name: "New Folder", Apps: []model.Application{app("a", "A"), app("b", "B")}}
	l, p := newTestLayout(t, model.FolderItem(folder))

	require.True(t, l.RenameFolder("f", "Games"))
	f, ok := l.FindFolder("f")
	require.True(t, ok)
	assert.Equal(t, "Games", f.Name)
	assert.Len(t, f.Apps, 2)
	assert.Equal(t, 1, p.saves)

	assert.False(t, l.RenameFolder("missing", "x"))
	assert.Equal(t, 1, p.saves)
}

func TestAppendToFolder(t *testing.T) {
	folder := model.Folder{ID: "f", Name: "F", Apps: []model.Application{app("a", "A"), app("b", "B")}}
	l, _ := newTestLayout(t, model.FolderItem(folder))

	require.True(t, l.AppendToFolder(app("c", "C"), "f"))
	assert.False(t, l.AppendToFolder(app("c", "C"), "f"), "duplicate app id")
	assert.False(t, l.AppendToFolder(app("d", "D"), "missing"))

	f, _ := l.FindFolder("f")
	assert.Equal(t, []string{"a", "b", "c"}, []string{f.Apps[0].ID, f.Apps[1].ID, f.Apps[2].ID})
}

func TestInsertAndRemove(t *testing.T) {
	l, _ := newTestLayout(t, model.AppItem(app("a", "A")))

	require.True(t, l.Insert(99, model.AppItem(app("b", "B"))))
	require.True(t, l.Insert(-3, model.AppItem(app("c", "C"))))
	assert.False(t, l.Insert(0, model.AppItem(app("a", "A"))), "duplicate id")
	assert.False(t, l.Insert(0, model.Item{}), "zero item")
	assert.Equal(t, []string{"c", "a", "b"}, ids(l.Items()))

	removed, ok := l.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", removed.ID())
	_, ok = l.Remove("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"c", "b"}, ids(l.Items()))
}

func TestItems_ReturnsIndependentCopy(t *testing.T) {
	folder := model.Folder{ID: "f", Name: "F", Apps: []model.Application{app("a", "A"), app("b", "B")}}
	l, _ := newTestLayout(t, model.FolderItem(folder))

	snap := l.Items()
	snap[0] = model.AppItem(app("x", "X"))

	assert.Equal(t, []string{"f"}, ids(l.Items()))
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	l, p := newTestLayout(t, model.FolderItem(model.Folder{ID: "f", Name: "F", Apps: []model.Application{app("a", "A"), app("b", "B")}}))
	p.saveErr = errors.New("disk full")

	require.True(t, l.RenameFolder("f", "Renamed"))
	f, _ := l.FindFolder("f")
	assert.Equal(t, "Renamed", f.Name)
	assert.Equal(t, 1, p.saves)
}

func TestSubscribe_ReceivesCommittedSnapshots(t *testing.T) {
	l, _ := newTestLayout(t, model.AppItem(app("a", "A")))

	var got [][]string
	cancel := l.Subscribe(func(items []model.Item) {
		got = append(got, ids(items))
	})

	l.Insert(1, model.AppItem(app("b", "B")))
	l.RenameFolder("missing", "x")
	cancel()
	l.Insert(2, model.AppItem(app("c", "C")))

	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestHydrate_PersistedStateWins(t *testing.T) {
	p := &memPersister{items: []model.Item{model.AppItem(app("a", "A"))}}
	d := &fakeDiscoverer{apps: []model.Application{app("", "Other")}}
	l := NewLayout(p, nil)

	src, err := l.Hydrate(context.Background(), d, nil)
	require.NoError(t, err)
	assert.Equal(t, SourcePersisted, src)
	assert.Equal(t, 0, d.calls)
	assert.Equal(t, []string{"a"}, ids(l.Items()))
}

func TestHydrate_FallsBackToDiscovery(t *testing.T) {
	cases := map[string]*memPersister{
		"missing":      {},
		"empty":        {items: []model.Item{}},
		"load failure": {loadErr: &model.DecodeError{Index: 0, Err: model.ErrUnrecognizedVariant}},
		"inconsistent": {items: []model.Item{model.AppItem(app("a", "A")), model.AppItem(app("a", "A"))}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			d := &fakeDiscoverer{apps: []model.Application{app("", "Alpha"), app("", "Beta")}}
			l := NewLayout(p, nil)

			src, err := l.Hydrate(context.Background(), d, []string{"/Applications"})
			require.NoError(t, err)
			assert.Equal(t, SourceDiscovered, src)
			assert.Equal(t, 1, d.calls)

			items := l.Items()
			require.Len(t, items, 2)
			assert.Equal(t, "Alpha", items[0].DisplayName())
			assert.Equal(t, "Beta", items[1].DisplayName())
			assert.Equal(t, ids(items), ids(p.items), "seeded layout is persisted")
		})
	}
}

func TestHydrate_DiscoveryErrorLeavesLayoutEmpty(t *testing.T) {
	l := NewLayout(&memPersister{}, nil)
	_, err := l.Hydrate(context.Background(), &fakeDiscoverer{err: errors.New("boom")}, nil)
	require.Error(t, err)
	assert.Empty(t, l.Items())
}

func TestReset_ClearsAndReseeds(t *testing.T) {
	p := &memPersister{}
	d := &fakeDiscoverer{apps: []model.Application{app("", "Alpha")}}
	l := NewLayout(p, nil)
	l.SetItems([]model.Item{model.FolderItem(model.Folder{ID: "f", Name: "F", Apps: []model.Application{app("a", "A"), app("b", "B")}})})

	require.NoError(t, l.Reset(context.Background(), d, nil))
	assert.Equal(t, 1, p.cleared)
	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Alpha", items[0].DisplayName())
	assert.Equal(t, ids(items), ids(p.items))
}

func TestReset_ScanFailureKeepsSavedLayout(t *testing.T) {
	p := &memPersister{}
	l := NewLayout(p, nil)
	l.SetItems([]model.Item{model.FolderItem(model.Folder{ID: "f", Name: "F", Apps: []model.Application{app("a", "A"), app("b", "B")}})})
	version := l.Version()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Reset(ctx, &fakeDiscoverer{err: context.Canceled}, nil)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 0, p.cleared)
	assert.Equal(t, []string{"f"}, ids(p.items))
	assert.Equal(t, []string{"f"}, ids(l.Items()))
	assert.Equal(t, version, l.Version())
}

func TestHydrate_CollapsesUndersizedFolders(t *testing.T) {
	p := &memPersister{items: []model.Item{
		model.FolderItem(model.Folder{ID: "solo", Name: "Solo", Apps: []model.Application{app("a", "A")}}),
		model.FolderItem(model.Folder{ID: "empty", Name: "Empty", Apps: []model.Application{}}),
		model.FolderItem(model.Folder{ID: "f", Name: "F", Apps: []model.Application{app("b", "B"), app("c", "C")}}),
	}}
	d := &fakeDiscoverer{}
	l := NewLayout(p, nil)

	src, err := l.Hydrate(context.Background(), d, nil)
	require.NoError(t, err)
	assert.Equal(t, SourcePersisted, src)
	assert.Equal(t, 0, d.calls)
	assert.Equal(t, []string{"a", "f"}, ids(l.Items()))
	assert.Equal(t, []string{"a", "f"}, ids(p.items), "repaired layout is saved")
}

func TestHydrate_SharedIDRediscovers(t *testing.T) {
	x := app("x", "X")
	p := &memPersister{items: []model.Item{
		model.AppItem(x),
		model.FolderItem(model.Folder{ID: "f", Name: "F", Apps: []model.Application{x, app("y", "Y")}}),
	}}
	d := &fakeDiscoverer{apps: []model.Application{app("", "Alpha")}}
	l := NewLayout(p, nil)

	src, err := l.Hydrate(context.Background(), d, nil)
	require.NoError(t, err)
	assert.Equal(t, SourceDiscovered, src)
	assert.Equal(t, 1, d.calls)
}

func TestFileStoreAndSQLiteStore_RoundTrip(t *testing.T) {
	a, b, c := model.NewApplication("A", "/a"), model.NewApplication("B", "/b"), model.NewApplication("C", "/c")
	items := []model.Item{
		model.FolderItem(model.NewFolder("New Folder", a, b)),
		model.AppItem(c),
	}

	for _, backend := range []string{BackendJSON, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			p, err := Open(backend, t.TempDir())
			require.NoError(t, err)

			_, err = p.Load(ctx)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, p.Save(ctx, items))
			got, err := p.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, items, got)

			// Saving again replaces rather than appends.
			require.NoError(t, p.Save(ctx, items[1:]))
			got, err = p.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, items[1:], got)

			require.NoError(t, p.Clear(ctx))
			_, err = p.Load(ctx)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStore_CorruptFileIsDecodeError(t *testing.T) {
	dir := t.TempDir()
	fs := &FileStore{Dir: dir}
	require.NoError(t, os.WriteFile(fs.Path(), []byte(`[{"neither":{}}]`), 0o644))

	_, err := fs.Load(context.Background())
	require.ErrorIs(t, err, model.ErrUnrecognizedVariant)

	l := NewLayout(fs, nil)
	src, err := l.Hydrate(context.Background(), &fakeDiscoverer{apps: []model.Application{app("", "Alpha")}}, nil)
	require.NoError(t, err)
	assert.Equal(t, SourceDiscovered, src)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("mongo", t.TempDir())
	require.Error(t, err)
	_, err = Open(BackendJSON, " ")
	require.Error(t, err)
}
