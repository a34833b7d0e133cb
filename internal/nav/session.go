package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"lunchpad-cli/internal/model"
	"lunchpad-cli/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoSelection = errors.New("nothing selected")
	ErrNoOpener    = errors.New("no application opener configured")
)

// Opener launches an application by filesystem path.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// FolderEnterer switches the presentation into the view of one folder.
type FolderEnterer interface {
	EnterFolder(folderID string) error
}

type Activation struct {
	Kind  model.Kind
	Index int
	Item  model.Item
}

// Session owns the search text and the selection over a layout. It
// re-validates the selection after every filter edit and after every layout
// mutation it is notified of.
type Session struct {
	layout  *store.Layout
	opener  Opener
	folders FolderEnterer
	log     logrus.FieldLogger

	mu     sync.Mutex
	filter string
	sel    Selection

	unsubscribe func()
}

type SessionOption func(*Session)

func WithOpener(o Opener) SessionOption {
	return func(s *Session) { s.opener = o }
}

func WithFolderEnterer(f FolderEnterer) SessionOption {
	return func(s *Session) { s.folders = f }
}

func WithLogger(log logrus.FieldLogger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log.WithField("component", "nav")
		}
	}
}

func NewSession(layout *store.Layout, opts ...SessionOption) *Session {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Session{layout: layout, log: discard}
	for _, opt := range opts {
		opt(s)
	}
	s.unsubscribe = layout.Subscribe(func(items []model.Item) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.sel.Validate(len(Filter(items, s.filter)))
	})
	return s
}

// Close detaches the session from the layout.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// View is the filtered view the selection indexes into.
func (s *Session) View() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() []model.Item {
	return Filter(s.layout.Items(), s.filter)
}

func (s *Session) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) SetFilter(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = text
	s.sel.Validate(len(s.viewLocked()))
}

func (s *Session) AppendFilter(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter += text
	s.sel.Validate(len(s.viewLocked()))
}

// Backspace drops the last rune of the filter text.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter == "" {
		return
	}
	r := []rune(s.filter)
	s.filter = string(r[:len(r)-1])
	s.sel.Validate(len(s.viewLocked()))
}

func (s *Session) ClearFilter() {
	s.SetFilter("")
}

// Selection returns the selected index, re-validated against the current view.
func (s *Session) Selection() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Validate(len(s.viewLocked()))
	return s.sel.Get()
}

// Select sets the selection; out-of-range indices are clamped or cleared.
func (s *Session) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Set(i)
	s.sel.Validate(len(s.viewLocked()))
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Clear()
}

// Move steps the selection in dir over a grid of the given column count.
// With nothing selected the step starts from index 0. It reports false when
// the view is empty.
func (s *Session) Move(dir Direction, columns int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.viewLocked())
	if n == 0 {
		s.sel.Clear()
		return 0, false
	}
	s.sel.Validate(n)
	cur, _ := s.sel.Get()
	offset, axis := dir.Offset(columns)
	next := Step(cur, offset, n, axis)
	s.sel.Set(next)
	return next, true
}

// Selected resolves the selection against the current view.
func (s *Session) Selected() (model.Item, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.viewLocked()
	s.sel.Validate(len(view))
	i, ok := s.sel.Get()
	if !ok {
		return model.Item{}, -1, false
	}
	return view[i], i, true
}

// Activate opens the selected application or enters the selected folder.
// Failures are returned and logged; they never change the layout or the
// selection.
func (s *Session) Activate(ctx context.Context) (Activation, error) {
	it, idx, ok := s.Selected()
	if !ok {
		return Activation{}, ErrNoSelection
	}
	act := Activation{Kind: it.Kind(), Index: idx, Item: it}
	log := s.log.WithField("id", it.ID()).WithField("index", idx)

	if f, isFolder := it.AsFolder(); isFolder {
		if s.folders == nil {
			return act, nil
		}
		if err := s.folders.EnterFolder(f.ID); err != nil {
			log.WithError(err).Warn("failed to enter folder")
			return act, fmt.Errorf("enter folder %s: %w", f.ID, err)
		}
		return act, nil
	}

	app, _ := it.AsApplication()
	if s.opener == nil {
		return act, ErrNoOpener
	}
	if err := s.opener.Open(ctx, app.Path); err != nil {
		log.WithError(err).WithField("path", app.Path).Warn("failed to open application")
		return act, fmt.Errorf("open %s: %w", app.Name, err)
	}
	log.WithField("path", app.Path).Debug("opened application")
	return act, nil
}
