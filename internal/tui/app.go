package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"lunchpad-cli/internal/model"
	"lunchpad-cli/internal/mutate"
	"lunchpad-cli/internal/nav"
	"lunchpad-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type mode int

const (
	modeGrid mode = iota
	modeFolder
	modeRename
	modeConfirmReset
)

// Options wires the grid to its collaborators.
type Options struct {
	Layout     *store.Layout
	Engine     *mutate.Engine
	Opener     nav.Opener
	Discoverer store.Discoverer
	AppDirs    []string
	ItemWidth  int
	Log        logrus.FieldLogger
}

// folderEntry records which folder activation asked to open. It is shared by
// all copies of the model, so it is reset before every activation.
type folderEntry struct {
	id string
}

func (f *folderEntry) EnterFolder(id string) error {
	f.id = id
	return nil
}

type resetDoneMsg struct {
	err error
}

type appModel struct {
	layout     *store.Layout
	engine     *mutate.Engine
	session    *nav.Session
	opener     nav.Opener
	discoverer store.Discoverer
	appDirs    []string
	itemWidth  int
	log        logrus.FieldLogger

	keys    keyMap
	help    help.Model
	entered *folderEntry
	copy    func(string) error

	width  int
	height int

	mode      mode
	folderID  string
	folderSel int
	dragID    string
	rename    textinput.Model
	confirm   confirmModalFocus
	resetting bool

	status    string
	statusErr bool
}

func newAppModel(opts Options) appModel {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	engine := opts.Engine
	if engine == nil {
		engine = mutate.NewEngine(opts.Layout, mutate.WithLogger(log))
	}
	width := opts.ItemWidth
	if width <= 0 {
		width = 18
	}

	entered := &folderEntry{}
	session := nav.NewSession(opts.Layout,
		nav.WithOpener(opts.Opener),
		nav.WithFolderEnterer(entered),
		nav.WithLogger(log),
	)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 80
	ti.Placeholder = "Folder name"

	return appModel{
		layout:     opts.Layout,
		engine:     engine,
		session:    session,
		opener:     opts.Opener,
		discoverer: opts.Discoverer,
		appDirs:    opts.AppDirs,
		itemWidth:  width,
		log:        log.WithField("component", "tui"),
		keys:       defaultKeyMap(),
		help:       help.New(),
		entered:    entered,
		copy:       copyToClipboard,
		rename:     ti,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case resetDoneMsg:
		m.resetting = false
		m.dragID = ""
		m.mode = modeGrid
		m.session.ClearSelection()
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("reset failed")
			m.setError("Reset failed: " + msg.err.Error())
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Layout reset: %d items", m.layout.Len()))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeFolder:
			return m.updateFolder(msg)
		case modeRename:
			return m.updateRename(msg)
		case modeConfirmReset:
			return m.updateConfirmReset(msg)
		default:
			return m.updateGrid(msg)
		}
	}

	if m.mode == modeRename {
		var cmd tea.Cmd
		m.rename, cmd = m.rename.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *appModel) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m appModel) columns() int {
	return nav.Columns(m.width, m.itemWidth)
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Left):
		m.session.Move(nav.Left, m.columns())
	case key.Matches(msg, m.keys.Right):
		m.session.Move(nav.Right, m.columns())
	case key.Matches(msg, m.keys.Up):
		m.session.Move(nav.Up, m.columns())
	case key.Matches(msg, m.keys.Down):
		m.session.Move(nav.Down, m.columns())
	case key.Matches(msg, m.keys.Open):
		m.activate()
	case key.Matches(msg, m.keys.Move):
		m.pickUpOrDrop()
	case key.Matches(msg, m.keys.Back):
		if m.dragID != "" {
			m.dragID = ""
			m.setStatus("Move cancelled")
		} else {
			m.session.ClearFilter()
		}
	case key.Matches(msg, m.keys.Erase):
		m.session.Backspace()
	case key.Matches(msg, m.keys.Copy):
		if it, _, ok := m.session.Selected(); ok {
			if app, isApp := it.AsApplication(); isApp {
				m.copyPath(app)
			}
		}
	case key.Matches(msg, m.keys.Reset):
		if !m.resetting {
			m.mode = modeConfirmReset
			m.confirm = confirmFocusCancel
		}
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.session.AppendFilter(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		m.session.AppendFilter(" ")
	}
	return m, nil
}

func (m *appModel) activate() {
	m.entered.id = ""
	act, err := m.session.Activate(context.Background())
	if err != nil {
		if !errors.Is(err, nav.ErrNoSelection) {
			m.setError(err.Error())
		}
		return
	}
	if act.Kind == model.KindFolder && m.entered.id != "" {
		m.mode = modeFolder
		m.folderID = m.entered.id
		m.folderSel = 0
		m.dragID = ""
		return
	}
	m.setStatus("Opened " + act.Item.DisplayName())
}

func (m *appModel) pickUpOrDrop() {
	it, _, ok := m.session.Selected()
	if !ok {
		return
	}
	if m.dragID == "" {
		m.dragID = it.ID()
		m.setStatus("Moving " + it.DisplayName() + ": select a target and press ctrl+g")
		return
	}

	dragged := m.dragID
	m.dragID = ""
	res, err := m.engine.Drop(dragged, it.ID())
	if err != nil {
		m.setError(dropErrorText(err))
		return
	}
	m.selectByID(res.FolderID)
	if res.Outcome == mutate.OutcomeCreateFolder {
		m.setStatus("Created folder")
	} else {
		m.setStatus("Added to " + it.DisplayName())
	}
}

func dropErrorText(err error) string {
	var rej mutate.RejectedError
	if errors.As(err, &rej) {
		switch rej.Reason {
		case mutate.ReasonSameItem:
			return "Can't drop an item on itself"
		case mutate.ReasonDraggedFolder:
			return "Folders can't be moved into other items"
		case mutate.ReasonAlreadyInside:
			return "That folder already holds this app"
		}
	}
	var nf mutate.NotFoundError
	if errors.As(err, &nf) {
		return "That item is no longer in the layout"
	}
	return err.Error()
}

// selectByID selects the item in the filtered view; hidden items leave the
// selection alone.
func (m *appModel) selectByID(id string) {
	for i, it := range m.session.View() {
		if it.ID() == id {
			m.session.Select(i)
			return
		}
	}
}

func (m *appModel) copyPath(app model.Application) {
	if m.copy == nil {
		return
	}
	if err := m.copy(app.Path); err != nil {
		m.setError("Copy failed: " + err.Error())
		return
	}
	m.setStatus("Copied " + app.Path)
}

func (m appModel) currentFolder() (model.Folder, bool) {
	return m.layout.FindFolder(m.folderID)
}

func (m appModel) updateFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	f, ok := m.currentFolder()
	if !ok {
		m.mode = modeGrid
		return m, nil
	}
	n := len(f.Apps)
	if m.folderSel >= n {
		m.folderSel = max(n-1, 0)
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.folderSel = nav.Step(m.folderSel, -1, n, nav.Horizontal)
	case key.Matches(msg, m.keys.Right):
		m.folderSel = nav.Step(m.folderSel, 1, n, nav.Horizontal)
	case key.Matches(msg, m.keys.Up):
		m.folderSel = nav.Step(m.folderSel, -m.columns(), n, nav.Vertical)
	case key.Matches(msg, m.keys.Down):
		m.folderSel = nav.Step(m.folderSel, m.columns(), n, nav.Vertical)
	case key.Matches(msg, m.keys.Open):
		if n == 0 {
			break
		}
		app := f.Apps[m.folderSel]
		if m.opener == nil {
			m.setError(nav.ErrNoOpener.Error())
			break
		}
		if err := m.opener.Open(context.Background(), app.Path); err != nil {
			m.log.WithError(err).WithField("path", app.Path).Warn("failed to open application")
			m.setError("Open failed: " + err.Error())
			break
		}
		m.setStatus("Opened " + app.Name)
	case key.Matches(msg, m.keys.Extract):
		if n == 0 {
			break
		}
		app := f.Apps[m.folderSel]
		if err := m.engine.ExtractByID(app.ID, f.ID); err != nil {
			m.setError(err.Error())
			break
		}
		if _, still := m.currentFolder(); !still {
			m.mode = modeGrid
			m.selectByID(app.ID)
			m.setStatus("Took out " + app.Name + "; folder dissolved")
			break
		}
		if m.folderSel >= n-1 {
			m.folderSel = max(n-2, 0)
		}
		m.setStatus("Took out " + app.Name)
	case key.Matches(msg, m.keys.Rename):
		m.mode = modeRename
		m.rename.SetValue(f.Name)
		m.rename.CursorEnd()
		return m, m.rename.Focus()
	case key.Matches(msg, m.keys.Copy):
		if n > 0 {
			m.copyPath(f.Apps[m.folderSel])
		}
	case key.Matches(msg, m.keys.Back):
		m.mode = modeGrid
		m.selectByID(f.ID)
	}
	return m, nil
}

func (m appModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.rename.Value())
		m.rename.Blur()
		m.mode = modeFolder
		if name == "" {
			m.setError("Folder name can't be empty")
			return m, nil
		}
		if m.engine.Rename(m.folderID, name) {
			m.setStatus("Renamed to " + name)
		}
		return m, nil
	case tea.KeyEsc:
		m.rename.Blur()
		m.mode = modeFolder
		return m, nil
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right":
		m.confirm = m.confirm.toggle()
	case "esc":
		m.mode = modeGrid
	case "enter":
		m.mode = modeGrid
		if m.confirm == confirmFocusConfirm {
			m.resetting = true
			m.setStatus("Rescanning applications…")
			return m, m.resetCmd()
		}
	}
	return m, nil
}

// resetCmd rescans off the update loop; the layout swaps in the result with
// a single assignment.
func (m appModel) resetCmd() tea.Cmd {
	layout, d, dirs := m.layout, m.discoverer, m.appDirs
	return func() tea.Msg {
		return resetDoneMsg{err: layout.Reset(context.Background(), d, dirs)}
	}
}
