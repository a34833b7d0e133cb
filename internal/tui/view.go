package tui

import (
	"fmt"
	"strings"

	"lunchpad-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	bodyH := height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.mode {
	case modeFolder, modeRename:
		body = m.renderFolder(width, bodyH)
	default:
		body = m.renderGrid(bodyH)
	}
	if m.mode == modeConfirmReset {
		modal := renderConfirmModal(width, "Reset layout",
			"Forget every folder and the current order, then rescan the application directories?",
			"Reset", "Cancel", m.confirm)
		body = lipgloss.Place(width, bodyH, lipgloss.Center, lipgloss.Center, modal)
	}

	frame := strings.Join([]string{header, normalizePane(body, width, bodyH), footer}, "\n")
	return normalizePane(frame, width, height)
}

func (m appModel) renderHeader(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Lunchpad")
	count := styleMuted().Render(fmt.Sprintf("  %d items", m.layout.Len()))
	line := title + count
	if m.dragID != "" {
		if it, _, ok := m.layout.Find(m.dragID); ok {
			line += lipgloss.NewStyle().Background(colorDragBg).Render(" " + glyphDrag() + " " + cellName(it) + " ")
		}
	}

	filter := m.session.Filter()
	search := filter
	if filter == "" {
		search = styleMuted().Render("type to search")
	}
	return line + "\n" + renderInputLine(width, "Search", search)
}

func (m appModel) renderFooter(width int) string {
	var status string
	if m.status != "" {
		st := lipgloss.NewStyle()
		if m.statusErr {
			st = st.Background(colorFlashErrorBg).Foreground(colorAccentFg)
		}
		status = st.Render(m.status)
	}

	var helpView string
	if m.mode == modeFolder || m.mode == modeRename {
		helpView = m.help.View(folderHelp{m.keys})
	} else {
		helpView = m.help.View(gridHelp{m.keys})
	}
	return fitWidth(status, width) + "\n" + helpView
}

func (m appModel) renderGrid(height int) string {
	view := m.session.View()
	if len(view) == 0 {
		if m.session.Filter() != "" {
			return styleMuted().Render("No applications match.")
		}
		return styleMuted().Render("No applications. Press ctrl+r to scan.")
	}

	sel, hasSel := m.session.Selection()
	cells := make([]string, len(view))
	for i, it := range view {
		cells[i] = m.renderCell(it, hasSel && i == sel, it.ID() == m.dragID)
	}
	selRow := 0
	if hasSel {
		selRow = sel / m.columns()
	}
	return m.layoutCells(cells, selRow, height)
}

func (m appModel) renderFolder(width, height int) string {
	f, ok := m.currentFolder()
	if !ok {
		return ""
	}

	var title string
	if m.mode == modeRename {
		title = renderInputLine(width, "Name", m.rename.View())
	} else {
		title = lipgloss.NewStyle().Bold(true).Render(glyphFolder()+" "+stripANSIEscapes(f.Name)) +
			styleMuted().Render(fmt.Sprintf("  %d apps", len(f.Apps)))
	}
	if len(f.Apps) == 0 {
		return title
	}

	cells := make([]string, len(f.Apps))
	for i, a := range f.Apps {
		cells[i] = m.renderCell(model.AppItem(a), i == m.folderSel, false)
	}
	gridH := height - 2
	if gridH < 1 {
		gridH = 1
	}
	return title + "\n\n" + m.layoutCells(cells, m.folderSel/m.columns(), gridH)
}

// layoutCells arranges pre-rendered cells row-major, keeping selRow visible.
func (m appModel) layoutCells(cells []string, selRow, height int) string {
	cols := m.columns()
	rows := (len(cells) + cols - 1) / cols
	start := gridWindow(selRow, rows, height)

	var lines []string
	for r := start; r < rows && r-start < height; r++ {
		end := min((r+1)*cols, len(cells))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells[r*cols:end]...))
	}
	return strings.Join(lines, "\n")
}

func cellName(it model.Item) string {
	name := stripANSIEscapes(it.DisplayName())
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	return name
}

func (m appModel) renderCell(it model.Item, selected, dragging bool) string {
	glyph := glyphApp()
	label := cellName(it)
	if f, ok := it.AsFolder(); ok {
		glyph = glyphFolder()
		label = fmt.Sprintf("%s (%d)", label, len(f.Apps))
	}
	if dragging {
		glyph = glyphDrag()
	}

	inner := fitWidth(glyph+" "+label, m.itemWidth-1)
	st := lipgloss.NewStyle()
	switch {
	case selected:
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	case dragging:
		st = st.Background(colorDragBg)
	}
	return st.Render(inner) + " "
}
