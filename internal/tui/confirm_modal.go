package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

// modalBodyWidth keeps dialogs between 20 and 60 columns with a margin.
func modalBodyWidth(width int) int {
	return min(max(width-8, 20), 60)
}

func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Width(bodyW).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		Padding(0, 1).
		Render(header + "\n\n" + content)
}

func renderButton(label string, focused bool) string {
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	if focused {
		st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	return st.Render(label)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	bodyW := modalBodyWidth(width)
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton(confirmLabel, focus == confirmFocusConfirm),
		" ",
		renderButton(cancelLabel, focus == confirmFocusCancel),
	)
	return renderModalBox(width, title, strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		buttons,
		"",
		styleMuted().Width(bodyW).Render("tab: switch   enter: choose   esc: cancel"),
	}, "\n"))
}
