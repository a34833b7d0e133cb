package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a one-line input field (search bar, rename box) of
// exactly bodyW columns.
func renderInputLine(bodyW int, label, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Inputs must render as a single visual line. A newline (or overflow from
	// cursor styling) would wrap and look like a second line while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	text := " " + inputView + " "
	if label != "" {
		text = " " + lipgloss.NewStyle().Bold(true).Render(label) + text
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		text,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the body width; terminate ANSI styling to prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
