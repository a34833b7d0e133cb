package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colours adapt to light and dark backgrounds. Faint text is only used on
// dark ones; on light terminals it tends to vanish.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg     lipgloss.TerminalColor = ac("#dbeafe", "#1e3a8a")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorSelectedBorder lipgloss.TerminalColor = ac("27", "69")

	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")

	colorAccent   lipgloss.TerminalColor = ac("27", "75")
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	colorDragBg       lipgloss.TerminalColor = ac("#fde68a", "#854d0e")
	colorFlashErrorBg lipgloss.TerminalColor = ac("196", "160")
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

// colorProfileFor picks the grid's colour profile from the environment and
// the detected profile. Only NO_COLOR disables colour: CLICOLOR is meant for
// piped output, not a full-screen program. TERM/COLORTERM may upgrade a
// profile the detector under-reports.
func colorProfileFor(getenv func(string) string, detected termenv.Profile) termenv.Profile {
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}
	term := strings.ToLower(getenv("TERM"))
	colorterm := strings.ToLower(getenv("COLORTERM"))
	switch {
	case detected == termenv.Ascii:
		return detected
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		return termenv.TrueColor
	case strings.Contains(term, "256color") && detected == termenv.ANSI:
		return termenv.ANSI256
	}
	return detected
}

// darkBackgroundFor reads the background from the environment, in order:
// LUNCHPAD_TUI_THEME=light|dark, LUNCHPAD_TUI_DARKBG=<bool>, then the last
// COLORFGBG segment. ok is false when none of them decide.
func darkBackgroundFor(getenv func(string) string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(getenv("LUNCHPAD_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(getenv("LUNCHPAD_TUI_DARKBG"))); err == nil {
		return b, true
	}
	if v := strings.TrimSpace(getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7, true
		}
	}
	return false, false
}

func applyColorProfilePreference() {
	lipgloss.SetColorProfile(colorProfileFor(os.Getenv, termenv.ColorProfile()))
}

func applyThemePreference() {
	if dark, ok := darkBackgroundFor(os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
		return
	}
	if runtime.GOOS != "darwin" {
		return
	}
	if dark, ok := macOSHasDarkAppearance(); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}

// macOSHasDarkAppearance asks `defaults`, which prints "Dark" in dark mode
// and exits 1 when the key is missing (light mode).
func macOSHasDarkAppearance() (dark bool, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	var ee *exec.ExitError
	switch {
	case err == nil:
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	case errors.As(err, &ee) && ee.ExitCode() == 1:
		return false, true
	}
	return false, false
}
