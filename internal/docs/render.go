package docs

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	rendererMu sync.Mutex
	// Cache renderers by wrap width + style. Creating a renderer with WithAutoStyle can trigger
	// terminal capability/background queries that may block on some terminals.
	renderers = map[string]*glamour.TermRenderer{}
)

// Style picks the glamour style for terminal output. LUNCHPAD_MD_STYLE
// (dark|light|notty) wins; anything else means dark.
func Style() string {
	switch s := strings.ToLower(strings.TrimSpace(os.Getenv("LUNCHPAD_MD_STYLE"))); s {
	case "light", "dark", "notty":
		return s
	}
	return "dark"
}

// Render renders markdown for a terminal of the given width. On failure the
// raw markdown is returned.
func Render(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if style == "" {
		style = Style()
	}

	key := style + ":" + strconv.Itoa(width)
	rendererMu.Lock()
	r := renderers[key]
	rendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		rendererMu.Lock()
		// Re-check in case a concurrent goroutine filled it.
		if existing := renderers[key]; existing != nil {
			r = existing
		} else {
			renderers[key] = rr
			r = rr
		}
		rendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
