package tui

import (
	"os"
	"strings"
	"sync/atomic"
)

// glyphSet holds the cell markers. Fonts without the Unicode shapes can ask
// for ASCII with LUNCHPAD_TUI_GLYPHS=ascii.
type glyphSet struct {
	name   string
	folder string
	app    string
	drag   string
}

var (
	unicodeGlyphs = glyphSet{name: "unicode", folder: "▸", app: "•", drag: "✥"}
	asciiGlyphs   = glyphSet{name: "ascii", folder: "+", app: "*", drag: "~"}
)

var activeGlyphs atomic.Pointer[glyphSet]

func currentGlyphs() glyphSet {
	if gs := activeGlyphs.Load(); gs != nil {
		return *gs
	}
	return unicodeGlyphs
}

func setGlyphs(gs glyphSet) {
	activeGlyphs.Store(&gs)
}

// glyphSetFor maps an env value to a set; unknown values report false.
func glyphSetFor(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return unicodeGlyphs, true
	case "ascii":
		return asciiGlyphs, true
	}
	return glyphSet{}, false
}

func applyGlyphPreference() {
	if gs, ok := glyphSetFor(os.Getenv("LUNCHPAD_TUI_GLYPHS")); ok {
		setGlyphs(gs)
	}
}

func glyphFolder() string { return currentGlyphs().folder }
func glyphApp() string    { return currentGlyphs().app }
func glyphDrag() string   { return currentGlyphs().drag }
