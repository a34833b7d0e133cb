package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlyphSetFor(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "", want: "unicode", wantOK: true},
		{in: "UTF8", want: "unicode", wantOK: true},
		{in: " ascii ", want: "ascii", wantOK: true},
		{in: "bogus", wantOK: false},
	}
	for _, tt := range tests {
		gs, ok := glyphSetFor(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, gs.name, tt.in)
	}
}

func TestApplyGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(unicodeGlyphs) })

	t.Setenv("LUNCHPAD_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	assert.Equal(t, "+", glyphFolder())
	assert.Equal(t, "*", glyphApp())
	assert.Equal(t, "~", glyphDrag())

	// Unknown values keep the current set.
	t.Setenv("LUNCHPAD_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	assert.Equal(t, "ascii", currentGlyphs().name)

	t.Setenv("LUNCHPAD_TUI_GLYPHS", "")
	applyGlyphPreference()
	assert.Equal(t, "▸", glyphFolder())
}
