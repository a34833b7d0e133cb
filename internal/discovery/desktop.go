package discovery

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DesktopEntry holds the keys of a freedesktop.org [Desktop Entry] group that
// the launcher cares about.
type DesktopEntry struct {
	Type      string
	Name      string
	Exec      string
	NoDisplay bool
	Hidden    bool
}

// Launchable reports whether the entry should show up in the grid.
func (e DesktopEntry) Launchable() bool {
	if e.Name == "" || e.Exec == "" || e.NoDisplay || e.Hidden {
		return false
	}
	return e.Type == "" || e.Type == "Application"
}

func ReadDesktopFile(path string) (DesktopEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return DesktopEntry{}, err
	}
	defer f.Close()
	return ParseDesktopEntry(f)
}

// ParseDesktopEntry reads the [Desktop Entry] group. Other groups, comments and
// localized keys (Name[de]=...) are ignored; the first occurrence of a key wins.
func ParseDesktopEntry(r io.Reader) (DesktopEntry, error) {
	var e DesktopEntry
	seen := map[string]bool{}
	inEntry := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if seen[key] {
			continue
		}
		seen[key] = true

		switch key {
		case "Type":
			e.Type = value
		case "Name":
			e.Name = value
		case "Exec":
			e.Exec = value
		case "NoDisplay":
			e.NoDisplay = value == "true"
		case "Hidden":
			e.Hidden = value == "true"
		}
	}
	return e, sc.Err()
}
