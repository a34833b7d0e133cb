package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirs returns the directories scanned when none are configured.
func DefaultDirs(goos string) []string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		dirs := []string{"/Applications", "/System/Applications"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Applications"))
		}
		return dirs
	case "windows":
		var dirs []string
		for _, env := range []string{"APPDATA", "ProgramData"} {
			if base := os.Getenv(env); base != "" {
				dirs = append(dirs, filepath.Join(base, "Microsoft", "Windows", "Start Menu", "Programs"))
			}
		}
		return dirs
	default:
		var dirs []string
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" && home != "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		if dataHome != "" {
			dirs = append(dirs, filepath.Join(dataHome, "applications"))
		}
		dataDirs := os.Getenv("XDG_DATA_DIRS")
		if dataDirs == "" {
			dataDirs = "/usr/local/share:/usr/share"
		}
		for _, d := range strings.Split(dataDirs, ":") {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, filepath.Join(d, "applications"))
			}
		}
		return dirs
	}
}
