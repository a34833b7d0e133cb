package main

import (
	"os"
	"strconv"
	"strings"

	"lunchpad-cli/internal/cli"
)

func isIndex(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func rewriteDirectOpenArgs(argv []string) []string {
	// Convenience: `lunchpad <index>` works like `lunchpad open <index>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is
	// rewritten before parsing. Persistent flags may come first
	// (e.g. `lunchpad --storage sqlite 3`), so look for the first positional
	// token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":      true,
		"--data-dir":    true,
		"--storage":     true,
		"--app-dirs":    true,
		"--item-width":  true,
		"--folder-name": true,
		"--log-level":   true,
		"--format":      true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isIndex(argv[i+1]) {
				return insertAt(argv, i, "open")
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value and bool flags carry no separate value.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isIndex(a) {
			return insertAt(argv, i, "open")
		}
		return argv
	}

	return argv
}

func insertAt(argv []string, i int, tokens ...string) []string {
	out := make([]string, 0, len(argv)+len(tokens))
	out = append(out, argv[:i]...)
	out = append(out, tokens...)
	return append(out, argv[i:]...)
}

func main() {
	os.Args = rewriteDirectOpenArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
