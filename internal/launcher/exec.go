package launcher

import (
	"strings"
	"unicode"
)

// splitShellWords splits a shell-like command string into argv, handling basic quoting.
// It supports single quotes, double quotes, and backslash escaping (outside single quotes).
func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	started := false

	flush := func() {
		if !started {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		started = false
	}

	for _, r := range []rune(s) {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}

		if r == '\\' && !inSingle {
			escaped = true
			started = true
			continue
		}

		if r == '\'' && !inDouble {
			inSingle = !inSingle
			started = true
			continue
		}

		if r == '"' && !inSingle {
			inDouble = !inDouble
			started = true
			continue
		}

		if !inSingle && !inDouble && unicode.IsSpace(r) {
			flush()
			continue
		}

		cur = append(cur, r)
		started = true
	}

	flush()
	return out
}

// ExecArgs turns a desktop entry Exec value into argv. Field codes (%f, %U,
// %i, ...) expand to nothing since the launcher never passes files or URLs;
// %% is a literal percent sign.
func ExecArgs(execLine string) []string {
	var out []string
	for _, word := range splitShellWords(execLine) {
		if isFieldCode(word) {
			continue
		}
		word = stripFieldCodes(word)
		if word == "" {
			continue
		}
		out = append(out, word)
	}
	return out
}

func isFieldCode(word string) bool {
	return len(word) == 2 && word[0] == '%' && word[1] != '%'
}

func stripFieldCodes(word string) string {
	if !strings.Contains(word, "%") {
		return word
	}
	var b strings.Builder
	rs := []rune(word)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '%' || i+1 >= len(rs) {
			b.WriteRune(rs[i])
			continue
		}
		i++
		if rs[i] == '%' {
			b.WriteRune('%')
		}
	}
	return b.String()
}
