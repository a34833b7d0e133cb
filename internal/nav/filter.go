package nav

import (
	"strings"

	"lunchpad-cli/internal/model"

	"golang.org/x/text/cases"
)

// Filter returns the items whose display name contains text, compared
// case-insensitively. Only empty text matches everything; spaces are part of
// the needle. The result keeps layout order and is the coordinate space for
// navigation.
func Filter(items []model.Item, text string) []model.Item {
	if text == "" {
		return model.CloneItems(items)
	}
	fold := cases.Fold()
	needle := fold.String(text)

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(it.DisplayName()), needle) {
			out = append(out, it.Clone())
		}
	}
	return out
}
