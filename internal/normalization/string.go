package normalization

import (
	"strings"
)

// Key folds user input into an enum lookup key: lower case, trimmed, with
// spaces and underscores collapsed to hyphens.
func Key(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	for strings.Contains(normalized, "--") {
		normalized = strings.ReplaceAll(normalized, "--", "-")
	}
	return normalized
}

// Label trims a free-text label and collapses inner whitespace runs.
func Label(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
