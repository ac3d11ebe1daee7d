package promptstyle

import "strings"

const marker = "KINGBAYO_PROMPT_STYLE_V1"

// Output formats understood by ApplySystem.
const (
	FormatText      = "text"
	FormatJSON      = "json"
	FormatJSONArray = "json_array"
)

// ApplySystem prepends a short output-discipline block to a system prompt.
// Applying it twice is a no-op.
func ApplySystem(system string, format string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, marker) {
		return base
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nFollow the system and user instructions precisely.")
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSONArray:
		b.WriteString("\nReturn a single JSON array of objects. No markdown, no commentary before or after it.")
		b.WriteString("\nUse numbers, not strings, for odds and probabilities.")
	case FormatJSON:
		b.WriteString("\nReturn a single JSON object with no extra keys.")
	default:
		b.WriteString("\nBe concise and structured when helpful.")
	}
	b.WriteString("\nIf information is missing, use conservative values rather than inventing specifics.")
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
