package recommend

import "strings"

// CleanKeywords removes newlines and surrounding whitespace from model output.
// It is idempotent.
func CleanKeywords(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "\n", ""))
}
