package entities

import "strings"

const (
	finalSuffix = "-FINAL"
	rangeOpen   = "["
)

// Normalize strips the cosmetic "-FINAL" suffix and the "[" that opens a
// version range such as "[3.8-beta5,)". Repeated markers are stripped too,
// which keeps Normalize idempotent. A token made only of markers is returned
// unchanged since a version token is never empty.
func Normalize(token string) string {
	normalized := token
	for strings.HasSuffix(normalized, finalSuffix) {
		normalized = strings.TrimSuffix(normalized, finalSuffix)
	}
	normalized = strings.TrimLeft(normalized, rangeOpen)
	if normalized == "" {
		return token
	}
	return normalized
}
