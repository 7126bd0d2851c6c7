package entities

import (
	"regexp"
	"slices"
	"strings"
)

// VersionComparator orders version tokens that do not follow a single scheme.
// Tokens that are both recognized ("other", dotted numbers, dotted numbers with
// a beta/snapshot qualifier) are compared structurally; everything else falls
// back to plain string order. It holds only compiled patterns and is safe for
// concurrent use.
type VersionComparator struct {
	simpleVersion    *regexp.Regexp
	qualifiedVersion *regexp.Regexp
}

// NewVersionComparator compiles the recognized version shapes.
func NewVersionComparator() *VersionComparator {
	return &VersionComparator{
		simpleVersion: regexp.MustCompile(`^\d+\.\d+(?:\.\d+){0,2}$`),
		qualifiedVersion: regexp.MustCompile(
			`^\d+\.\d+(?:\.\d+)?-(?i:beta|snapshot|` + strings.Join(otherQualifiers, "|") + `)\d*(?:-\d+)?$`,
		),
	}
}

// IsComparable reports whether the token takes part in structural comparison.
func (c *VersionComparator) IsComparable(version string) bool {
	return version == OtherVersion ||
		c.simpleVersion.MatchString(version) ||
		c.qualifiedVersion.MatchString(version)
}

// Compare returns -1, 0 or 1. Structurally equal tokens that differ as strings
// ("3.9" and "3.9.0") are still kept apart by their string order.
func (c *VersionComparator) Compare(a, b string) int {
	if c.IsComparable(a) && c.IsComparable(b) {
		va, errA := ParseVersion(a)
		vb, errB := ParseVersion(b)
		if errA == nil && errB == nil {
			if ret := va.Compare(vb); ret != 0 {
				return ret
			}
		}
	}
	return strings.Compare(a, b)
}

// ComparePointers extends Compare to absent values: nil sorts before any
// string and two nils are equal.
func (c *VersionComparator) ComparePointers(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return c.Compare(*a, *b)
}

// Sort orders versions ascending in place.
func (c *VersionComparator) Sort(versions []string) {
	slices.SortStableFunc(versions, c.Compare)
}

// Max returns the higher of two versions, preferring a on equality.
func (c *VersionComparator) Max(a, b string) string {
	if c.Compare(b, a) > 0 {
		return b
	}
	return a
}

// IsNewer reports whether candidate is strictly higher than current.
func (c *VersionComparator) IsNewer(current, candidate string) bool {
	return c.Compare(current, candidate) < 0
}
