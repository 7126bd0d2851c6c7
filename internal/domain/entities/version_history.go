package entities

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// NewRepositoryMarker is the Before value of a change for a repository that
// was never seen in an earlier batch.
const NewRepositoryMarker = "<new>"

const contextRadius = 100

// ChangeScope classifies how far a repository moved between two versions.
type ChangeScope string

const (
	ScopeNew       ChangeScope = "new"
	ScopeMajor     ChangeScope = "major"
	ScopeMinor     ChangeScope = "minor"
	ScopePatch     ChangeScope = "patch"
	ScopeQualifier ChangeScope = "qualifier"
	ScopeUnknown   ChangeScope = "unknown"
)

// VersionChange is one repository moving to a higher version in a batch.
type VersionChange struct {
	Date       string
	Repository string
	Before     string
	After      string
	Scope      ChangeScope
}

func (c VersionChange) String() string {
	return fmt.Sprintf("%s: %s %s -> %s (%s)", c.Date, c.Repository, c.Before, c.After, c.Scope)
}

var (
	printableVersion = regexp.MustCompile(`^[0-9][0-9.]+[-A-Za-z0-9]*$`)
	// schema versions picked up from xmlns declarations, not library releases
	schemaVersions = []string{"1.0", "1.1", "1.3"}
)

// PrintableVersion folds tokens that are not release-like (unresolved
// variables, sentinels, schema versions) into "other" for summaries.
func PrintableVersion(version string) string {
	if !printableVersion.MatchString(version) || slices.Contains(schemaVersions, version) {
		return OtherVersion
	}
	return version
}

// AddHigherVersions raises seen[repository] to every version in
// repoVersions (version -> repositories) that is higher than what is stored.
func AddHigherVersions(comparator *VersionComparator, seen map[string]string, repoVersions map[string][]string) {
	for _, version := range sortedKeys(comparator, repoVersions) {
		for _, repo := range repoVersions[version] {
			current, ok := seen[repo]
			if !ok || comparator.IsNewer(current, version) {
				seen[repo] = version
			}
		}
	}
}

// DetectChanges lists the repositories in repoVersions that are new or moved
// above the highest version recorded in seen. seen is not modified; callers
// follow up with AddHigherVersions once the batch is accounted for.
func DetectChanges(
	comparator *VersionComparator,
	date string,
	seen map[string]string,
	repoVersions map[string][]string,
) []VersionChange {
	var changes []VersionChange
	for _, version := range sortedKeys(comparator, repoVersions) {
		for _, repo := range repoVersions[version] {
			before, ok := seen[repo]
			switch {
			case !ok:
				changes = append(changes, VersionChange{
					Date: date, Repository: repo, Before: NewRepositoryMarker, After: version, Scope: ScopeNew,
				})
			case comparator.IsNewer(before, version):
				changes = append(changes, VersionChange{
					Date: date, Repository: repo, Before: before, After: version, Scope: ChangeScopeOf(before, version),
				})
			}
		}
	}
	slices.SortStableFunc(changes, func(a, b VersionChange) int {
		return strings.Compare(a.Repository, b.Repository)
	})
	return changes
}

// ChangeScopeOf tells which segment differs between two structurally
// comparable versions. Anything that cannot be mapped onto semver is unknown.
func ChangeScopeOf(before, after string) ChangeScope {
	b, okB := canonicalSemver(before)
	a, okA := canonicalSemver(after)
	if !okB || !okA {
		return ScopeUnknown
	}
	switch {
	case semver.Major(b) != semver.Major(a):
		return ScopeMajor
	case semver.MajorMinor(b) != semver.MajorMinor(a):
		return ScopeMinor
	case release(b) != release(a), semver.Build(b) != semver.Build(a):
		return ScopePatch
	default:
		return ScopeQualifier
	}
}

func canonicalSemver(version string) (string, bool) {
	if version == OtherVersion {
		return "", false
	}
	parsed, err := ParseVersion(version)
	if err != nil || parsed.Qualifier == QualifierOther {
		return "", false
	}
	v := fmt.Sprintf("v%d.%d.%d", parsed.Major, parsed.Minor, parsed.Revision)
	if parsed.Qualifier != QualifierNone {
		v += fmt.Sprintf("-%s.%d", parsed.Qualifier, parsed.QualifierNumber)
	}
	if parsed.Build != 0 {
		// semver has no fourth segment, it travels as build metadata
		v += fmt.Sprintf("+%d", parsed.Build)
	}
	return v, semver.IsValid(v)
}

func release(v string) string {
	return strings.TrimSuffix(semver.Canonical(v), semver.Prerelease(v))
}

// ReducedContext returns the text around the first occurrence of the target
// group, contextRadius characters on each side, for triaging unexpected files.
func ReducedContext(text string) string {
	pos := strings.Index(text, TargetGroup)
	if pos < 0 {
		return ""
	}
	start := max(0, pos-contextRadius)
	end := min(len(text), pos+contextRadius)
	return text[start:end]
}

func sortedKeys(comparator *VersionComparator, repoVersions map[string][]string) []string {
	keys := make([]string, 0, len(repoVersions))
	for version := range repoVersions {
		keys = append(keys, version)
	}
	comparator.Sort(keys)
	return keys
}
