package entities

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// DateLayout is the batch date format (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// VersionRecord maps version tokens to the set of source locations observed
// with them during one batch. It is not safe for concurrent mutation.
type VersionRecord struct {
	Date     string
	versions map[string]map[string]struct{}
}

// NewVersionRecord creates an empty record for the given batch date.
func NewVersionRecord(date string) *VersionRecord {
	return &VersionRecord{
		Date:     date,
		versions: make(map[string]map[string]struct{}),
	}
}

// NewVersionRecordFor creates an empty record dated with t.
func NewVersionRecordFor(t time.Time) *VersionRecord {
	return NewVersionRecord(t.Format(DateLayout))
}

// Add records that location declared version. Duplicates are ignored.
func (r *VersionRecord) Add(version, location string) {
	locations, ok := r.versions[version]
	if !ok {
		locations = make(map[string]struct{})
		r.versions[version] = locations
	}
	locations[location] = struct{}{}
}

// Versions returns the distinct versions, sorted lexically for stable output.
func (r *VersionRecord) Versions() []string {
	result := make([]string, 0, len(r.versions))
	for version := range r.versions {
		result = append(result, version)
	}
	slices.Sort(result)
	return result
}

// Locations returns the sorted locations recorded for version.
func (r *VersionRecord) Locations(version string) []string {
	result := make([]string, 0, len(r.versions[version]))
	for location := range r.versions[version] {
		result = append(result, location)
	}
	slices.Sort(result)
	return result
}

// Len is the number of (version, location) entries.
func (r *VersionRecord) Len() int {
	total := 0
	for _, locations := range r.versions {
		total += len(locations)
	}
	return total
}

// HighestPerRepository keeps only the entries whose version is the highest
// one recorded for the owning repository, so a repository that declares
// several versions in one batch is attributed to its newest one.
func (r *VersionRecord) HighestPerRepository(comparator *VersionComparator) *VersionRecord {
	highest := make(map[string]string)
	for version, locations := range r.versions {
		for location := range locations {
			repo := ParseSourceLocation(location).RepositoryKey()
			current, seen := highest[repo]
			if !seen || comparator.Compare(current, version) < 0 {
				highest[repo] = version
			}
		}
	}

	projected := NewVersionRecord(r.Date)
	for version, locations := range r.versions {
		for location := range locations {
			if highest[ParseSourceLocation(location).RepositoryKey()] == version {
				projected.Add(version, location)
			}
		}
	}
	return projected
}

// RepositoryVersions maps each version to the repositories whose highest
// version it is in this batch.
func (r *VersionRecord) RepositoryVersions(comparator *VersionComparator) map[string][]string {
	result := make(map[string][]string)
	projected := r.HighestPerRepository(comparator)
	for version, locations := range projected.versions {
		repos := make(map[string]struct{})
		for location := range locations {
			repos[ParseSourceLocation(location).RepositoryKey()] = struct{}{}
		}
		for repo := range repos {
			result[version] = append(result[version], repo)
		}
		slices.Sort(result[version])
	}
	return result
}

type versionRecordJSON struct {
	Date     string              `json:"date"`
	Versions map[string][]string `json:"versions"`
}

// MarshalJSON writes the record as one {"date": ..., "versions": {...}} object,
// the shape handed to the persistence collaborator.
func (r *VersionRecord) MarshalJSON() ([]byte, error) {
	out := versionRecordJSON{Date: r.Date, Versions: make(map[string][]string, len(r.versions))}
	for version := range r.versions {
		out.Versions[version] = r.Locations(version)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the shape written by MarshalJSON.
func (r *VersionRecord) UnmarshalJSON(data []byte) error {
	var in versionRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to decode version record: %w", err)
	}
	*r = *NewVersionRecord(in.Date)
	for version, locations := range in.Versions {
		for _, location := range locations {
			r.Add(version, location)
		}
	}
	return nil
}
