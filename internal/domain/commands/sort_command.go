package commands

import (
	"slices"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// Sort is the interface for the sort command.
type Sort interface {
	Execute(versions []string) SortResult
}

// SortResult is the ordered list of versions and its highest element.
type SortResult struct {
	Ordered []string
	Highest string
}

// SortCommand orders version tokens with the version comparator.
type SortCommand struct {
	comparator *entities.VersionComparator
}

// NewSortCommand creates a new SortCommand.
func NewSortCommand(comparator *entities.VersionComparator) *SortCommand {
	return &SortCommand{comparator: comparator}
}

// Execute sorts a copy of versions in ascending order, normalizing each
// token the same way extracted versions are.
func (it *SortCommand) Execute(versions []string) SortResult {
	ordered := make([]string, 0, len(versions))
	for _, version := range versions {
		ordered = append(ordered, entities.Normalize(version))
	}
	it.comparator.Sort(ordered)
	ordered = slices.Compact(ordered)

	result := SortResult{Ordered: ordered}
	if len(ordered) > 0 {
		result.Highest = ordered[len(ordered)-1]
	}
	return result
}
