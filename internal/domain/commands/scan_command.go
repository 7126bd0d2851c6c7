package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// Scan is the interface for the scan command (batch mode over local clones).
type Scan interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ScanOptions) (*ScanResult, error)
}

// ScanOptions holds runtime options for a single scan.
type ScanOptions struct {
	RepoDirs []string
	Date     string                    // batch date, defaults to today
	History  []*entities.VersionRecord // earlier batches, for change detection
}

// ScanResult is everything a batch produced.
type ScanResult struct {
	Record             *entities.VersionRecord // every (version, location) found
	Highest            *entities.VersionRecord // Record reduced to the highest version per repository
	RepositoryVersions map[string][]string     // version -> repositories, from Highest
	Changes            []entities.VersionChange
	Outcomes           map[entities.Outcome]int
	Unexpected         []entities.Extraction
	Failures           []error
}

// ScanCommand extracts versions from every candidate file of the given
// checkouts, fanning the files out over a bounded worker pool.
type ScanCommand struct {
	extract    *ExtractCommand
	source     repositories.CandidateSource
	comparator *entities.VersionComparator
	metrics    repositories.MetricsRepository
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(
	extract *ExtractCommand,
	source repositories.CandidateSource,
	comparator *entities.VersionComparator,
	metrics repositories.MetricsRepository,
) *ScanCommand {
	return &ScanCommand{
		extract:    extract,
		source:     source,
		comparator: comparator,
		metrics:    metrics,
	}
}

type scanItem struct {
	extraction entities.Extraction
	err        error
}

// Execute scans all repositories and aggregates the batch. Per-file and
// per-repository failures are logged and collected; only setup failures
// and cancellation are returned.
func (it *ScanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ScanOptions,
) (*ScanResult, error) {
	lookup, err := it.extract.ParentLookupFor(settings)
	if err != nil {
		return nil, err
	}

	date := opts.Date
	if date == "" {
		date = time.Now().Format(entities.DateLayout)
	}
	result := &ScanResult{
		Record:   entities.NewVersionRecord(date),
		Outcomes: make(map[entities.Outcome]int),
	}

	var candidates []entities.RawCandidate
	for _, repoDir := range opts.RepoDirs {
		found, sourceErr := it.source.Candidates(ctx, repoDir)
		if sourceErr != nil {
			logger.Errorf("[scan] failed to list candidates in %s: %v", repoDir, sourceErr)
			result.Failures = append(result.Failures, sourceErr)
			continue
		}
		logger.Infof("[scan] found %d candidate files in %s", len(found), repoDir)
		candidates = append(candidates, found...)
	}

	items := make([]scanItem, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, settings.Workers))
	for i, candidate := range candidates {
		g.Go(func() error {
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			extraction, extractErr := it.extract.ExtractWith(gctx, candidate, lookup)
			items[i] = scanItem{extraction: extraction, err: extractErr}
			return nil
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		return nil, fmt.Errorf("scan interrupted: %w", waitErr)
	}

	for i, item := range items {
		it.collect(result, candidates[i], item)
	}

	result.Highest = result.Record.HighestPerRepository(it.comparator)
	result.RepositoryVersions = result.Record.RepositoryVersions(it.comparator)
	result.Changes = it.detectChanges(result, opts.History)

	if flushErr := it.metrics.Flush(settings.MetricsFile); flushErr != nil {
		logger.Errorf("[scan] %v", flushErr)
	}

	logger.Infof(
		"[scan] complete: %d files, %d versions in %d repositories, %d failures",
		len(candidates), len(result.Record.Versions()), countRepositories(result.RepositoryVersions), len(result.Failures),
	)
	return result, nil
}

func (it *ScanCommand) collect(result *ScanResult, candidate entities.RawCandidate, item scanItem) {
	if item.err != nil {
		var malformed *entities.MalformedVariableError
		if errors.As(item.err, &malformed) {
			logger.Errorf("[scan] skipping %s: %v", candidate.Location, item.err)
		} else {
			logger.Errorf("[scan] failed to extract %s: %v", candidate.Location, item.err)
		}
		result.Failures = append(result.Failures, item.err)
		return
	}

	result.Outcomes[item.extraction.Outcome]++
	switch item.extraction.Outcome {
	case entities.OutcomeFound:
		result.Record.Add(item.extraction.Token.String(), candidate.Location.String())
	case entities.OutcomeUnexpected:
		result.Unexpected = append(result.Unexpected, item.extraction)
	case entities.OutcomeFiltered, entities.OutcomeBenign:
	}
}

// detectChanges replays the earlier batches in date order to rebuild the
// highest version per repository, then compares the new batch against it.
func (it *ScanCommand) detectChanges(result *ScanResult, history []*entities.VersionRecord) []entities.VersionChange {
	ordered := slices.Clone(history)
	slices.SortStableFunc(ordered, func(a, b *entities.VersionRecord) int {
		return strings.Compare(a.Date, b.Date)
	})

	seen := make(map[string]string)
	for _, record := range ordered {
		if record.Date >= result.Record.Date {
			continue
		}
		entities.AddHigherVersions(it.comparator, seen, record.RepositoryVersions(it.comparator))
	}
	return entities.DetectChanges(it.comparator, result.Record.Date, seen, result.RepositoryVersions)
}

func countRepositories(repoVersions map[string][]string) int {
	repos := make(map[string]struct{})
	for _, list := range repoVersions {
		for _, repo := range list {
			repos[repo] = struct{}{}
		}
	}
	return len(repos)
}
