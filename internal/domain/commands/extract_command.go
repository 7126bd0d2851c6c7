package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/depscan/internal/infrastructure/repositories"
)

// Extract is the interface for the extract command (single file).
type Extract interface {
	Execute(ctx context.Context, settings *entities.Settings, candidate entities.RawCandidate) (entities.Extraction, error)
}

// ExtractCommand runs one candidate file through the pipeline:
// filter -> extract -> resolve -> normalize.
type ExtractCommand struct {
	extractorRegistry *infraRepos.ExtractorRegistry
	fetcherRegistry   *infraRepos.FetcherRegistry
	metrics           repositories.MetricsRepository
}

// NewExtractCommand creates a new ExtractCommand with the given registries.
func NewExtractCommand(
	extractorRegistry *infraRepos.ExtractorRegistry,
	fetcherRegistry *infraRepos.FetcherRegistry,
	metrics repositories.MetricsRepository,
) *ExtractCommand {
	return &ExtractCommand{
		extractorRegistry: extractorRegistry,
		fetcherRegistry:   fetcherRegistry,
		metrics:           metrics,
	}
}

// Execute extracts the version of a single file using the configured fetcher
// for parent lookups.
func (it *ExtractCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	candidate entities.RawCandidate,
) (entities.Extraction, error) {
	lookup, err := it.ParentLookupFor(settings)
	if err != nil {
		return entities.Extraction{}, err
	}
	return it.ExtractWith(ctx, candidate, lookup)
}

// ParentLookupFor builds the parent-file lookup described by the settings.
func (it *ExtractCommand) ParentLookupFor(settings *entities.Settings) (repositories.ParentLookup, error) {
	fetcher, err := it.fetcherRegistry.Get(settings.Fetcher, settings)
	if err != nil {
		return repositories.ParentLookup{}, fmt.Errorf("failed to initialize fetcher: %w", err)
	}
	return repositories.ParentLookup{
		Fetcher:  fetcher,
		MaxDepth: settings.ParentLookup.MaxDepth,
		Timeout:  settings.ParentLookup.Timeout,
	}, nil
}

// ExtractWith runs the pipeline with an explicit lookup. The only error it
// returns for a well-formed candidate is *entities.MalformedVariableError.
func (it *ExtractCommand) ExtractWith(
	ctx context.Context,
	candidate entities.RawCandidate,
	lookup repositories.ParentLookup,
) (entities.Extraction, error) {
	extractor, err := it.extractorRegistry.Get(candidate.Dialect)
	if err != nil {
		return entities.Extraction{}, err
	}

	extraction, err := it.extract(ctx, extractor, candidate, lookup)
	if err != nil {
		var malformed *entities.MalformedVariableError
		if errors.As(err, &malformed) {
			it.metrics.ObserveMalformed(candidate.Dialect)
		}
		return entities.Extraction{}, err
	}

	it.metrics.ObserveExtraction(candidate.Dialect, extraction.Outcome)
	return extraction, nil
}

func (it *ExtractCommand) extract(
	ctx context.Context,
	extractor repositories.DialectExtractor,
	candidate entities.RawCandidate,
	lookup repositories.ParentLookup,
) (entities.Extraction, error) {
	tag := "[" + string(candidate.Dialect) + "]"
	extraction := entities.Extraction{Location: candidate.Location}

	text := extractor.Filter(candidate.Text)
	if !strings.Contains(text, entities.TargetGroup) {
		logger.Debugf("%s only excluded declarations in %s", tag, candidate.Location)
		extraction.Outcome = entities.OutcomeFiltered
		return extraction, nil
	}

	match := extractor.Extract(text)
	switch match.Kind {
	case entities.MatchNoVersion:
		extraction.Outcome = entities.OutcomeFound
		extraction.Token = entities.NoVersionToken()
		logger.Debugf("%s found declaration without version at %s", tag, candidate.Location)
		return extraction, nil

	case entities.MatchLiteral:
		value, resolved, err := extractor.Resolve(ctx, match.Raw, text, candidate.Location, lookup)
		if err != nil {
			return entities.Extraction{}, err
		}
		if !resolved && looksLikeVariable(match) {
			logger.Infof("%s could not resolve %s at %s", tag, match.Raw, candidate.Location)
		}
		extraction.Outcome = entities.OutcomeFound
		extraction.Token = entities.LiteralToken(entities.Normalize(value))
		extraction.Resolved = resolved
		logger.Debugf("%s found %s (%s) at %s", tag, extraction.Token, match.Shape, candidate.Location)
		return extraction, nil

	default:
		if extractor.IsBenign(text) {
			logger.Debugf("%s no version in %s, known benign content", tag, candidate.Location)
			extraction.Outcome = entities.OutcomeBenign
			return extraction, nil
		}
		extraction.Outcome = entities.OutcomeUnexpected
		extraction.Context = entities.ReducedContext(text)
		logger.Warnf("%s did not find a version in %s with content:\n%s", tag, candidate.Location, extraction.Context)
		return extraction, nil
	}
}

func looksLikeVariable(match entities.Match) bool {
	if strings.HasPrefix(match.Raw, "$") {
		return true
	}
	return len(match.Raw) > 0 && !strings.ContainsAny(match.Raw[:1], "0123456789[")
}
