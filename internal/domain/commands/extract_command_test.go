//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/depscan/internal/infrastructure/repositories"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/gradle"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/depscan/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/depscan/test/infrastructure/repositorydoubles"
)

const spyFetcher = "spy"

// newExtractCommand wires both extractors and a fetcher registry whose only
// fetcher is the given spy.
func newExtractCommand(
	fetcher *doubles.SpyContentFetcher, metrics *doubles.SpyMetricsRepository,
) *commands.ExtractCommand {
	extractorRegistry := infraRepos.NewExtractorRegistry()
	extractorRegistry.Register(gradle.NewExtractor())
	extractorRegistry.Register(maven.NewExtractor())

	fetcherRegistry := infraRepos.NewFetcherRegistry(metrics)
	fetcherRegistry.Register(spyFetcher, func(_ *entities.Settings) repositories.ContentFetcher {
		return fetcher
	})
	return commands.NewExtractCommand(extractorRegistry, fetcherRegistry, metrics)
}

func spySettings() *entities.Settings {
	settings := entities.NewDefaultSettings()
	settings.Fetcher = spyFetcher
	return settings
}

func TestExtractCommandExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		outcome  entities.Outcome
		token    string
		resolved bool
	}{
		{
			name:    "should find a literal version",
			text:    "compile 'org.apache.poi:poi:3.15'",
			outcome: entities.OutcomeFound,
			token:   "3.15",
		},
		{
			name:    "should strip the FINAL suffix",
			text:    "compile 'org.apache.poi:poi:3.16-FINAL'",
			outcome: entities.OutcomeFound,
			token:   "3.16",
		},
		{
			name:    "should strip the opening bracket of a range",
			text:    "compile 'org.apache.poi:poi:[3.8-beta5,)'",
			outcome: entities.OutcomeFound,
			token:   "3.8-beta5",
		},
		{
			name:     "should resolve a concatenated variable",
			text:     "def poiVersion = '3.17'\ncompile 'org.apache.poi:poi:'+poiVersion",
			outcome:  entities.OutcomeFound,
			token:    "3.17",
			resolved: true,
		},
		{
			name:    "should keep an unresolved variable as the token",
			text:    "compile \"org.apache.poi:poi:$poiVersion\"",
			outcome: entities.OutcomeFound,
			token:   "$poiVersion",
		},
		{
			name:    "should emit the sentinel for a declaration without version",
			text:    "compile 'org.apache.poi:poi'",
			outcome: entities.OutcomeFound,
			token:   entities.NoVersionSentinel,
		},
		{
			name:    "should report files left with excluded declarations only",
			text:    "compile group: 'org.apache.poi', name: 'ooxml-schemas', version: '1.3'",
			outcome: entities.OutcomeFiltered,
		},
		{
			name:    "should classify known harmless content as benign",
			text:    "main = 'org.apache.poi.benchmark.Main'",
			outcome: entities.OutcomeBenign,
		},
		{
			name:    "should report unknown content as unexpected",
			text:    "apply from: 'org.apache.poi.gradle'",
			outcome: entities.OutcomeUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			metrics := doubles.NewSpyMetricsRepository()
			cmd := newExtractCommand(&doubles.SpyContentFetcher{}, metrics)
			candidate := entitybuilders.NewCandidateBuilder().WithText(tt.text).BuildCandidate()

			// when
			extraction, err := cmd.Execute(context.Background(), spySettings(), candidate)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, extraction.Outcome)
			assert.Equal(t, candidate.Location, extraction.Location)
			if tt.outcome == entities.OutcomeFound {
				assert.Equal(t, tt.token, extraction.Token.String())
			}
			assert.Equal(t, tt.resolved, extraction.Resolved)
			assert.Equal(t, 1, metrics.Extractions[entities.DialectGradle][tt.outcome])
		})
	}

	t.Run("should keep the context around the group for unexpected files", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := newExtractCommand(&doubles.SpyContentFetcher{}, doubles.NewSpyMetricsRepository())
		candidate := entitybuilders.NewCandidateBuilder().
			WithText("apply from: 'org.apache.poi.gradle'").
			BuildCandidate()

		// when
		extraction, err := cmd.Execute(context.Background(), spySettings(), candidate)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.OutcomeUnexpected, extraction.Outcome)
		assert.Contains(t, extraction.Context, entities.TargetGroup)
	})

	t.Run("should fail on a malformed variable and count it", func(t *testing.T) {
		t.Parallel()

		// given
		metrics := doubles.NewSpyMetricsRepository()
		cmd := newExtractCommand(&doubles.SpyContentFetcher{}, metrics)
		candidate := entitybuilders.NewCandidateBuilder().
			WithText("compile 'org.apache.poi:poi:'+poiVersion)a").
			BuildCandidate()

		// when
		_, err := cmd.Execute(context.Background(), spySettings(), candidate)

		// then
		var malformed *entities.MalformedVariableError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, candidate.Location.String(), malformed.Location)
		assert.Equal(t, 1, metrics.Malformed[entities.DialectGradle])
		assert.Empty(t, metrics.Extractions)
	})

	t.Run("should resolve a Maven property through the configured fetcher", func(t *testing.T) {
		t.Parallel()

		// given
		metrics := doubles.NewSpyMetricsRepository()
		parent := entities.NewSourceLocation("acme", "poi-app", "main", "pom.xml")
		fetcher := &doubles.SpyContentFetcher{FetcherName: spyFetcher, Contents: map[string]string{
			parent.RawURL(): "<properties><poi.version>4.1.2</poi.version></properties>",
		}}
		cmd := newExtractCommand(fetcher, metrics)
		candidate := entitybuilders.NewCandidateBuilder().
			WithPath("module/pom.xml").
			WithText("<groupId>org.apache.poi</groupId><artifactId>poi</artifactId><version>${poi.version}</version>").
			BuildCandidate()

		// when
		extraction, err := cmd.Execute(context.Background(), spySettings(), candidate)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.OutcomeFound, extraction.Outcome)
		assert.Equal(t, "4.1.2", extraction.Token.String())
		assert.True(t, extraction.Resolved)
		assert.Equal(t, []doubles.FetchObservation{{Fetcher: spyFetcher}}, metrics.Fetches)
	})

	t.Run("should pass the parent lookup settings to the extractor", func(t *testing.T) {
		t.Parallel()

		// given
		parent := entities.NewSourceLocation("acme", "poi-app", "main", "a/b/pom.xml")
		fetcher := &doubles.SpyContentFetcher{Contents: map[string]string{parent.RawURL(): "<project/>"}}
		cmd := newExtractCommand(fetcher, doubles.NewSpyMetricsRepository())
		settings := spySettings()
		settings.ParentLookup.MaxDepth = 1
		candidate := entitybuilders.NewCandidateBuilder().
			WithPath("a/b/c/pom.xml").
			WithText("<groupId>org.apache.poi</groupId><artifactId>poi</artifactId><version>${poi.version}</version>").
			BuildCandidate()

		// when
		extraction, err := cmd.Execute(context.Background(), settings, candidate)

		// then
		require.NoError(t, err)
		assert.Equal(t, "${poi.version}", extraction.Token.String())
		assert.False(t, extraction.Resolved)
		require.Len(t, fetcher.Calls(), 1)
		assert.Equal(t, settings.ParentLookup.Timeout, fetcher.Timeouts[0])
	})

	t.Run("should fail for an unknown fetcher", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := newExtractCommand(&doubles.SpyContentFetcher{}, doubles.NewSpyMetricsRepository())
		settings := spySettings()
		settings.Fetcher = "carrier-pigeon"

		// when
		_, err := cmd.Execute(context.Background(), settings, entitybuilders.NewCandidateBuilder().BuildCandidate())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize fetcher")
	})

	t.Run("should fail for a dialect without extractor", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := newExtractCommand(&doubles.SpyContentFetcher{}, doubles.NewSpyMetricsRepository())
		candidate := entitybuilders.NewCandidateBuilder().WithDialect("ant").BuildCandidate()

		// when
		_, err := cmd.Execute(context.Background(), spySettings(), candidate)

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedDialect)
	})
}

func TestLooksLikeVariable(t *testing.T) {
	t.Parallel()

	t.Run("should tell variable references from literal versions", func(t *testing.T) {
		t.Parallel()

		// when, then
		assert.True(t, commands.LooksLikeVariable(entities.Match{Raw: "${poi.version}"}))
		assert.True(t, commands.LooksLikeVariable(entities.Match{Raw: "poiVersion"}))
		assert.False(t, commands.LooksLikeVariable(entities.Match{Raw: "3.15"}))
		assert.False(t, commands.LooksLikeVariable(entities.Match{Raw: "[3.8,)"}))
		assert.False(t, commands.LooksLikeVariable(entities.Match{}))
	})
}
