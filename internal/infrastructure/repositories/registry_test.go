//go:build unit

package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	domainRepos "github.com/rios0rios0/depscan/internal/domain/repositories"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/gradle"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/depscan/test/infrastructure/repositorydoubles"
)

func TestExtractorRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve an extractor by dialect", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewExtractorRegistry()
		reg.Register(gradle.NewExtractor())
		reg.Register(maven.NewExtractor())

		// when
		extractor, err := reg.Get(entities.DialectMaven)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DialectMaven, extractor.Dialect())
		assert.Equal(t, []entities.Dialect{entities.DialectGradle, entities.DialectMaven}, reg.Dialects())
	})

	t.Run("should return error for unknown dialect", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewExtractorRegistry()

		// when
		extractor, err := reg.Get(entities.DialectGradle)

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedDialect)
		assert.Nil(t, extractor)
	})
}

func TestFetcherRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should pass the settings to the factory function", func(t *testing.T) {
		t.Parallel()

		// given
		var received *entities.Settings
		reg := repositories.NewFetcherRegistry(repositorydoubles.NewSpyMetricsRepository())
		reg.Register("custom", func(settings *entities.Settings) domainRepos.ContentFetcher {
			received = settings
			return &repositorydoubles.SpyContentFetcher{FetcherName: "custom"}
		})
		settings := entities.NewDefaultSettings()

		// when
		fetcher, err := reg.Get("custom", settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, "custom", fetcher.Name())
		assert.Same(t, settings, received)
	})

	t.Run("should return error for unknown fetcher", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewFetcherRegistry(repositorydoubles.NewSpyMetricsRepository())

		// when
		fetcher, err := reg.Get("nonexistent", entities.NewDefaultSettings())

		// then
		require.Error(t, err)
		assert.Nil(t, fetcher)
		assert.Contains(t, err.Error(), "unknown fetcher type")
	})

	t.Run("should list registered fetcher names", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewFetcherRegistry(repositorydoubles.NewSpyMetricsRepository())
		for _, name := range []string{"raw", "git", "github"} {
			reg.Register(name, func(_ *entities.Settings) domainRepos.ContentFetcher {
				return &repositorydoubles.SpyContentFetcher{FetcherName: name}
			})
		}

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"git", "github", "raw"}, names)
	})

	t.Run("should report every fetch to the metrics", func(t *testing.T) {
		t.Parallel()

		// given
		location := entities.NewSourceLocation("acme", "poi-app", "main", "pom.xml")
		metrics := repositorydoubles.NewSpyMetricsRepository()
		reg := repositories.NewFetcherRegistry(metrics)
		failure := errors.New("404 Not Found")
		reg.Register("ok", func(_ *entities.Settings) domainRepos.ContentFetcher {
			return &repositorydoubles.SpyContentFetcher{
				FetcherName: "ok",
				Contents:    map[string]string{location.RawURL(): "<project/>"},
			}
		})
		reg.Register("broken", func(_ *entities.Settings) domainRepos.ContentFetcher {
			return &repositorydoubles.SpyContentFetcher{FetcherName: "broken", FetchErr: failure}
		})
		ok, err := reg.Get("ok", entities.NewDefaultSettings())
		require.NoError(t, err)
		broken, err := reg.Get("broken", entities.NewDefaultSettings())
		require.NoError(t, err)

		// when
		content, okErr := ok.Fetch(context.Background(), location, time.Second)
		_, brokenErr := broken.Fetch(context.Background(), location, time.Second)

		// then
		require.NoError(t, okErr)
		assert.Equal(t, "<project/>", content)
		require.ErrorIs(t, brokenErr, failure)
		assert.Equal(t, []repositorydoubles.FetchObservation{
			{Fetcher: "ok"},
			{Fetcher: "broken", Err: failure},
		}, metrics.Fetches)
	})
}
