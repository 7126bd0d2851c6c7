package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	domainRepos "github.com/rios0rios0/depscan/internal/domain/repositories"
	ghFetcher "github.com/rios0rios0/depscan/internal/infrastructure/repositories/fetchers/github"
	gitFetcher "github.com/rios0rios0/depscan/internal/infrastructure/repositories/fetchers/gitrepo"
	rawFetcher "github.com/rios0rios0/depscan/internal/infrastructure/repositories/fetchers/rawhttp"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/gradle"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/metrics"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/sources/gitsource"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(metrics.NewPrometheusMetricsRepository); err != nil {
		return err
	}
	if err := container.Provide(func(impl *metrics.PrometheusMetricsRepository) domainRepos.MetricsRepository {
		return impl
	}); err != nil {
		return err
	}

	// Register extractor registry with every supported dialect
	if err := container.Provide(func() *ExtractorRegistry {
		reg := NewExtractorRegistry()
		reg.Register(gradle.NewExtractor())
		reg.Register(maven.NewExtractor())
		return reg
	}); err != nil {
		return err
	}

	// Register fetcher registry with all parent-file fetchers
	if err := container.Provide(func(m domainRepos.MetricsRepository) *FetcherRegistry {
		reg := NewFetcherRegistry(m)
		reg.Register(entities.FetcherRaw, func(_ *entities.Settings) domainRepos.ContentFetcher {
			return rawFetcher.NewFetcher()
		})
		reg.Register(entities.FetcherGitHub, func(settings *entities.Settings) domainRepos.ContentFetcher {
			return ghFetcher.NewFetcher(settings.GitHubToken)
		})
		reg.Register(entities.FetcherGit, func(settings *entities.Settings) domainRepos.ContentFetcher {
			return gitFetcher.NewFetcher(settings.ParentLookup.GitDir)
		})
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(gitsource.NewCandidateSource); err != nil {
		return err
	}

	return nil
}
