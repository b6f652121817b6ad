package github

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/internal/application/service"
	"github.com/devlinkhq/devlink/pkg/logger"
)

var tracer = otel.Tracer("github_usecase")

type LookupUseCase struct {
	github service.GithubService
	cache  service.GithubRepoCache
	logger logger.Logger
}

func NewLookupUseCase(gh service.GithubService, cache service.GithubRepoCache, log logger.Logger) *LookupUseCase {
	return &LookupUseCase{
		github: gh,
		cache:  cache,
		logger: log,
	}
}

// Execute returns the user's recent public repositories, caching successful
// lookups. Upstream non-success surfaces as service.ErrNoGithubProfile.
func (uc *LookupUseCase) Execute(ctx context.Context, username string) ([]service.Repo, error) {
	ctx, span := tracer.Start(ctx, "LookupRepos")
	defer span.End()

	if repos, ok := uc.cache.Get(ctx, username); ok {
		return repos, nil
	}

	repos, err := uc.github.ListRecentRepos(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Debug("Fetched github repos", zap.String("username", username), zap.Int("count", len(repos)))
	uc.cache.Set(ctx, username, repos)
	return repos, nil
}
