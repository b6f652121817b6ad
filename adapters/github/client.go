package github

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/internal/application/service"
	"github.com/devlinkhq/devlink/internal/config"
	"github.com/devlinkhq/devlink/pkg/logger"
)

type githubAdapter struct {
	client *resty.Client
	log    logger.Logger
}

func NewGithubAdapter(cfg config.Config, log logger.Logger) service.GithubService {
	client := resty.New().
		SetBaseURL(cfg.GitHub.APIBaseURL).
		SetTimeout(cfg.GitHub.Timeout).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "devlink-api")

	if cfg.GitHub.Token != "" {
		client.SetAuthToken(cfg.GitHub.Token)
	}

	log.Info("GitHub adapter initialized", zap.String("base_url", cfg.GitHub.APIBaseURL))
	return &githubAdapter{client: client, log: log}
}

func (a *githubAdapter) ListRecentRepos(ctx context.Context, username string) ([]service.Repo, error) {
	var repos []service.Repo

	resp, err := a.client.R().
		SetContext(ctx).
		SetPathParam("username", username).
		SetQueryParams(map[string]string{
			"per_page":  "5",
			"sort":      "created",
			"direction": "desc",
		}).
		SetResult(&repos).
		Get("/users/{username}/repos")

	if err != nil {
		return nil, fmt.Errorf("github repos request failed: %w", err)
	}

	if resp.IsError() {
		a.log.Debug("GitHub returned non-success for user",
			zap.String("username", username), zap.Int("status", resp.StatusCode()))
		return nil, service.ErrNoGithubProfile
	}

	return repos, nil
}
