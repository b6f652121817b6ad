package service

import (
	"context"
	"errors"
	"time"
)

// Repo is the slice of the GitHub repository payload the API exposes.
type Repo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// ErrNoGithubProfile maps any upstream non-success to a client-visible
// "no profile" outcome.
var ErrNoGithubProfile = errors.New("no github profile found")

type GithubService interface {
	// ListRecentRepos returns up to 5 of the user's most recently created
	// public repositories, or ErrNoGithubProfile.
	ListRecentRepos(ctx context.Context, username string) ([]Repo, error)
}

type GithubRepoCache interface {
	Get(ctx context.Context, username string) ([]Repo, bool)
	Set(ctx context.Context, username string, repos []Repo)
}
