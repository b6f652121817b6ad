package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/internal/application/service"
	"github.com/devlinkhq/devlink/internal/config"
	"github.com/devlinkhq/devlink/pkg/logger"
)

func newTestAdapter(baseURL string) service.GithubService {
	var cfg config.Config
	cfg.GitHub.APIBaseURL = baseURL
	cfg.GitHub.Timeout = 5 * time.Second
	return NewGithubAdapter(cfg, logger.NewNop())
}

func TestListRecentRepos_ParsesResponse(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/octocat/repos", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"per_page":  q.Get("per_page"),
			"sort":      q.Get("sort"),
			"direction": q.Get("direction"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":"hello-world","full_name":"octocat/hello-world","html_url":"https://github.com/octocat/hello-world","description":"demo","stargazers_count":42,"watchers_count":42,"forks_count":7},
			{"name":"spoon-knife","full_name":"octocat/spoon-knife","html_url":"https://github.com/octocat/spoon-knife","stargazers_count":1}
		]`))
	}))
	defer srv.Close()

	adapter := newTestAdapter(srv.URL)
	repos, err := adapter.ListRecentRepos(context.Background(), "octocat")

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "hello-world", repos[0].Name)
	assert.Equal(t, "octocat/hello-world", repos[0].FullName)
	assert.Equal(t, 42, repos[0].StargazersCount)
	assert.Equal(t, 7, repos[0].ForksCount)
	assert.Equal(t, map[string]string{"per_page": "5", "sort": "created", "direction": "desc"}, gotQuery)
}

func TestListRecentRepos_UnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	adapter := newTestAdapter(srv.URL)
	_, err := adapter.ListRecentRepos(context.Background(), "no-such-user")

	assert.ErrorIs(t, err, service.ErrNoGithubProfile)
}

func TestListRecentRepos_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	adapter := newTestAdapter(srv.URL)
	_, err := adapter.ListRecentRepos(context.Background(), "octocat")

	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrNoGithubProfile)
}
