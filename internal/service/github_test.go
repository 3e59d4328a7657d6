package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubServiceForTest(t *testing.T, handler http.Handler) *GitHubService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewGitHubService("")
	svc.baseURL = server.URL
	return svc
}

func TestGitHubRepos(t *testing.T) {
	svc := newGitHubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "hello-world", "html_url": "https://github.com/octocat/hello-world", "description": "my first repo"},
			{"name": "spoon-knife", "html_url": "https://github.com/octocat/spoon-knife"}
		]`))
	}))

	repos, err := svc.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "hello-world", repos[0].Name)
	assert.Equal(t, "https://github.com/octocat/hello-world", repos[0].HTMLURL)
}

func TestGitHubReposUnknownUser(t *testing.T) {
	svc := newGitHubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))

	_, err := svc.Repos(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, ErrNoGitHubUser)
}

func TestGitHubReposUpstreamFailure(t *testing.T) {
	svc := newGitHubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))

	_, err := svc.Repos(context.Background(), "octocat")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoGitHubUser)
}

func TestGitHubReposSendsToken(t *testing.T) {
	var gotAuth string
	svc := newGitHubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	svc.token = "gh-token"

	_, err := svc.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "Bearer gh-token", gotAuth)
}
