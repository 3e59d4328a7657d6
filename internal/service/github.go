package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/devconnect/backend/internal/types"
)

// GitHubService proxies the public GitHub API to list a user's most recent
// repositories for their profile page.
type GitHubService struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ IGitHubService = (*GitHubService)(nil)

func NewGitHubService(token string) *GitHubService {
	return &GitHubService{
		baseURL: "https://api.github.com",
		token:   token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Repos returns the five most recently created public repos for a username.
// An unknown username maps to ErrNoGitHubUser.
func (s *GitHubService) Repos(ctx context.Context, username string) ([]types.GitHubRepo, error) {
	endpoint := fmt.Sprintf(
		"%s/users/%s/repos?per_page=5&sort=created:asc",
		s.baseURL, url.PathEscape(username),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoGitHubUser
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var repos []types.GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}
	return repos, nil
}
