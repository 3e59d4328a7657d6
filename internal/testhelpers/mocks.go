package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/devconnect/backend/internal/types"
)

// MockTokenValidator is a testify mock for the auth middleware's validator.
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if claims, ok := args.Get(0).(*types.TokenClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGitHubService fakes the repos proxy.
type MockGitHubService struct {
	mock.Mock
}

func (m *MockGitHubService) Repos(ctx context.Context, username string) ([]types.GitHubRepo, error) {
	args := m.Called(ctx, username)
	if repos, ok := args.Get(0).([]types.GitHubRepo); ok {
		return repos, args.Error(1)
	}
	return nil, args.Error(1)
}
