package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile store operations
type IProfileService interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	AddExperience(ctx context.Context, userID uuid.UUID, req *types.AddExperienceRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, req *types.AddEducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*models.Profile, error)
}

// IPostService defines the interface for post operations
type IPostService interface {
	Create(ctx context.Context, userID uuid.UUID, text string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	Like(ctx context.Context, userID, postID uuid.UUID) ([]models.Like, error)
	Unlike(ctx context.Context, userID, postID uuid.UUID) ([]models.Like, error)
	AddComment(ctx context.Context, userID, postID uuid.UUID, text string) ([]models.Comment, error)
	RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]models.Comment, error)
}

// IGitHubService fetches public repository listings for profile pages.
type IGitHubService interface {
	Repos(ctx context.Context, username string) ([]types.GitHubRepo, error)
}

// IAvatarService stores uploaded avatar images and returns their public URL.
type IAvatarService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error)
}
