package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devconnect/backend/config"
	"github.com/devconnect/backend/internal/models"
)

// AvatarService stores uploaded avatar images in S3 and records the public
// URL on the user.
type AvatarService struct {
	db       *gorm.DB
	s3Client *s3.Client
	cfg      config.S3Config
}

var _ IAvatarService = (*AvatarService)(nil)

func NewAvatarService(ctx context.Context, db *gorm.DB, cfg config.S3Config) (*AvatarService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AvatarService{
		db:       db,
		s3Client: s3.NewFromConfig(awsCfg),
		cfg:      cfg,
	}, nil
}

// Upload writes the image to the avatar bucket and updates the user's
// avatar URL. The object key is derived from the user id, so re-uploading
// replaces the previous avatar.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	key := fmt.Sprintf("avatars/%s%s", userID, ext)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.cfg.Bucket, key)
	if s.cfg.PublicURL != "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.PublicURL, "/"), key)
	}

	err = s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", publicURL).Error
	if err != nil {
		return "", err
	}

	return publicURL, nil
}
