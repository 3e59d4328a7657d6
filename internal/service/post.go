package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devconnect/backend/internal/models"
)

// PostService handles posts, likes and comments.
type PostService struct {
	db *gorm.DB
}

var _ IPostService = (*PostService)(nil)

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create stores a post with the author's name and avatar denormalized onto
// it.
func (s *PostService) Create(ctx context.Context, userID uuid.UUID, text string) (*models.Post, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
	if err := s.db.WithContext(ctx).Omit("Likes", "Comments").Create(&post).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", postID).Error
	})
}

// Like records a like. Liking the same post twice is an error.
func (s *PostService) Like(ctx context.Context, userID, postID uuid.UUID) ([]models.Like, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	var existing models.Like
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyLiked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	like := models.Like{PostID: postID, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&like).Error; err != nil {
		return nil, err
	}
	return s.likes(ctx, postID)
}

// Unlike removes the caller's like. Unliking a post that was never liked is
// an error.
func (s *PostService) Unlike(ctx context.Context, userID, postID uuid.UUID) ([]models.Like, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotLiked
	}
	return s.likes(ctx, postID)
}

func (s *PostService) AddComment(ctx context.Context, userID, postID uuid.UUID, text string) ([]models.Comment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return s.comments(ctx, postID)
}

// RemoveComment deletes a comment by id. Only the comment's author may
// remove it.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]models.Comment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotPostOwner
	}

	if err := s.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return nil, err
	}
	return s.comments(ctx, postID)
}

func (s *PostService) likes(ctx context.Context, postID uuid.UUID) ([]models.Like, error) {
	var likes []models.Like
	if err := s.db.WithContext(ctx).Where("post_id = ?", postID).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (s *PostService) comments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
