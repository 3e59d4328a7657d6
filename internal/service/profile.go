package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/types"
)

// ProfileService is the profile store: one profile per user, with the
// embedded experience and education history lists.
type ProfileService struct {
	db *gorm.DB
}

var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetByUserID retrieves a user's profile joined with the owner's name and
// avatar. History lists come back newest-first.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.withListings(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the user's profile or updates it in place. The write is a
// single INSERT ... ON CONFLICT (user_id) DO UPDATE, so concurrent
// submissions cannot create duplicate profiles. Only fields present in the
// request overwrite stored values.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*models.Profile, error) {
	skills := splitSkills(req.Skills)

	profile := models.Profile{
		UserID: userID,
		Status: req.Status,
		Skills: skills,
	}
	assignments := map[string]interface{}{
		"status": req.Status,
		"skills": skills,
	}

	setString := func(column string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			assignments[column] = *v
		}
	}
	setString("company", &profile.Company, req.Company)
	setString("website", &profile.Website, req.Website)
	setString("location", &profile.Location, req.Location)
	setString("bio", &profile.Bio, req.Bio)
	setString("github_username", &profile.GithubUsername, req.GithubUsername)
	setString("social_youtube", &profile.Social.Youtube, req.Youtube)
	setString("social_twitter", &profile.Social.Twitter, req.Twitter)
	setString("social_facebook", &profile.Social.Facebook, req.Facebook)
	setString("social_linkedin", &profile.Social.Linkedin, req.Linkedin)
	setString("social_instagram", &profile.Social.Instagram, req.Instagram)

	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&profile).Error
	if err != nil {
		return nil, err
	}

	return s.GetByUserID(ctx, userID)
}

// List returns every profile joined with the owner's name and avatar.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.withListings(s.db.WithContext(ctx)).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteAccount removes the user's posts, profile and user record. The
// chain runs in one transaction; a mid-chain failure leaves nothing behind
// instead of partial state.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uuid.UUID
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case err == nil:
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Deleting an account without a profile is fine.
		default:
			return err
		}

		// Hard delete so the email is free for re-registration.
		return tx.Unscoped().Where("id = ?", userID).Delete(&models.User{}).Error
	})
}

// AddExperience inserts a work history entry. The entry lands at index 0 of
// the listing.
func (s *ProfileService) AddExperience(ctx context.Context, userID uuid.UUID, req *types.AddExperienceRequest) (*models.Profile, error) {
	profile, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		ProfileID:   profile.ID,
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return s.GetByUserID(ctx, userID)
}

// RemoveExperience deletes an entry by id. An id that is not in the user's
// list is reported as not found; other entries are never touched.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*models.Profile, error) {
	profile, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEntryNotFound
	}

	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, req *types.AddEducationRequest) (*models.Profile, error) {
	profile, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ProfileID:    profile.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*models.Profile, error) {
	profile, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEntryNotFound
	}

	return s.GetByUserID(ctx, userID)
}

// findOwned loads the bare profile row for a user, without listings.
func (s *ProfileService) findOwned(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// withListings attaches the owner join and the newest-first history lists.
func (s *ProfileService) withListings(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar_url")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq DESC")
		})
}

// splitSkills turns the comma-separated skills submission into a trimmed
// ordered list.
func splitSkills(s string) models.JSONBStringArray {
	parts := strings.Split(s, ",")
	out := make(models.JSONBStringArray, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
