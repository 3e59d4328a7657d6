package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/service"
	"github.com/devconnect/backend/internal/types"
)

// ProfileHandler serves the profile CRUD surface: the profile itself, the
// experience and education history lists, account deletion, the GitHub
// repos proxy and avatar upload.
type ProfileHandler struct {
	profiles service.IProfileService
	github   service.IGitHubService
	avatars  service.IAvatarService
	auth     middleware.TokenValidator
	logger   *zap.Logger
}

func NewProfileHandler(
	profiles service.IProfileService,
	github service.IGitHubService,
	avatars service.IAvatarService,
	auth middleware.TokenValidator,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		github:   github,
		avatars:  avatars,
		auth:     auth,
		logger:   logger,
	}
}

// RegisterRoutes mounts the profile routes. mutation is an optional extra
// middleware (rate limiting) applied to authenticated mutating routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, mutation ...gin.HandlerFunc) {
	profile := router.Group("/profile")

	authed := append([]gin.HandlerFunc{middleware.AuthMiddleware(h.auth)}, mutation...)

	profile.GET("", h.ListProfiles)
	profile.GET("/user/:user_id", h.GetProfileByUser)
	profile.GET("/github/:username", h.GetGithubRepos)
	profile.GET("/me", middleware.AuthMiddleware(h.auth), h.GetOwnProfile)

	profile.POST("", append(authed, h.UpsertProfile)...)
	profile.DELETE("", append(authed, h.DeleteAccount)...)
	profile.PUT("/experience", append(authed, h.AddExperience)...)
	profile.DELETE("/experience/:exp_id", append(authed, h.RemoveExperience)...)
	profile.PUT("/education", append(authed, h.AddEducation)...)
	profile.DELETE("/education/:edu_id", append(authed, h.RemoveEducation)...)
	if h.avatars != nil {
		profile.POST("/avatar", append(authed, h.UploadAvatar)...)
	}
}

// GetOwnProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpsertProfile creates the user's profile or updates it in place.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req types.UpsertProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListProfiles returns every profile. No authentication required.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetProfileByUser returns the profile owned by the given user id. A
// malformed id gets the same not-found response as a missing profile.
func (h *ProfileHandler) GetProfileByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found!"})
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found!"})
			return
		}
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the user's posts, profile and account.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req types.AddExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.AddExperience(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Experience entry not found"})
		return
	}

	profile, err := h.profiles.RemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Experience entry not found"})
			return
		}
		h.respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req types.AddEducationRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.AddEducation(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Education entry not found"})
		return
	}

	profile, err := h.profiles.RemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Education entry not found"})
			return
		}
		h.respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetGithubRepos proxies the GitHub API for the profile page.
func (h *ProfileHandler) GetGithubRepos(c *gin.Context) {
	repos, err := h.github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNoGitHubUser) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "No GitHub profile found"})
			return
		}
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, repos)
}

// UploadAvatar stores a new avatar image for the authenticated user.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Avatar file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		serverError(c, h.logger, err)
		return
	}
	defer src.Close()

	url, err := h.avatars.Upload(
		c.Request.Context(),
		userID,
		file.Filename,
		file.Header.Get("Content-Type"),
		src,
		file.Size,
	)
	if err != nil {
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": url})
}

func (h *ProfileHandler) respondProfileError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	serverError(c, h.logger, err)
}
