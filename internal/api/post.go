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

// PostHandler serves posts, likes and comments. Everything here requires
// authentication.
type PostHandler struct {
	posts  service.IPostService
	auth   middleware.TokenValidator
	logger *zap.Logger
}

func NewPostHandler(posts service.IPostService, auth middleware.TokenValidator, logger *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, auth: auth, logger: logger}
}

func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup, mutation ...gin.HandlerFunc) {
	posts := router.Group("/posts")
	posts.Use(middleware.AuthMiddleware(h.auth))

	posts.GET("", h.ListPosts)
	posts.GET("/:id", h.GetPost)
	posts.POST("", append(mutation, h.CreatePost)...)
	posts.DELETE("/:id", append(mutation, h.DeletePost)...)
	posts.PUT("/like/:id", append(mutation, h.LikePost)...)
	posts.PUT("/unlike/:id", append(mutation, h.UnlikePost)...)
	posts.POST("/comment/:id", append(mutation, h.AddComment)...)
	posts.DELETE("/comment/:id/:comment_id", append(mutation, h.RemoveComment)...)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req types.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), userID, postID); err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.posts.Like(c.Request.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyLiked) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
			return
		}
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.posts.Unlike(c.Request.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrNotLiked) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not yet been liked"})
			return
		}
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req types.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comments, err := h.posts.AddComment(c.Request.Context(), userID, postID, req.Text)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Comment not found"})
		return
	}

	comments, err := h.posts.RemoveComment(c.Request.Context(), userID, postID, commentID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Comment not found"})
			return
		}
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) postID(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post not found"})
		return uuid.Nil, false
	}
	return postID, true
}

func (h *PostHandler) respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post not found"})
	case errors.Is(err, service.ErrNotPostOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
	default:
		serverError(c, h.logger, err)
	}
}
