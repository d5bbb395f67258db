package handlers

import (
	"net/http"
	"strconv"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository         repositories.PostRepository
	likeRepository         repositories.LikeRepository
	bookmarkRepository     repositories.BookmarkRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	enricher               *enrichment.Enricher
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
	enricher *enrichment.Enricher,
) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		likeRepository:         likeRepo,
		bookmarkRepository:     bookmarkRepo,
		commentRepository:      commentRepo,
		notificationRepository: notificationRepo,
		enricher:               enricher,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByUser)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/view", h.ViewPost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:  currentUserID,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
		VideoURLs: req.VideoURLs,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// GetPost returns a single enriched post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	views, err := h.enricher.EnrichPosts([]models.Post{*post}, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": views[0]}})
}

// GetPostsByUser returns a user's posts, enriched, newest first
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	authorID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	page, limit := parsePagination(c, 20)
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), authorID, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.enricher.EnrichPosts(posts, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": views}})
}

// UpdatePost updates the caller's own post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Content != "" {
		post.Content = req.Content
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}
	if req.VideoURLs != nil {
		post.VideoURLs = req.VideoURLs
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// DeletePost deletes the caller's own post and cascades to its likes,
// bookmarks, comments and notifications, so later enrichment of a dangling
// reference yields zero counts rather than an error.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return httpError(err)
	}

	cascadeStep("likes", models.EntityTypePost, postID, h.likeRepository.DeleteByPostID(postID))
	cascadeStep("bookmarks", models.EntityTypePost, postID, h.bookmarkRepository.DeleteByEntity(models.EntityTypePost, postID))
	cascadeStep("comments", models.EntityTypePost, postID, h.commentRepository.DeleteByEntity(models.EntityTypePost, postID))
	cascadeStep("notifications", models.EntityTypePost, postID, h.notificationRepository.DeleteByTarget(models.EntityTypePost, postID))

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ViewPost bumps the post view counter
func (h *PostHandler) ViewPost(c echo.Context) error {
	postID := c.Param("id")
	if err := h.postRepository.IncrementViewsCount(c.Request().Context(), postID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// entityIDString renders a numeric entity id the way reaction and comment
// rows store it.
func entityIDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
