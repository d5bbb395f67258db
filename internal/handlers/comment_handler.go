package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/notify"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	postRepository     repositories.PostRepository
	projectRepository  repositories.ProjectRepository
	resourceRepository repositories.ResourceRepository
	userRepository     repositories.UserRepository
	enricher           *enrichment.Enricher
	notifier           *notify.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	projectRepo repositories.ProjectRepository,
	resourceRepo repositories.ResourceRepository,
	userRepo repositories.UserRepository,
	enricher *enrichment.Enricher,
	notifier *notify.Notifier,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		postRepository:     postRepo,
		projectRepository:  projectRepo,
		resourceRepository: resourceRepo,
		userRepository:     userRepo,
		enricher:           enricher,
		notifier:           notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.commentsRoute(models.EntityTypePost))
	g.GET("/projects/:id/comments", h.commentsRoute(models.EntityTypeProject))
	g.GET("/resources/:id/comments", h.commentsRoute(models.EntityTypeResource))
	g.DELETE("/comments/:id", h.DeleteComment)
}

// EnrichedComment is a comment with its author summary
type EnrichedComment struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// CreateComment creates a new comment on a post, project or resource and
// notifies the content owner unless they commented on their own content.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ownerID, err := h.contentOwner(c, req.EntityType, req.EntityID)
	if err != nil {
		return httpError(err)
	}

	comment := &models.Comment{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		UserID:     currentUserID,
		Content:    req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.notifier.Notify(models.NotificationTypeComment, currentUserID, ownerID,
			req.EntityType, req.EntityID, actor.Name+" commented on your "+req.EntityType)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}

// commentsRoute builds a listing handler for one entity kind, oldest first,
// with batched author resolution.
func (h *CommentHandler) commentsRoute(entityType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		comments, err := h.commentRepository.GetCommentsByEntity(entityType, c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		authors := h.enricher.ResolveAuthors(lo.Map(comments, func(cm models.Comment, _ int) uint {
			return cm.UserID
		}))
		enriched := lo.Map(comments, func(cm models.Comment, _ int) EnrichedComment {
			return EnrichedComment{Comment: cm, Author: authors[cm.UserID]}
		})

		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": enriched}})
	}
}

// DeleteComment deletes a comment; only its author may do so.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentRepository.DeleteComment(id, currentUserID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// contentOwner resolves the owner of the commented entity, verifying it
// exists.
func (h *CommentHandler) contentOwner(c echo.Context, entityType, entityID string) (uint, error) {
	switch entityType {
	case models.EntityTypePost:
		post, err := h.postRepository.GetPostByID(c.Request().Context(), entityID)
		if err != nil {
			return 0, err
		}
		return post.AuthorID, nil
	case models.EntityTypeProject:
		id, err := parseEntityID(entityID)
		if err != nil {
			return 0, err
		}
		project, err := h.projectRepository.GetProjectByID(id)
		if err != nil {
			return 0, err
		}
		return project.OwnerID, nil
	case models.EntityTypeResource:
		id, err := parseEntityID(entityID)
		if err != nil {
			return 0, err
		}
		resource, err := h.resourceRepository.GetResourceByID(id)
		if err != nil {
			return 0, err
		}
		return resource.OwnerID, nil
	}
	return 0, repositories.ErrNotFound
}
