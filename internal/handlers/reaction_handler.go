package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/notify"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/buildhubhq/buildhub-backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles the interaction ledger: likes on posts, signed
// votes on projects/resources and bookmarks on all three. Every mutation is
// idempotent; duplicates are indistinguishable from first-time success.
type ReactionHandler struct {
	voteRepository     repositories.VoteRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
	projectRepository  repositories.ProjectRepository
	resourceRepository repositories.ResourceRepository
	userRepository     repositories.UserRepository
	notifier           *notify.Notifier
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(
	voteRepo repositories.VoteRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	postRepo repositories.PostRepository,
	projectRepo repositories.ProjectRepository,
	resourceRepo repositories.ResourceRepository,
	userRepo repositories.UserRepository,
	notifier *notify.Notifier,
) *ReactionHandler {
	return &ReactionHandler{
		voteRepository:     voteRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
		projectRepository:  projectRepo,
		resourceRepository: resourceRepo,
		userRepository:     userRepo,
		notifier:           notifier,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)

	g.POST("/projects/:id/upvote", h.voteRoute(models.EntityTypeProject, models.VoteUp))
	g.DELETE("/projects/:id/upvote", h.unvoteRoute(models.EntityTypeProject, models.VoteUp))
	g.POST("/projects/:id/downvote", h.voteRoute(models.EntityTypeProject, models.VoteDown))
	g.DELETE("/projects/:id/downvote", h.unvoteRoute(models.EntityTypeProject, models.VoteDown))

	g.POST("/resources/:id/upvote", h.voteRoute(models.EntityTypeResource, models.VoteUp))
	g.DELETE("/resources/:id/upvote", h.unvoteRoute(models.EntityTypeResource, models.VoteUp))
	g.POST("/resources/:id/downvote", h.voteRoute(models.EntityTypeResource, models.VoteDown))
	g.DELETE("/resources/:id/downvote", h.unvoteRoute(models.EntityTypeResource, models.VoteDown))

	g.POST("/posts/:id/bookmark", h.bookmarkRoute(models.EntityTypePost, true))
	g.DELETE("/posts/:id/bookmark", h.bookmarkRoute(models.EntityTypePost, false))
	g.POST("/projects/:id/bookmark", h.bookmarkRoute(models.EntityTypeProject, true))
	g.DELETE("/projects/:id/bookmark", h.bookmarkRoute(models.EntityTypeProject, false))
	g.POST("/resources/:id/bookmark", h.bookmarkRoute(models.EntityTypeResource, true))
	g.DELETE("/resources/:id/bookmark", h.bookmarkRoute(models.EntityTypeResource, false))
	g.GET("/me/bookmarks", h.GetBookmarks)
}

// LikePost likes a post. Re-liking is a no-op and never double-counts or
// re-notifies.
func (h *ReactionHandler) LikePost(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}

	created, err := h.likeRepository.Like(postID, currentUserID)
	if err != nil {
		return httpError(err)
	}
	metrics.Reactions.WithLabelValues("like").Inc()

	if created {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			h.notifier.Notify(models.NotificationTypeLike, currentUserID, post.AuthorID,
				models.EntityTypePost, postID, actor.Name+" liked your post")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": true}})
}

// UnlikePost removes a like; removing an absent like is a success no-op.
func (h *ReactionHandler) UnlikePost(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.likeRepository.Unlike(c.Param("id"), currentUserID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": false}})
}

// voteRoute builds a handler applying one polarity to one entity kind.
// Applying the opposite polarity retracts the existing vote in the same
// atomic statement.
func (h *ReactionHandler) voteRoute(entityType string, value int) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentUserID, err := requireUserID(c)
		if err != nil {
			return err
		}
		id, err := parseUintParam(c, "id")
		if err != nil {
			return err
		}

		ownerID, err := h.entityOwner(entityType, id)
		if err != nil {
			return httpError(err)
		}

		entityID := entityIDString(id)
		previous, err := h.voteRepository.SetVote(entityType, entityID, currentUserID, value)
		if err != nil {
			return httpError(err)
		}
		metrics.Reactions.WithLabelValues(voteKindLabel(value)).Inc()

		// Only a fresh upvote notifies the owner; repeats and polarity
		// swaps back and forth stay quiet for downvotes.
		if value == models.VoteUp && previous != models.VoteUp {
			if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
				h.notifier.Notify(models.NotificationTypeUpvote, currentUserID, ownerID,
					entityType, entityID, actor.Name+" upvoted your "+entityType)
			}
		}

		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"vote": value}})
	}
}

// unvoteRoute builds a handler removing one polarity from one entity kind.
func (h *ReactionHandler) unvoteRoute(entityType string, value int) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentUserID, err := requireUserID(c)
		if err != nil {
			return err
		}
		id, err := parseUintParam(c, "id")
		if err != nil {
			return err
		}

		if err := h.voteRepository.RemoveVote(entityType, entityIDString(id), currentUserID, value); err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"vote": 0}})
	}
}

// bookmarkRoute builds a handler adding or removing a bookmark on one
// entity kind. Both directions are idempotent.
func (h *ReactionHandler) bookmarkRoute(entityType string, add bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentUserID, err := requireUserID(c)
		if err != nil {
			return err
		}

		entityID, err := h.resolveBookmarkTarget(c, entityType)
		if err != nil {
			return err
		}

		if add {
			if err := h.bookmarkRepository.Bookmark(currentUserID, entityType, entityID); err != nil {
				return httpError(err)
			}
			metrics.Reactions.WithLabelValues("bookmark").Inc()
		} else {
			if err := h.bookmarkRepository.Unbookmark(currentUserID, entityType, entityID); err != nil {
				return httpError(err)
			}
		}

		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bookmarked": add}})
	}
}

// GetBookmarks lists the caller's bookmarks, newest first
func (h *ReactionHandler) GetBookmarks(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	bookmarks, err := h.bookmarkRepository.GetBookmarksByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bookmarks": bookmarks}})
}

// resolveBookmarkTarget verifies the bookmark target exists and returns its
// ledger entity id.
func (h *ReactionHandler) resolveBookmarkTarget(c echo.Context, entityType string) (string, error) {
	switch entityType {
	case models.EntityTypePost:
		id := c.Param("id")
		if _, err := h.postRepository.GetPostByID(c.Request().Context(), id); err != nil {
			return "", httpError(err)
		}
		return id, nil
	case models.EntityTypeProject:
		pid, err := parseUintParam(c, "id")
		if err != nil {
			return "", err
		}
		if _, err := h.projectRepository.GetProjectByID(pid); err != nil {
			return "", httpError(err)
		}
		return entityIDString(pid), nil
	default:
		rid, err := parseUintParam(c, "id")
		if err != nil {
			return "", err
		}
		if _, err := h.resourceRepository.GetResourceByID(rid); err != nil {
			return "", httpError(err)
		}
		return entityIDString(rid), nil
	}
}

// entityOwner resolves the owning user of a votable entity.
func (h *ReactionHandler) entityOwner(entityType string, id uint) (uint, error) {
	switch entityType {
	case models.EntityTypeProject:
		project, err := h.projectRepository.GetProjectByID(id)
		if err != nil {
			return 0, err
		}
		return project.OwnerID, nil
	case models.EntityTypeResource:
		resource, err := h.resourceRepository.GetResourceByID(id)
		if err != nil {
			return 0, err
		}
		return resource.OwnerID, nil
	}
	return 0, repositories.ErrNotFound
}

func voteKindLabel(value int) string {
	if value == models.VoteUp {
		return "upvote"
	}
	return "downvote"
}
