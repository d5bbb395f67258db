package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/notify"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *notify.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user. Re-following is indistinguishable from
// first-time success; only a fresh edge fans out a notification.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return httpError(err)
	}

	created, err := h.followRepository.Follow(currentUserID, targetID)
	if err != nil {
		return httpError(err)
	}

	if created {
		actor, err := h.userRepository.GetUserByID(currentUserID)
		if err == nil {
			h.notifier.Notify(models.NotificationTypeFollow, currentUserID, targetID,
				"user", "", actor.Name+" started following you")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user. Unfollowing someone never followed is a
// success no-op.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followRepository.Unfollow(currentUserID, targetID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
