package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	enricher               *enrichment.Enricher
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, enricher *enrichment.Enricher) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notificationRepo,
		enricher:               enricher,
	}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// EnrichedNotification is a notification with its actor summary
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

// GetNotifications lists the caller's notifications, newest first, with
// actor summaries resolved in one batch.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	page, limit := parsePagination(c, 20)

	notifications, total, err := h.notificationRepository.GetByRecipientID(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	actors := h.enricher.ResolveAuthors(lo.Map(notifications, func(n models.Notification, _ int) uint {
		return n.ActorID
	}))
	enriched := lo.Map(notifications, func(n models.Notification, _ int) EnrichedNotification {
		return EnrichedNotification{Notification: n, Actor: actors[n.ActorID]}
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"notifications": enriched},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unread_count": count}})
}

// MarkAsRead marks one notification read. The lookup is scoped to the
// caller, so someone else's notification id reads as not found.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(id, currentUserID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks every unread notification of the caller as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
