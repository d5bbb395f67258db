package handlers

import (
	"net/http"
	"strconv"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/notify"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/buildhubhq/buildhub-backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// ConversationHandler handles conversation and message HTTP requests
type ConversationHandler struct {
	conversationRepository repositories.ConversationRepository
	userRepository         repositories.UserRepository
	enricher               *enrichment.Enricher
	notifier               *notify.Notifier
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(
	conversationRepo repositories.ConversationRepository,
	userRepo repositories.UserRepository,
	enricher *enrichment.Enricher,
	notifier *notify.Notifier,
) *ConversationHandler {
	return &ConversationHandler{
		conversationRepository: conversationRepo,
		userRepository:         userRepo,
		enricher:               enricher,
		notifier:               notifier,
	}
}

// RegisterConversationRoutes registers conversation-related routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.POST("/conversations", h.OpenConversation)
	g.GET("/conversations/has-unread", h.HasUnread)
	g.GET("/conversations/:id/messages", h.GetMessages)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.PUT("/conversations/:id/read", h.MarkRead)
}

// ConversationSummary is one inbox row: the thread, the other side's
// summary, the newest message and the viewer's unread count.
type ConversationSummary struct {
	models.Conversation
	OtherUser   models.UserCompact `json:"other_user"`
	LastMessage *models.Message    `json:"last_message,omitempty"`
	UnreadCount int64              `json:"unread_count"`
}

// GetConversations lists the caller's threads, most recently active first.
func (h *ConversationHandler) GetConversations(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	conversations, err := h.conversationRepository.GetConversationsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conversationIDs := lo.Map(conversations, func(cv models.Conversation, _ int) uint { return cv.ID })
	lastMessages, err := h.conversationRepository.GetLastMessages(conversationIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	unread, err := h.conversationRepository.UnreadCounts(conversationIDs, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	others := h.enricher.ResolveAuthors(lo.Map(conversations, func(cv models.Conversation, _ int) uint {
		return cv.OtherParticipant(currentUserID)
	}))

	summaries := lo.Map(conversations, func(cv models.Conversation, _ int) ConversationSummary {
		summary := ConversationSummary{
			Conversation: cv,
			OtherUser:    others[cv.OtherParticipant(currentUserID)],
			UnreadCount:  unread[cv.ID],
		}
		if last, ok := lastMessages[cv.ID]; ok {
			m := last
			summary.LastMessage = &m
		}
		return summary
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"conversations": summaries}})
}

// OpenConversation resolves (or creates) the thread between the caller and
// another user. Opening from either side yields the same thread.
func (h *ConversationHandler) OpenConversation(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByID(req.UserID); err != nil {
		return httpError(err)
	}

	conversation, err := h.conversationRepository.GetOrCreateConversation(currentUserID, req.UserID)
	if err != nil {
		return httpError(err)
	}

	others := h.enricher.ResolveAuthors([]uint{req.UserID})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"conversation": conversation,
			"other_user":   others[req.UserID],
		},
	})
}

// GetMessages returns the thread's messages, oldest first. Only a
// participant may read them.
func (h *ConversationHandler) GetMessages(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	conversation, err := h.participantConversation(c, currentUserID)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	messages, err := h.conversationRepository.GetMessages(conversation.ID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"messages": messages}})
}

// SendMessage appends a message to the thread and notifies the other side.
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	conversation, err := h.participantConversation(c, currentUserID)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Type == models.MessageTypeText && req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text messages need content")
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       currentUserID,
		Type:           req.Type,
		Content:        req.Content,
		MediaURL:       req.MediaURL,
		Duration:       req.Duration,
	}
	if err := h.conversationRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.MessagesSent.Inc()

	recipientID := conversation.OtherParticipant(currentUserID)
	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.notifier.Notify(models.NotificationTypeMessage, currentUserID, recipientID,
			"conversation", entityIDString(conversation.ID), actor.Name+" sent you a message")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"message": message}})
}

// MarkRead marks every message from the other side as read. The sender's
// own messages are untouched.
func (h *ConversationHandler) MarkRead(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	conversation, err := h.participantConversation(c, currentUserID)
	if err != nil {
		return err
	}

	if err := h.conversationRepository.MarkRead(conversation.ID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// HasUnread reports whether any of the caller's threads holds unread
// messages; drives the inbox badge.
func (h *ConversationHandler) HasUnread(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	hasUnread, err := h.conversationRepository.HasUnreadConversations(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"has_unread": hasUnread}})
}

// participantConversation loads the conversation in the path and verifies
// the viewer is one of its two sides. Non-participants get not found, not
// forbidden, so thread ids leak nothing.
func (h *ConversationHandler) participantConversation(c echo.Context, viewerID uint) (*models.Conversation, error) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return nil, err
	}
	conversation, err := h.conversationRepository.GetConversationByID(id)
	if err != nil {
		return nil, httpError(err)
	}
	if !conversation.HasParticipant(viewerID) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return conversation, nil
}
