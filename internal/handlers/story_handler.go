package handlers

import (
	"net/http"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	followRepository repositories.FollowRepository
	enricher         *enrichment.Enricher
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, followRepo repositories.FollowRepository, enricher *enrichment.Enricher) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		followRepository: followRepo,
		enricher:         enricher,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
	g.POST("/stories/:id/view", h.ViewStory)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// StoryGroup is one author's active stories. StoryCount drives the client's
// ring-color tier only.
type StoryGroup struct {
	Author     models.UserCompact `json:"author"`
	Stories    []models.Story     `json:"stories"`
	StoryCount int                `json:"story_count"`
}

// GetStories returns active stories from the viewer's followees and the
// viewer, grouped by author. Expired stories are filtered out by the query,
// never by a background job.
func (h *StoryHandler) GetStories(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	authorIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs = append(authorIDs, currentUserID)

	stories, err := h.storyRepository.GetActiveStoriesByAuthors(authorIDs, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authors := h.enricher.ResolveAuthors(lo.Map(stories, func(s models.Story, _ int) uint {
		return s.AuthorID
	}))

	grouped := lo.GroupBy(stories, func(s models.Story) uint { return s.AuthorID })

	var currentUserGroup *StoryGroup
	groups := make([]StoryGroup, 0, len(grouped))
	for authorID, authorStories := range grouped {
		group := StoryGroup{
			Author:     authors[authorID],
			Stories:    authorStories,
			StoryCount: len(authorStories),
		}
		if authorID == currentUserID {
			g := group
			currentUserGroup = &g
			continue
		}
		groups = append(groups, group)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"stories":          groups,
			"currentUserStory": currentUserGroup,
		},
	})
}

// CreateStory creates a new story with a fixed 24h visibility window
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story := &models.Story{
		AuthorID: currentUserID,
		MediaURL: req.MediaURL,
		Kind:     req.Kind,
		Duration: req.Duration,
	}
	if err := h.storyRepository.CreateStory(story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"story": story}})
}

// ViewStory bumps the story view counter
func (h *StoryHandler) ViewStory(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.storyRepository.IncrementViewsCount(id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteStory deletes a story; only its author may do so.
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.storyRepository.DeleteStory(id, currentUserID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
