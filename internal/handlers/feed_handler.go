package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/buildhubhq/buildhub-backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

const (
	// feedFetchPerKind bounds how many recent rows each content kind
	// contributes before the merge.
	feedFetchPerKind = 30
	// feedPageSize caps the merged stream.
	feedPageSize = 50
)

// FeedHandler composes the home feed: posts and projects authored by the
// viewer and everyone the viewer follows, merged into one
// reverse-chronological stream. No scoring or personalization; the merge is
// by timestamp only.
type FeedHandler struct {
	postRepository    repositories.PostRepository
	projectRepository repositories.ProjectRepository
	followRepository  repositories.FollowRepository
	enricher          *enrichment.Enricher
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	projectRepo repositories.ProjectRepository,
	followRepo repositories.FollowRepository,
	enricher *enrichment.Enricher,
) *FeedHandler {
	return &FeedHandler{
		postRepository:    postRepo,
		projectRepository: projectRepo,
		followRepository:  followRepo,
		enricher:          enricher,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// FeedItem is one entry of the mixed-kind stream, discriminated by Kind.
type FeedItem struct {
	Kind    string                  `json:"kind"` // "post" or "project"
	Post    *enrichment.PostView    `json:"post,omitempty"`
	Project *enrichment.ProjectView `json:"project,omitempty"`

	createdAt time.Time
	sortID    string
}

// GetFeed returns the merged feed for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	metrics.FeedRequests.Inc()

	items, err := h.ComposeFeed(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"feed": items},
	})
}

// ComposeFeed builds the stream for a viewer: resolve the followee set plus
// self, pull the most recent rows of each kind, enrich per kind, then merge
// newest-first. Ties on the timestamp fall back to id so pagination is
// reproducible.
func (h *FeedHandler) ComposeFeed(ctx context.Context, viewerID uint) ([]FeedItem, error) {
	authorIDs, err := h.followRepository.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, viewerID)

	posts, err := h.postRepository.GetPostsByAuthorIDs(ctx, authorIDs, feedFetchPerKind)
	if err != nil {
		return nil, err
	}
	projects, err := h.projectRepository.GetProjectsByOwnerIDs(authorIDs, feedFetchPerKind)
	if err != nil {
		return nil, err
	}

	postViews, err := h.enricher.EnrichPosts(posts, viewerID)
	if err != nil {
		return nil, err
	}
	projectViews, err := h.enricher.EnrichProjects(projects, viewerID)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(postViews)+len(projectViews))
	for i := range postViews {
		pv := postViews[i]
		items = append(items, FeedItem{
			Kind:      "post",
			Post:      &pv,
			createdAt: pv.CreatedAt,
			sortID:    pv.ID.Hex(),
		})
	}
	for i := range projectViews {
		pv := projectViews[i]
		items = append(items, FeedItem{
			Kind:      "project",
			Project:   &pv,
			createdAt: pv.CreatedAt,
			sortID:    entityIDString(pv.ID),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].createdAt.Equal(items[j].createdAt) {
			return items[i].createdAt.After(items[j].createdAt)
		}
		return items[i].sortID > items[j].sortID
	})

	if len(items) > feedPageSize {
		items = items[:feedPageSize]
	}
	return items, nil
}
