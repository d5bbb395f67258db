package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ResourceHandler handles resource-related HTTP requests
type ResourceHandler struct {
	resourceRepository     repositories.ResourceRepository
	voteRepository         repositories.VoteRepository
	bookmarkRepository     repositories.BookmarkRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	enricher               *enrichment.Enricher
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(
	resourceRepo repositories.ResourceRepository,
	voteRepo repositories.VoteRepository,
	bookmarkRepo repositories.BookmarkRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
	enricher *enrichment.Enricher,
) *ResourceHandler {
	return &ResourceHandler{
		resourceRepository:     resourceRepo,
		voteRepository:         voteRepo,
		bookmarkRepository:     bookmarkRepo,
		commentRepository:      commentRepo,
		notificationRepository: notificationRepo,
		enricher:               enricher,
	}
}

// RegisterResourceRoutes registers resource-related routes
func (h *ResourceHandler) RegisterResourceRoutes(g *echo.Group) {
	g.POST("/resources", h.CreateResource)
	g.GET("/resources", h.GetResources)
	g.GET("/resources/:id", h.GetResource)
	g.DELETE("/resources/:id", h.DeleteResource)
}

// CreateResource shares a new resource
func (h *ResourceHandler) CreateResource(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateResourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resource := &models.Resource{
		OwnerID:     currentUserID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Kind:        req.Kind,
	}
	if err := h.resourceRepository.CreateResource(resource); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"resource": resource}})
}

// GetResources returns a paginated, enriched resource listing
func (h *ResourceHandler) GetResources(c echo.Context) error {
	page, limit := parsePagination(c, 20)

	resources, total, err := h.resourceRepository.GetResources(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.enricher.EnrichResources(resources, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"resources": views},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetResource returns a single enriched resource
func (h *ResourceHandler) GetResource(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	resource, err := h.resourceRepository.GetResourceByID(id)
	if err != nil {
		return httpError(err)
	}

	views, err := h.enricher.EnrichResources([]models.Resource{*resource}, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"resource": views[0]}})
}

// DeleteResource deletes the caller's own resource and cascades to its
// votes, bookmarks, comments and notifications.
func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	resource, err := h.resourceRepository.GetResourceByID(id)
	if err != nil {
		return httpError(err)
	}
	if resource.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	if err := h.resourceRepository.DeleteResource(id); err != nil {
		return httpError(err)
	}

	entityID := entityIDString(id)
	cascadeStep("votes", models.EntityTypeResource, entityID, h.voteRepository.DeleteByEntity(models.EntityTypeResource, entityID))
	cascadeStep("bookmarks", models.EntityTypeResource, entityID, h.bookmarkRepository.DeleteByEntity(models.EntityTypeResource, entityID))
	cascadeStep("comments", models.EntityTypeResource, entityID, h.commentRepository.DeleteByEntity(models.EntityTypeResource, entityID))
	cascadeStep("notifications", models.EntityTypeResource, entityID, h.notificationRepository.DeleteByTarget(models.EntityTypeResource, entityID))

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
