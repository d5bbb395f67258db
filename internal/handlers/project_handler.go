package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectRepository      repositories.ProjectRepository
	voteRepository         repositories.VoteRepository
	bookmarkRepository     repositories.BookmarkRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	enricher               *enrichment.Enricher
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(
	projectRepo repositories.ProjectRepository,
	voteRepo repositories.VoteRepository,
	bookmarkRepo repositories.BookmarkRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
	enricher *enrichment.Enricher,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepository:      projectRepo,
		voteRepository:         voteRepo,
		bookmarkRepository:     bookmarkRepo,
		commentRepository:      commentRepo,
		notificationRepository: notificationRepo,
		enricher:               enricher,
	}
}

// RegisterProjectRoutes registers project-related routes
func (h *ProjectHandler) RegisterProjectRoutes(g *echo.Group) {
	g.POST("/projects", h.CreateProject)
	g.GET("/projects", h.GetProjects)
	g.GET("/projects/:id", h.GetProject)
	g.GET("/users/:id/projects", h.GetProjectsByUser)
	g.PUT("/projects/:id", h.UpdateProject)
	g.DELETE("/projects/:id", h.DeleteProject)
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project := &models.Project{
		OwnerID:     currentUserID,
		Title:       req.Title,
		Tagline:     req.Tagline,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		Tags:        req.Tags,
	}
	if err := h.projectRepository.CreateProject(project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"project": project}})
}

// GetProjects returns a paginated, enriched project listing
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	page, limit := parsePagination(c, 20)

	projects, total, err := h.projectRepository.GetProjects(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.enricher.EnrichProjects(projects, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"projects": views},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetProject returns a single enriched project
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projectRepository.GetProjectByID(id)
	if err != nil {
		return httpError(err)
	}

	views, err := h.enricher.EnrichProjects([]models.Project{*project}, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"project": views[0]}})
}

// GetProjectsByUser returns a user's projects, enriched, newest first
func (h *ProjectHandler) GetProjectsByUser(c echo.Context) error {
	ownerID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	projects, err := h.projectRepository.GetProjectsByOwnerID(ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.enricher.EnrichProjects(projects, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"projects": views}})
}

// UpdateProject updates the caller's own project
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projectRepository.GetProjectByID(id)
	if err != nil {
		return httpError(err)
	}
	if project.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	var req models.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Tagline != "" {
		project.Tagline = req.Tagline
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.RepoURL != "" {
		project.RepoURL = req.RepoURL
	}
	if req.DemoURL != "" {
		project.DemoURL = req.DemoURL
	}
	if req.Tags != nil {
		project.Tags = req.Tags
	}

	if err := h.projectRepository.UpdateProject(project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"project": project}})
}

// DeleteProject deletes the caller's own project and cascades to its votes,
// bookmarks, comments and notifications.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projectRepository.GetProjectByID(id)
	if err != nil {
		return httpError(err)
	}
	if project.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	if err := h.projectRepository.DeleteProject(id); err != nil {
		return httpError(err)
	}

	entityID := entityIDString(id)
	cascadeStep("votes", models.EntityTypeProject, entityID, h.voteRepository.DeleteByEntity(models.EntityTypeProject, entityID))
	cascadeStep("bookmarks", models.EntityTypeProject, entityID, h.bookmarkRepository.DeleteByEntity(models.EntityTypeProject, entityID))
	cascadeStep("comments", models.EntityTypeProject, entityID, h.commentRepository.DeleteByEntity(models.EntityTypeProject, entityID))
	cascadeStep("notifications", models.EntityTypeProject, entityID, h.notificationRepository.DeleteByTarget(models.EntityTypeProject, entityID))

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
