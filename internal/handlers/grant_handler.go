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

// GrantHandler handles grant-related HTTP requests: the grants themselves,
// project submissions and free-form applications.
type GrantHandler struct {
	grantRepository   repositories.GrantRepository
	projectRepository repositories.ProjectRepository
	userRepository    repositories.UserRepository
	enricher          *enrichment.Enricher
	notifier          *notify.Notifier
}

// NewGrantHandler creates a new GrantHandler
func NewGrantHandler(
	grantRepo repositories.GrantRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	enricher *enrichment.Enricher,
	notifier *notify.Notifier,
) *GrantHandler {
	return &GrantHandler{
		grantRepository:   grantRepo,
		projectRepository: projectRepo,
		userRepository:    userRepo,
		enricher:          enricher,
		notifier:          notifier,
	}
}

// RegisterGrantRoutes registers grant-related routes
func (h *GrantHandler) RegisterGrantRoutes(g *echo.Group) {
	g.GET("/grants", h.GetGrants)
	g.POST("/grants", h.CreateGrant)
	g.GET("/grants/:id", h.GetGrant)
	g.POST("/grants/:id/submissions", h.SubmitProject)
	g.GET("/grants/:id/submissions", h.GetSubmissions)
	g.POST("/grants/:id/applications", h.Apply)
	g.GET("/grants/:id/applications", h.GetApplications)
	g.GET("/grants/:id/applications/me", h.GetMyApplication)
	g.PUT("/grants/:id/applications/:application_id/status", h.UpdateApplicationStatus)
}

// GrantSummary is a grant with its owner and participation counts
type GrantSummary struct {
	models.Grant
	Owner            models.UserCompact `json:"owner"`
	SubmissionCount  int64              `json:"submission_count"`
	ApplicationCount int64              `json:"application_count"`
}

// GetGrants lists grants, newest first
func (h *GrantHandler) GetGrants(c echo.Context) error {
	page, limit := parsePagination(c, 20)

	grants, total, err := h.grantRepository.GetGrants(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	owners := h.enricher.ResolveAuthors(lo.Map(grants, func(gr models.Grant, _ int) uint {
		return gr.OwnerID
	}))

	summaries := make([]GrantSummary, 0, len(grants))
	for _, grant := range grants {
		submissions, _ := h.grantRepository.SubmissionCount(grant.ID)
		applications, _ := h.grantRepository.ApplicationCount(grant.ID)
		summaries = append(summaries, GrantSummary{
			Grant:            grant,
			Owner:            owners[grant.OwnerID],
			SubmissionCount:  submissions,
			ApplicationCount: applications,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"grants": summaries},
		"meta":    paginationMeta(page, limit, total),
	})
}

// CreateGrant posts a new grant owned by the caller
func (h *GrantHandler) CreateGrant(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateGrantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant := &models.Grant{
		OwnerID:     currentUserID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Deadline:    req.Deadline,
	}
	if err := h.grantRepository.CreateGrant(grant); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"grant": grant}})
}

// GetGrant returns one grant with owner and counts
func (h *GrantHandler) GetGrant(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	grant, err := h.grantRepository.GetGrantByID(id)
	if err != nil {
		return httpError(err)
	}

	owners := h.enricher.ResolveAuthors([]uint{grant.OwnerID})
	submissions, _ := h.grantRepository.SubmissionCount(grant.ID)
	applications, _ := h.grantRepository.ApplicationCount(grant.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{"grant": GrantSummary{
			Grant:            *grant,
			Owner:            owners[grant.OwnerID],
			SubmissionCount:  submissions,
			ApplicationCount: applications,
		}},
	})
}

// SubmitProject attaches one of the caller's projects to a grant. Repeats
// for the same grant are no-ops.
func (h *GrantHandler) SubmitProject(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	grantID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant, err := h.grantRepository.GetGrantByID(grantID)
	if err != nil {
		return httpError(err)
	}

	project, err := h.projectRepository.GetProjectByID(req.ProjectID)
	if err != nil {
		return httpError(err)
	}
	if project.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	submission := &models.GrantSubmission{
		GrantID:   grantID,
		UserID:    currentUserID,
		ProjectID: req.ProjectID,
	}
	created, err := h.grantRepository.CreateSubmission(submission)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			h.notifier.Notify(models.NotificationTypeGrantApplication, currentUserID, grant.OwnerID,
				"grant", entityIDString(grantID), actor.Name+" submitted a project to your grant")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"submission": submission}})
}

// GetSubmissions lists a grant's submissions with submitter summaries
func (h *GrantHandler) GetSubmissions(c echo.Context) error {
	grantID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.grantRepository.GetGrantByID(grantID); err != nil {
		return httpError(err)
	}

	submissions, err := h.grantRepository.GetSubmissionsByGrant(grantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	submitters := h.enricher.ResolveAuthors(lo.Map(submissions, func(s models.GrantSubmission, _ int) uint {
		return s.UserID
	}))

	type enrichedSubmission struct {
		models.GrantSubmission
		User models.UserCompact `json:"user"`
	}
	enriched := lo.Map(submissions, func(s models.GrantSubmission, _ int) enrichedSubmission {
		return enrichedSubmission{GrantSubmission: s, User: submitters[s.UserID]}
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"submissions": enriched}})
}

// Apply files the caller's application for a grant. A second application to
// the same grant returns the existing one unchanged.
func (h *GrantHandler) Apply(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	grantID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant, err := h.grantRepository.GetGrantByID(grantID)
	if err != nil {
		return httpError(err)
	}

	application := &models.GrantApplication{
		GrantID: grantID,
		UserID:  currentUserID,
		Pitch:   req.Pitch,
		Status:  models.ApplicationStatusPending,
	}
	created, err := h.grantRepository.CreateApplication(application)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !created {
		existing, err := h.grantRepository.GetApplicationByGrantAndUser(grantID, currentUserID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"application": existing}})
	}

	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.notifier.Notify(models.NotificationTypeGrantApplication, currentUserID, grant.OwnerID,
			"grant", entityIDString(grantID), actor.Name+" applied to your grant")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"application": application}})
}

// GetApplications lists a grant's applications. Only the grant owner may
// see them.
func (h *GrantHandler) GetApplications(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	grantID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	grant, err := h.grantRepository.GetGrantByID(grantID)
	if err != nil {
		return httpError(err)
	}
	if grant.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	applications, err := h.grantRepository.GetApplicationsByGrant(grantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	applicants := h.enricher.ResolveAuthors(lo.Map(applications, func(a models.GrantApplication, _ int) uint {
		return a.UserID
	}))

	type enrichedApplication struct {
		models.GrantApplication
		User models.UserCompact `json:"user"`
	}
	enriched := lo.Map(applications, func(a models.GrantApplication, _ int) enrichedApplication {
		return enrichedApplication{GrantApplication: a, User: applicants[a.UserID]}
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"applications": enriched}})
}

// GetMyApplication returns the caller's application for a grant, if any
func (h *GrantHandler) GetMyApplication(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	grantID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	application, err := h.grantRepository.GetApplicationByGrantAndUser(grantID, currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"application": application}})
}

// UpdateApplicationStatus accepts or rejects an application. Only the grant
// owner may decide; the applicant is notified of the outcome.
func (h *GrantHandler) UpdateApplicationStatus(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	grantID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	applicationID, err := parseUintParam(c, "application_id")
	if err != nil {
		return err
	}

	var req models.UpdateApplicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant, err := h.grantRepository.GetGrantByID(grantID)
	if err != nil {
		return httpError(err)
	}
	if grant.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	application, err := h.grantRepository.GetApplicationByID(applicationID)
	if err != nil {
		return httpError(err)
	}
	if application.GrantID != grantID {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	if err := h.grantRepository.UpdateApplicationStatus(applicationID, req.Status); err != nil {
		return httpError(err)
	}

	h.notifier.Notify(models.NotificationTypeApplicationStatus, currentUserID, application.UserID,
		"grant", entityIDString(grantID), "Your application for "+grant.Title+" was "+req.Status)

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
