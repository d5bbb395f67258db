package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user's id from the JWT
// claims placed in the context by the auth middleware. Returns 0 when the
// request is unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// requireUserID is getUserIDFromContext for endpoints that reject anonymous
// callers.
func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// parseEntityID parses a numeric ledger entity id.
func parseEntityID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, repositories.ErrNotFound
	}
	return uint(v), nil
}

// parseUintParam parses a numeric path parameter.
func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = defaultLimit
	}
	return page, limit
}

// paginationMeta builds the standard meta envelope.
func paginationMeta(page, limit int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

// cascadeStep records the outcome of one cleanup step after a content row
// is deleted. The parent row is already gone at that point, so a failed
// step cannot fail the request; it is logged with enough context to re-run
// by hand, and the leftover rows read as dangling references with zero
// counts until then.
func cascadeStep(step, entityType, entityID string, err error) {
	if err != nil {
		log.Printf("cascade %s failed for %s %s: %v", step, entityType, entityID, err)
	}
}

// httpError maps store-layer failures to HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, repositories.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	case errors.Is(err, repositories.ErrSelfFollow), errors.Is(err, repositories.ErrSelfChat):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
