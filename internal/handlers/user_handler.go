package handlers

import (
	"net/http"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user and profile HTTP requests
type UserHandler struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
	followRepository  repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		profileRepository: profileRepo,
		followRepository:  followRepo,
	}
}

// RegisterUserRoutes registers user and profile routes. User creation is
// registered separately by the router on the unauthenticated group.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/me", h.GetMe)
	g.PUT("/me/profile", h.UpdateProfile)
}

// CreateUser registers a new user and provisions its profile up front, so
// no read path ever has to create one as a side effect.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	}

	profile, err := h.profileRepository.EnsureProfile(user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user, "profile": profile},
	})
}

// GetUser returns a user with profile and graph counts. Profiles are
// auto-provisioned on read so every viewed user resolves to one.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		return httpError(err)
	}
	profile, err := h.profileRepository.EnsureProfile(id)
	if err != nil {
		return httpError(err)
	}

	followers, _ := h.followRepository.GetFollowersCount(id)
	following, _ := h.followRepository.GetFollowingCount(id)

	isFollowed := false
	if viewerID := getUserIDFromContext(c); viewerID > 0 {
		isFollowed, _ = h.followRepository.IsFollowing(viewerID, id)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            user,
			"profile":         profile,
			"followers_count": followers,
			"following_count": following,
			"is_followed":     isFollowed,
		},
	})
}

// GetMe returns the authenticated user's own record
func (h *UserHandler) GetMe(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}
	profile, err := h.profileRepository.EnsureProfile(currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user, "profile": profile},
	})
}

// UpdateProfile updates the caller's own profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.EnsureProfile(currentUserID)
	if err != nil {
		return httpError(err)
	}

	if req.Username != "" {
		profile.Username = req.Username
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Website != "" {
		profile.Website = req.Website
	}
	if req.Github != "" {
		profile.Github = req.Github
	}
	if req.Twitter != "" {
		profile.Twitter = req.Twitter
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profile": profile}})
}

// SearchUsers searches users by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// GetFollowers lists a user's followers
func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.followRepository.GetFollowers(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// GetFollowing lists who a user follows
func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.followRepository.GetFollowing(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}
