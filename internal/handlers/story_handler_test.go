package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type storyFixture struct {
	db      *gorm.DB
	stories repositories.StoryRepository
	follows repositories.FollowRepository
	handler *StoryHandler
}

func newStoryFixture(t *testing.T) *storyFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{}, &models.Follow{}, &models.Story{},
		&models.Comment{}, &models.Vote{}, &models.Like{}, &models.Bookmark{},
	))

	stories := repositories.NewPostgresStoryRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	enricher := enrichment.NewEnricher(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresProfileRepository(db),
		repositories.NewPostgresVoteRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresBookmarkRepository(db),
		repositories.NewPostgresCommentRepository(db),
	)

	return &storyFixture{
		db:      db,
		stories: stories,
		follows: follows,
		handler: NewStoryHandler(stories, follows, enricher),
	}
}

func (f *storyFixture) seedUser(t *testing.T, name string) uint {
	t.Helper()
	user := models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.db.Create(&user).Error)
	return user.ID
}

// authedRequest builds an echo context carrying the viewer's JWT claims, the
// way the auth middleware would.
func authedRequest(method, target string, viewerID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: viewerID})
	return c, rec
}

func TestGetStoriesGroupsByAuthorWithOwnGroupSeparate(t *testing.T) {
	f := newStoryFixture(t)
	viewer := f.seedUser(t, "viewer")
	followee := f.seedUser(t, "followee")
	stranger := f.seedUser(t, "stranger")

	_, err := f.follows.Follow(viewer, followee)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, f.stories.CreateStory(&models.Story{
			AuthorID: followee, MediaURL: "https://cdn.example.com/f.jpg", Kind: "image",
		}))
	}
	require.NoError(t, f.stories.CreateStory(&models.Story{
		AuthorID: viewer, MediaURL: "https://cdn.example.com/v.jpg", Kind: "image",
	}))
	require.NoError(t, f.stories.CreateStory(&models.Story{
		AuthorID: stranger, MediaURL: "https://cdn.example.com/s.jpg", Kind: "image",
	}))

	c, rec := authedRequest(http.MethodGet, "/api/v1/stories", viewer)
	require.NoError(t, f.handler.GetStories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Stories []struct {
				Author     models.UserCompact `json:"author"`
				StoryCount int                `json:"story_count"`
			} `json:"stories"`
			CurrentUserStory *struct {
				Author     models.UserCompact `json:"author"`
				StoryCount int                `json:"story_count"`
			} `json:"currentUserStory"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	require.Len(t, body.Data.Stories, 1, "only followees appear; strangers are excluded")
	assert.Equal(t, followee, body.Data.Stories[0].Author.ID)
	assert.Equal(t, 2, body.Data.Stories[0].StoryCount)

	require.NotNil(t, body.Data.CurrentUserStory)
	assert.Equal(t, viewer, body.Data.CurrentUserStory.Author.ID)
	assert.Equal(t, 1, body.Data.CurrentUserStory.StoryCount)
}

func TestGetStoriesEmptyWhenNothingActive(t *testing.T) {
	f := newStoryFixture(t)
	viewer := f.seedUser(t, "viewer")

	c, rec := authedRequest(http.MethodGet, "/api/v1/stories", viewer)
	require.NoError(t, f.handler.GetStories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Stories          []json.RawMessage `json:"stories"`
			CurrentUserStory *json.RawMessage  `json:"currentUserStory"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Data.Stories)
	assert.Nil(t, body.Data.CurrentUserStory)
}

func TestDeleteStoryForbiddenForNonAuthor(t *testing.T) {
	f := newStoryFixture(t)
	author := f.seedUser(t, "author")
	other := f.seedUser(t, "other")

	story := &models.Story{AuthorID: author, MediaURL: "https://cdn.example.com/s.jpg", Kind: "image"}
	require.NoError(t, f.stories.CreateStory(story))

	c, _ := authedRequest(http.MethodDelete, "/", other)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := f.handler.DeleteStory(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
