package repositories

import (
	"testing"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryVisibleWithinWindowOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresStoryRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	story := &models.Story{AuthorID: alice, MediaURL: "https://cdn.example.com/s.jpg", Kind: "image"}
	require.NoError(t, repo.CreateStory(story))
	assert.Equal(t, models.StoryTTL, story.ExpiresAt.Sub(story.CreatedAt))

	// One minute before expiry the story is listed.
	justBefore := story.CreatedAt.Add(models.StoryTTL - time.Minute)
	stories, err := repo.GetActiveStoriesByAuthors([]uint{alice}, justBefore)
	require.NoError(t, err)
	assert.Len(t, stories, 1)

	// One minute after expiry it is gone, without any deletion having run.
	justAfter := story.CreatedAt.Add(models.StoryTTL + time.Minute)
	stories, err = repo.GetActiveStoriesByAuthors([]uint{alice}, justAfter)
	require.NoError(t, err)
	assert.Empty(t, stories)

	var count int64
	require.NoError(t, db.Model(&models.Story{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "expiry is a read-side filter, not a delete")
}

func TestStoriesFilteredToAuthorSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresStoryRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	require.NoError(t, repo.CreateStory(&models.Story{AuthorID: alice, MediaURL: "https://cdn.example.com/a.jpg", Kind: "image"}))
	require.NoError(t, repo.CreateStory(&models.Story{AuthorID: bob, MediaURL: "https://cdn.example.com/b.jpg", Kind: "image"}))

	stories, err := repo.GetActiveStoriesByAuthors([]uint{alice}, time.Now())
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, alice, stories[0].AuthorID)

	stories, err = repo.GetActiveStoriesByAuthors(nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestDeleteStoryIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresStoryRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	story := &models.Story{AuthorID: alice, MediaURL: "https://cdn.example.com/s.jpg", Kind: "image"}
	require.NoError(t, repo.CreateStory(story))

	assert.ErrorIs(t, repo.DeleteStory(story.ID, bob), ErrForbidden)
	require.NoError(t, repo.DeleteStory(story.ID, alice))
	assert.ErrorIs(t, repo.DeleteStory(story.ID, alice), ErrNotFound)
}

func TestDeleteExpiredBeforeReapsOnlyOldRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresStoryRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	fresh := &models.Story{AuthorID: alice, MediaURL: "https://cdn.example.com/f.jpg", Kind: "image"}
	require.NoError(t, repo.CreateStory(fresh))

	stale := models.Story{
		AuthorID:  alice,
		MediaURL:  "https://cdn.example.com/old.jpg",
		Kind:      "image",
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
		ExpiresAt: time.Now().Add(-9 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&stale).Error)

	deleted, err := repo.DeleteExpiredBefore(time.Now().Add(-7 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, db.Model(&models.Story{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIncrementStoryViewsCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresStoryRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	story := &models.Story{AuthorID: alice, MediaURL: "https://cdn.example.com/s.jpg", Kind: "video"}
	require.NoError(t, repo.CreateStory(story))

	require.NoError(t, repo.IncrementViewsCount(story.ID))
	require.NoError(t, repo.IncrementViewsCount(story.ID))

	refreshed, err := repo.GetStoryByID(story.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.ViewsCount)
}
