package repositories

import (
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCommentIsAuthorScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	comment := &models.Comment{
		EntityType: models.EntityTypeProject,
		EntityID:   "1",
		UserID:     alice,
		Content:    "nice work",
	}
	require.NoError(t, repo.CreateComment(comment))

	assert.ErrorIs(t, repo.DeleteComment(comment.ID, bob), ErrForbidden)
	require.NoError(t, repo.DeleteComment(comment.ID, alice))
	assert.ErrorIs(t, repo.DeleteComment(comment.ID, alice), ErrNotFound)
}

func TestCommentCountsBatchedPerEntity(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.CreateComment(&models.Comment{
			EntityType: models.EntityTypeProject, EntityID: "1", UserID: alice, Content: "a",
		}))
	}
	require.NoError(t, repo.CreateComment(&models.Comment{
		EntityType: models.EntityTypeResource, EntityID: "1", UserID: alice, Content: "b",
	}))

	counts, err := repo.CountsByEntityIDs(models.EntityTypeProject, []string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["1"], "resource comment on the same id is not counted")
	assert.Zero(t, counts["2"])
}

func TestDeleteByEntityClearsThread(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateComment(&models.Comment{
			EntityType: models.EntityTypePost, EntityID: "64f000000000000000000001", UserID: alice, Content: "x",
		}))
	}
	require.NoError(t, repo.DeleteByEntity(models.EntityTypePost, "64f000000000000000000001"))

	comments, err := repo.GetCommentsByEntity(models.EntityTypePost, "64f000000000000000000001")
	require.NoError(t, err)
	assert.Empty(t, comments)
}
