package repositories

import (
	"testing"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGrant(t *testing.T, repo GrantRepository, ownerID uint) *models.Grant {
	t.Helper()
	grant := &models.Grant{
		OwnerID:  ownerID,
		Title:    "Open Source Fund",
		Amount:   500000,
		Deadline: time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, repo.CreateGrant(grant))
	return grant
}

func TestSubmissionUniquePerGrantAndUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresGrantRepository(db)
	owner := seedUser(t, db, "Owner", "owner@example.com")
	alice := seedUser(t, db, "Alice", "alice@example.com")
	grant := seedGrant(t, repo, owner)

	created, err := repo.CreateSubmission(&models.GrantSubmission{GrantID: grant.ID, UserID: alice, ProjectID: 1})
	require.NoError(t, err)
	assert.True(t, created)

	// Second submission, even with a different project, is rejected silently.
	created, err = repo.CreateSubmission(&models.GrantSubmission{GrantID: grant.ID, UserID: alice, ProjectID: 2})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.SubmissionCount(grant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestApplicationUniquePerGrantAndUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresGrantRepository(db)
	owner := seedUser(t, db, "Owner", "owner@example.com")
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	grant := seedGrant(t, repo, owner)

	created, err := repo.CreateApplication(&models.GrantApplication{
		GrantID: grant.ID, UserID: alice, Pitch: "original pitch", Status: models.ApplicationStatusPending,
	})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateApplication(&models.GrantApplication{
		GrantID: grant.ID, UserID: alice, Pitch: "rewritten pitch", Status: models.ApplicationStatusPending,
	})
	require.NoError(t, err)
	assert.False(t, created)

	existing, err := repo.GetApplicationByGrantAndUser(grant.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "original pitch", existing.Pitch, "repeat application never overwrites the first")

	_, err = repo.GetApplicationByGrantAndUser(grant.ID, bob)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateApplicationStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresGrantRepository(db)
	owner := seedUser(t, db, "Owner", "owner@example.com")
	alice := seedUser(t, db, "Alice", "alice@example.com")
	grant := seedGrant(t, repo, owner)

	application := &models.GrantApplication{
		GrantID: grant.ID, UserID: alice, Pitch: "pick me", Status: models.ApplicationStatusPending,
	}
	_, err := repo.CreateApplication(application)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateApplicationStatus(application.ID, models.ApplicationStatusAccepted))
	refreshed, err := repo.GetApplicationByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, refreshed.Status)

	assert.ErrorIs(t, repo.UpdateApplicationStatus(99999, models.ApplicationStatusRejected), ErrNotFound)
}
