package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureProfileProvisionsDefault(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	profile, err := repo.EnsureProfile(alice)
	require.NoError(t, err)
	assert.Equal(t, alice, profile.UserID)
	assert.NotEmpty(t, profile.Username)

	// Repeat returns the same row; no second profile is created.
	again, err := repo.EnsureProfile(alice)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestEnsureProfileKeepsExistingEdits(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	profile, err := repo.EnsureProfile(alice)
	require.NoError(t, err)
	profile.Username = "alicebuilds"
	profile.Bio = "shipping"
	require.NoError(t, repo.UpdateProfile(profile))

	ensured, err := repo.EnsureProfile(alice)
	require.NoError(t, err)
	assert.Equal(t, "alicebuilds", ensured.Username)
	assert.Equal(t, "shipping", ensured.Bio)
}

func TestGetByUserIDsBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	_, err := repo.EnsureProfile(alice)
	require.NoError(t, err)

	profiles, err := repo.GetByUserIDs([]uint{alice, bob})
	require.NoError(t, err)
	assert.Contains(t, profiles, alice)
	assert.NotContains(t, profiles, bob, "bob has no profile yet")
}
