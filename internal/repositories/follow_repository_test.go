package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	created, err := repo.Follow(alice, bob)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Follow(alice, bob)
	require.NoError(t, err)
	assert.False(t, created, "re-follow must not create a second edge")

	count, err := repo.GetFollowersCount(bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowSelfRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	_, err := repo.Follow(alice, alice)
	assert.ErrorIs(t, err, ErrSelfFollow)

	count, err := repo.GetFollowingCount(alice)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnfollowAbsentEdgeIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	require.NoError(t, repo.Unfollow(alice, bob))

	_, err := repo.Follow(alice, bob)
	require.NoError(t, err)
	require.NoError(t, repo.Unfollow(alice, bob))
	require.NoError(t, repo.Unfollow(alice, bob))

	following, err := repo.IsFollowing(alice, bob)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowGraphDirectionality(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	carol := seedUser(t, db, "Carol", "carol@example.com")

	_, err := repo.Follow(alice, bob)
	require.NoError(t, err)
	_, err = repo.Follow(carol, bob)
	require.NoError(t, err)

	// Following is one-way: bob follows nobody.
	ids, err := repo.GetFollowingIDs(bob)
	require.NoError(t, err)
	assert.Empty(t, ids)

	followers, err := repo.GetFollowers(bob)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	ids, err = repo.GetFollowingIDs(alice)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob}, ids)
}
