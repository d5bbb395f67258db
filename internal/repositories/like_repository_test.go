package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	created, err := repo.Like("64f000000000000000000001", alice)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Like("64f000000000000000000001", alice)
	require.NoError(t, err)
	assert.False(t, created, "re-like must not double-count")

	count, err := repo.GetLikesCountByPostID("64f000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnlikeAbsentIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	require.NoError(t, repo.Unlike("64f000000000000000000001", alice))

	_, err := repo.Like("64f000000000000000000001", alice)
	require.NoError(t, err)
	require.NoError(t, repo.Unlike("64f000000000000000000001", alice))

	liked, err := repo.HasUserLikedPost("64f000000000000000000001", alice)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeCountsAndViewerFlagsBatched(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	p1, p2 := "64f000000000000000000001", "64f000000000000000000002"
	for _, userID := range []uint{alice, bob} {
		_, err := repo.Like(p1, userID)
		require.NoError(t, err)
	}
	_, err := repo.Like(p2, bob)
	require.NoError(t, err)

	counts, err := repo.CountsByPostIDs([]string{p1, p2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[p1])
	assert.Equal(t, int64(1), counts[p2])

	liked, err := repo.LikedPostIDs([]string{p1, p2}, alice)
	require.NoError(t, err)
	assert.True(t, liked[p1])
	assert.False(t, liked[p2])
}

func TestDeleteByPostIDCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	p := "64f000000000000000000003"
	for _, userID := range []uint{alice, bob} {
		_, err := repo.Like(p, userID)
		require.NoError(t, err)
	}
	require.NoError(t, repo.DeleteByPostID(p))

	count, err := repo.GetLikesCountByPostID(p)
	require.NoError(t, err)
	assert.Zero(t, count)
}
