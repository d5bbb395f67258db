package enrichment

import (
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	enricher *Enricher
	votes    repositories.VoteRepository
	likes    repositories.LikeRepository
	marks    repositories.BookmarkRepository
	comments repositories.CommentRepository
	profiles repositories.ProfileRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{}, &models.Project{}, &models.Resource{},
		&models.Comment{}, &models.Vote{}, &models.Like{}, &models.Bookmark{},
	))

	users := repositories.NewPostgresUserRepository(db)
	profiles := repositories.NewPostgresProfileRepository(db)
	votes := repositories.NewPostgresVoteRepository(db)
	likes := repositories.NewPostgresLikeRepository(db)
	marks := repositories.NewPostgresBookmarkRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)

	return &fixture{
		db:       db,
		enricher: NewEnricher(users, profiles, votes, likes, marks, comments),
		votes:    votes,
		likes:    likes,
		marks:    marks,
		comments: comments,
		profiles: profiles,
	}
}

func (f *fixture) seedUser(t *testing.T, name, email string) uint {
	t.Helper()
	user := models.User{Name: name, Email: email}
	require.NoError(t, f.db.Create(&user).Error)
	return user.ID
}

func TestResolveAuthorsProvisionsMissingProfiles(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", "alice@example.com")

	authors := f.enricher.ResolveAuthors([]uint{alice, alice, 9999})
	require.Contains(t, authors, alice)
	assert.Equal(t, "Alice", authors[alice].Name)
	assert.NotEmpty(t, authors[alice].Username, "a default profile is provisioned on read")
	assert.NotContains(t, authors, uint(9999), "unknown ids are simply absent")
}

func TestEnrichProjectsCountsAndViewerFlags(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", "alice@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")

	project := models.Project{OwnerID: alice, Title: "CLI toolkit"}
	require.NoError(t, f.db.Create(&project).Error)
	pid := "1"

	_, err := f.votes.SetVote(models.EntityTypeProject, pid, alice, models.VoteUp)
	require.NoError(t, err)
	_, err = f.votes.SetVote(models.EntityTypeProject, pid, bob, models.VoteDown)
	require.NoError(t, err)
	require.NoError(t, f.marks.Bookmark(bob, models.EntityTypeProject, pid))
	require.NoError(t, f.comments.CreateComment(&models.Comment{
		EntityType: models.EntityTypeProject, EntityID: pid, UserID: bob, Content: "neat",
	}))

	views, err := f.enricher.EnrichProjects([]models.Project{project}, bob)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "Alice", view.Author.Name)
	assert.Equal(t, int64(1), view.Upvotes)
	assert.Equal(t, int64(1), view.Downvotes)
	assert.Equal(t, int64(1), view.CommentsCount)
	assert.False(t, view.HasUpvoted)
	assert.True(t, view.HasDownvoted)
	assert.True(t, view.IsBookmarked)
}

func TestEnrichPostsAnonymousViewerHasNoFlags(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", "alice@example.com")

	post := models.Post{ID: primitive.NewObjectID(), AuthorID: alice, Content: "shipped v1"}
	_, err := f.likes.Like(post.ID.Hex(), alice)
	require.NoError(t, err)

	views, err := f.enricher.EnrichPosts([]models.Post{post}, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, int64(1), views[0].LikesCount)
	assert.False(t, views[0].IsLiked, "anonymous viewers never carry flags")
	assert.False(t, views[0].IsBookmarked)
}

func TestEnrichPostsViewerFlags(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", "alice@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")

	liked := models.Post{ID: primitive.NewObjectID(), AuthorID: alice, Content: "first"}
	plain := models.Post{ID: primitive.NewObjectID(), AuthorID: alice, Content: "second"}
	_, err := f.likes.Like(liked.ID.Hex(), bob)
	require.NoError(t, err)
	require.NoError(t, f.marks.Bookmark(bob, models.EntityTypePost, liked.ID.Hex()))

	views, err := f.enricher.EnrichPosts([]models.Post{liked, plain}, bob)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsLiked)
	assert.True(t, views[0].IsBookmarked)
	assert.False(t, views[1].IsLiked)
	assert.False(t, views[1].IsBookmarked)
}

func TestEnrichResourcesEmptyPage(t *testing.T) {
	f := newFixture(t)
	views, err := f.enricher.EnrichResources(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, views)
}
