package router

import (
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newIdentityRepos(t *testing.T) (*Repos, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}))
	return &Repos{
		User:    repositories.NewPostgresUserRepository(db),
		Profile: repositories.NewPostgresProfileRepository(db),
	}, db
}

func TestMarkNewsBotProvisionsMissingAccount(t *testing.T) {
	repos, _ := newIdentityRepos(t)

	markNewsBot(repos, "news@buildhub.dev")

	user, err := repos.User.GetUserByEmail("news@buildhub.dev")
	require.NoError(t, err, "the account is created on first boot")
	profile, err := repos.Profile.EnsureProfile(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsNewsBot)
}

func TestMarkNewsBotFlagsExistingAccount(t *testing.T) {
	repos, db := newIdentityRepos(t)
	user := models.User{Name: "Newsie", Email: "news@buildhub.dev"}
	require.NoError(t, db.Create(&user).Error)

	markNewsBot(repos, "news@buildhub.dev")
	markNewsBot(repos, "news@buildhub.dev") // repeat is a no-op

	profile, err := repos.Profile.EnsureProfile(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsNewsBot)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "flagging never duplicates the account")
}

func TestMarkNewsBotEmptyEmailIsNoOp(t *testing.T) {
	repos, db := newIdentityRepos(t)

	markNewsBot(repos, "")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
