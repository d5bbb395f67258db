package repositories

import (
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Project{},
		&models.Resource{},
		&models.Comment{},
		&models.Vote{},
		&models.Like{},
		&models.Bookmark{},
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
		&models.Story{},
		&models.Grant{},
		&models.GrantSubmission{},
		&models.GrantApplication{},
	))
	return db
}

// seedUser inserts a user row and returns its id.
func seedUser(t *testing.T, db *gorm.DB, name, email string) uint {
	t.Helper()
	user := models.User{Name: name, Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}
