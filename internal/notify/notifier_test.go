package notify

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

func newNotifier(t *testing.T) (*Notifier, repositories.NotificationRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}, &models.Profile{}))

	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	profileRepo := repositories.NewPostgresProfileRepository(db)
	return NewNotifier(notificationRepo, profileRepo, nil), notificationRepo
}

func TestNotifyWritesRowForRecipient(t *testing.T) {
	notifier, repo := newNotifier(t)

	notifier.Notify(models.NotificationTypeLike, 1, 2, models.EntityTypePost, "64f000000000000000000001", "Alice liked your post")

	notifications, total, err := repo.GetByRecipientID(2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeLike, notifications[0].Type)
	assert.Equal(t, uint(1), notifications[0].ActorID)
	assert.False(t, notifications[0].IsRead)
}

func TestNotifySkipsSelfActions(t *testing.T) {
	notifier, repo := newNotifier(t)

	notifier.Notify(models.NotificationTypeUpvote, 5, 5, models.EntityTypeProject, "1", "self upvote")

	_, total, err := repo.GetByRecipientID(5, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total, "acting on your own content never notifies you")
}

func TestNotifySkipsZeroRecipient(t *testing.T) {
	notifier, repo := newNotifier(t)

	notifier.Notify(models.NotificationTypeComment, 5, 0, models.EntityTypeProject, "1", "orphan")

	_, total, err := repo.GetByRecipientID(0, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
