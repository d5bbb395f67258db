package repositories

import (
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateConversationIsCommutative(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	first, err := repo.GetOrCreateConversation(alice, bob)
	require.NoError(t, err)
	second, err := repo.GetOrCreateConversation(bob, alice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "either ordering resolves to the same thread")

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	_, err := repo.GetOrCreateConversation(alice, alice)
	assert.ErrorIs(t, err, ErrSelfChat)
}

func TestCreateMessageAdvancesLastMessageAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := repo.GetOrCreateConversation(alice, bob)
	require.NoError(t, err)

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       alice,
		Type:           models.MessageTypeText,
		Content:        "hey",
	}
	require.NoError(t, repo.CreateMessage(message))

	refreshed, err := repo.GetConversationByID(conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, message.CreatedAt.Unix(), refreshed.LastMessageAt.Unix())
}

func TestUnreadCountIsViewerScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := repo.GetOrCreateConversation(alice, bob)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateMessage(&models.Message{
			ConversationID: conversation.ID,
			SenderID:       alice,
			Type:           models.MessageTypeText,
			Content:        "ping",
		}))
	}

	// Bob has not read alice's messages; alice has nothing unread.
	bobUnread, err := repo.UnreadCount(conversation.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(3), bobUnread)

	aliceUnread, err := repo.UnreadCount(conversation.ID, alice)
	require.NoError(t, err)
	assert.Zero(t, aliceUnread)
}

func TestMarkReadLeavesOwnMessagesAlone(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := repo.GetOrCreateConversation(alice, bob)
	require.NoError(t, err)
	require.NoError(t, repo.CreateMessage(&models.Message{
		ConversationID: conversation.ID, SenderID: alice, Type: models.MessageTypeText, Content: "from alice",
	}))
	require.NoError(t, repo.CreateMessage(&models.Message{
		ConversationID: conversation.ID, SenderID: bob, Type: models.MessageTypeText, Content: "from bob",
	}))

	require.NoError(t, repo.MarkRead(conversation.ID, bob))

	bobUnread, err := repo.UnreadCount(conversation.ID, bob)
	require.NoError(t, err)
	assert.Zero(t, bobUnread)

	// Bob's own message is still unread from alice's side.
	aliceUnread, err := repo.UnreadCount(conversation.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceUnread)
}

func TestHasUnreadConversations(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	carol := seedUser(t, db, "Carol", "carol@example.com")

	conversation, err := repo.GetOrCreateConversation(alice, bob)
	require.NoError(t, err)
	require.NoError(t, repo.CreateMessage(&models.Message{
		ConversationID: conversation.ID, SenderID: alice, Type: models.MessageTypeText, Content: "hello",
	}))

	hasUnread, err := repo.HasUnreadConversations(bob)
	require.NoError(t, err)
	assert.True(t, hasUnread)

	// Carol is in no thread at all.
	hasUnread, err = repo.HasUnreadConversations(carol)
	require.NoError(t, err)
	assert.False(t, hasUnread)

	require.NoError(t, repo.MarkRead(conversation.ID, bob))
	hasUnread, err = repo.HasUnreadConversations(bob)
	require.NoError(t, err)
	assert.False(t, hasUnread)
}

func TestGetLastMessagesPicksNewestPerThread(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresConversationRepository(db)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	carol := seedUser(t, db, "Carol", "carol@example.com")

	withBob, err := repo.GetOrCreateConversation(alice, bob)
	require.NoError(t, err)
	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreateMessage(&models.Message{
			ConversationID: withBob.ID, SenderID: alice, Type: models.MessageTypeText, Content: content,
		}))
	}

	withCarol, err := repo.GetOrCreateConversation(alice, carol)
	require.NoError(t, err)
	require.NoError(t, repo.CreateMessage(&models.Message{
		ConversationID: withCarol.ID, SenderID: carol, Type: models.MessageTypeText, Content: "only",
	}))

	last, err := repo.GetLastMessages([]uint{withBob.ID, withCarol.ID})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "third", last[withBob.ID].Content)
	assert.Equal(t, "only", last[withCarol.ID].Content)
}
