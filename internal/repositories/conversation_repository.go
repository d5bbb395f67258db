package repositories

import (
	"errors"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepository defines the interface for conversation and message
// operations
type ConversationRepository interface {
	GetOrCreateConversation(a, b uint) (*models.Conversation, error)
	GetConversationByID(id uint) (*models.Conversation, error)
	GetConversationsByUser(userID uint) ([]models.Conversation, error)
	CreateMessage(message *models.Message) error
	GetMessages(conversationID uint, limit int) ([]models.Message, error)
	GetLastMessages(conversationIDs []uint) (map[uint]models.Message, error)
	UnreadCount(conversationID, viewerID uint) (int64, error)
	UnreadCounts(conversationIDs []uint, viewerID uint) (map[uint]int64, error)
	MarkRead(conversationID, viewerID uint) error
	HasUnreadConversations(viewerID uint) (bool, error)
}

type postgresConversationRepository struct {
	db *gorm.DB
}

func NewPostgresConversationRepository(db *gorm.DB) ConversationRepository {
	return &postgresConversationRepository{db: db}
}

// GetOrCreateConversation resolves the thread for a pair of users,
// creating it on first contact. The pair is canonicalized before the
// insert and the unique index on (user_a_id, user_b_id) makes concurrent
// calls from both ends converge on a single row.
func (r *postgresConversationRepository) GetOrCreateConversation(a, b uint) (*models.Conversation, error) {
	if a == b {
		return nil, ErrSelfChat
	}
	ua, ub := models.CanonicalPair(a, b)
	conversation := models.Conversation{UserAID: ua, UserBID: ub, LastMessageAt: time.Now()}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
		DoNothing: true,
	}).Create(&conversation).Error
	if err != nil {
		return nil, err
	}
	var result models.Conversation
	if err := r.db.Where("user_a_id = ? AND user_b_id = ?", ua, ub).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *postgresConversationRepository) GetConversationByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *postgresConversationRepository) GetConversationsByUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error
	return conversations, err
}

// CreateMessage appends the message and advances the conversation's
// last-message timestamp.
func (r *postgresConversationRepository) CreateMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_at", message.CreatedAt).Error
	})
}

func (r *postgresConversationRepository) GetMessages(conversationID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	q := r.db.Where("conversation_id = ?", conversationID).Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&messages).Error
	return messages, err
}

// GetLastMessages returns the newest message per conversation for a page of
// conversations. Messages are append-only, so the max id per thread is its
// newest message; one grouped subquery fetches exactly one row per thread
// instead of loading whole histories.
func (r *postgresConversationRepository) GetLastMessages(conversationIDs []uint) (map[uint]models.Message, error) {
	result := make(map[uint]models.Message)
	if len(conversationIDs) == 0 {
		return result, nil
	}
	newest := r.db.Model(&models.Message{}).
		Select("MAX(id)").
		Where("conversation_id IN ?", conversationIDs).
		Group("conversation_id")
	var messages []models.Message
	if err := r.db.Where("id IN (?)", newest).Find(&messages).Error; err != nil {
		return nil, err
	}
	for _, m := range messages {
		result[m.ConversationID] = m
	}
	return result, nil
}

// UnreadCount is the number of messages in the conversation the viewer has
// not read, i.e. sent by the other side and still unread.
func (r *postgresConversationRepository) UnreadCount(conversationID, viewerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, viewerID, false).
		Count(&count).Error
	return count, err
}

// UnreadCounts batches UnreadCount over a page of conversations in one
// grouped query.
func (r *postgresConversationRepository) UnreadCounts(conversationIDs []uint, viewerID uint) (map[uint]int64, error) {
	result := make(map[uint]int64)
	if len(conversationIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		ConversationID uint
		Count          int64
	}
	err := r.db.Model(&models.Message{}).
		Select("conversation_id, COUNT(*) as count").
		Where("conversation_id IN ? AND sender_id != ? AND is_read = ?", conversationIDs, viewerID, false).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ConversationID] = row.Count
	}
	return result, nil
}

// MarkRead bulk-flips every message the viewer has not read. Messages the
// viewer sent are untouched, so the other side's unread accounting is
// unaffected.
func (r *postgresConversationRepository) MarkRead(conversationID, viewerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, viewerID, false).
		Update("is_read", true).Error
}

// HasUnreadConversations reports whether any thread holds unread messages
// for the viewer. This is an existence check over threads, not a flat
// message count.
func (r *postgresConversationRepository) HasUnreadConversations(viewerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.user_a_id = ? OR conversations.user_b_id = ?)", viewerID, viewerID).
		Where("messages.sender_id != ? AND messages.is_read = ?", viewerID, false).
		Count(&count).Error
	return count > 0, err
}
