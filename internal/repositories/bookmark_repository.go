package repositories

import (
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	Bookmark(userID uint, entityType, entityID string) error
	Unbookmark(userID uint, entityType, entityID string) error
	IsBookmarked(userID uint, entityType, entityID string) (bool, error)
	GetBookmarksByUser(userID uint) ([]models.Bookmark, error)
	BookmarkedIDs(userID uint, entityType string, entityIDs []string) (map[string]bool, error)
	DeleteByEntity(entityType, entityID string) error
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// Bookmark inserts the edge if absent; duplicates are a success no-op.
func (r *PostgresBookmarkRepository) Bookmark(userID uint, entityType, entityID string) error {
	bookmark := models.Bookmark{UserID: userID, EntityType: entityType, EntityID: entityID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "entity_type"}, {Name: "entity_id"}},
		DoNothing: true,
	}).Create(&bookmark).Error
}

// Unbookmark removes the edge; removing an absent bookmark is a success no-op.
func (r *PostgresBookmarkRepository) Unbookmark(userID uint, entityType, entityID string) error {
	return r.db.Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).Delete(&models.Bookmark{}).Error
}

func (r *PostgresBookmarkRepository) IsBookmarked(userID uint, entityType, entityID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresBookmarkRepository) GetBookmarksByUser(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// BookmarkedIDs returns which of the given entities the viewer has
// bookmarked, in one query.
func (r *PostgresBookmarkRepository) BookmarkedIDs(userID uint, entityType string, entityIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(entityIDs) == 0 {
		return result, nil
	}
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ? AND entity_type = ? AND entity_id IN ?", userID, entityType, entityIDs).Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		result[b.EntityID] = true
	}
	return result, nil
}

// DeleteByEntity removes all bookmarks attached to an entity; used by the
// cascading delete paths.
func (r *PostgresBookmarkRepository) DeleteByEntity(entityType, entityID string) error {
	return r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).Delete(&models.Bookmark{}).Error
}
