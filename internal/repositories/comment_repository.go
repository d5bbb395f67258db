package repositories

import (
	"errors"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByEntity(entityType, entityID string) ([]models.Comment, error)
	CountsByEntityIDs(entityType string, entityIDs []string) (map[string]int64, error)
	DeleteComment(id uint, userID uint) error
	DeleteByEntity(entityType, entityID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetCommentsByEntity(entityType, entityID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CountsByEntityIDs returns comment tallies for a page of entities in one
// grouped query.
func (r *PostgresCommentRepository) CountsByEntityIDs(entityType string, entityIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(entityIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		EntityID string
		Count    int64
	}
	err := r.db.Model(&models.Comment{}).
		Select("entity_id, COUNT(*) as count").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.EntityID] = row.Count
	}
	return result, nil
}

// DeleteComment removes a comment. Deletion is author-scoped: only the
// comment's author may delete it.
func (r *PostgresCommentRepository) DeleteComment(id uint, userID uint) error {
	comment, err := r.GetCommentByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrForbidden
	}
	return r.db.Delete(&models.Comment{}, id).Error
}

// DeleteByEntity removes all comments attached to an entity; used by the
// cascading delete paths.
func (r *PostgresCommentRepository) DeleteByEntity(entityType, entityID string) error {
	return r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).Delete(&models.Comment{}).Error
}
