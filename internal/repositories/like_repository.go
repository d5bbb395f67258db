package repositories

import (
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Like(postID string, userID uint) (created bool, err error)
	Unlike(postID string, userID uint) error
	HasUserLikedPost(postID string, userID uint) (bool, error)
	GetLikesCountByPostID(postID string) (int64, error)
	CountsByPostIDs(postIDs []string) (map[string]int64, error)
	LikedPostIDs(postIDs []string, userID uint) (map[string]bool, error)
	DeleteByPostID(postID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Like inserts the edge if absent; duplicate likes are a success no-op.
// The returned flag reports whether a new edge was written.
func (r *PostgresLikeRepository) Like(postID string, userID uint) (bool, error) {
	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Unlike removes the edge; removing an absent like is a success no-op.
func (r *PostgresLikeRepository) Unlike(postID string, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{}).Error
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountsByPostIDs returns like tallies for a page of posts in one grouped query.
func (r *PostgresLikeRepository) CountsByPostIDs(postIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Count
	}
	return result, nil
}

// LikedPostIDs returns which of the given posts the viewer has liked, in one query.
func (r *PostgresLikeRepository) LikedPostIDs(postIDs []string, userID uint) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	if err := r.db.Where("post_id IN ? AND user_id = ?", postIDs, userID).Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}

// DeleteByPostID removes all likes attached to a post; used by the cascading
// delete path.
func (r *PostgresLikeRepository) DeleteByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Like{}).Error
}
