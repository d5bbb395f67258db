package repositories

import (
	"errors"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations. Visibility is
// decided at query time by comparing expires_at against now; expired rows
// stay in place until the reaper or an owner delete removes them.
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetStoryByID(id uint) (*models.Story, error)
	GetActiveStoriesByAuthors(authorIDs []uint, now time.Time) ([]models.Story, error)
	DeleteStory(id, userID uint) error
	IncrementViewsCount(id uint) error
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

type postgresStoryRepository struct {
	db *gorm.DB
}

func NewPostgresStoryRepository(db *gorm.DB) StoryRepository {
	return &postgresStoryRepository{db: db}
}

// CreateStory stamps the TTL window at write time.
func (r *postgresStoryRepository) CreateStory(story *models.Story) error {
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(models.StoryTTL)
	return r.db.Create(story).Error
}

func (r *postgresStoryRepository) GetStoryByID(id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// GetActiveStoriesByAuthors returns unexpired stories for the author set,
// newest first.
func (r *postgresStoryRepository) GetActiveStoriesByAuthors(authorIDs []uint, now time.Time) ([]models.Story, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var stories []models.Story
	err := r.db.Where("author_id IN ? AND expires_at > ?", authorIDs, now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

// DeleteStory removes a story. Deletion is owner-scoped.
func (r *postgresStoryRepository) DeleteStory(id, userID uint) error {
	story, err := r.GetStoryByID(id)
	if err != nil {
		return err
	}
	if story.AuthorID != userID {
		return ErrForbidden
	}
	return r.db.Delete(&models.Story{}, id).Error
}

func (r *postgresStoryRepository) IncrementViewsCount(id uint) error {
	return r.db.Model(&models.Story{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// DeleteExpiredBefore hard-deletes stories whose TTL window closed before
// the cutoff. Janitorial only; listings never depend on it.
func (r *postgresStoryRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", cutoff).Delete(&models.Story{})
	return res.RowsAffected, res.Error
}
