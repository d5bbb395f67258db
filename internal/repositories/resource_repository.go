package repositories

import (
	"errors"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
)

// ResourceRepository defines the interface for resource data operations
type ResourceRepository interface {
	CreateResource(resource *models.Resource) error
	GetResourceByID(id uint) (*models.Resource, error)
	GetResources(page, limit int) ([]models.Resource, int64, error)
	DeleteResource(id uint) error
}

// PostgresResourceRepository implements ResourceRepository for PostgreSQL
type PostgresResourceRepository struct {
	db *gorm.DB
}

func NewPostgresResourceRepository(db *gorm.DB) *PostgresResourceRepository {
	return &PostgresResourceRepository{db: db}
}

func (r *PostgresResourceRepository) CreateResource(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

func (r *PostgresResourceRepository) GetResourceByID(id uint) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resource, nil
}

func (r *PostgresResourceRepository) GetResources(page, limit int) ([]models.Resource, int64, error) {
	var resources []models.Resource
	var total int64
	r.db.Model(&models.Resource{}).Count(&total)
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&resources).Error
	return resources, total, err
}

// DeleteResource removes the resource row only. The handler owns the
// cascade to votes, bookmarks, comments and notifications.
func (r *PostgresResourceRepository) DeleteResource(id uint) error {
	return r.db.Delete(&models.Resource{}, id).Error
}
