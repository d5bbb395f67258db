package repositories

import (
	"errors"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	CreateProject(project *models.Project) error
	GetProjectByID(id uint) (*models.Project, error)
	GetProjectsByOwnerID(ownerID uint) ([]models.Project, error)
	GetProjectsByOwnerIDs(ownerIDs []uint, limit int) ([]models.Project, error)
	GetProjects(page, limit int) ([]models.Project, int64, error)
	UpdateProject(project *models.Project) error
	DeleteProject(id uint) error
}

// PostgresProjectRepository implements ProjectRepository for PostgreSQL
type PostgresProjectRepository struct {
	db *gorm.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository
func NewPostgresProjectRepository(db *gorm.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) CreateProject(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *PostgresProjectRepository) GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *PostgresProjectRepository) GetProjectsByOwnerID(ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// GetProjectsByOwnerIDs retrieves the most recent projects owned by the
// given set of users; this is the feed composer's project-side input.
func (r *PostgresProjectRepository) GetProjectsByOwnerIDs(ownerIDs []uint, limit int) ([]models.Project, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var projects []models.Project
	err := r.db.Where("owner_id IN ?", ownerIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *PostgresProjectRepository) GetProjects(page, limit int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64
	r.db.Model(&models.Project{}).Count(&total)
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, total, err
}

func (r *PostgresProjectRepository) UpdateProject(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteProject removes the project row only. The handler owns the cascade
// to votes, bookmarks, comments and notifications referencing it.
func (r *PostgresProjectRepository) DeleteProject(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}
