package repositories

import (
	"errors"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GrantRepository defines the interface for grant, submission and
// application operations
type GrantRepository interface {
	CreateGrant(grant *models.Grant) error
	GetGrantByID(id uint) (*models.Grant, error)
	GetGrants(page, limit int) ([]models.Grant, int64, error)

	CreateSubmission(submission *models.GrantSubmission) (created bool, err error)
	GetSubmissionsByGrant(grantID uint) ([]models.GrantSubmission, error)
	SubmissionCount(grantID uint) (int64, error)

	CreateApplication(application *models.GrantApplication) (created bool, err error)
	GetApplicationByID(id uint) (*models.GrantApplication, error)
	GetApplicationByGrantAndUser(grantID, userID uint) (*models.GrantApplication, error)
	GetApplicationsByGrant(grantID uint) ([]models.GrantApplication, error)
	ApplicationCount(grantID uint) (int64, error)
	UpdateApplicationStatus(id uint, status string) error
}

type postgresGrantRepository struct {
	db *gorm.DB
}

func NewPostgresGrantRepository(db *gorm.DB) GrantRepository {
	return &postgresGrantRepository{db: db}
}

func (r *postgresGrantRepository) CreateGrant(grant *models.Grant) error {
	return r.db.Create(grant).Error
}

func (r *postgresGrantRepository) GetGrantByID(id uint) (*models.Grant, error) {
	var grant models.Grant
	if err := r.db.First(&grant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &grant, nil
}

func (r *postgresGrantRepository) GetGrants(page, limit int) ([]models.Grant, int64, error) {
	var grants []models.Grant
	var total int64
	r.db.Model(&models.Grant{}).Count(&total)
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&grants).Error
	return grants, total, err
}

// CreateSubmission inserts the submission unless the user already holds one
// for the grant. The flag reports whether a new row was written.
func (r *postgresGrantRepository) CreateSubmission(submission *models.GrantSubmission) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grant_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(submission)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresGrantRepository) GetSubmissionsByGrant(grantID uint) ([]models.GrantSubmission, error) {
	var submissions []models.GrantSubmission
	err := r.db.Where("grant_id = ?", grantID).Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *postgresGrantRepository) SubmissionCount(grantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.GrantSubmission{}).Where("grant_id = ?", grantID).Count(&count).Error
	return count, err
}

// CreateApplication inserts the application unless the user already holds
// one for the grant. The flag reports whether a new row was written.
func (r *postgresGrantRepository) CreateApplication(application *models.GrantApplication) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grant_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(application)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresGrantRepository) GetApplicationByID(id uint) (*models.GrantApplication, error) {
	var application models.GrantApplication
	if err := r.db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *postgresGrantRepository) GetApplicationByGrantAndUser(grantID, userID uint) (*models.GrantApplication, error) {
	var application models.GrantApplication
	err := r.db.Where("grant_id = ? AND user_id = ?", grantID, userID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *postgresGrantRepository) GetApplicationsByGrant(grantID uint) ([]models.GrantApplication, error) {
	var applications []models.GrantApplication
	err := r.db.Where("grant_id = ?", grantID).Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *postgresGrantRepository) ApplicationCount(grantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.GrantApplication{}).Where("grant_id = ?", grantID).Count(&count).Error
	return count, err
}

func (r *postgresGrantRepository) UpdateApplicationStatus(id uint, status string) error {
	res := r.db.Model(&models.GrantApplication{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
