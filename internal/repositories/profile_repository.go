package repositories

import (
	"errors"
	"fmt"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines the interface for profile operations
type ProfileRepository interface {
	EnsureProfile(userID uint) (*models.Profile, error)
	GetByUserID(userID uint) (*models.Profile, error)
	GetByUserIDs(userIDs []uint) (map[uint]models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
}

type postgresProfileRepository struct {
	db *gorm.DB
}

func NewPostgresProfileRepository(db *gorm.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

// EnsureProfile returns the profile for a user, creating a default row if
// none exists yet. Every viewed user must resolve to some profile.
func (r *postgresProfileRepository) EnsureProfile(userID uint) (*models.Profile, error) {
	profile := models.Profile{
		UserID:   userID,
		Username: fmt.Sprintf("builder%d", userID),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(userID)
}

func (r *postgresProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserIDs fetches profiles for a set of users in one query, keyed by user id.
func (r *postgresProfileRepository) GetByUserIDs(userIDs []uint) (map[uint]models.Profile, error) {
	result := make(map[uint]models.Profile)
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []models.Profile
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

func (r *postgresProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *postgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
