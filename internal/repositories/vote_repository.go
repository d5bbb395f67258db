package repositories

import (
	"errors"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteCounts aggregates both polarities for one entity.
type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

// VoteRepository defines the interface for the signed-vote ledger
type VoteRepository interface {
	SetVote(entityType, entityID string, userID uint, value int) (previous int, err error)
	RemoveVote(entityType, entityID string, userID uint, value int) error
	GetVote(entityType, entityID string, userID uint) (int, error)
	CountsByEntityIDs(entityType string, entityIDs []string) (map[string]VoteCounts, error)
	VotesByUser(entityType string, entityIDs []string, userID uint) (map[string]int, error)
	DeleteByEntity(entityType, entityID string) error
}

type postgresVoteRepository struct {
	db *gorm.DB
}

func NewPostgresVoteRepository(db *gorm.DB) VoteRepository {
	return &postgresVoteRepository{db: db}
}

// SetVote records a vote on the (entity, user) row and returns the previous
// value (0 if none) so callers can suppress fan-out on repeats. First-vote
// detection rides on the insert itself: the unique index lets exactly one
// concurrent first vote insert a row, so only one caller ever observes
// previous == 0. On conflict the committed value is read back and
// overwritten, which retracts an opposite-polarity vote in place.
func (r *postgresVoteRepository) SetVote(entityType, entityID string, userID uint, value int) (int, error) {
	vote := models.Vote{
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Value:      value,
	}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&vote)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 1 {
		return 0, nil
	}

	previous, err := r.GetVote(entityType, entityID, userID)
	if err != nil {
		return 0, err
	}
	if previous != value {
		err = r.db.Model(&models.Vote{}).
			Where("entity_type = ? AND entity_id = ? AND user_id = ?", entityType, entityID, userID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
		if err != nil {
			return 0, err
		}
	}
	return previous, nil
}

// RemoveVote deletes the row only if it carries the given polarity.
// Removing an absent vote is a success no-op.
func (r *postgresVoteRepository) RemoveVote(entityType, entityID string, userID uint, value int) error {
	return r.db.Where("entity_type = ? AND entity_id = ? AND user_id = ? AND value = ?",
		entityType, entityID, userID, value).Delete(&models.Vote{}).Error
}

// GetVote returns the active vote value for the pair, 0 if none.
func (r *postgresVoteRepository) GetVote(entityType, entityID string, userID uint) (int, error) {
	var vote models.Vote
	err := r.db.Where("entity_type = ? AND entity_id = ? AND user_id = ?", entityType, entityID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return vote.Value, nil
}

// CountsByEntityIDs returns both vote tallies for a page of entities in one
// grouped query.
func (r *postgresVoteRepository) CountsByEntityIDs(entityType string, entityIDs []string) (map[string]VoteCounts, error) {
	result := make(map[string]VoteCounts)
	if len(entityIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		EntityID string
		Value    int
		Count    int64
	}
	err := r.db.Model(&models.Vote{}).
		Select("entity_id, value, COUNT(*) as count").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id, value").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts := result[row.EntityID]
		if row.Value == models.VoteUp {
			counts.Upvotes = row.Count
		} else if row.Value == models.VoteDown {
			counts.Downvotes = row.Count
		}
		result[row.EntityID] = counts
	}
	return result, nil
}

// VotesByUser returns the viewer's active vote per entity for a page of
// entities in one query.
func (r *postgresVoteRepository) VotesByUser(entityType string, entityIDs []string, userID uint) (map[string]int, error) {
	result := make(map[string]int)
	if len(entityIDs) == 0 {
		return result, nil
	}
	var votes []models.Vote
	err := r.db.Where("entity_type = ? AND entity_id IN ? AND user_id = ?", entityType, entityIDs, userID).Find(&votes).Error
	if err != nil {
		return nil, err
	}
	for _, v := range votes {
		result[v.EntityID] = v.Value
	}
	return result, nil
}

// DeleteByEntity removes all votes attached to an entity; used by the
// cascading delete paths.
func (r *postgresVoteRepository) DeleteByEntity(entityType, entityID string) error {
	return r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).Delete(&models.Vote{}).Error
}
