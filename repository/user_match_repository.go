package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UserMatchRepositoryImpl implements UserMatchRepository
type UserMatchRepositoryImpl struct {
	*BaseRepository[models.UserMatch, models.UserMatchFilter]
}

// NewUserMatchRepository creates a new user match repository
func NewUserMatchRepository(db *gorm.DB) UserMatchRepository {
	return &UserMatchRepositoryImpl{BaseRepository: NewBaseRepository[models.UserMatch, models.UserMatchFilter](db)}
}

// ByUserAndCriteria looks a match up by the (user_id, serialized search
// criteria) idempotency key. jsonb equality is semantic, so any
// serialization carrying the same category matches.
func (r *UserMatchRepositoryImpl) ByUserAndCriteria(ctx context.Context, userID string, criteria json.RawMessage) (*models.UserMatch, error) {
	db := r.getDB(ctx)
	var row models.UserMatch
	err := db.Where("user_id = ? AND search_criteria = ?", userID, string(criteria)).Last(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find match by user and criteria: %w", err)
	}
	return &row, nil
}

// LatestByUser returns the most recently updated match for the user
// (created_at DESC, limit 1), or nil when no row exists.
func (r *UserMatchRepositoryImpl) LatestByUser(ctx context.Context, userID string) (*models.UserMatch, error) {
	rows, err := r.ByFilter(ctx, models.UserMatchFilter{UserID: &userID}, "created_at DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ReplaceCreators overwrites the stored creator set and refreshes the
// timestamp of an existing match row.
func (r *UserMatchRepositoryImpl) ReplaceCreators(ctx context.Context, matchID uint, creatorIDs []string, at time.Time) error {
	db := r.getDB(ctx)
	result := db.Model(&models.UserMatch{}).
		Where("id = ?", matchID).
		Updates(map[string]any{
			"creator_ids": pq.StringArray(creatorIDs),
			"created_at":  at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to replace match creators: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("match %d not found", matchID)
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *UserMatchRepositoryImpl) applyFilter(query *gorm.DB, filter models.UserMatchFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.SearchCriteria != nil {
		query = query.Where("search_criteria = ?", string(*filter.SearchCriteria))
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves matches based on filter criteria
func (r *UserMatchRepositoryImpl) ByFilter(ctx context.Context, filter models.UserMatchFilter, orderBy string, limit, offset int) ([]*models.UserMatch, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.UserMatch{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.UserMatch
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find matches by filter: %w", err)
	}
	return rows, nil
}

// Count returns the number of matches matching the filter
func (r *UserMatchRepositoryImpl) Count(ctx context.Context, filter models.UserMatchFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.UserMatch{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any match matching the filter exists
func (r *UserMatchRepositoryImpl) Exists(ctx context.Context, filter models.UserMatchFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
