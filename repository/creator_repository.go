package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatorRepositoryImpl implements CreatorRepository
type CreatorRepositoryImpl struct {
	*BaseRepository[models.Creator, models.CreatorFilter]
}

// NewCreatorRepository creates a new creator repository
func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &CreatorRepositoryImpl{BaseRepository: NewBaseRepository[models.Creator, models.CreatorFilter](db)}
}

// ByUUID retrieves a creator by its identifier
func (r *CreatorRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	db := r.getDB(ctx)
	var row models.Creator
	if err := db.Where("id = ?", id).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByIDs retrieves the creators whose identifiers are in ids, ordered by
// descending total follower count. Identifiers that match no row are
// silently skipped.
func (r *CreatorRepositoryImpl) ByIDs(ctx context.Context, ids []string) ([]*models.Creator, error) {
	if len(ids) == 0 {
		return []*models.Creator{}, nil
	}
	db := r.getDB(ctx)
	var rows []*models.Creator
	err := db.Model(&models.Creator{}).
		Where("id IN ?", ids).
		Order("total_followers DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find creators by ids: %w", err)
	}
	return rows, nil
}

// ListTop retrieves up to limit creators ordered by descending total
// follower count, optionally filtered by exact category tag membership.
func (r *CreatorRepositoryImpl) ListTop(ctx context.Context, category *string, limit int) ([]*models.Creator, error) {
	filter := models.CreatorFilter{Category: category}
	return r.ByFilter(ctx, filter, "total_followers DESC", limit, 0)
}

// applyFilter applies filter criteria to a GORM query
func (r *CreatorRepositoryImpl) applyFilter(query *gorm.DB, filter models.CreatorFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}
	if filter.Category != nil {
		query = query.Where("? = ANY (categories)", *filter.Category)
	}
	if filter.IsBTCOnly != nil {
		query = query.Where("is_btc_only = ?", *filter.IsBTCOnly)
	}
	if filter.MinTotalFollowers != nil {
		query = query.Where("total_followers >= ?", *filter.MinTotalFollowers)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves creators based on filter criteria
func (r *CreatorRepositoryImpl) ByFilter(ctx context.Context, filter models.CreatorFilter, orderBy string, limit, offset int) ([]*models.Creator, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Creator{}), filter)

	if orderBy == "" {
		orderBy = "total_followers DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Creator
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find creators by filter: %w", err)
	}
	return rows, nil
}

// Count returns the number of creators matching the filter
func (r *CreatorRepositoryImpl) Count(ctx context.Context, filter models.CreatorFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Creator{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any creator matching the filter exists
func (r *CreatorRepositoryImpl) Exists(ctx context.Context, filter models.CreatorFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
