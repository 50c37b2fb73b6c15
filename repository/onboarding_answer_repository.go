package repository

import (
	"context"
	"fmt"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"gorm.io/gorm"
)

// OnboardingAnswerRepositoryImpl implements OnboardingAnswerRepository
type OnboardingAnswerRepositoryImpl struct {
	*BaseRepository[models.OnboardingAnswer, models.OnboardingAnswerFilter]
}

// NewOnboardingAnswerRepository creates a new onboarding answer repository
func NewOnboardingAnswerRepository(db *gorm.DB) OnboardingAnswerRepository {
	return &OnboardingAnswerRepositoryImpl{BaseRepository: NewBaseRepository[models.OnboardingAnswer, models.OnboardingAnswerFilter](db)}
}

// LatestByUser returns the most recent onboarding record for the user,
// or nil when the user never completed onboarding.
func (r *OnboardingAnswerRepositoryImpl) LatestByUser(ctx context.Context, userID string) (*models.OnboardingAnswer, error) {
	rows, err := r.ByFilter(ctx, models.OnboardingAnswerFilter{UserID: &userID}, "created_at DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// applyFilter applies filter criteria to a GORM query
func (r *OnboardingAnswerRepositoryImpl) applyFilter(query *gorm.DB, filter models.OnboardingAnswerFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves onboarding records based on filter criteria
func (r *OnboardingAnswerRepositoryImpl) ByFilter(ctx context.Context, filter models.OnboardingAnswerFilter, orderBy string, limit, offset int) ([]*models.OnboardingAnswer, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OnboardingAnswer{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.OnboardingAnswer
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find onboarding answers by filter: %w", err)
	}
	return rows, nil
}

// Count returns the number of onboarding records matching the filter
func (r *OnboardingAnswerRepositoryImpl) Count(ctx context.Context, filter models.OnboardingAnswerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OnboardingAnswer{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any onboarding record matching the filter exists
func (r *OnboardingAnswerRepositoryImpl) Exists(ctx context.Context, filter models.OnboardingAnswerFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
