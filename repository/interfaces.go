// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// CreatorRepository defines operations for creator profiles.
// Creators are owned by the data store; this system only reads them
// outside of fixtures and imports.
type CreatorRepository interface {
	ByFilter(ctx context.Context, filter models.CreatorFilter, orderBy string, limit, offset int) ([]*models.Creator, error)
	Save(ctx context.Context, creator *models.Creator) error
	SaveBatch(ctx context.Context, creators []*models.Creator) error
	Count(ctx context.Context, filter models.CreatorFilter) (int64, error)
	Exists(ctx context.Context, filter models.CreatorFilter) (bool, error)
	ByUUID(ctx context.Context, id uuid.UUID) (*models.Creator, error)
	// ByIDs returns the creators whose identifiers are in ids, each once,
	// ordered by descending total follower count. An empty input returns
	// an empty slice without querying.
	ByIDs(ctx context.Context, ids []string) ([]*models.Creator, error)
	// ListTop returns up to limit creators ordered by descending total
	// follower count, optionally filtered to those whose tag set contains
	// the exact category string.
	ListTop(ctx context.Context, category *string, limit int) ([]*models.Creator, error)
}

// UserMatchRepository defines operations for stored user matches
type UserMatchRepository interface {
	Repository[models.UserMatch, models.UserMatchFilter]
	// ByUserAndCriteria looks a match up by its idempotency key, the
	// (user_id, serialized search criteria) pair. Returns nil when absent.
	ByUserAndCriteria(ctx context.Context, userID string, criteria json.RawMessage) (*models.UserMatch, error)
	// LatestByUser returns the most recently updated match for the user,
	// or nil when none exists.
	LatestByUser(ctx context.Context, userID string) (*models.UserMatch, error)
	// ReplaceCreators overwrites the creator set of an existing match and
	// refreshes its timestamp.
	ReplaceCreators(ctx context.Context, matchID uint, creatorIDs []string, at time.Time) error
}

// OnboardingAnswerRepository defines operations for onboarding records
type OnboardingAnswerRepository interface {
	Repository[models.OnboardingAnswer, models.OnboardingAnswerFilter]
	LatestByUser(ctx context.Context, userID string) (*models.OnboardingAnswer, error)
}
