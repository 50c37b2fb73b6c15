package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// SearchCriteria is the small structured value a match is keyed by.
// Its serialized form is the idempotency key for the (user, category)
// pair, so it must marshal deterministically: same category string,
// identical bytes. A single fixed field keeps that guarantee.
type SearchCriteria struct {
	Category string `json:"category"`
}

// NewSearchCriteria builds criteria from an optional category, falling
// back to the "all" sentinel when absent or blank.
func NewSearchCriteria(category *string) SearchCriteria {
	if category == nil || *category == "" {
		return SearchCriteria{Category: SearchCategoryAll}
	}
	return SearchCriteria{Category: *category}
}

// Marshal serializes the criteria to its canonical JSON form.
func (sc SearchCriteria) Marshal() (json.RawMessage, error) {
	b, err := json.Marshal(sc)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// UserMatch represents the set of creators most recently matched to a
// user for a given category search. At most one row exists per
// (user_id, search_criteria) pair; a repeat search with the same
// criteria overwrites the creator set and timestamp of the existing row.
// Rows are never deleted by this system.
type UserMatch struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string          `gorm:"size:255;not null;index:idx_user_matches_user_id" json:"user_id"`
	SearchCriteria json.RawMessage `gorm:"type:jsonb;not null" json:"search_criteria"`
	CreatorIDs     pq.StringArray  `gorm:"type:text[];not null" json:"creator_ids"`
	CreatedAt      time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_user_matches_created_at" json:"created_at"`
}

func (UserMatch) TableName() string { return "user_matches" }

// Criteria decodes the stored search criteria.
func (m *UserMatch) Criteria() (SearchCriteria, error) {
	var sc SearchCriteria
	if err := json.Unmarshal(m.SearchCriteria, &sc); err != nil {
		return SearchCriteria{}, err
	}
	return sc, nil
}

// UserMatchFilter represents filter criteria for match queries.
type UserMatchFilter struct {
	ID             *uint
	UserID         *string
	SearchCriteria *json.RawMessage
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
