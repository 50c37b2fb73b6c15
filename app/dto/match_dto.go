package dto

// Match recording actions
const (
	MatchActionCreated = "created"
	MatchActionUpdated = "updated"
)

// SearchCriteriaDTO mirrors the stored criteria a match is keyed by
type SearchCriteriaDTO struct {
	Category string `json:"category"`
}

// SaveMatchRequest represents the request to record a creator match for a
// user. Category is optional; absent or blank means the catch-all search.
// CreatorIDs must be present but may be empty: an empty recording is a
// valid overwrite value.
type SaveMatchRequest struct {
	UserID     string   `json:"userId" validate:"required,max=255"`
	CreatorIDs []string `json:"creatorIds" validate:"required,dive,uuid"`
	Category   *string  `json:"category,omitempty" validate:"omitempty,max=64"`
}

// MatchDTO represents one recorded match row
type MatchDTO struct {
	ID             uint              `json:"id"`
	UserID         string            `json:"userId"`
	SearchCriteria SearchCriteriaDTO `json:"searchCriteria"`
	CreatorIDs     []string          `json:"creatorIds"`
	CreatedAt      string            `json:"createdAt"`
}

// SaveMatchResponse represents the response to a match recording. Action
// tells the caller whether a new row was created or an existing one
// overwritten.
type SaveMatchResponse struct {
	Success bool     `json:"success"`
	Action  string   `json:"action"`
	Data    MatchDTO `json:"data"`
}

// UserMatchesRequest represents the query to fetch a user's latest match
type UserMatchesRequest struct {
	UserID string `json:"userId" validate:"required,max=255"`
}

// UserMatchesDTO represents the latest match with its creators resolved
type UserMatchesDTO struct {
	MatchDTO
	Creators []CreatorDTO `json:"creators"`
}

// UserMatchesResponse wraps the latest match; UserMatches is null when
// the user has never recorded one
type UserMatchesResponse struct {
	UserMatches *UserMatchesDTO `json:"userMatches"`
}
