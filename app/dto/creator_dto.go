package dto

// PlatformDTO represents one platform presence of a creator
type PlatformDTO struct {
	URL            *string  `json:"url,omitempty"`
	Followers      *int64   `json:"followers,omitempty"`
	EngagementRate *float64 `json:"engagementRate,omitempty"`
	AverageViews   *int64   `json:"averageViews,omitempty"`
}

// CreatorDTO represents a creator profile in API responses
type CreatorDTO struct {
	ID             string                 `json:"id"`
	FullName       string                 `json:"fullName"`
	Username       string                 `json:"username"`
	Location       *string                `json:"location,omitempty"`
	Categories     []string               `json:"categories"`
	TotalFollowers int64                  `json:"totalFollowers"`
	IsBTCOnly      bool                   `json:"isBtcOnly"`
	Platforms      map[string]PlatformDTO `json:"platforms"`
	CreatedAt      string                 `json:"createdAt"`
}

// ListCreatorsRequest represents the query parameters for browsing creators
type ListCreatorsRequest struct {
	Category  string `json:"category" validate:"omitempty,max=64"`
	IsBTCOnly *bool  `json:"isBtcOnly" validate:"omitempty"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ListCreatorsResponse represents the creator browse response
type ListCreatorsResponse struct {
	Creators []CreatorDTO `json:"creators"`
	Total    int64        `json:"total"`
}
