package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Platform identifies a social network a creator publishes on.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformX         Platform = "x"
)

// PlatformMetrics groups the optional per-platform numbers so callers
// don't re-check raw nullable columns one by one.
type PlatformMetrics struct {
	Followers      *int64   `json:"followers,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
	AverageViews   *int64   `json:"average_views,omitempty"`
}

// HasAudience reports whether the platform has a known, non-zero
// follower count.
func (m PlatformMetrics) HasAudience() bool {
	return m.Followers != nil && *m.Followers > 0
}

// Creator represents a content-producing account profile with follower
// and engagement metrics across several platforms.
// Categories are stored as a PostgreSQL TEXT[] column; a creator matches
// a category filter iff the tag set contains that exact string.
// Read-only from this system's perspective.
type Creator struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255" json:"full_name"`
	Username string    `gorm:"size:255;not null;uniqueIndex:uk_creators_username" json:"username"`
	Email    *string   `gorm:"size:255" json:"email,omitempty"`
	Location *string   `gorm:"size:255" json:"location,omitempty"`

	YoutubeURL *string `gorm:"size:512" json:"youtube_url,omitempty"`
	InstaURL   *string `gorm:"size:512" json:"insta_url,omitempty"`
	TiktokURL  *string `gorm:"size:512" json:"tiktok_url,omitempty"`
	XURL       *string `gorm:"column:x_url;size:512" json:"x_url,omitempty"`

	YoutubeBio *string `gorm:"type:text" json:"youtube_bio,omitempty"`
	InstaBio   *string `gorm:"type:text" json:"insta_bio,omitempty"`
	TiktokBio  *string `gorm:"type:text" json:"tiktok_bio,omitempty"`
	XBio       *string `gorm:"column:x_bio;type:text" json:"x_bio,omitempty"`

	YoutubeFollowers *int64 `json:"youtube_followers,omitempty"`
	InstaFollowers   *int64 `json:"insta_followers,omitempty"`
	TiktokFollowers  *int64 `json:"tiktok_followers,omitempty"`
	XFollowers       *int64 `gorm:"column:x_followers" json:"x_followers,omitempty"`

	// TotalFollowers is the aggregate reach and the one deliberate
	// ordering rule in the system: highest-reach creators surface first.
	TotalFollowers int64 `gorm:"not null;default:0;index:idx_creators_total_followers" json:"total_followers"`

	YoutubeEngagementRate *float64 `json:"youtube_engagement_rate,omitempty"`
	TiktokEngagementRate  *float64 `json:"tiktok_engagement_rate,omitempty"`
	YoutubeAverageViews   *int64   `json:"youtube_average_views,omitempty"`
	TiktokAverageViews    *int64   `json:"tiktok_average_views,omitempty"`

	Categories pq.StringArray `gorm:"type:text[];index:idx_creators_categories,using:gin" json:"categories"`
	IsBTCOnly  *bool          `gorm:"column:is_btc_only;default:false" json:"is_btc_only"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_creators_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Creator) TableName() string { return "creators" }

// Platforms exposes the per-platform metrics as a fixed mapping.
// Instagram and X carry follower counts only; engagement and view data
// exist for YouTube and TikTok.
func (c *Creator) Platforms() map[Platform]PlatformMetrics {
	return map[Platform]PlatformMetrics{
		PlatformYouTube: {
			Followers:      c.YoutubeFollowers,
			EngagementRate: c.YoutubeEngagementRate,
			AverageViews:   c.YoutubeAverageViews,
		},
		PlatformInstagram: {
			Followers: c.InstaFollowers,
		},
		PlatformTikTok: {
			Followers:      c.TiktokFollowers,
			EngagementRate: c.TiktokEngagementRate,
			AverageViews:   c.TiktokAverageViews,
		},
		PlatformX: {
			Followers: c.XFollowers,
		},
	}
}

// HasCategory reports whether the creator's tag set contains the exact
// category string. No fuzzy or hierarchical matching.
func (c *Creator) HasCategory(category string) bool {
	for _, tag := range c.Categories {
		if tag == category {
			return true
		}
	}
	return false
}

// CreatorFilter represents filter criteria for creator queries.
// Category matches by exact tag membership against the TEXT[] column.
type CreatorFilter struct {
	ID                *uuid.UUID
	Username          *string
	Category          *string
	IsBTCOnly         *bool
	MinTotalFollowers *int64
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
}
