// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	"github.com/eduardocodes/bitcoin-influencer/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging
// and request tracing
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToCreatorDTO converts a creator model to its API representation
func ToCreatorDTO(creator *models.Creator) dto.CreatorDTO {
	platforms := make(map[string]dto.PlatformDTO, 4)
	urls := map[models.Platform]*string{
		models.PlatformYouTube:   creator.YoutubeURL,
		models.PlatformInstagram: creator.InstaURL,
		models.PlatformTikTok:    creator.TiktokURL,
		models.PlatformX:         creator.XURL,
	}
	for platform, metrics := range creator.Platforms() {
		if urls[platform] == nil && !metrics.HasAudience() {
			continue
		}
		platforms[string(platform)] = dto.PlatformDTO{
			URL:            urls[platform],
			Followers:      metrics.Followers,
			EngagementRate: metrics.EngagementRate,
			AverageViews:   metrics.AverageViews,
		}
	}

	return dto.CreatorDTO{
		ID:             creator.ID.String(),
		FullName:       creator.FullName,
		Username:       creator.Username,
		Location:       creator.Location,
		Categories:     []string(creator.Categories),
		TotalFollowers: creator.TotalFollowers,
		IsBTCOnly:      creator.IsBTCOnly != nil && *creator.IsBTCOnly,
		Platforms:      platforms,
		CreatedAt:      creator.CreatedAt.Format(time.RFC3339),
	}
}

// ToCreatorDTOs converts a creator slice preserving order
func ToCreatorDTOs(creators []*models.Creator) []dto.CreatorDTO {
	out := make([]dto.CreatorDTO, 0, len(creators))
	for _, c := range creators {
		out = append(out, ToCreatorDTO(c))
	}
	return out
}

// ToMatchDTO converts a stored match to its API representation
func ToMatchDTO(match *models.UserMatch) dto.MatchDTO {
	criteria, err := match.Criteria()
	if err != nil {
		// Stored criteria are always written through SearchCriteria.Marshal,
		// so a decode failure means manual tampering; surface the sentinel.
		criteria = models.SearchCriteria{Category: models.SearchCategoryAll}
	}
	return dto.MatchDTO{
		ID:             match.ID,
		UserID:         match.UserID,
		SearchCriteria: dto.SearchCriteriaDTO{Category: criteria.Category},
		CreatorIDs:     []string(match.CreatorIDs),
		CreatedAt:      match.CreatedAt.Format(time.RFC3339),
	}
}
