// Package testing provides test utilities and database setup for testing the matching system
package testing

import (
	"fmt"
	"math/rand"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/lib/pq"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCreator creates a creator with the given total follower count
// and category tags. Per-platform numbers are derived from the total so
// fixtures stay internally consistent.
func (tf *TestFixtures) CreateTestCreator(totalFollowers int64, categories ...string) (*models.Creator, error) {
	suffix := fmt.Sprintf("%06d", rand.Intn(900000)+100000)
	if len(categories) == 0 {
		categories = []string{models.CategoryBitcoin}
	}

	youtube := totalFollowers / 2
	tiktok := totalFollowers - youtube
	youtubeURL := fmt.Sprintf("https://youtube.com/@creator%s", suffix)

	creator := &models.Creator{
		FullName:         fmt.Sprintf("Test Creator %s", suffix),
		Username:         fmt.Sprintf("creator_%s", suffix),
		YoutubeURL:       &youtubeURL,
		YoutubeFollowers: &youtube,
		TiktokFollowers:  &tiktok,
		TotalFollowers:   totalFollowers,
		Categories:       pq.StringArray(categories),
		IsBTCOnly:        utils.ToPtr(false),
		CreatedAt:        utils.UTCNow(),
		UpdatedAt:        utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(creator).Error; err != nil {
		return nil, fmt.Errorf("failed to create test creator: %w", err)
	}

	return creator, nil
}

// CreateTestMatch creates a stored match for the user and category with
// the given creator IDs
func (tf *TestFixtures) CreateTestMatch(userID string, category *string, creatorIDs []string) (*models.UserMatch, error) {
	criteria := models.NewSearchCriteria(category)
	raw, err := criteria.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criteria: %w", err)
	}

	match := &models.UserMatch{
		UserID:         userID,
		SearchCriteria: raw,
		CreatorIDs:     pq.StringArray(creatorIDs),
		CreatedAt:      utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(match).Error; err != nil {
		return nil, fmt.Errorf("failed to create test match: %w", err)
	}

	return match, nil
}

// CreateTestOnboardingAnswer creates an onboarding record for the user
func (tf *TestFixtures) CreateTestOnboardingAnswer(userID, category string) (*models.OnboardingAnswer, error) {
	answer := &models.OnboardingAnswer{
		UserID:             userID,
		CompanyName:        "Test Company",
		ProductName:        "Test Product",
		ProductDescription: "A hardware wallet for cold storage",
		AssignedCategory:   category,
		CreatedAt:          utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(answer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test onboarding answer: %w", err)
	}

	return answer, nil
}
