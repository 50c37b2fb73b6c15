// Package tests contains unit tests for the domain models
package tests

import (
	"testing"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValidation(t *testing.T) {
	t.Run("AllEnumeratedLabelsAreValid", func(t *testing.T) {
		assert.Len(t, models.Categories, 16)
		for _, c := range models.Categories {
			assert.True(t, models.IsValidCategory(c), "expected %q to be valid", c)
		}
	})

	t.Run("NormalizationTrimsAndLowercases", func(t *testing.T) {
		assert.Equal(t, models.CategoryMining, models.NormalizeCategory("  Mining "))
		assert.Equal(t, models.CategoryLightning, models.NormalizeCategory("LIGHTNING"))
		assert.True(t, models.IsValidCategory("  HARDWARE  "))
	})

	t.Run("UnknownLabelsAreRejected", func(t *testing.T) {
		assert.False(t, models.IsValidCategory("dogecoin"))
		assert.False(t, models.IsValidCategory(""))
		assert.False(t, models.IsValidCategory("bit coin"))
		// The sentinel is not a classifier label
		assert.False(t, models.IsValidCategory(models.SearchCategoryAll))
	})

	t.Run("FallbackIsAMemberOfTheEnumeration", func(t *testing.T) {
		assert.Equal(t, models.CategoryBitcoin, models.CategoryFallback)
		assert.True(t, models.IsValidCategory(models.CategoryFallback))
	})
}

func TestSearchCriteria(t *testing.T) {
	t.Run("AbsentCategoryFallsBackToAll", func(t *testing.T) {
		assert.Equal(t, models.SearchCategoryAll, models.NewSearchCriteria(nil).Category)

		empty := ""
		assert.Equal(t, models.SearchCategoryAll, models.NewSearchCriteria(&empty).Category)
	})

	t.Run("MarshalIsDeterministic", func(t *testing.T) {
		category := utils.ToPtr(models.CategoryOrdinals)

		first, err := models.NewSearchCriteria(category).Marshal()
		require.NoError(t, err)
		second, err := models.NewSearchCriteria(category).Marshal()
		require.NoError(t, err)

		// Byte-identical output is what makes the criteria usable as an
		// idempotency key
		assert.Equal(t, []byte(first), []byte(second))
		assert.JSONEq(t, `{"category":"ordinals"}`, string(first))
	})

	t.Run("StoredCriteriaRoundTrips", func(t *testing.T) {
		raw, err := models.NewSearchCriteria(utils.ToPtr(models.CategoryFees)).Marshal()
		require.NoError(t, err)

		match := &models.UserMatch{SearchCriteria: raw}
		criteria, err := match.Criteria()
		require.NoError(t, err)
		assert.Equal(t, models.CategoryFees, criteria.Category)
	})

	t.Run("CorruptCriteriaSurfacesError", func(t *testing.T) {
		match := &models.UserMatch{SearchCriteria: []byte("{not json")}
		_, err := match.Criteria()
		require.Error(t, err)
	})
}

func TestCreatorModel(t *testing.T) {
	t.Run("PlatformsExposesPerPlatformMetrics", func(t *testing.T) {
		creator := &models.Creator{
			YoutubeFollowers:      utils.ToPtr(int64(120_000)),
			YoutubeEngagementRate: utils.ToPtr(4.2),
			YoutubeAverageViews:   utils.ToPtr(int64(15_000)),
			InstaFollowers:        utils.ToPtr(int64(30_000)),
		}

		platforms := creator.Platforms()
		require.Len(t, platforms, 4)

		youtube := platforms[models.PlatformYouTube]
		assert.True(t, youtube.HasAudience())
		assert.Equal(t, int64(120_000), *youtube.Followers)
		assert.Equal(t, 4.2, *youtube.EngagementRate)

		assert.True(t, platforms[models.PlatformInstagram].HasAudience())
		assert.False(t, platforms[models.PlatformTikTok].HasAudience())
		assert.False(t, platforms[models.PlatformX].HasAudience())
	})

	t.Run("HasAudienceIgnoresZeroCounts", func(t *testing.T) {
		assert.False(t, models.PlatformMetrics{}.HasAudience())
		assert.False(t, models.PlatformMetrics{Followers: utils.ToPtr(int64(0))}.HasAudience())
		assert.True(t, models.PlatformMetrics{Followers: utils.ToPtr(int64(1))}.HasAudience())
	})

	t.Run("HasCategoryMatchesExactTagsOnly", func(t *testing.T) {
		creator := &models.Creator{
			Categories: []string{models.CategoryOnchain, models.CategoryPrivacy},
		}

		assert.True(t, creator.HasCategory(models.CategoryOnchain))
		assert.False(t, creator.HasCategory("onch"))
		assert.False(t, creator.HasCategory(models.CategoryMining))
	})
}
