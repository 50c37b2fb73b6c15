// Package tests contains integration tests for match recording flows
package tests

import (
	"testing"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	businessflow "github.com/eduardocodes/bitcoin-influencer/business_flow"
	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/eduardocodes/bitcoin-influencer/repository"
	testingutil "github.com/eduardocodes/bitcoin-influencer/testing"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		matchRepo := repository.NewUserMatchRepository(testDB.DB)
		creatorRepo := repository.NewCreatorRepository(testDB.DB)
		matchFlow := businessflow.NewMatchFlow(matchRepo, creatorRepo, testDB.DB)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")
		ctx := testingutil.CreateTestContext()

		t.Run("FirstRecordingCreates", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(1000, models.CategoryMining)
			require.NoError(t, err)

			result, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-created",
				CreatorIDs: []string{creator.ID.String()},
				Category:   utils.ToPtr(models.CategoryMining),
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.True(t, result.Success)
			assert.Equal(t, dto.MatchActionCreated, result.Action)
			assert.Equal(t, "user-created", result.Data.UserID)
			assert.Equal(t, models.CategoryMining, result.Data.SearchCriteria.Category)
			assert.Equal(t, []string{creator.ID.String()}, result.Data.CreatorIDs)
		})

		t.Run("RepeatRecordingOverwrites", func(t *testing.T) {
			first, err := fixtures.CreateTestCreator(2000, models.CategoryLightning)
			require.NoError(t, err)
			second, err := fixtures.CreateTestCreator(3000, models.CategoryLightning)
			require.NoError(t, err)

			category := utils.ToPtr(models.CategoryLightning)

			created, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-overwrite",
				CreatorIDs: []string{first.ID.String()},
				Category:   category,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionCreated, created.Action)

			updated, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-overwrite",
				CreatorIDs: []string{second.ID.String()},
				Category:   category,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionUpdated, updated.Action)
			assert.Equal(t, created.Data.ID, updated.Data.ID)

			// Overwrite replaces the set, no merging with the previous one
			assert.Equal(t, []string{second.ID.String()}, updated.Data.CreatorIDs)

			count, err := matchRepo.Count(ctx, models.UserMatchFilter{UserID: utils.ToPtr("user-overwrite")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("DifferentCategoriesCreateSeparateRows", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(4000, models.CategoryNodes, models.CategoryPrivacy)
			require.NoError(t, err)

			ids := []string{creator.ID.String()}

			nodesResult, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-multi",
				CreatorIDs: ids,
				Category:   utils.ToPtr(models.CategoryNodes),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionCreated, nodesResult.Action)

			privacyResult, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-multi",
				CreatorIDs: ids,
				Category:   utils.ToPtr(models.CategoryPrivacy),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionCreated, privacyResult.Action)
			assert.NotEqual(t, nodesResult.Data.ID, privacyResult.Data.ID)
		})

		t.Run("AbsentCategoryUsesAllSentinel", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(5000)
			require.NoError(t, err)

			result, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-all",
				CreatorIDs: []string{creator.ID.String()},
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.SearchCategoryAll, result.Data.SearchCriteria.Category)

			// A repeat without a category lands on the same row
			repeat, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-all",
				CreatorIDs: []string{creator.ID.String()},
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionUpdated, repeat.Action)
		})

		t.Run("LatestMatchesResolvesCreatorsByReach", func(t *testing.T) {
			small, err := fixtures.CreateTestCreator(100, models.CategoryTrading)
			require.NoError(t, err)
			big, err := fixtures.CreateTestCreator(9_000_000, models.CategoryTrading)
			require.NoError(t, err)

			_, err = matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-latest",
				CreatorIDs: []string{small.ID.String(), big.ID.String()},
				Category:   utils.ToPtr(models.CategoryTrading),
			}, metadata)
			require.NoError(t, err)

			result, err := matchFlow.LatestMatches(ctx, &dto.UserMatchesRequest{UserID: "user-latest"}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result.UserMatches)

			require.Len(t, result.UserMatches.Creators, 2)
			assert.Equal(t, big.ID.String(), result.UserMatches.Creators[0].ID)
			assert.Equal(t, small.ID.String(), result.UserMatches.Creators[1].ID)
		})

		t.Run("LatestMatchesNilForUnknownUser", func(t *testing.T) {
			result, err := matchFlow.LatestMatches(ctx, &dto.UserMatchesRequest{UserID: "user-never-matched"}, metadata)
			require.NoError(t, err)
			assert.Nil(t, result.UserMatches)
		})

		t.Run("RecordMatchAcceptsEmptyCreatorList", func(t *testing.T) {
			result, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-empty",
				CreatorIDs: []string{},
			}, metadata)
			require.NoError(t, err)

			assert.True(t, result.Success)
			assert.Equal(t, dto.MatchActionCreated, result.Action)
			assert.Empty(t, result.Data.CreatorIDs)
		})

		t.Run("EmptyCreatorListClearsStoredSet", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(6500, models.CategoryFees)
			require.NoError(t, err)

			category := utils.ToPtr(models.CategoryFees)

			created, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-clear",
				CreatorIDs: []string{creator.ID.String()},
				Category:   category,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionCreated, created.Action)

			cleared, err := matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-clear",
				CreatorIDs: []string{},
				Category:   category,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.MatchActionUpdated, cleared.Action)
			assert.Equal(t, created.Data.ID, cleared.Data.ID)
			assert.Empty(t, cleared.Data.CreatorIDs)

			latest, err := matchFlow.LatestMatches(ctx, &dto.UserMatchesRequest{UserID: "user-clear"}, metadata)
			require.NoError(t, err)
			require.NotNil(t, latest.UserMatches)
			assert.Empty(t, latest.UserMatches.Creators)
		})

		t.Run("ListCreatorsFiltersByCategory", func(t *testing.T) {
			tagged, err := fixtures.CreateTestCreator(7000, models.CategoryOrdinals)
			require.NoError(t, err)
			_, err = fixtures.CreateTestCreator(8000, models.CategoryMacro)
			require.NoError(t, err)

			result, err := matchFlow.ListCreators(ctx, &dto.ListCreatorsRequest{
				Category: models.CategoryOrdinals,
			}, metadata)
			require.NoError(t, err)

			require.GreaterOrEqual(t, len(result.Creators), 1)
			for _, c := range result.Creators {
				assert.Contains(t, c.Categories, models.CategoryOrdinals)
			}
			assert.Equal(t, tagged.ID.String(), result.Creators[0].ID)
		})

		t.Run("ListCreatorsRejectsUnknownCategory", func(t *testing.T) {
			_, err := matchFlow.ListCreators(ctx, &dto.ListCreatorsRequest{
				Category: "dogecoin",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCategory(err))
		})

		t.Run("DownloadMatchedCreatorsExcel", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(6000, models.CategoryHardware)
			require.NoError(t, err)

			_, err = matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
				UserID:     "user-export",
				CreatorIDs: []string{creator.ID.String()},
				Category:   utils.ToPtr(models.CategoryHardware),
			}, metadata)
			require.NoError(t, err)

			filename, data, err := matchFlow.DownloadMatchedCreatorsExcel(ctx, "user-export")
			require.NoError(t, err)
			assert.Equal(t, "matched_creators_hardware.xlsx", filename)
			assert.NotEmpty(t, data)
		})

		t.Run("DownloadWithoutMatchReturnsNotFound", func(t *testing.T) {
			_, _, err := matchFlow.DownloadMatchedCreatorsExcel(ctx, "user-no-export")
			require.Error(t, err)
			assert.True(t, businessflow.IsMatchNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
