// Package tests contains integration tests for the repository layer
package tests

import (
	"testing"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/eduardocodes/bitcoin-influencer/repository"
	testingutil "github.com/eduardocodes/bitcoin-influencer/testing"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatorRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		creatorRepo := repository.NewCreatorRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("ByIDsOrdersByTotalFollowers", func(t *testing.T) {
			small, err := fixtures.CreateTestCreator(500, models.CategoryEducation)
			require.NoError(t, err)
			big, err := fixtures.CreateTestCreator(50_000, models.CategoryEducation)
			require.NoError(t, err)
			mid, err := fixtures.CreateTestCreator(5_000, models.CategoryEducation)
			require.NoError(t, err)

			rows, err := creatorRepo.ByIDs(ctx, []string{small.ID.String(), big.ID.String(), mid.ID.String()})
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, big.ID, rows[0].ID)
			assert.Equal(t, mid.ID, rows[1].ID)
			assert.Equal(t, small.ID, rows[2].ID)
		})

		t.Run("ByIDsEmptyInputReturnsEmpty", func(t *testing.T) {
			rows, err := creatorRepo.ByIDs(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("ByIDsSkipsUnknownIdentifiers", func(t *testing.T) {
			known, err := fixtures.CreateTestCreator(700, models.CategoryFees)
			require.NoError(t, err)

			rows, err := creatorRepo.ByIDs(ctx, []string{known.ID.String(), "00000000-0000-0000-0000-000000000000"})
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, known.ID, rows[0].ID)
		})

		t.Run("FilterByCategoryMatchesExactTag", func(t *testing.T) {
			tagged, err := fixtures.CreateTestCreator(900, models.CategoryOnchain, models.CategoryDevelopers)
			require.NoError(t, err)
			_, err = fixtures.CreateTestCreator(800, models.CategoryArt)
			require.NoError(t, err)

			rows, err := creatorRepo.ByFilter(ctx, models.CreatorFilter{
				Category: utils.ToPtr(models.CategoryOnchain),
			}, "total_followers DESC", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tagged.ID, rows[0].ID)

			// No fuzzy matching: a prefix of a tag matches nothing
			none, err := creatorRepo.ByFilter(ctx, models.CreatorFilter{
				Category: utils.ToPtr("onch"),
			}, "", 0, 0)
			require.NoError(t, err)
			assert.Empty(t, none)
		})

		t.Run("ListTopHonorsLimit", func(t *testing.T) {
			for i := 0; i < 5; i++ {
				_, err := fixtures.CreateTestCreator(int64(10_000+i), models.CategorySecurity)
				require.NoError(t, err)
			}

			rows, err := creatorRepo.ListTop(ctx, utils.ToPtr(models.CategorySecurity), 3)
			require.NoError(t, err)
			assert.Len(t, rows, 3)
			assert.GreaterOrEqual(t, rows[0].TotalFollowers, rows[1].TotalFollowers)
			assert.GreaterOrEqual(t, rows[1].TotalFollowers, rows[2].TotalFollowers)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestUserMatchRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		matchRepo := repository.NewUserMatchRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("ByUserAndCriteriaFindsExistingRow", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(1200, models.CategoryBuilders)
			require.NoError(t, err)

			match, err := fixtures.CreateTestMatch("repo-user", utils.ToPtr(models.CategoryBuilders), []string{creator.ID.String()})
			require.NoError(t, err)

			criteria, err := models.NewSearchCriteria(utils.ToPtr(models.CategoryBuilders)).Marshal()
			require.NoError(t, err)

			found, err := matchRepo.ByUserAndCriteria(ctx, "repo-user", criteria)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, match.ID, found.ID)
		})

		t.Run("ByUserAndCriteriaNilWhenAbsent", func(t *testing.T) {
			criteria, err := models.NewSearchCriteria(utils.ToPtr(models.CategoryMacro)).Marshal()
			require.NoError(t, err)

			found, err := matchRepo.ByUserAndCriteria(ctx, "repo-user-absent", criteria)
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ReplaceCreatorsOverwritesSetAndTimestamp", func(t *testing.T) {
			first, err := fixtures.CreateTestCreator(1300, models.CategoryBitcoin)
			require.NoError(t, err)
			second, err := fixtures.CreateTestCreator(1400, models.CategoryBitcoin)
			require.NoError(t, err)

			match, err := fixtures.CreateTestMatch("repo-replace", nil, []string{first.ID.String()})
			require.NoError(t, err)

			at := utils.UTCNow().Add(time.Second)
			err = matchRepo.ReplaceCreators(ctx, match.ID, []string{second.ID.String()}, at)
			require.NoError(t, err)

			reloaded, err := matchRepo.ByID(ctx, match.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, []string{second.ID.String()}, []string(reloaded.CreatorIDs))
			assert.True(t, reloaded.CreatedAt.After(match.CreatedAt))
		})

		t.Run("ReplaceCreatorsFailsForUnknownRow", func(t *testing.T) {
			err := matchRepo.ReplaceCreators(ctx, 999_999, []string{"x"}, utils.UTCNow())
			require.Error(t, err)
		})

		t.Run("LatestByUserReturnsNewestRow", func(t *testing.T) {
			creator, err := fixtures.CreateTestCreator(1500, models.CategoryLightning)
			require.NoError(t, err)

			older, err := fixtures.CreateTestMatch("repo-latest", utils.ToPtr(models.CategoryLightning), []string{creator.ID.String()})
			require.NoError(t, err)

			newer, err := fixtures.CreateTestMatch("repo-latest", utils.ToPtr(models.CategoryMining), []string{creator.ID.String()})
			require.NoError(t, err)
			// Push the second row clearly ahead of the first
			err = matchRepo.ReplaceCreators(ctx, newer.ID, []string{creator.ID.String()}, older.CreatedAt.Add(2*time.Second))
			require.NoError(t, err)

			latest, err := matchRepo.LatestByUser(ctx, "repo-latest")
			require.NoError(t, err)
			require.NotNil(t, latest)
			assert.Equal(t, newer.ID, latest.ID)
		})

		t.Run("LatestByUserNilForUnknownUser", func(t *testing.T) {
			latest, err := matchRepo.LatestByUser(ctx, "repo-unknown")
			require.NoError(t, err)
			assert.Nil(t, latest)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestOnboardingAnswerRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		onboardingRepo := repository.NewOnboardingAnswerRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("LatestByUserReturnsNewestAnswer", func(t *testing.T) {
			_, err := fixtures.CreateTestOnboardingAnswer("onboard-user", models.CategoryHardware)
			require.NoError(t, err)
			second, err := fixtures.CreateTestOnboardingAnswer("onboard-user", models.CategoryPrivacy)
			require.NoError(t, err)

			latest, err := onboardingRepo.LatestByUser(ctx, "onboard-user")
			require.NoError(t, err)
			require.NotNil(t, latest)
			assert.Equal(t, second.ID, latest.ID)
			assert.Equal(t, models.CategoryPrivacy, latest.AssignedCategory)
		})

		t.Run("LatestByUserNilWhenNeverOnboarded", func(t *testing.T) {
			latest, err := onboardingRepo.LatestByUser(ctx, "onboard-never")
			require.NoError(t, err)
			assert.Nil(t, latest)
		})

		return nil
	})
	require.NoError(t, err)
}
