// Package tests contains unit tests for the categorization flow
package tests

import (
	"errors"
	"testing"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	"github.com/eduardocodes/bitcoin-influencer/app/services"
	businessflow "github.com/eduardocodes/bitcoin-influencer/business_flow"
	"github.com/eduardocodes/bitcoin-influencer/logger"
	"github.com/eduardocodes/bitcoin-influencer/models"
	testingutil "github.com/eduardocodes/bitcoin-influencer/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeFlow(t *testing.T) {
	// Silence the flow's fallback warnings in test output
	ctx := logger.Nop().WithContext(testingutil.CreateTestContext())
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("ValidLabelIsReturnedAsIs", func(t *testing.T) {
		mock := services.NewMockCompletionClient(models.CategoryHardware)
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		result, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "A cold storage signing device with a secure element",
		}, metadata)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryHardware, result.Category)
		assert.False(t, result.Degraded)
		assert.Equal(t, 1, mock.CallCount())
	})

	t.Run("LabelIsNormalizedBeforeValidation", func(t *testing.T) {
		mock := services.NewMockCompletionClient("  Lightning \n")
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		result, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "Instant payment channels for merchants",
		}, metadata)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryLightning, result.Category)
		assert.False(t, result.Degraded)
	})

	t.Run("UnknownLabelFallsBackWithoutDegrading", func(t *testing.T) {
		mock := services.NewMockCompletionClient("altcoins")
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		result, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "A generic crypto portfolio tracker",
		}, metadata)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryFallback, result.Category)
		assert.False(t, result.Degraded)
	})

	t.Run("UpstreamFailureDegradesToFallback", func(t *testing.T) {
		mock := services.NewMockCompletionClient("")
		mock.Err = errors.New("upstream timeout")
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		result, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "A mining pool dashboard",
		}, metadata)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryFallback, result.Category)
		assert.True(t, result.Degraded)
	})

	t.Run("MissingAPIKeyDegradesToFallback", func(t *testing.T) {
		mock := services.NewMockCompletionClient("")
		mock.Err = services.ErrAPIKeyMissing
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		result, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "A node monitoring service",
		}, metadata)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryFallback, result.Category)
		assert.True(t, result.Degraded)
	})

	t.Run("BlankDescriptionIsRejected", func(t *testing.T) {
		mock := services.NewMockCompletionClient(models.CategoryBitcoin)
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		_, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "   ",
		}, metadata)
		require.Error(t, err)

		assert.True(t, businessflow.IsProductDescriptionRequired(err))
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("PromptCarriesTheFullCategorySet", func(t *testing.T) {
		mock := services.NewMockCompletionClient(models.CategoryTrading)
		flow := businessflow.NewCategorizeFlow(mock, nil, nil)

		_, err := flow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
			ProductDescription: "A derivatives exchange terminal",
		}, metadata)
		require.NoError(t, err)

		require.Equal(t, 1, mock.CallCount())
		messages := mock.Requests[0]
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].Role)
		for _, category := range models.Categories {
			assert.Contains(t, messages[0].Content, category)
		}
		assert.Equal(t, "user", messages[1].Role)
		assert.Contains(t, messages[1].Content, "derivatives exchange terminal")
	})
}
