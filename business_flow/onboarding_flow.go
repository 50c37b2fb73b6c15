// Package businessflow contains the core business logic and use cases for onboarding workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/eduardocodes/bitcoin-influencer/repository"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OnboardingFlow handles the onboarding business logic
type OnboardingFlow interface {
	SubmitOnboarding(ctx context.Context, req *dto.SubmitOnboardingRequest, metadata *ClientMetadata) (*dto.SubmitOnboardingResponse, error)
}

// OnboardingFlowImpl implements the onboarding business flow
type OnboardingFlowImpl struct {
	onboardingRepo repository.OnboardingAnswerRepository
	creatorRepo    repository.CreatorRepository
	categorizeFlow CategorizeFlow
	matchFlow      MatchFlow
	db             *gorm.DB
}

// NewOnboardingFlow creates a new onboarding flow instance
func NewOnboardingFlow(
	onboardingRepo repository.OnboardingAnswerRepository,
	creatorRepo repository.CreatorRepository,
	categorizeFlow CategorizeFlow,
	matchFlow MatchFlow,
	db *gorm.DB,
) OnboardingFlow {
	return &OnboardingFlowImpl{
		onboardingRepo: onboardingRepo,
		creatorRepo:    creatorRepo,
		categorizeFlow: categorizeFlow,
		matchFlow:      matchFlow,
		db:             db,
	}
}

// SubmitOnboarding runs the complete onboarding pipeline: classify the
// product, persist the answers with the assigned category, resolve the
// creators for that category and record the match. A degraded
// classification still completes the pipeline on the fallback category.
func (s *OnboardingFlowImpl) SubmitOnboarding(ctx context.Context, req *dto.SubmitOnboardingRequest, metadata *ClientMetadata) (*dto.SubmitOnboardingResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, NewBusinessError("USER_ID_REQUIRED", "User ID is required", ErrUserIDRequired)
	}

	result, err := s.categorizeFlow.CategorizeProduct(ctx, &dto.CategorizeProductRequest{
		ProductDescription: req.ProductDescription,
	}, metadata)
	if err != nil {
		return nil, err
	}

	answer := &models.OnboardingAnswer{
		UserID:             userID,
		CompanyName:        strings.TrimSpace(req.CompanyName),
		ProductName:        strings.TrimSpace(req.ProductName),
		ProductURL:         req.ProductURL,
		ProductDescription: strings.TrimSpace(req.ProductDescription),
		AssignedCategory:   result.Category,
		CreatedAt:          utils.UTCNow(),
	}
	if err := s.onboardingRepo.Save(ctx, answer); err != nil {
		return nil, NewBusinessError("SAVE_ONBOARDING_FAILED", "Failed to save onboarding answers", err)
	}

	creators, err := s.creatorRepo.ListTop(ctx, &result.Category, utils.DefaultCreatorListLimit)
	if err != nil {
		return nil, NewBusinessError("FETCH_CREATORS_FAILED", "Failed to fetch creators", err)
	}
	if len(creators) == 0 {
		// No creator carries the tag yet, widen to the overall top list so
		// onboarding always ends with candidates.
		creators, err = s.creatorRepo.ListTop(ctx, nil, utils.DefaultCreatorListLimit)
		if err != nil {
			return nil, NewBusinessError("FETCH_CREATORS_FAILED", "Failed to fetch creators", err)
		}
	}

	response := &dto.SubmitOnboardingResponse{
		Category: result.Category,
		Degraded: result.Degraded,
		Creators: ToCreatorDTOs(creators),
	}

	if len(creators) == 0 {
		log.Ctx(ctx).Warn().
			Str("user_id", userID).
			Str("category", result.Category).
			Msg("no creators available, onboarding completed without a match")
		return response, nil
	}

	ids := make([]string, 0, len(creators))
	for _, c := range creators {
		ids = append(ids, c.ID.String())
	}

	matchResp, err := s.matchFlow.RecordMatch(ctx, &dto.SaveMatchRequest{
		UserID:     userID,
		CreatorIDs: ids,
		Category:   &result.Category,
	}, metadata)
	if err != nil {
		return nil, err
	}
	response.Action = matchResp.Action

	return response, nil
}
