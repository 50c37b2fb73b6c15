// Package businessflow contains the core business logic and use cases for match recording workflows
package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/eduardocodes/bitcoin-influencer/repository"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// MatchFlow handles the match recording and retrieval business logic
type MatchFlow interface {
	RecordMatch(ctx context.Context, req *dto.SaveMatchRequest, metadata *ClientMetadata) (*dto.SaveMatchResponse, error)
	LatestMatches(ctx context.Context, req *dto.UserMatchesRequest, metadata *ClientMetadata) (*dto.UserMatchesResponse, error)
	ListCreators(ctx context.Context, req *dto.ListCreatorsRequest, metadata *ClientMetadata) (*dto.ListCreatorsResponse, error)
	DownloadMatchedCreatorsExcel(ctx context.Context, userID string) (string, []byte, error)
}

// MatchFlowImpl implements the match business flow
type MatchFlowImpl struct {
	matchRepo   repository.UserMatchRepository
	creatorRepo repository.CreatorRepository
	db          *gorm.DB
}

// NewMatchFlow creates a new match flow instance
func NewMatchFlow(
	matchRepo repository.UserMatchRepository,
	creatorRepo repository.CreatorRepository,
	db *gorm.DB,
) MatchFlow {
	return &MatchFlowImpl{
		matchRepo:   matchRepo,
		creatorRepo: creatorRepo,
		db:          db,
	}
}

// RecordMatch stores the creator set a user matched with for a search.
// The (user, serialized criteria) pair is the idempotency key: the first
// recording creates a row, every repeat with the same criteria overwrites
// the creator set and timestamp of that row. The creator list is stored
// as given, order included; an empty list is a valid recording and
// clears any previously stored set.
func (s *MatchFlowImpl) RecordMatch(ctx context.Context, req *dto.SaveMatchRequest, metadata *ClientMetadata) (*dto.SaveMatchResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, NewBusinessError("USER_ID_REQUIRED", "User ID is required", ErrUserIDRequired)
	}

	creatorIDs := req.CreatorIDs
	if creatorIDs == nil {
		creatorIDs = []string{}
	}

	criteria := models.NewSearchCriteria(req.Category)
	rawCriteria, err := criteria.Marshal()
	if err != nil {
		return nil, NewBusinessError("CRITERIA_ENCODE_FAILED", "Failed to encode search criteria", err)
	}

	var match *models.UserMatch
	action := dto.MatchActionCreated

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.matchRepo.ByUserAndCriteria(txCtx, userID, rawCriteria)
		if err != nil {
			return err
		}

		if existing == nil {
			match = &models.UserMatch{
				UserID:         userID,
				SearchCriteria: rawCriteria,
				CreatorIDs:     creatorIDs,
				CreatedAt:      utils.UTCNow(),
			}
			return s.matchRepo.Save(txCtx, match)
		}

		// Concurrent recordings for the same key race last-write-wins;
		// both land on this row, so no duplicate can appear.
		action = dto.MatchActionUpdated
		now := utils.UTCNow()
		if err := s.matchRepo.ReplaceCreators(txCtx, existing.ID, creatorIDs, now); err != nil {
			return err
		}
		existing.CreatorIDs = creatorIDs
		existing.CreatedAt = now
		match = existing
		return nil
	})
	if err != nil {
		return nil, NewBusinessError("SAVE_MATCH_FAILED", "Failed to save match", err)
	}

	log.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("category", criteria.Category).
		Str("action", action).
		Int("creator_count", len(creatorIDs)).
		Msg("match recorded")

	return &dto.SaveMatchResponse{
		Success: true,
		Action:  action,
		Data:    ToMatchDTO(match),
	}, nil
}

// LatestMatches returns the user's most recently recorded match with its
// creators resolved, highest reach first. UserMatches is nil when the
// user has never recorded one.
func (s *MatchFlowImpl) LatestMatches(ctx context.Context, req *dto.UserMatchesRequest, metadata *ClientMetadata) (*dto.UserMatchesResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, NewBusinessError("USER_ID_REQUIRED", "User ID is required", ErrUserIDRequired)
	}

	match, err := s.matchRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("FETCH_MATCH_FAILED", "Failed to fetch user matches", err)
	}
	if match == nil {
		return &dto.UserMatchesResponse{UserMatches: nil}, nil
	}

	creators, err := s.creatorRepo.ByIDs(ctx, match.CreatorIDs)
	if err != nil {
		return nil, NewBusinessError("FETCH_CREATORS_FAILED", "Failed to fetch matched creators", err)
	}

	// A stored ID whose creator row has since disappeared is skipped by
	// ByIDs; the match itself is untouched.
	return &dto.UserMatchesResponse{
		UserMatches: &dto.UserMatchesDTO{
			MatchDTO: ToMatchDTO(match),
			Creators: ToCreatorDTOs(creators),
		},
	}, nil
}

// ListCreators returns creators ordered by descending total follower
// count, optionally narrowed to a category tag and BTC-only profiles.
func (s *MatchFlowImpl) ListCreators(ctx context.Context, req *dto.ListCreatorsRequest, metadata *ClientMetadata) (*dto.ListCreatorsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = utils.DefaultCreatorListLimit
	}
	if limit > utils.MaxCreatorListLimit {
		limit = utils.MaxCreatorListLimit
	}

	filter := models.CreatorFilter{IsBTCOnly: req.IsBTCOnly}
	category := models.NormalizeCategory(req.Category)
	if category != "" && category != models.SearchCategoryAll {
		if !models.IsValidCategory(category) {
			return nil, NewBusinessErrorf("INVALID_CATEGORY", "Unknown category %q", ErrInvalidCategory, category)
		}
		filter.Category = &category
	}

	creators, err := s.creatorRepo.ByFilter(ctx, filter, "total_followers DESC", limit, 0)
	if err != nil {
		return nil, NewBusinessError("FETCH_CREATORS_FAILED", "Failed to fetch creators", err)
	}

	total, err := s.creatorRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("COUNT_CREATORS_FAILED", "Failed to count creators", err)
	}

	return &dto.ListCreatorsResponse{
		Creators: ToCreatorDTOs(creators),
		Total:    total,
	}, nil
}

// DownloadMatchedCreatorsExcel builds an xlsx workbook from the user's
// latest match for offline outreach work
func (s *MatchFlowImpl) DownloadMatchedCreatorsExcel(ctx context.Context, userID string) (string, []byte, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", nil, NewBusinessError("USER_ID_REQUIRED", "User ID is required", ErrUserIDRequired)
	}

	match, err := s.matchRepo.LatestByUser(ctx, userID)
	if err != nil {
		return "", nil, NewBusinessError("FETCH_MATCH_FAILED", "Failed to fetch user matches", err)
	}
	if match == nil {
		return "", nil, NewBusinessError("MATCH_NOT_FOUND", "No match found for user", ErrMatchNotFound)
	}

	creators, err := s.creatorRepo.ByIDs(ctx, match.CreatorIDs)
	if err != nil {
		return "", nil, NewBusinessError("FETCH_CREATORS_FAILED", "Failed to fetch matched creators", err)
	}

	criteria, err := match.Criteria()
	if err != nil {
		criteria = models.SearchCriteria{Category: models.SearchCategoryAll}
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "creators"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"id", "full_name", "username", "location", "categories", "total_followers", "youtube_followers", "insta_followers", "tiktok_followers", "x_followers", "is_btc_only", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, c := range creators {
		location := ""
		if c.Location != nil {
			location = *c.Location
		}
		record := []string{
			c.ID.String(),
			c.FullName,
			c.Username,
			location,
			strings.Join(c.Categories, ","),
			strconv.FormatInt(c.TotalFollowers, 10),
			formatFollowers(c.YoutubeFollowers),
			formatFollowers(c.InstaFollowers),
			formatFollowers(c.TiktokFollowers),
			formatFollowers(c.XFollowers),
			strconv.FormatBool(utils.IsTrue(c.IsBTCOnly)),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("matched_creators_%s.xlsx", criteria.Category)
	return filename, buf.Bytes(), nil
}

func formatFollowers(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
