package handlers

import (
	"context"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	businessflow "github.com/eduardocodes/bitcoin-influencer/business_flow"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// MatchHandlerInterface defines the contract for match handlers
type MatchHandlerInterface interface {
	SaveMatch(c fiber.Ctx) error
	UserMatches(c fiber.Ctx) error
	DownloadMatches(c fiber.Ctx) error
}

// MatchHandler handles match recording and retrieval HTTP requests
type MatchHandler struct {
	matchFlow businessflow.MatchFlow
	validator *validator.Validate
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchFlow businessflow.MatchFlow) MatchHandlerInterface {
	return &MatchHandler{
		matchFlow: matchFlow,
		validator: validator.New(),
	}
}

func (h *MatchHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// SaveMatch records the creator set a user matched with. The response
// action reports whether a new row was created or the existing one for
// the same (user, criteria) pair was overwritten.
func (h *MatchHandler) SaveMatch(c fiber.Ctx) error {
	var req dto.SaveMatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get(businessflow.RequestIDKey))

	result, err := h.matchFlow.RecordMatch(h.createRequestContext(c, "/api/v1/save-match"), &req, metadata)
	if err != nil {
		if businessflow.IsUserIDRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required", "USER_ID_REQUIRED", nil)
		}

		log.Error().Err(err).Str("user_id", req.UserID).Msg("Save match failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save match", "SAVE_MATCH_FAILED", nil)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// UserMatches returns the user's latest recorded match with creators
// resolved, or a null userMatches when none exists
func (h *MatchHandler) UserMatches(c fiber.Ctx) error {
	req := dto.UserMatchesRequest{UserID: c.Query("userId")}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get(businessflow.RequestIDKey))

	result, err := h.matchFlow.LatestMatches(h.createRequestContext(c, "/api/v1/user-matches"), &req, metadata)
	if err != nil {
		if businessflow.IsUserIDRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required", "USER_ID_REQUIRED", nil)
		}

		log.Error().Err(err).Str("user_id", req.UserID).Msg("Fetch user matches failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user matches", "FETCH_MATCHES_FAILED", nil)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// DownloadMatches streams the authenticated user's latest matched
// creators as an xlsx workbook
func (h *MatchHandler) DownloadMatches(c fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	filename, data, err := h.matchFlow.DownloadMatchedCreatorsExcel(h.createRequestContext(c, "/api/v1/matches/export"), userID)
	if err != nil {
		if businessflow.IsMatchNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No match found for user", "MATCH_NOT_FOUND", nil)
		}

		log.Error().Err(err).Str("user_id", userID).Msg("Match export failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate Excel file", "DOWNLOAD_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *MatchHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *MatchHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
