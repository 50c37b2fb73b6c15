package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	businessflow "github.com/eduardocodes/bitcoin-influencer/business_flow"
	"github.com/eduardocodes/bitcoin-influencer/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// CreatorHandlerInterface defines the contract for creator handlers
type CreatorHandlerInterface interface {
	ListCreators(c fiber.Ctx) error
}

// CreatorHandler handles creator browsing HTTP requests
type CreatorHandler struct {
	matchFlow businessflow.MatchFlow
	validator *validator.Validate
}

// NewCreatorHandler creates a new creator handler
func NewCreatorHandler(matchFlow businessflow.MatchFlow) CreatorHandlerInterface {
	return &CreatorHandler{
		matchFlow: matchFlow,
		validator: validator.New(),
	}
}

func (h *CreatorHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CreatorHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCreators returns creators ordered by reach, optionally filtered by
// category tag and BTC-only flag
func (h *CreatorHandler) ListCreators(c fiber.Ctx) error {
	req := dto.ListCreatorsRequest{
		Category: c.Query("category"),
	}
	if v := c.Query("isBtcOnly"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			req.IsBTCOnly = &parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			req.Limit = parsed
		}
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

	result, err := h.matchFlow.ListCreators(h.createRequestContext(c, "/api/v1/creators"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidCategory(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown category", "INVALID_CATEGORY", nil)
		}

		log.Error().Err(err).Msg("List creators failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch creators", "FETCH_CREATORS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Creators retrieved successfully", result)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *CreatorHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CreatorHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
