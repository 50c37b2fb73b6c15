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

// OnboardingHandlerInterface defines the contract for onboarding handlers
type OnboardingHandlerInterface interface {
	SubmitOnboarding(c fiber.Ctx) error
}

// OnboardingHandler handles onboarding HTTP requests
type OnboardingHandler struct {
	onboardingFlow businessflow.OnboardingFlow
	validator      *validator.Validate
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingFlow businessflow.OnboardingFlow) OnboardingHandlerInterface {
	return &OnboardingHandler{
		onboardingFlow: onboardingFlow,
		validator:      validator.New(),
	}
}

func (h *OnboardingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *OnboardingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SubmitOnboarding runs the onboarding pipeline for the authenticated
// user: classify, persist answers, match creators
func (h *OnboardingHandler) SubmitOnboarding(c fiber.Ctx) error {
	var req dto.SubmitOnboardingRequest
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

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}
	req.UserID = userID

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get(businessflow.RequestIDKey))

	result, err := h.onboardingFlow.SubmitOnboarding(h.createRequestContext(c, "/api/v1/onboarding"), &req, metadata)
	if err != nil {
		if businessflow.IsProductDescriptionRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Product description is required", "PRODUCT_DESCRIPTION_REQUIRED", nil)
		}

		log.Error().Err(err).Str("user_id", userID).Msg("Onboarding failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Onboarding failed", "ONBOARDING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Onboarding completed successfully", result)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *OnboardingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *OnboardingHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
