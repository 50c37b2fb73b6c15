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

// CategorizeHandlerInterface defines the contract for categorization handlers
type CategorizeHandlerInterface interface {
	CategorizeProduct(c fiber.Ctx) error
}

// CategorizeHandler handles product categorization HTTP requests
type CategorizeHandler struct {
	categorizeFlow businessflow.CategorizeFlow
	validator      *validator.Validate
}

// NewCategorizeHandler creates a new categorization handler
func NewCategorizeHandler(categorizeFlow businessflow.CategorizeFlow) CategorizeHandlerInterface {
	return &CategorizeHandler{
		categorizeFlow: categorizeFlow,
		validator:      validator.New(),
	}
}

func (h *CategorizeHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// CategorizeProduct classifies a product description into a category.
// A degraded classification (upstream call failed) returns 500 but still
// carries the fallback category so clients can proceed.
func (h *CategorizeHandler) CategorizeProduct(c fiber.Ctx) error {
	var req dto.CategorizeProductRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Product description is required", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get(businessflow.RequestIDKey))

	result, err := h.categorizeFlow.CategorizeProduct(h.createRequestContext(c, "/api/v1/categorize-product"), &req, metadata)
	if err != nil {
		if businessflow.IsProductDescriptionRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Product description is required", "PRODUCT_DESCRIPTION_REQUIRED", nil)
		}

		log.Error().Err(err).Msg("Product categorization failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to categorize product", "CATEGORIZATION_FAILED", nil)
	}

	if result.Degraded {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CategorizeProductErrorResponse{
			Error:    "Failed to categorize product",
			Category: result.Category,
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.CategorizeProductResponse{
		Category: result.Category,
	})
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *CategorizeHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CategorizeHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
