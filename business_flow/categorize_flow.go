// Package businessflow contains the core business logic and use cases for product categorization workflows
package businessflow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/eduardocodes/bitcoin-influencer/app/dto"
	"github.com/eduardocodes/bitcoin-influencer/app/services"
	"github.com/eduardocodes/bitcoin-influencer/config"
	"github.com/eduardocodes/bitcoin-influencer/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CategorizeFlow handles the product categorization business logic
type CategorizeFlow interface {
	CategorizeProduct(ctx context.Context, req *dto.CategorizeProductRequest, metadata *ClientMetadata) (*dto.CategorizeResult, error)
}

// CategorizeFlowImpl implements the categorization business flow
type CategorizeFlowImpl struct {
	completions services.CompletionClient
	rc          *redis.Client
	cacheConfig *config.CacheConfig
}

// NewCategorizeFlow creates a new categorization flow instance. rc may be
// nil when caching is disabled.
func NewCategorizeFlow(
	completions services.CompletionClient,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) CategorizeFlow {
	return &CategorizeFlowImpl{
		completions: completions,
		rc:          rc,
		cacheConfig: cacheConfig,
	}
}

// categorySystemPrompt instructs the model to emit exactly one label from
// the fixed category set
var categorySystemPrompt = fmt.Sprintf(`You are a product categorization expert. Given a product description, you must categorize it into ONE of these Bitcoin/crypto-related categories: %s.

Rules:
- Return ONLY the category name, nothing else
- Choose the most relevant category
- If the product doesn't clearly fit any category, choose 'bitcoin' as default
- Categories explained:
  - art: NFTs, digital art, creative content
  - bitcoin: General Bitcoin products/services
  - builders: Development tools, infrastructure
  - developers: Programming, coding tools
  - education: Learning, tutorials, courses
  - fees: Transaction fees, fee optimization
  - hardware: Physical devices, wallets
  - lightning: Lightning Network related
  - macro: Economics, market analysis
  - mining: Bitcoin mining
  - nodes: Node software, infrastructure
  - onchain: On-chain analysis, tools
  - ordinals: Bitcoin Ordinals, inscriptions
  - privacy: Privacy tools, anonymity
  - security: Security tools, auditing
  - trading: Trading tools, exchanges`, strings.Join(models.Categories, ", "))

// CategorizeProduct classifies a product description into one of the
// fixed categories. Upstream failures never propagate as errors: the
// result degrades to the fallback category with Degraded set, so callers
// decide how loudly to report it. An invalid label from the model is a
// successful classification to the fallback, not a degraded one.
func (s *CategorizeFlowImpl) CategorizeProduct(ctx context.Context, req *dto.CategorizeProductRequest, metadata *ClientMetadata) (*dto.CategorizeResult, error) {
	description := strings.TrimSpace(req.ProductDescription)
	if description == "" {
		return nil, NewBusinessError("PRODUCT_DESCRIPTION_REQUIRED", "Product description is required", ErrProductDescriptionRequired)
	}

	cacheKey := categoryCacheKey(description)
	if cached := s.cachedCategory(ctx, cacheKey); cached != "" {
		return &dto.CategorizeResult{Category: cached}, nil
	}

	messages := []services.ChatMessage{
		{Role: "system", Content: categorySystemPrompt},
		{Role: "user", Content: "Categorize this product: " + description},
	}

	raw, err := s.completions.Complete(ctx, messages)
	if err != nil {
		log.Ctx(ctx).Warn().
			Err(err).
			Str("request_id", requestID(metadata)).
			Msg("categorization call failed, falling back")
		return &dto.CategorizeResult{Category: models.CategoryFallback, Degraded: true}, nil
	}

	category := models.NormalizeCategory(raw)
	if !models.IsValidCategory(category) {
		log.Ctx(ctx).Info().
			Str("raw_label", raw).
			Str("request_id", requestID(metadata)).
			Msg("model returned unknown category, using fallback")
		return &dto.CategorizeResult{Category: models.CategoryFallback}, nil
	}

	s.storeCategory(ctx, cacheKey, category)

	return &dto.CategorizeResult{Category: category}, nil
}

// cachedCategory returns a previously stored classification, or "" on
// miss, disabled cache, or a stale invalid label.
func (s *CategorizeFlowImpl) cachedCategory(ctx context.Context, key string) string {
	if s.rc == nil || s.cacheConfig == nil || !s.cacheConfig.Enabled {
		return ""
	}
	value, err := s.rc.Get(ctx, key).Result()
	if err != nil || !models.IsValidCategory(value) {
		return ""
	}
	return value
}

func (s *CategorizeFlowImpl) storeCategory(ctx context.Context, key, category string) {
	if s.rc == nil || s.cacheConfig == nil || !s.cacheConfig.Enabled {
		return
	}
	if err := s.rc.Set(ctx, key, category, s.cacheConfig.CategoryTTL).Err(); err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("failed to cache category")
	}
}

// categoryCacheKey hashes the trimmed description so arbitrarily long
// free text maps to a bounded redis key.
func categoryCacheKey(description string) string {
	sum := sha256.Sum256([]byte(description))
	return "bitcoin-influencer:category:" + hex.EncodeToString(sum[:])
}

func requestID(metadata *ClientMetadata) string {
	if metadata == nil {
		return ""
	}
	return metadata.RequestID
}
