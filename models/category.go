// Package models contains domain entities and business models for the influencer matching system
package models

import "strings"

// Category labels a product's thematic fit within the Bitcoin/crypto
// vertical. The set is closed: both the classifier's allowed outputs and
// the creator filter vocabulary draw from these 16 labels, and adding or
// removing one is a breaking change to stored user_matches rows.
const (
	CategoryArt        = "art"
	CategoryBitcoin    = "bitcoin"
	CategoryBuilders   = "builders"
	CategoryDevelopers = "developers"
	CategoryEducation  = "education"
	CategoryFees       = "fees"
	CategoryHardware   = "hardware"
	CategoryLightning  = "lightning"
	CategoryMacro      = "macro"
	CategoryMining     = "mining"
	CategoryNodes      = "nodes"
	CategoryOnchain    = "onchain"
	CategoryOrdinals   = "ordinals"
	CategoryPrivacy    = "privacy"
	CategorySecurity   = "security"
	CategoryTrading    = "trading"
)

// CategoryFallback is returned whenever classification is ambiguous,
// misconfigured, or fails outright. Availability over precision: a
// categorization failure must never block onboarding.
const CategoryFallback = CategoryBitcoin

// SearchCategoryAll is the sentinel criteria value recorded when a match
// was saved without a category filter.
const SearchCategoryAll = "all"

// Categories is the fixed enumeration in display order.
var Categories = []string{
	CategoryArt,
	CategoryBitcoin,
	CategoryBuilders,
	CategoryDevelopers,
	CategoryEducation,
	CategoryFees,
	CategoryHardware,
	CategoryLightning,
	CategoryMacro,
	CategoryMining,
	CategoryNodes,
	CategoryOnchain,
	CategoryOrdinals,
	CategoryPrivacy,
	CategorySecurity,
	CategoryTrading,
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValidCategory reports whether s is a member of the fixed enumeration.
// Matching is exact after trimming and lowercasing.
func IsValidCategory(s string) bool {
	_, ok := categorySet[NormalizeCategory(s)]
	return ok
}

// NormalizeCategory trims and lowercases a raw label the way the
// classifier post-processing does.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
