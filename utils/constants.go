package utils

// Request context keys used by handlers to thread request metadata into
// business flows without widening function signatures.
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Matching constants
const (
	// MaxProductDescriptionLength caps the free-text description sent to
	// the categorizer
	MaxProductDescriptionLength = 300

	// DefaultCreatorListLimit caps creator listings when the caller does
	// not specify one
	DefaultCreatorListLimit = 20

	// MaxCreatorListLimit is the hard cap for creator listings
	MaxCreatorListLimit = 100
)
