package dto

// SubmitOnboardingRequest represents the onboarding answers a user
// submits before matching
type SubmitOnboardingRequest struct {
	UserID             string  `json:"-"`
	CompanyName        string  `json:"companyName" validate:"required,max=255"`
	ProductName        string  `json:"productName" validate:"required,max=255"`
	ProductURL         *string `json:"productUrl,omitempty" validate:"omitempty,url,max=512"`
	ProductDescription string  `json:"productDescription" validate:"required,min=1,max=300"`
}

// SubmitOnboardingResponse represents the onboarding outcome: the
// assigned category and the creators matched for it
type SubmitOnboardingResponse struct {
	Category string       `json:"category"`
	Degraded bool         `json:"degraded"`
	Action   string       `json:"action"`
	Creators []CreatorDTO `json:"creators"`
}
