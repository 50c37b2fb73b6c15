package models

import "time"

// OnboardingAnswer records a user's company and product details, written
// once when the onboarding form completes. There is no update or delete
// path; a user who re-runs onboarding produces a new row.
type OnboardingAnswer struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             string    `gorm:"size:255;not null;index:idx_onboarding_answers_user_id" json:"user_id"`
	CompanyName        string    `gorm:"size:255;not null" json:"company_name"`
	ProductName        string    `gorm:"size:255;not null" json:"product_name"`
	ProductURL         *string   `gorm:"size:512" json:"product_url,omitempty"`
	ProductDescription string    `gorm:"size:300;not null" json:"product_description"`
	AssignedCategory   string    `gorm:"size:50;not null" json:"assigned_category"`
	CreatedAt          time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (OnboardingAnswer) TableName() string { return "onboarding_answers" }

// OnboardingAnswerFilter represents filter criteria for onboarding queries.
type OnboardingAnswerFilter struct {
	ID            *uint
	UserID        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
