// Package businessflow contains the core business logic and use cases for creator matching workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Categorization errors
	ErrProductDescriptionRequired = errors.New("product description is required")

	// Match errors
	ErrUserIDRequired = errors.New("user ID is required")
	ErrMatchNotFound  = errors.New("no match found for user")

	// Creator errors
	ErrInvalidCategory = errors.New("unknown category")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsProductDescriptionRequired(err error) bool {
	return errors.Is(err, ErrProductDescriptionRequired)
}

func IsUserIDRequired(err error) bool {
	return errors.Is(err, ErrUserIDRequired)
}

func IsMatchNotFound(err error) bool {
	return errors.Is(err, ErrMatchNotFound)
}

func IsInvalidCategory(err error) bool {
	return errors.Is(err, ErrInvalidCategory)
}
