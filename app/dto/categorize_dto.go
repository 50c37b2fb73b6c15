package dto

// CategorizeProductRequest represents the request to classify a product
// description into a content category
type CategorizeProductRequest struct {
	ProductDescription string `json:"productDescription" validate:"required,min=1,max=300"`
}

// CategorizeProductResponse represents a successful classification
type CategorizeProductResponse struct {
	Category string `json:"category"`
}

// CategorizeProductErrorResponse is returned when classification fails
// upstream; it still carries the fallback category so clients can proceed
type CategorizeProductErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// CategorizeResult is the internal classification outcome. Degraded is
// set when the category came from the fallback path rather than a
// successful upstream call.
type CategorizeResult struct {
	Category string `json:"category"`
	Degraded bool   `json:"-"`
}
