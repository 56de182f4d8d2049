// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}

// UpsellError is returned when a premium-gated route is hit without an active
// trial or subscription. Clients use Upgrade to route to the paywall screen.
type UpsellError struct {
	Detail  string `json:"detail"`
	Upgrade string `json:"upgrade"`
}

func NewUpsell(msg string) *UpsellError {
	return &UpsellError{Detail: msg, Upgrade: "/v1/subscription/plans"}
}
