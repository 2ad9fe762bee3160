// Package apierror provides the canonical error envelope for the API.
// All 4xx/5xx responses go through it so clients always get a structured
// reason string and internals (stack traces, SQL errors) never leak.
package apierror

// APIError is the body of every error response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
