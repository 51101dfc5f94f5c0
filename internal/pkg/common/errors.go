package common

import (
	"net/http"
)

// ErrorResponse is the JSON error shape returned by the API layer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CustomError carries an error code, message and HTTP status through the
// service layers.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError creates a new custom error.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError marks an input-validation failure: the caller handed the
// core something it refuses to process at all (empty text, non-object draft).
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError checks whether err is a validation error.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Predefined error codes.
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeNotImplemented   = "NOT_IMPLEMENTED"
	ErrCodeServiceUnavail   = "SERVICE_UNAVAILABLE"
	ErrCodeGatewayTimeout   = "GATEWAY_TIMEOUT"
	ErrCodeInvalidImageData = "INVALID_IMAGE_DATA"
)

// Predefined errors.
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "request timeout", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	ErrInternalError  = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrNotImplemented = NewError(ErrCodeNotImplemented, "not implemented", http.StatusNotImplemented, nil)
	ErrServiceUnavail = NewError(ErrCodeServiceUnavail, "service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "gateway timeout", http.StatusGatewayTimeout, nil)

	ErrInvalidImageFormat = NewError("INVALID_IMAGE_FORMAT", "invalid image format", http.StatusBadRequest, nil)
	ErrInvalidImageSize   = NewError("INVALID_IMAGE_SIZE", "image size exceeds limit", http.StatusBadRequest, nil)
	ErrCacheDisabled      = NewError("CACHE_DISABLED", "cache is disabled", http.StatusServiceUnavailable, nil)
	ErrVisionService      = NewError("VISION_SERVICE_ERROR", "vision service error", http.StatusServiceUnavailable, nil)
	ErrOCRService         = NewError("OCR_SERVICE_ERROR", "OCR service error", http.StatusServiceUnavailable, nil)
)
