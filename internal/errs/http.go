package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 error. A nil code defaults to
// "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 error. A nil code defaults to "NOT_FOUND".
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 error with a retry hint.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "Slow down and retry the request",
		},
	}
}

// NewServiceUnavailableError creates a 503 error with a retry hint.
func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusServiceUnavailable),
		Message:  message,
		Status:   http.StatusServiceUnavailable,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "Retry the request later",
		},
	}
}

// NewInternalServerError creates a generic 500 error. Callers that want to
// expose the cause use WithMessage.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
