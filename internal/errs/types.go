// Package errs defines the error envelope returned to API clients.
//
// Every failure leaves the service as an HTTPError serialized to JSON, with
// optional field-level errors for rejected request bodies and an optional
// action hint the client can act on.
package errs

import "strings"

// FieldError is a validation failure tied to one request field.
//
//	{ "field": "type", "error": "must be one of: fruit vegetable" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType tells the client what to do next.
type ActionType string

const (
	// ActionTypeRetry asks the client to repeat the request later.
	ActionTypeRetry ActionType = "retry"
)

// Action is an optional follow-up instruction attached to an error.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the JSON error body.
//
// Code is machine readable (e.g. "BAD_REQUEST"), Message is meant for people.
// Override marks messages that are safe to show to end users as they are.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError, regardless of its code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores turns "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
