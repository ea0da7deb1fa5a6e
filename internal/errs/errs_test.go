package errs

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	require.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
	require.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
}

func TestConstructorsDefaultCodes(t *testing.T) {
	code := "PRODUCE_NOT_FOUND"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{name: "bad request", err: NewBadRequestError("bad", false, nil, nil, nil), status: 400, code: "BAD_REQUEST"},
		{name: "not found", err: NewNotFoundError("missing", false, nil), status: 404, code: "NOT_FOUND"},
		{name: "not found with code", err: NewNotFoundError("missing", false, &code), status: 404, code: code},
		{name: "too many requests", err: NewTooManyRequestsError("slow down"), status: 429, code: "TOO_MANY_REQUESTS"},
		{name: "unavailable", err: NewServiceUnavailableError("busy"), status: 503, code: "SERVICE_UNAVAILABLE"},
		{name: "internal", err: NewInternalServerError(), status: 500, code: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.status, tt.err.Status)
			require.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestWithMessageCopies(t *testing.T) {
	base := NewInternalServerError()
	withMsg := base.WithMessage("insert produce: disk full")

	require.Equal(t, "Internal Server Error", base.Message)
	require.Equal(t, "insert produce: disk full", withMsg.Message)
	require.Equal(t, base.Status, withMsg.Status)
}

func TestIsMatchesWrappedHTTPError(t *testing.T) {
	err := errors.Wrap(NewNotFoundError("Not found", false, nil), "get produce")

	require.ErrorIs(t, err, &HTTPError{})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestEnvelopeShape(t *testing.T) {
	err := NewBadRequestError("Validation failed", true, nil, []FieldError{{Field: "type", Error: "must be one of: fruit vegetable"}}, nil)

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	require.JSONEq(t, `{
		"code": "BAD_REQUEST",
		"message": "Validation failed",
		"status": 400,
		"override": true,
		"errors": [{"field": "type", "error": "must be one of: fruit vegetable"}],
		"action": null
	}`, string(body))
}
