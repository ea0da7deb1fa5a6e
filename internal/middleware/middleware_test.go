package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/produce-api/internal/config"
	"github.com/deppfellow/produce-api/internal/errs"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: config.DefaultConfig(),
		Logger: &logger,
	}
}

func newContext(e *echo.Echo, method string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/produce/1", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates one", func(t *testing.T) {
		c, rec := newContext(e, http.MethodGet)
		require.NoError(t, handler(c))

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses the caller's", func(t *testing.T) {
		c, rec := newContext(e, http.MethodGet)
		c.Request().Header.Set(RequestIDHeader, "abc-123")
		require.NoError(t, handler(c))

		require.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		require.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestEnhanceContextStoresLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := newTestServer()
	s.Logger = &logger
	ce := NewContextEnhancer(s)

	var requestID string
	handler := RequestID()(ce.EnhanceContext()(func(c echo.Context) error {
		requestID = GetRequestID(c)
		GetLogger(c).Info().Msg("from echo context")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		return nil
	}))

	c, _ := newContext(echo.New(), http.MethodGet)
	require.NoError(t, handler(c))
	require.NotEmpty(t, requestID)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		require.Equal(t, requestID, entry["request_id"])
		require.Equal(t, http.MethodGet, entry["method"])
	}
}

func TestGetLoggerOutsideChain(t *testing.T) {
	c, _ := newContext(echo.New(), http.MethodGet)
	require.Equal(t, zerolog.Disabled, GetLogger(c).GetLevel())
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer())
	e := echo.New()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "http error",
			err:     errs.NewNotFoundError("Not found", false, nil),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Not found",
		},
		{
			name:    "wrapped http error",
			err:     errors.Wrap(errs.NewBadRequestError("Invalid type", true, nil, nil, nil), "create produce"),
			status:  http.StatusBadRequest,
			code:    "BAD_REQUEST",
			message: "Invalid type",
		},
		{
			name:    "unknown route",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Route not found",
		},
		{
			name:    "method not allowed",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			code:    "METHOD_NOT_ALLOWED",
			message: "Method Not Allowed",
		},
		{
			name:    "storage failure",
			err:     errors.New("insert produce: disk I/O error"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "insert produce: disk I/O error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(e, http.MethodGet)
			global.GlobalErrorHandler(tt.err, c)

			require.Equal(t, tt.status, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.status, body.Status)
			require.Equal(t, tt.code, body.Code)
			require.Equal(t, tt.message, body.Message)
		})
	}

	t.Run("head has no body", func(t *testing.T) {
		c, rec := newContext(e, http.MethodHead)
		global.GlobalErrorHandler(errs.NewNotFoundError("Not found", false, nil), c)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("committed response is left alone", func(t *testing.T) {
		c, rec := newContext(e, http.MethodGet)
		require.NoError(t, c.NoContent(http.StatusNoContent))

		global.GlobalErrorHandler(errors.New("late failure"), c)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Body.String())
	})
}

func TestGlobalErrorHandlerLogsDatabaseCode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	global := NewGlobalMiddlewares(newTestServer())
	c, rec := newContext(echo.New(), http.MethodPost)
	c.Set(LoggerKey, &logger)

	global.GlobalErrorHandler(errors.Wrap(&pgconn.PgError{Code: "23514", ColumnName: "price_per_kg"}, "create produce"), c)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "check_violation", entry["db_code"])
	require.Equal(t, "warn", entry["level"])
}

func TestLimiterDisabledByDefault(t *testing.T) {
	rl := NewRateLimitMiddleware(newTestServer())
	e := echo.New()

	calls := 0
	handler := rl.Limiter()(func(c echo.Context) error {
		calls++
		return nil
	})

	for range 50 {
		c, _ := newContext(e, http.MethodGet)
		require.NoError(t, handler(c))
	}
	require.Equal(t, 50, calls)
}

func TestLimiterRejectsBurst(t *testing.T) {
	s := newTestServer()
	s.Config.Server.RateLimit = 2
	rl := NewRateLimitMiddleware(s)

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	handler := rl.Limiter()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for range 2 {
		c, rec := newContext(e, http.MethodGet)
		require.NoError(t, handler(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Denied requests are written through the error handler, not returned.
	c, rec := newContext(e, http.MethodGet)
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "TOO_MANY_REQUESTS", body.Code)
	require.NotNil(t, body.Action)
	require.Equal(t, errs.ActionTypeRetry, body.Action.Type)
}
