package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/produce-api/internal/middleware"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/deppfellow/produce-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is embedded by every concrete handler to reach the server.
//
// Through *server.Server handlers get the config, the logger, the storage
// handle and the New Relic service.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Request is a pointer to a request struct that can validate itself.
//
// The pointer is what echo's Bind fills in; T is what Handle allocates for
// each call.
type Request[T any] interface {
	*T
	validation.Validatable
}

// HandlerFunc handles a bound and validated request and returns the response
// body.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent handles a bound and validated request that has no
// response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	// Handle writes the HTTP response for result.
	Handle(c echo.Context, result any) error

	// GetOperation names the response type in structured logs.
	GetOperation() string

	// AddAttributes attaches result specific New Relic attributes.
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes result as JSON with a fixed status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil || result == nil {
		return
	}
	// List endpoints report how many records they returned.
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.items", v.Len())
	}
}

// NoContentResponseHandler writes an empty body, typically 204.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

// AddAttributes has nothing to add; http.status_code is set by the tracing
// middleware.
func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// handleRequest is the pipeline every produce route runs through:
//
//   - bind path params and body into req, then validate it
//   - call the typed handler
//   - write the result through responseHandler
//
// Each phase is timed, logged with the request-scoped logger and, when a New
// Relic transaction exists, recorded as transaction attributes. Errors are
// returned untouched for the global error handler to render.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	// The transaction is started by the nrecho middleware; it is nil when New
	// Relic is disabled.
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	// Logger set by ContextEnhancer, already carrying request_id and ip.
	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// Phase 1: bind + validate. Failures are 400s built by the validation
	// package.
	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// Phase 2: business logic.
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}

		// Logged at debug only; GlobalErrorHandler logs the error once at the
		// level matching its status.
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler returned an error")

		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	// Phase 3: write the response.
	return responseHandler.Handle(c, result)
}

// Handle wraps a handler that answers with a JSON body. A fresh request value
// is allocated for every call, so concurrent requests never share state.
func Handle[T any, Req Request[T], Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent wraps a handler that answers with an empty body.
func HandleNoContent[T any, Req Request[T]](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
