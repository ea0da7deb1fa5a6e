package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/produce-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	ID    string   `param:"id" json:"-"`
	Name  string   `json:"name" validate:"required,min=2"`
	Kind  string   `json:"kind" validate:"required,oneof=a b"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

func (p *samplePayload) Validate() error {
	if err := Struct(p); err != nil {
		return err
	}
	if p.ID == "bad" {
		return CustomValidationErrors{{Field: "id", Message: "Invalid id"}}
	}
	return nil
}

func bind(t *testing.T, body string, id string) (*samplePayload, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/sample/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/sample/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)

	payload := &samplePayload{}
	return payload, BindAndValidate(c, payload)
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidateSuccess(t *testing.T) {
	payload, err := bind(t, `{"name":"ok","kind":"a","price":0}`, "7")
	require.NoError(t, err)
	require.Equal(t, "7", payload.ID)
	require.Equal(t, "ok", payload.Name)
	require.Equal(t, 0.0, *payload.Price)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	_, err := bind(t, `{"name":"x","kind":"c","price":-1}`, "1")
	httpErr := requireBadRequest(t, err)

	require.Equal(t, "Validation failed", httpErr.Message)
	require.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "must be at least 2 characters"},
		{Field: "kind", Error: "must be one of: a b"},
		{Field: "price", Error: "must be greater than or equal to 0"},
	}, httpErr.Errors)
}

func TestBindAndValidateMissingFields(t *testing.T) {
	_, err := bind(t, `{}`, "1")
	httpErr := requireBadRequest(t, err)
	require.Len(t, httpErr.Errors, 3)
	for _, fe := range httpErr.Errors {
		require.Equal(t, "is required", fe.Error)
	}
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	for _, body := range []string{`{"name":`, `{"price":"cheap"}`, `[1,2]`} {
		_, err := bind(t, body, "1")
		httpErr := requireBadRequest(t, err)
		require.True(t, strings.HasPrefix(httpErr.Message, "Invalid request body"), httpErr.Message)
	}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	_, err := bind(t, `{"name":"ok","kind":"b","price":1}`, "bad")
	httpErr := requireBadRequest(t, err)
	require.Equal(t, []errs.FieldError{{Field: "id", Error: "Invalid id"}}, httpErr.Errors)
}
