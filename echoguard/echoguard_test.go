package echoguard_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/presence"
	"github.com/Gobd/presence/echoguard"
)

type signupRequest struct {
	Email string `json:"email" presence:"required" validate:"email"`
	Plan  string `json:"plan" validate:"omitempty,oneof=free pro"`
}

type signupResponse struct {
	Welcome string `json:"welcome"`
}

func newEcho(validator echo.Validator) (*echo.Echo, *int) {
	e := echo.New()
	e.Validator = validator
	e.HTTPErrorHandler = echoguard.ErrorHandler(http.StatusUnprocessableEntity, e.DefaultHTTPErrorHandler)

	calls := 0
	e.POST("/signup", echoguard.Handle(func(_ echo.Context, req signupRequest) (signupResponse, error) {
		calls++
		return signupResponse{Welcome: req.Email}, nil
	}))
	return e, &calls
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleRejectsAbsentField(t *testing.T) {
	e, calls := newEcho(echoguard.NewValidator(echoguard.NewPlayground()))

	rec := post(e, `{"plan": "free"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"email": ["email is required. It cannot be deserialized to null."]}`, rec.Body.String())
	assert.Zero(t, *calls, "handler must not run")
}

func TestHandlePasses(t *testing.T) {
	e, calls := newEcho(echoguard.NewValidator(echoguard.NewPlayground()))

	rec := post(e, `{"email": "ada@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"welcome": "ada@example.com"}`, rec.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestHandleChainedPlaygroundFailures(t *testing.T) {
	e, calls := newEcho(echoguard.NewValidator(echoguard.NewPlayground()))

	rec := post(e, `{"email": "nope", "plan": "gold"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{
		"email": ["email must be a valid email address."],
		"plan": ["plan must be one of [free pro]."]
	}`, rec.Body.String())
	assert.Zero(t, *calls)
}

func TestHandleWithoutValidatorStillGuards(t *testing.T) {
	e, calls := newEcho(nil)

	rec := post(e, `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, *calls)
}

func TestHandleMalformedBody(t *testing.T) {
	e, _ := newEcho(echoguard.NewValidator(nil))

	rec := post(e, `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidatorCustomExtractor(t *testing.T) {
	type note struct {
		Body string
	}
	ex := &presence.Extractor{}
	ex.Declare(reflect.TypeFor[note](), "Body")

	v := &echoguard.Validator{Extractor: ex}
	err := v.Validate(&note{})
	f, ok := presence.AsFailures(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Body"}, f.Fields())

	assert.NoError(t, v.Validate(&note{Body: "x"}))
}

func TestErrorHandlerPassesOtherErrors(t *testing.T) {
	var got error
	h := echoguard.ErrorHandler(http.StatusBadRequest, func(err error, _ echo.Context) { got = err })

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	boom := errors.New("boom")
	h(boom, c)

	assert.Same(t, boom, got)
}

func TestPlaygroundNonStruct(t *testing.T) {
	p := echoguard.NewPlayground()
	require.NotNil(t, p.Validator())
	assert.Error(t, p.Validate("text"))
}
