package echoapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"apiexception/apierror"
	"apiexception/catalog"
	"apiexception/internal/errors"
	"apiexception/mapper"
	"apiexception/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoBody struct {
	Limit        int `json:"limit" validate:"min=0"`
	ItemsPerPage int `json:"itemsPerPage" validate:"required,min=1"`
}

type demoQuery struct {
	Limit        int
	ItemsPerPage int
}

type testServer struct {
	echo   *echo.Echo
	logBuf *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logBuf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logBuf, nil))

	e := echo.New()
	require.NoError(t, Register(e, Options{
		Policy:                mapper.New(mapper.WithLogger(logger), mapper.WithLogging(true)),
		Logger:                logger,
		UseFallbackMiddleware: true,
		ValidateOnBind:        true,
	}))

	e.POST("/login", func(c echo.Context) error {
		return apierror.New(catalog.AuthLoginFailed,
			apierror.WithMessage("Custom login failure"),
			apierror.WithHTTPStatus(http.StatusUnauthorized),
		)
	})
	e.POST("/body", func(c echo.Context) error {
		var body demoBody
		if err := c.Bind(&body); err != nil {
			return err
		}

		return response.Ok(c, http.StatusOK, body, "Everything's good!")
	})
	e.GET("/query", func(c echo.Context) error {
		var q demoQuery
		err := BindErrors(echo.QueryParamsBinder(c).
			FailFast(false).
			MustInt("limit", &q.Limit).
			MustInt("itemsPerPage", &q.ItemsPerPage).
			BindErrors())
		if err != nil {
			return err
		}

		return response.Ok(c, http.StatusOK, q, "")
	})
	e.GET("/crash", func(c echo.Context) error {
		var m map[string]int
		m["boom"] = 1 // nil map write panics

		return nil
	})
	e.GET("/fault", func(c echo.Context) error {
		return errors.New("redis: connection pool exhausted at 10.0.0.7")
	})
	e.GET("/upstream", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway,
			"remote http://10.0.0.7:9000 unreachable, could not forward: dial tcp: connection refused")
	})
	e.GET("/nil-raised", func(c echo.Context) error {
		var raised *apierror.Error

		return raised
	})
	e.GET("/committed", func(c echo.Context) error {
		_ = c.String(http.StatusAccepted, "partial")

		return apierror.New(catalog.ResourceConflict)
	})

	return &testServer{echo: e, logBuf: logBuf}
}

func (s *testServer) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

type decodedBody struct {
	response.Envelope[json.RawMessage]

	RequestID string                `json:"request_id"`
	Errors    []response.FieldError `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) decodedBody {
	t.Helper()

	var out decodedBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func TestRegister_RaisedErrorWithOverride(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/login", "", map[string]string{HeaderXRequestID: "rid-42"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "rid-42", rec.Header().Get(HeaderXRequestID))

	body := decode(t, rec)
	assert.Equal(t, response.StatusFail, body.Status)
	assert.Equal(t, "Custom login failure", body.Message)
	assert.Equal(t, "AUTH-001", body.Code())
	require.NotNil(t, body.Description)
	assert.Equal(t, catalog.AuthLoginFailed.Description(), *body.Description)
	assert.Nil(t, body.Data)
	assert.Equal(t, "rid-42", body.RequestID)
}

func TestRegister_GeneratesRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/login", "", nil)

	generated := rec.Header().Get(HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, decode(t, rec).RequestID)
}

func TestRegister_BodyValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name            string
		payload         string
		wantField       string
		wantType        string
		wantDescription string
	}{
		{
			name:            "missing required field",
			payload:         `{"limit": 3}`,
			wantField:       "itemsPerPage",
			wantType:        mapper.ValidationFieldType,
			wantDescription: "itemsPerPage is a required field",
		},
		{
			name:            "wrong json type",
			payload:         `{"limit": "dw", "itemsPerPage": 2}`,
			wantField:       "limit",
			wantType:        TypeFieldType,
			wantDescription: "limit must be of type int",
		},
		{
			name:            "malformed json",
			payload:         `{"limit": x}`,
			wantType:        JSONFieldType,
			wantDescription: "request body is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/body", tt.payload, nil)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, catalog.ValidationError.Code(), body.Code())
			require.NotNil(t, body.Description)
			assert.Equal(t, tt.wantDescription, *body.Description)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tt.wantField, body.Errors[0].Field)
			assert.Equal(t, tt.wantType, body.Errors[0].Type)
		})
	}
}

func TestRegister_BodyValid(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/body", `{"limit": 3, "itemsPerPage": 2}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, response.StatusSuccess, body.Status)
	assert.Nil(t, body.ErrorCode)
	require.NotNil(t, body.Data)
	assert.JSONEq(t, `{"limit": 3, "itemsPerPage": 2}`, string(*body.Data))
}

func TestRegister_QueryBindingErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/query?limit=dw&itemsPerPage=pops", "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "limit", body.Errors[0].Field)
	assert.Equal(t, "dw", body.Errors[0].Value)
	assert.Equal(t, "itemsPerPage", body.Errors[1].Field)
	require.NotNil(t, body.Description)
	assert.Equal(t, body.Errors[0].Message, *body.Description)
	assert.True(t, strings.HasPrefix(*body.Description, "limit: "))
}

func TestRegister_PanicFallback(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/crash", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, catalog.InternalServerError.Code(), body.Code())
	assert.Nil(t, body.Data)
	assert.Equal(t, []response.FieldError{mapper.Unhandled}, body.Errors)
	assert.NotContains(t, rec.Body.String(), "nil map")
	assert.Contains(t, s.logBuf.String(), "assignment to entry in nil map")
}

func TestRegister_UnanticipatedFaultHidden(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/fault", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
	assert.NotContains(t, rec.Body.String(), "redis")
	assert.Contains(t, s.logBuf.String(), "10.0.0.7")
}

func TestRegister_FrameworkHTTPErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "unknown route", method: http.MethodGet, target: "/nope", wantStatus: http.StatusNotFound, wantCode: catalog.ResourceNotFound.Code()},
		{name: "wrong method", method: http.MethodDelete, target: "/login", wantStatus: http.StatusMethodNotAllowed, wantCode: catalog.RequestMethodNotAllowed.Code()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.target, "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Code())
		})
	}
}

func TestRegister_UpstreamFailureHidden(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/upstream", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, catalog.InternalServerError.Code(), body.Code())
	require.NotNil(t, body.Description)
	assert.Equal(t, catalog.InternalServerError.Description(), *body.Description)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, s.logBuf.String(), "10.0.0.7")
}

func TestRegister_TypedNilRaisedError(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/nil-raised", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, catalog.InternalServerError.Code(), decode(t, rec).Code())
}

func TestRegister_HeadHasNoBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodHead, "/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRegister_CommittedResponseUntouched(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/committed", "", nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestFromHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		err             *echo.HTTPError
		wantCode        string
		wantDescription string
		wantRaised      bool
	}{
		{
			name:            "body limit",
			err:             echo.ErrStatusRequestEntityTooLarge,
			wantCode:        catalog.RequestTooLarge.Code(),
			wantDescription: catalog.RequestTooLarge.Description(),
			wantRaised:      true,
		},
		{
			name:            "custom message kept as description",
			err:             echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt"),
			wantCode:        catalog.AuthUnauthorized.Code(),
			wantDescription: "missing or malformed jwt",
			wantRaised:      true,
		},
		{
			name:            "unlisted 4xx",
			err:             echo.NewHTTPError(http.StatusTeapot),
			wantCode:        catalog.RequestBadRequest.Code(),
			wantDescription: catalog.RequestBadRequest.Description(),
			wantRaised:      true,
		},
		{name: "plain 500 stays a fault", err: echo.NewHTTPError(http.StatusInternalServerError, "db")},
		{name: "bad gateway stays a fault", err: echo.NewHTTPError(http.StatusBadGateway, "dial tcp 10.0.0.7:9000")},
		{name: "unavailable stays a fault", err: echo.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var raised *apierror.Error
			ok := errors.As(fromHTTPError(tt.err), &raised)
			require.Equal(t, tt.wantRaised, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantCode, raised.Code())
			assert.Equal(t, tt.wantDescription, raised.Description())

			status, _ := raised.HTTPStatus()
			assert.Equal(t, tt.err.Code, status)
		})
	}
}

func TestValidator_NonStructIsNotAValidationFault(t *testing.T) {
	t.Parallel()

	v, err := NewValidator()
	require.NoError(t, err)

	verr := v.Validate(42)
	require.Error(t, verr)

	var validationErr *apierror.ValidationError
	assert.False(t, errors.As(verr, &validationErr))
}

func TestValidator_NestedFieldPath(t *testing.T) {
	t.Parallel()

	type address struct {
		City string `json:"city" validate:"required"`
	}
	type order struct {
		Address address `json:"address"`
	}

	v, err := NewValidator()
	require.NoError(t, err)

	var validationErr *apierror.ValidationError
	require.True(t, errors.As(v.Validate(&order{}), &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "address.city", validationErr.Fields[0].Field)
	assert.Equal(t, "required", validationErr.Fields[0].Tag)
	assert.Equal(t, "city is a required field", validationErr.FirstMessage())
}

func TestBindErrors_Empty(t *testing.T) {
	t.Parallel()

	assert.NoError(t, BindErrors(nil))
}

func TestLoggerMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	e := echo.New()
	require.NoError(t, Register(e, Options{Logger: logger, Policy: mapper.New(mapper.WithLogger(logger))}))
	e.Use(NewLoggerMiddleware(logger, true).Handle)
	e.GET("/missing", func(c echo.Context) error {
		return apierror.New(catalog.ResourceNotFound)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"msg":"HTTP Request"`)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"query":"x=1"`)
}
