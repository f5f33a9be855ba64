package handler

import (
	"log/slog"
	"net/http"

	"apiexception/apierror"
	"apiexception/catalog"
	"apiexception/echoapi"
	"apiexception/internal/errors"
	"apiexception/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DemoHandlerParams holds dependencies for DemoHandler, injected by Fx.
type DemoHandlerParams struct {
	fx.In

	Registry *catalog.Registry
	Logger   *slog.Logger
}

// DemoHandler exercises each way an endpoint can fail.
type DemoHandler struct {
	registry *catalog.Registry
	logger   *slog.Logger
}

// NewDemoHandler is the constructor for DemoHandler
func NewDemoHandler(params DemoHandlerParams) *DemoHandler {
	return &DemoHandler{
		registry: params.Registry,
		logger:   params.Logger,
	}
}

// PageRequest is the body accepted by ValidationBody.
type PageRequest struct {
	Limit        int    `json:"limit" validate:"gte=-100"`
	ItemsPerPage int    `json:"itemsPerPage" validate:"required,min=1,max=100"`
	Sort         string `json:"sort" validate:"omitempty,oneof=asc desc"`
}

// Page is returned by the validation endpoints.
type Page struct {
	Limit        int    `json:"limit"`
	ItemsPerPage int    `json:"itemsPerPage"`
	Sort         string `json:"sort,omitempty"`
}

// Login always rejects the credentials with a customised message.
func (h *DemoHandler) Login(c echo.Context) error {
	return apierror.New(catalog.AuthLoginFailed,
		apierror.WithMessage("Custom login failure"),
		apierror.WithHTTPStatus(http.StatusUnauthorized),
	)
}

// Validation binds query parameters with the fluent binder, reporting every
// bad parameter at once.
func (h *DemoHandler) Validation(c echo.Context) error {
	var page Page
	errs := echo.QueryParamsBinder(c).
		FailFast(false).
		MustInt("limit", &page.Limit).
		MustInt("itemsPerPage", &page.ItemsPerPage).
		String("sort", &page.Sort).
		BindErrors()
	if err := echoapi.BindErrors(errs); err != nil {
		return err
	}

	return response.Ok(c, http.StatusOK, page, "")
}

// ValidationBody binds and validates a JSON body. A negative limit passes the
// schema but is refused by the handler itself.
func (h *DemoHandler) ValidationBody(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Limit < 0 {
		return apierror.New(catalog.ValidationError,
			apierror.WithMessage("Limit must be non-negative."),
			apierror.WithDescription("limit must not be negative"),
			apierror.WithHTTPStatus(http.StatusUnprocessableEntity),
			apierror.WithLog(),
		)
	}

	return response.Ok(c, http.StatusOK, Page(req), "Page accepted")
}

// Crash panics by writing to a nil map.
func (h *DemoHandler) Crash(c echo.Context) error {
	var counters map[string]int
	counters["requests"]++

	return nil
}

// Catalog raises the entry registered under :code.
func (h *DemoHandler) Catalog(c echo.Context) error {
	code := c.Param("code")

	apiErr, err := apierror.FromCode(h.registry, code)
	if err != nil {
		h.logger.Debug("unknown catalog code", slog.String("code", code))

		return apierror.New(catalog.ResourceNotFound,
			apierror.WithDescription("No catalog entry is registered under "+code+"."),
			apierror.WithCause(errors.WithStack(err)),
		)
	}

	return apiErr
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Ok(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
