package mapper

import (
	"maps"
	"net/http"

	"apiexception/catalog"
)

const (
	// DefaultFaultStatus is used for unmapped codes and unanticipated faults.
	DefaultFaultStatus = http.StatusInternalServerError

	// DefaultValidationStatus is used for schema-validation faults.
	DefaultValidationStatus = http.StatusUnprocessableEntity
)

// defaultStatuses maps the built-in catalog entries to HTTP statuses.
var defaultStatuses = map[string]int{
	catalog.AuthLoginFailed.Code():  http.StatusUnauthorized,
	catalog.AuthUnauthorized.Code(): http.StatusUnauthorized,
	catalog.AuthTokenExpired.Code(): http.StatusUnauthorized,
	catalog.AuthTokenInvalid.Code(): http.StatusUnauthorized,

	catalog.PermissionDenied.Code(): http.StatusForbidden,

	catalog.ValidationError.Code():        http.StatusUnprocessableEntity,
	catalog.ValidationInvalidInput.Code(): http.StatusBadRequest,

	catalog.ResourceNotFound.Code():      http.StatusNotFound,
	catalog.ResourceConflict.Code():      http.StatusConflict,
	catalog.ResourceAlreadyExists.Code(): http.StatusConflict,

	catalog.RequestBadRequest.Code():       http.StatusBadRequest,
	catalog.RequestMethodNotAllowed.Code(): http.StatusMethodNotAllowed,
	catalog.RequestTooLarge.Code():         http.StatusRequestEntityTooLarge,
	catalog.RequestRateLimited.Code():      http.StatusTooManyRequests,

	catalog.InternalServerError.Code(): http.StatusInternalServerError,
	catalog.ServiceUnavailable.Code():  http.StatusServiceUnavailable,
}

// StatusMap resolves an error code to an HTTP status. It is read-only once
// built.
type StatusMap struct {
	byCode     map[string]int
	fallback   int
	validation int
}

// NewStatusMap returns the built-in defaults merged with overrides. Override
// values outside 100..599 are skipped.
func NewStatusMap(overrides map[string]int) StatusMap {
	byCode := maps.Clone(defaultStatuses)
	for code, status := range overrides {
		if status < 100 || status > 599 {
			continue
		}
		byCode[code] = status
	}

	return StatusMap{
		byCode:     byCode,
		fallback:   DefaultFaultStatus,
		validation: DefaultValidationStatus,
	}
}

// Lookup returns the status registered for code.
func (m StatusMap) Lookup(code string) (int, bool) {
	status, ok := m.byCode[code]

	return status, ok
}

// Status returns the status for code, or the fault fallback.
func (m StatusMap) Status(code string) int {
	if status, ok := m.Lookup(code); ok {
		return status
	}

	return m.Fallback()
}

// Fallback is the status for unmapped or unanticipated faults.
func (m StatusMap) Fallback() int {
	if m.fallback == 0 {
		return DefaultFaultStatus
	}

	return m.fallback
}

// Validation is the status for schema-validation faults.
func (m StatusMap) Validation() int {
	if m.validation == 0 {
		return DefaultValidationStatus
	}

	return m.validation
}
