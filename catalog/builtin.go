package catalog

// Authentication entries.
var (
	AuthLoginFailed = NewEntry(
		"AUTH-001",
		"Incorrect username or password.",
		"The supplied credentials could not be verified.",
	)

	AuthUnauthorized = NewEntry(
		"AUTH-002",
		"Authentication required.",
		"The request did not include valid authentication credentials.",
	)

	AuthTokenExpired = NewEntry(
		"AUTH-003",
		"Token expired.",
		"The access token is no longer valid, please sign in again.",
	)

	AuthTokenInvalid = NewEntry(
		"AUTH-004",
		"Invalid token.",
		"The access token is malformed or was not issued by this service.",
	)
)

// Permission entries.
var (
	PermissionDenied = NewEntry(
		"PERM-001",
		"Permission denied.",
		"You do not have permission to perform this action.",
	)
)

// Validation entries.
var (
	ValidationError = NewEntry(
		"VAL-001",
		"Validation error.",
		"The request did not pass schema validation.",
	)

	ValidationInvalidInput = NewEntry(
		"VAL-002",
		"Invalid input.",
		"One or more request parameters are malformed.",
	)
)

// Resource entries.
var (
	ResourceNotFound = NewEntry(
		"RES-001",
		"Resource not found.",
		"The requested resource does not exist.",
	)

	ResourceConflict = NewEntry(
		"RES-002",
		"Resource conflict.",
		"The request conflicts with the current state of the resource.",
	)

	ResourceAlreadyExists = NewEntry(
		"RES-003",
		"Resource already exists.",
		"A resource with the same identity already exists.",
	)
)

// Request entries.
var (
	RequestBadRequest = NewEntry(
		"REQ-001",
		"Bad request.",
		"The request could not be understood by the server.",
	)

	RequestMethodNotAllowed = NewEntry(
		"REQ-002",
		"Method not allowed.",
		"The HTTP method is not supported for this resource.",
	)

	RequestTooLarge = NewEntry(
		"REQ-003",
		"Request entity too large.",
		"The request body exceeds the allowed size.",
	)

	RequestRateLimited = NewEntry(
		"REQ-004",
		"Too many requests.",
		"The rate limit for this client has been exceeded, please retry later.",
	)
)

// Server entries.
var (
	InternalServerError = NewEntry(
		"ISE-001",
		"Internal server error.",
		"An unexpected error occurred, please try again later.",
	)

	ServiceUnavailable = NewEntry(
		"ISE-002",
		"Service unavailable.",
		"The service is temporarily unable to handle the request.",
	)
)

// Builtins returns every built-in entry, grouped by concern.
func Builtins() []Entry {
	return []Entry{
		AuthLoginFailed,
		AuthUnauthorized,
		AuthTokenExpired,
		AuthTokenInvalid,
		PermissionDenied,
		ValidationError,
		ValidationInvalidInput,
		ResourceNotFound,
		ResourceConflict,
		ResourceAlreadyExists,
		RequestBadRequest,
		RequestMethodNotAllowed,
		RequestTooLarge,
		RequestRateLimited,
		InternalServerError,
		ServiceUnavailable,
	}
}
