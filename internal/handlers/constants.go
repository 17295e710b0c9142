package handlers

const (
	SessionCookieName = "session_id"

	// ApprenticeTokenHeader carries the re-issued sliding session token
	// on every authenticated apprentice response.
	ApprenticeTokenHeader = "X-Session-Token"

	ErrInvalidJSON         = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrNotFound            = "Not found"
	ErrInternalServerError = "Internal server error"
	ErrTooManyRequests     = "Too many requests"
)
