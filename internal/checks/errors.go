package checks

import (
	"errors"
	"net/http"

	"veritas/internal/payload"
)

var (
	// ErrRequestTooLarge marks a body that exceeded the configured upload limit.
	ErrRequestTooLarge = errors.New("request body exceeds the upload limit")
	// ErrUnreadableBody marks a body the transport could not read.
	ErrUnreadableBody = errors.New("request body could not be read")
)

// MapHTTPStatus translates domain errors to HTTP status codes. Unusable
// input is the caller's fault (400); unreadable media and analysis engine
// failures are server faults (500), the default.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, payload.ErrMissingInput),
		errors.Is(err, payload.ErrUnsupportedMedia),
		errors.Is(err, ErrUnreadableBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
