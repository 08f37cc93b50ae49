package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 from any authenticated call. The recovery
// action (re-login) is a caller concern; the client only surfaces the
// distinction reliably.
var ErrUnauthorized = errors.New("authentication required")

// ErrNoProfile marks a 404 from the profile endpoint, signalling
// first-time setup rather than a failure.
var ErrNoProfile = errors.New("no profile yet")

// Error carries the HTTP status and a best-effort message parsed from the
// response body.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// AsError unwraps err into an *Error, or nil if it isn't one.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	return nil
}
