package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired matches any API error carrying a 401 or 403, via
// errors.Is. Handlers catching it send the operator back to the login screen;
// the session has already been cleared by the time they see it.
var ErrSessionExpired = errors.New("session expired")

// ErrAccessDenied is returned by Login when the credentials are valid but the
// account is not an administrator.
var ErrAccessDenied = errors.New("access denied: you are not an administrator")

// APIError is a failure reported by the platform API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Is makes 401/403 API errors match ErrSessionExpired.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// Message normalizes any error from this package into the string screens show
// the operator: the server's message when there is one, a generic fallback
// otherwise. Every screen uses this one function.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrAccessDenied) {
		return "Access denied: you are not an administrator."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}
