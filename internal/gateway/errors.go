package gateway

import (
	"errors"
	"fmt"
)

// ErrSessionExpired signals a 401 on an authenticated call. The session
// store has already been cleared by the time callers see it; the view
// layer must treat it as "navigate to login".
var ErrSessionExpired = errors.New("session expired")

// RequestError is any other non-2xx response. The gateway does not
// retry and does not interpret response bodies.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}
