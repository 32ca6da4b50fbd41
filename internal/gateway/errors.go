package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionInvalid is returned to the caller of any request that came back
// 401. By the time the caller sees it the forced-logout protocol has already
// run; there is nothing to retry.
var ErrSessionInvalid = errors.New("session invalidated by server")

// APIError is a non-401 failure response, passed through verbatim with the
// server-provided message so the presentation layer can display it.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// Validation reports whether the failure is a business-rule or input
// rejection rather than a server-side fault.
func (e *APIError) Validation() bool {
	return e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError
}

// AsAPIError unwraps err to an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
