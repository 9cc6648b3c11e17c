package entity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAlreadyPersisted = errors.New("entity already has an id")
	ErrNotPersisted     = errors.New("entity has no id")
)

// ErrorHeader carries the error key set by the API on rejected requests.
const ErrorHeader = "X-bankAdminApp-error"

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	ErrorKey   string
	Title      string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.ErrorKey != "" {
		msg += " (" + e.ErrorKey + ")"
	}
	if e.Title != "" {
		msg += ": " + e.Title
	}
	return msg
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
