package cartapi

import (
	"fmt"
	"net/http"
)

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cart API %s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a response with a non-2xx status.
type HTTPError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("cart API %s: unexpected status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// NotFoundError reports an id-addressed operation against a missing cart entry.
type NotFoundError struct {
	ID  string
	Err *HTTPError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cart entry %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}
