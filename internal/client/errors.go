package client

import "fmt"

// APIError is a non-2xx answer from the sync service, with the message from
// its error JSON body when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sync service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("sync service returned status %d: %s", e.StatusCode, e.Message)
}

// Retriable reports whether the caller may reasonably retry the request.
func (e *APIError) Retriable() bool { return e.StatusCode >= 500 }

// TransportError is a network-level failure: the request never produced an
// HTTP response. Always retriable at the caller's discretion.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
