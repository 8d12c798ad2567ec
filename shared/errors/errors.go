package errors

import "fmt"

// ErrorWithStatusCode is returned when the backend answered with an error
// status. Message holds the server-supplied {"message": ...} text, if any.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

// NetworkError means the request went out but no response came back
// (connection refused, reset, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "backend unavailable: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RequestError means the request could not be built or handed to the
// transport at all.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "failed to create API request: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error { return e.Err }
