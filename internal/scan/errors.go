package scan

import "fmt"

// NetworkError indicates the request never produced an HTTP response.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates the scan exceeded its deadline and was cancelled.
type TimeoutError struct{}

func (e *TimeoutError) Error() string {
	return "Request timed out. Please try again."
}

// ServerError indicates a non-2xx response from the backend. Message is the
// backend's own error text when one could be parsed, or a generic
// "HTTP error! status: <code>" otherwise.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// MalformedResponseError indicates a 2xx response whose body is not the
// expected structure at all.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from backend: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
