package jira

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means the request never produced an HTTP response
// (DNS failure, refused connection, cancelled context).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError is a non-2xx response from Jira. Body is kept exactly as
// received and is not decoded.
type UpstreamError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       []byte
}

func (e *UpstreamError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, status)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Method, e.URL, status, e.Body)
}

// DecodeError is a 2xx response whose body is not JSON.
type DecodeError struct {
	URL  string
	Body []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("GET %s: response is not valid JSON (%d bytes)", e.URL, len(e.Body))
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound
}
