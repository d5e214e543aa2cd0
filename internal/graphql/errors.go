package graphql

import (
	"fmt"
	"strings"
	"time"
)

const redacted = "[REDACTED]"

// HTTPError is returned when the gateway answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) Kind() string { return "UpstreamHTTPError" }

// TimeoutError is returned when the gateway does not answer within the client timeout.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("gateway did not respond within %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Kind() string { return "UpstreamTimeout" }

// TransportError wraps connection-level failures (DNS, reset, TLS).
// Message has the API key removed; Err is kept for errors.Is/As.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return "gateway transport error: " + e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() string { return "UpstreamTransportError" }

// Redact replaces every occurrence of secret in s.
func Redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, redacted)
}
