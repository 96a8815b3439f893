package llm

import (
	"errors"
	"fmt"
)

// TransportError wraps network-level failures: connection refused, DNS,
// timeouts and context cancellation. Callers treat a timeout exactly like
// any other transport failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports a non-2xx HTTP status from the completion endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm upstream error (status %d): %s", e.StatusCode, truncate(e.Body, 200))
}

// MalformedEnvelopeError reports a 2xx response whose body is missing one of
// the levels of the expected candidates[0].content.parts[0].text envelope.
type MalformedEnvelopeError struct {
	Field string
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("llm response envelope missing %s", e.Field)
}

// ErrorKind returns a short diagnostic code for an error returned by the
// client, for observability records.
func ErrorKind(err error) string {
	var te *TransportError
	var ue *UpstreamError
	var me *MalformedEnvelopeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &te):
		return "TRANSPORT"
	case errors.As(err, &ue):
		return "UPSTREAM"
	case errors.As(err, &me):
		return "MALFORMED_ENVELOPE"
	default:
		return "UNKNOWN"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
