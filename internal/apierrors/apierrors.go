// Package apierrors provides the shared error taxonomy for the Polaris client.
//
// Every failure the SDK surfaces is an *Error carrying a Kind discriminant.
// Kinds form a closed set; callers match on the kind (via errors.Is against a
// kind prototype, or the predicate helpers in the root package) rather than on
// concrete error identity, so classification survives serialization.
package apierrors

import (
	"errors"
	"fmt"
	"time"
)

// Kind discriminates the failure categories the taxonomy recognizes.
type Kind string

// The closed set of failure kinds.
const (
	KindNetwork            Kind = "network"
	KindTimeout            Kind = "timeout"
	KindValidation         Kind = "validation"
	KindAuthentication     Kind = "authentication"
	KindAuthorization      Kind = "authorization"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindRateLimit          Kind = "rate_limit"
	KindServiceUnavailable Kind = "service_unavailable"
	KindServer             Kind = "server"
	KindHTTP               Kind = "http"
)

// Machine-readable codes attached when the server supplies none.
const (
	CodeNetwork            = "NETWORK_ERROR"
	CodeTimeout            = "TIMEOUT_ERROR"
	CodeValidation         = "VALIDATION_ERROR"
	CodeAuthentication     = "AUTHENTICATION_ERROR"
	CodeAuthorization      = "AUTHORIZATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeServer             = "SERVER_ERROR"
	CodeHTTP               = "HTTP_ERROR"
)

// Error is the single taxonomy error type. The Kind field is the discriminant;
// all other fields are optional context.
type Error struct {
	Kind       Kind              `json:"kind"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Status     int               `json:"status,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
	RetryAfter time.Duration     `json:"-"`
	Cause      error             `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" && e.Status > 0 {
		msg = fmt.Sprintf("HTTP %d error", e.Status)
	}
	var s string
	switch {
	case e.Status > 0:
		s = fmt.Sprintf("%s %d: %s", e.Kind, e.Status, msg)
	default:
		s = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.RequestID != "" {
		s = fmt.Sprintf("%s (request_id: %s)", s, e.RequestID)
	}
	if e.Cause != nil {
		s = fmt.Sprintf("%s: %v", s, e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches two taxonomy errors by kind, so errors.Is(err, &Error{Kind: k})
// works as a tag check regardless of the remaining fields.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// NewNetwork wraps a transport-level failure (connection refused, DNS, TLS).
func NewNetwork(cause error, url string) *Error {
	msg := "request failed"
	if url != "" {
		msg = fmt.Sprintf("request to %s failed", url)
	}
	return &Error{
		Kind:    KindNetwork,
		Code:    CodeNetwork,
		Message: msg,
		Cause:   cause,
	}
}

// NewTimeout reports an elapsed per-attempt deadline.
func NewTimeout(operation string, timeout time.Duration) *Error {
	return &Error{
		Kind:    KindTimeout,
		Code:    CodeTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, timeout),
	}
}

// KindOf returns the taxonomy kind of err, or the empty Kind when err is not
// a taxonomy error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a taxonomy error of the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// IsRetryable reports whether a failed attempt may succeed on retry.
// True exactly for network failures, timeouts, rate limiting, service
// unavailability, and 5xx server errors. Client-side mistakes (validation,
// auth, not-found, conflict) are never retried.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindNetwork, KindTimeout, KindRateLimit, KindServiceUnavailable:
		return true
	case KindServer:
		return e.Status >= 500
	default:
		return false
	}
}

// RetryAfterHint returns the server-supplied retry delay carried by err, or
// zero when none is present.
func RetryAfterHint(err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	return 0
}
