package polaris

import (
	"errors"

	"github.com/polarisapp/client-go/internal/apierrors"
	"github.com/polarisapp/client-go/internal/transport"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrInvalidConfig is returned when client configuration fails
	// validation.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrNoData is returned by Envelope.Unwrap when a success response
	// carries no data payload.
	ErrNoData = transport.ErrNoData
)

// Error is the taxonomy error type surfaced by every failed request. The
// Kind field discriminates the closed set of failure categories.
type Error = apierrors.Error

// ErrorKind discriminates the failure categories.
type ErrorKind = apierrors.Kind

// The closed set of error kinds.
const (
	KindNetwork            = apierrors.KindNetwork
	KindTimeout            = apierrors.KindTimeout
	KindValidation         = apierrors.KindValidation
	KindAuthentication     = apierrors.KindAuthentication
	KindAuthorization      = apierrors.KindAuthorization
	KindNotFound           = apierrors.KindNotFound
	KindConflict           = apierrors.KindConflict
	KindRateLimit          = apierrors.KindRateLimit
	KindServiceUnavailable = apierrors.KindServiceUnavailable
	KindServer             = apierrors.KindServer
	KindHTTP               = apierrors.KindHTTP
)

// ErrorKindOf returns the taxonomy kind of err, or the empty kind when err
// is not a taxonomy error.
func ErrorKindOf(err error) ErrorKind {
	return apierrors.KindOf(err)
}

// IsNetworkError reports whether err is a transport-level failure
// (connection refused, DNS, TLS).
func IsNetworkError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindNetwork)
}

// IsTimeoutError reports whether err is an elapsed request deadline.
func IsTimeoutError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindTimeout)
}

// IsValidationError reports whether err is an HTTP 400 validation failure.
func IsValidationError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindValidation)
}

// IsAuthenticationError reports whether err is an HTTP 401 failure.
func IsAuthenticationError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindAuthentication)
}

// IsAuthorizationError reports whether err is an HTTP 403 failure.
func IsAuthorizationError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindAuthorization)
}

// IsNotFoundError reports whether err is an HTTP 404 failure.
func IsNotFoundError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindNotFound)
}

// IsConflictError reports whether err is an HTTP 409 failure.
func IsConflictError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindConflict)
}

// IsRateLimitError reports whether err is an HTTP 429 failure.
func IsRateLimitError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindRateLimit)
}

// IsServiceUnavailableError reports whether err is an HTTP 503 failure.
func IsServiceUnavailableError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindServiceUnavailable)
}

// IsServerError reports whether err is an HTTP 5xx failure other than 503.
func IsServerError(err error) bool {
	return apierrors.IsKind(err, apierrors.KindServer)
}

// IsRetryable reports whether err represents a transient failure that may
// succeed on retry: network failures, timeouts, rate limiting, service
// unavailability, and 5xx server errors.
func IsRetryable(err error) bool {
	return apierrors.IsRetryable(err)
}
